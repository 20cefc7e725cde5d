package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"MarketScope/internal/logger"
	"MarketScope/internal/model"
	"MarketScope/internal/notifier"
	"MarketScope/internal/overview"
	"MarketScope/internal/scheduler"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot with scheduled screens and overviews",
	Long: `Run the long-lived Telegram bot. Scheduled tasks post the screen report and
the catalog overview; chat commands trigger them on demand.

Set RUN_ON_START=true to run a screen immediately after startup.`,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	if err := a.cfg.ValidateBot(); err != nil {
		return err
	}
	log := a.log
	log.Info("MarketScope bot starting")

	sc, err := a.newScreener()
	if err != nil {
		return err
	}
	period, err := model.ParsePeriod(a.cfg.Overview.Period)
	if err != nil {
		return err
	}

	tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, logger.WithComponent(log, "telegram"))
	ov := overview.New(a.loader, logger.WithComponent(log, "overview"))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(ctx, sc, ov, tn, logger.WithComponent(log, "scheduler"))
	sched.Market = a.cfg.Screener.Market
	sched.Period = period
	sched.ReportLimit = a.cfg.Screener.ReportLimit
	if err := sched.RegisterAll(a.cfg.Schedule.ScreenCron, a.cfg.Schedule.OverviewCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info("Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, running screen now")
		go sched.RunScreenNow(sched.Market)
	}

	log.Info("MarketScope is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Info("shutdown signal received, stopping")
	return nil
}
