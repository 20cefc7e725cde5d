package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"MarketScope/internal/model"
	"MarketScope/internal/notifier"
	"MarketScope/internal/overview"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Summarize every asset in the global catalog",
	RunE:  runOverview,
}

var overviewPeriod string

func init() {
	rootCmd.AddCommand(overviewCmd)

	overviewCmd.Flags().StringVarP(&overviewPeriod, "period", "p", "", "lookback (default: overview.period from config)")
}

func runOverview(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	if overviewPeriod == "" {
		overviewPeriod = a.cfg.Overview.Period
	}
	period, err := model.ParsePeriod(overviewPeriod)
	if err != nil {
		return err
	}

	cards := overview.New(a.loader, a.log.WithField("component", "overview")).Catalog(cmd.Context(), period)
	fmt.Print(stripTags(notifier.FormatOverview(period, cards, time.Now())))
	return nil
}
