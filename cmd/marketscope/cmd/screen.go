package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"MarketScope/internal/model"
	"MarketScope/internal/screener"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen exchange listings for breakout candidates",
	Long: `Screen the top listings of a market by capitalization and print the
survivors, ranked by the variant's rank key.

Variants:
  multi_factor      near 20-day high, volume surge, above the 60-day average
  new_high          near 20-day high, above the 60-day average
  lagging_breakout  near 20-day high, lagging span above the upper band

Example:
  marketscope screen --market KOSDAQ --variant new_high --top 50`,
	RunE: runScreen,
}

var (
	screenMarket  string
	screenVariant string
	screenTop     int
	screenRatio   float64
	screenLimit   int
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVarP(&screenMarket, "market", "m", "", "KOSPI or KOSDAQ (default: screener.market from config)")
	screenCmd.Flags().StringVarP(&screenVariant, "variant", "v", "", "multi_factor, new_high or lagging_breakout")
	screenCmd.Flags().IntVarP(&screenTop, "top", "n", 0, "universe size by market cap")
	screenCmd.Flags().Float64Var(&screenRatio, "ratio", 0, "new-high ratio override in [0.98, 1.0]")
	screenCmd.Flags().IntVar(&screenLimit, "limit", 0, "candidates to print (0 prints all)")
}

func runScreen(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	if screenMarket != "" {
		a.cfg.Screener.Market = strings.ToUpper(screenMarket)
	}
	if screenVariant != "" {
		a.cfg.Screener.Variant = screenVariant
	}
	if screenTop > 0 {
		a.cfg.Screener.TopN = screenTop
	}
	if screenRatio > 0 {
		a.cfg.Screener.NewHighRatio = screenRatio
	}

	sc, err := a.newScreener(screener.WithProgress(func(p model.Progress) {
		fmt.Fprintf(os.Stderr, "\r[%d/%d] %-8s %-20s", p.Index, p.Total, p.Symbol, p.Name)
	}))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := sc.ScreenMarket(ctx, a.cfg.Screener.Market)
	fmt.Fprintln(os.Stderr)
	if res != nil {
		printScreen(res, screenLimit)
	}
	return err
}

func printScreen(res *model.ScreenResult, limit int) {
	fmt.Printf("run %s | %s | %s ranked by %s\n", res.RunID, res.Market, res.Variant, res.RankKey)
	fmt.Printf("universe %d, processed %d, errors %d, qualified %d\n", res.Universe, res.Processed, res.Errors, res.Qualified)
	if res.UsedFallback {
		fmt.Println("market-cap directory unavailable, fallback list used")
	}
	fmt.Println()
	fmt.Printf("%-4s %-8s %-20s %12s %9s %9s %7s %9s\n", "#", "symbol", "name", "close", "chg%", "vol%", "RSI", "EPS%")
	for i, c := range res.Candidates {
		if limit > 0 && i >= limit {
			fmt.Printf("... and %d more\n", len(res.Candidates)-limit)
			break
		}
		fmt.Printf("%-4d %-8s %-20s %12.2f %9s %9s %7s %9s\n", i+1, c.Symbol, c.Name, c.Latest.Close,
			f2(c.PriceChangePct), f2(c.VolumeChangePct), f2(c.Latest.RSI), f2(c.EPSChangePct))
	}
}
