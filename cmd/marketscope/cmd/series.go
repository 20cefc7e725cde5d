package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"MarketScope/internal/model"
	"MarketScope/internal/notifier"
	"MarketScope/internal/overview"
)

var seriesCmd = &cobra.Command{
	Use:   "series <symbol or name>",
	Short: "Show indicators and a technical summary for one asset",
	Long: `Load one asset, compute its indicators and print the latest values.

Catalog names ("Gold") and symbols resolve to the global feed; 6-digit codes
resolve to the exchange feed unless --market says otherwise.

Example:
  marketscope series 005930 --period 6mo
  marketscope series AAPL --market global`,
	Args: cobra.ExactArgs(1),
	RunE: runSeries,
}

var (
	seriesMarket string
	seriesPeriod string
)

func init() {
	rootCmd.AddCommand(seriesCmd)

	seriesCmd.Flags().StringVarP(&seriesMarket, "market", "m", "", "global or domestic (default: resolved from the symbol)")
	seriesCmd.Flags().StringVarP(&seriesPeriod, "period", "p", string(model.Period1Y), "lookback: 1mo, 3mo, 6mo, 1y, 2y, 5y")
}

func runSeries(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	period, err := model.ParsePeriod(seriesPeriod)
	if err != nil {
		return err
	}
	asset := overview.Resolve(args[0])
	if seriesMarket != "" {
		if asset.Market, err = model.ParseMarket(seriesMarket); err != nil {
			return err
		}
	}

	card := overview.New(a.loader, a.log.WithField("component", "overview")).Asset(cmd.Context(), asset, period)
	if card.Err != nil {
		return card.Err
	}

	p := card.Frame.Latest()
	fmt.Printf("%s (%s, %s) %d bars, last %s\n", card.Name, card.Symbol, card.Market, card.Frame.Len(), p.Time.Format("2006-01-02"))
	fmt.Printf("  close    %.2f\n", p.Close)
	fmt.Printf("  MA20/50/200  %s %s %s\n", f2(p.MA20), f2(p.MA50), f2(p.MA200))
	fmt.Printf("  RSI      %s (signal %s)\n", f2(p.RSI), f2(p.RSISignal))
	fmt.Printf("  MACD     %s / %s / %s\n", f2(p.MACD), f2(p.MACDSignal), f2(p.MACDHist))
	fmt.Printf("  BB       %s / %s / %s\n", f2(p.BBLower), f2(p.BBMiddle), f2(p.BBUpper))
	fmt.Printf("  Stoch    %s / %s\n", f2(p.StochK), f2(p.StochD))
	fmt.Printf("  Ichimoku %s / %s / %s / %s\n", f2(p.IchimokuConversion), f2(p.IchimokuBase), f2(p.IchimokuSpanA), f2(p.IchimokuSpanB))
	fmt.Println()
	fmt.Print(stripTags(notifier.FormatAssetCard(card)))
	return nil
}
