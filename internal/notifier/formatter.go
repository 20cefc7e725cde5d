package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/guregu/null/v6"

	"MarketScope/internal/model"
)

// FormatScreenReport formats a screening result into a Telegram message,
// listing at most limit candidates.
func FormatScreenReport(res *model.ScreenResult, limit int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔎 <b>MarketScope screen</b> | %s %s\n", html.EscapeString(res.Market), res.FinishedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("variant: %s, ranked by %s\n", res.Variant, res.RankKey))
	b.WriteString(fmt.Sprintf("processed %d/%d, errors %d, qualified %d\n", res.Processed, res.Universe, res.Errors, res.Qualified))
	if res.UsedFallback {
		b.WriteString("⚠️ market-cap directory unavailable, fallback list used\n")
	}
	b.WriteString("\n")

	if len(res.Candidates) == 0 {
		b.WriteString("No qualifiers.\n")
		return b.String()
	}

	for i, c := range res.Candidates {
		if limit > 0 && i >= limit {
			b.WriteString(fmt.Sprintf("… and %d more\n", len(res.Candidates)-limit))
			break
		}
		b.WriteString(fmt.Sprintf("%d. <b>%s</b> (%s) %.2f\n", i+1, html.EscapeString(c.Name), c.Symbol, c.Latest.Close))
		b.WriteString(fmt.Sprintf("   chg %s | vol %s | RSI %s | EPS YoY %s\n",
			pct(c.PriceChangePct), pct(c.VolumeChangePct), num(c.Latest.RSI), pct(c.EPSChangePct)))
	}
	return b.String()
}

// FormatAssetCard formats a single asset summary.
func FormatAssetCard(card model.AssetCard) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 <b>%s</b> (%s)\n", html.EscapeString(card.Name), html.EscapeString(card.Symbol)))
	if card.Err != nil {
		b.WriteString("no data\n")
		return b.String()
	}
	s := card.Summary
	b.WriteString(fmt.Sprintf("close %.2f (%s)\n", s.Close, pct(s.ChangePct)))
	b.WriteString(fmt.Sprintf("RSI %s %s\n", num(s.RSI), s.RSIState))
	for _, n := range s.Notes {
		b.WriteString("• " + n + "\n")
	}
	return b.String()
}

// FormatOverview formats the whole catalog, one line per asset.
func FormatOverview(period model.Period, cards []model.AssetCard, at time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🌐 <b>MarketScope overview</b> | %s (%s)\n", at.Format("2006-01-02"), period))

	category := ""
	for _, c := range cards {
		if c.Category != category {
			category = c.Category
			b.WriteString(fmt.Sprintf("\n<b>%s</b>\n", html.EscapeString(category)))
		}
		if c.Err != nil {
			b.WriteString(fmt.Sprintf("%s: no data\n", html.EscapeString(c.Name)))
			continue
		}
		b.WriteString(fmt.Sprintf("%s: %.2f (%s) RSI %s\n",
			html.EscapeString(c.Name), c.Summary.Close, pct(c.Summary.ChangePct), num(c.Summary.RSI)))
	}
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "📖 <b>Commands</b>\n" +
		"/screen [KOSPI|KOSDAQ] - run the screener\n" +
		"/asset &lt;symbol or name&gt; - technical summary of an asset\n" +
		"/overview - catalog overview\n" +
		"/help - this message\n"
}

func pct(v null.Float) string {
	if !v.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", v.Float64)
}

func num(v null.Float) string {
	if !v.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", v.Float64)
}
