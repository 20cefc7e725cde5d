package cmd

import (
	"fmt"
	"html"
	"regexp"

	"github.com/guregu/null/v6"
)

var tagPattern = regexp.MustCompile(`</?[a-z]+>`)

// stripTags turns a Telegram HTML message into plain terminal text.
func stripTags(s string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(s, ""))
}

func f2(v null.Float) string {
	if !v.Valid {
		return "-"
	}
	return fmt.Sprintf("%.2f", v.Float64)
}
