package bot

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matchatealeaf/albion-discord-bot/internal/api"
)

// staleCutoff marks observations old enough to be meaningless (about three
// years; the upstream reports the zero date for never-seen items).
const staleCutoff = 94608000 * time.Second

var printer = message.NewPrinter(language.English)

// formatSilver renders a price with thousands separators.
func formatSilver(n int64) string {
	return printer.Sprintf("%d", n)
}

// relativeSince renders how long before now t happened.
func relativeSince(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d >= staleCutoff:
		return "NIL"
	case d >= time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d >= time.Minute:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		if d < 0 {
			d = 0
		}
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	}
}

// relativeTime parses an upstream price timestamp and renders it relative
// to the current time.
func relativeTime(ts string) string {
	t, err := api.ParsePriceTime(ts)
	if err != nil {
		return "unknown"
	}
	return relativeSince(t, time.Now().UTC())
}

// qualityLabel names an item quality tier. Tier 1 is the baseline and is
// left unlabeled in price listings.
func qualityLabel(q int) string {
	switch q {
	case 2:
		return "Good"
	case 3:
		return "Outstanding"
	case 4:
		return "Excellent"
	case 5:
		return "Masterpiece"
	default:
		return ""
	}
}
