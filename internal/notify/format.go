package notify

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"mexctracker/internal/statestore"
)

// statusSymbolLimit caps how many symbols a status snapshot lists.
const statusSymbolLimit = 5

// StartupMessage is sent once when the process comes up.
func StartupMessage(interval time.Duration) string {
	var b strings.Builder
	b.WriteString("🤖 <b>MEXC Unique Futures Tracker Started</b>\n\n")
	b.WriteString("✅ Monitoring for unique perpetual contracts...\n")
	fmt.Fprintf(&b, "⏰ Auto-check interval: %d minutes", int(interval.Minutes()))
	return b.String()
}

// AddedMessage lists freshly found unique symbols plus the new total.
// Symbols are expected sorted.
func AddedMessage(added []string, total int) string {
	var b strings.Builder
	b.WriteString("🚀 <b>NEW UNIQUE FUTURES FOUND!</b>\n\n")
	for _, symbol := range added {
		fmt.Fprintf(&b, "✅ %s\n", symbol)
	}
	fmt.Fprintf(&b, "\n📊 Total unique: %d", total)
	return b.String()
}

// RemovedMessage lists symbols that left the unique set plus the remaining
// count. Symbols are expected sorted.
func RemovedMessage(removed []string, remaining int) string {
	var b strings.Builder
	b.WriteString("📉 <b>UNIQUE FUTURES DELISTED</b>\n\n")
	for _, symbol := range removed {
		fmt.Fprintf(&b, "❌ %s\n", symbol)
	}
	fmt.Fprintf(&b, "\n📊 Remaining unique: %d", remaining)
	return b.String()
}

// ErrorMessage reports a failed check cycle to the operator.
func ErrorMessage(detail string) string {
	return fmt.Sprintf("❌ <b>Check failed:</b>\n%s", detail)
}

// StatusMessage builds the periodic snapshot: unique count, last check
// time, uptime, and the first few symbols alphabetically.
func StatusMessage(state *statestore.State, now time.Time) string {
	var b strings.Builder
	b.WriteString("📊 <b>Current Status</b>\n\n")
	fmt.Fprintf(&b, "🔄 Unique futures found: <b>%d</b>\n", len(state.UniqueFutures))
	fmt.Fprintf(&b, "⏰ Last check: %s\n", formatTime(state.LastUpdate))
	fmt.Fprintf(&b, "🤖 Uptime: %s", formatUptime(state.Statistics.FirstRun, now))

	if len(state.UniqueFutures) > 0 {
		symbols := append([]string(nil), state.UniqueFutures...)
		sort.Strings(symbols)

		b.WriteString("\n\n<b>Current unique futures:</b>\n")
		shown := symbols
		if len(shown) > statusSymbolLimit {
			shown = shown[:statusSymbolLimit]
		}
		for _, symbol := range shown {
			fmt.Fprintf(&b, "• %s\n", symbol)
		}
		if rest := len(symbols) - statusSymbolLimit; rest > 0 {
			fmt.Fprintf(&b, "• ... and %d more", rest)
		}
	}

	return b.String()
}

func formatTime(iso string) string {
	if iso == "" {
		return "Never"
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

func formatUptime(firstRun string, now time.Time) string {
	start, err := time.Parse(time.RFC3339, firstRun)
	if err != nil {
		return "Unknown"
	}
	up := now.Sub(start)
	days := int(up.Hours()) / 24
	hours := int(up.Hours()) % 24
	minutes := int(up.Minutes()) % 60
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}
