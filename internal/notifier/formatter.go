package notifier

import (
	"fmt"
	"math"
	"strings"

	"VolProfiler/internal/model"
)

// snippetSlots is how many leading slot values the report lists.
const snippetSlots = 5

// FormatDailyReport formats a day's volatility record into a Telegram message.
// A NaN slot (a NULL column read back from the store) is rendered as N/A.
func FormatDailyReport(rec *model.DailyVolatilityRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>BTC 15min Volatility</b> | %s\n\n", rec.Day))
	b.WriteString(fmt.Sprintf("Slots: <code>%d</code>\n", model.SlotCount))
	b.WriteString(fmt.Sprintf("Mean volatility: <code>%.6f</code>\n", rec.Mean()))

	vals := make([]string, 0, snippetSlots)
	for i := 0; i < snippetSlots; i++ {
		v := rec.Slots[i]
		if math.IsNaN(v) {
			vals = append(vals, fmt.Sprintf("v%d:N/A", i))
		} else {
			vals = append(vals, fmt.Sprintf("v%d:%.6f", i, v))
		}
	}
	b.WriteString(fmt.Sprintf("First %d slots: <code>%s</code>\n", snippetSlots, strings.Join(vals, ", ")))

	return b.String()
}

// FormatStatus formats a short health line for the /status command.
func FormatStatus(latestDay string, haveStore bool) string {
	var b strings.Builder
	b.WriteString("🛠 <b>VolProfiler status</b>\n\n")
	if haveStore {
		b.WriteString("Store: sqlite\n")
	} else {
		b.WriteString("Store: none (noop)\n")
	}
	if latestDay == "" {
		b.WriteString("Latest day: none recorded yet\n")
	} else {
		b.WriteString(fmt.Sprintf("Latest day: %s\n", latestDay))
	}
	return b.String()
}
