package render

import (
	"fmt"
	"strings"

	"travel-planner/internal/trip"
)

// Header renders the plan summary line block: city, start date, duration,
// and — once a plan exists — total places and total cost.
func Header(cfg trip.SearchConfig, days trip.Days) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🌏 *%s*\n", cfg.City))
	b.WriteString(fmt.Sprintf("🗓 %s · %d Ngày", displayDate(cfg.StartDate), cfg.NumDays))
	if cfg.NumPeople > 1 {
		b.WriteString(fmt.Sprintf(" · %d người", cfg.NumPeople))
	}
	b.WriteString("\n")

	if len(days) > 0 {
		totalCost := trip.TotalCost(days)
		totalPlaces := trip.CountPlaces(days)
		b.WriteString(fmt.Sprintf("📍 %d điểm đến · 💰 %s VND\n", totalPlaces, trip.FormatGrouped(totalCost)))
	}
	return b.String()
}

// DayNavigator renders one line per day with its date and cost, marking the
// active day.
func DayNavigator(days trip.Days, activeIndex int) string {
	if len(days) == 0 {
		return ""
	}

	var b strings.Builder
	for i, day := range days {
		marker := "  "
		if i == activeIndex {
			marker = "▶ "
		}
		cost := trip.FormatCurrency(trip.DayCost(day))
		b.WriteString(fmt.Sprintf("%sNgày %d · %s · %s\n", marker, i+1, day.Date, cost))
	}
	return b.String()
}

// DayTimeline renders the detailed schedule of one day, blocks in their
// fixed display order. Unknown block keys never render; a day with no items
// renders an explicit empty state rather than a blank message.
func DayTimeline(day trip.Day) string {
	var b strings.Builder
	hasContent := false

	for _, block := range trip.BlockConfig {
		items := day.Blocks[block.ID]
		if len(items) == 0 {
			continue
		}
		hasContent = true

		b.WriteString(fmt.Sprintf("\n☀️ *%s*\n", block.Label))
		for _, item := range items {
			if item.TravelMin > 0 {
				b.WriteString(fmt.Sprintf("   ↳ 🚶 %d phút · %.1f km\n", item.TravelMin, item.DistanceKm))
			}
			b.WriteString(fmt.Sprintf("• `%s - %s` %s%s\n", item.Start, item.End, typeIcon(item.Type), item.Name))
			b.WriteString(fmt.Sprintf("   ⏱ %d phút · 💵 %s VND\n", item.DwellMin, trip.FormatGrouped(int64(item.PriceVND))))
		}
	}

	if !hasContent {
		return "Không có hoạt động nào trong ngày này.\n"
	}
	return b.String()
}

func typeIcon(itemType string) string {
	switch itemType {
	case "eat":
		return "🍜 "
	case "coffee":
		return "☕ "
	default:
		return "📍 "
	}
}

// displayDate converts YYYY-MM-DD into dd/mm/yyyy for display.
func displayDate(isoDate string) string {
	parts := strings.Split(isoDate, "-")
	if len(parts) != 3 {
		return isoDate
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
