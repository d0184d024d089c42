package render

import (
	"fmt"
	"strings"

	"travel-planner/internal/api"
	"travel-planner/internal/trip"
)

// EventsList renders an event search result. Zero events is an explicit
// message, never an empty block.
func EventsList(events []api.Event, city, targetDate string) string {
	if len(events) == 0 {
		return fmt.Sprintf("Không tìm thấy sự kiện nào tại %s vào %s.\n", city, displayDate(targetDate))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎉 *%d sự kiện tại %s*\n", len(events), city))
	for _, e := range events {
		b.WriteString(fmt.Sprintf("\n• *%s* (#%d)\n", e.Name, e.ID))
		if e.Session != "" {
			b.WriteString(fmt.Sprintf("   🕐 %s\n", e.Session))
		}
		if e.PriceVND > 0 {
			b.WriteString(fmt.Sprintf("   💵 %s VND\n", trip.FormatGrouped(int64(e.PriceVND))))
		}
		if e.DistanceKm != nil {
			b.WriteString(fmt.Sprintf("   📍 %.1f km\n", *e.DistanceKm))
		}
		if summary := FlattenHTML(e.Summary); summary != "" {
			b.WriteString(fmt.Sprintf("   %s\n", truncate(summary, 160)))
		}
	}
	return b.String()
}

// EventDetail renders one event in full.
func EventDetail(e *api.Event) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎉 *%s*\n", e.Name))
	b.WriteString(fmt.Sprintf("🌏 %s", e.City))
	if e.Region != "" {
		b.WriteString(fmt.Sprintf(" (%s)", e.Region))
	}
	b.WriteString("\n")
	if e.StartDatetime != "" || e.EndDatetime != "" {
		b.WriteString(fmt.Sprintf("🗓 %s → %s\n", e.StartDatetime, e.EndDatetime))
	}
	if e.PriceVND > 0 {
		b.WriteString(fmt.Sprintf("💵 %s VND\n", trip.FormatGrouped(int64(e.PriceVND))))
	}
	if len(e.Activities) > 0 {
		b.WriteString(fmt.Sprintf("🎯 %s\n", strings.Join(e.Activities, ", ")))
	}
	if summary := FlattenHTML(e.Summary); summary != "" {
		b.WriteString("\n" + summary + "\n")
	}
	return b.String()
}

// Places renders a visitor recommendation result, with an explicit message
// when the city yields nothing.
func Places(rec *api.Recommendation) string {
	if rec == nil || len(rec.Places) == 0 {
		return "Không tìm thấy địa điểm nào cho thành phố này.\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("✨ *Đã gợi ý %d địa điểm cho %s*\n", len(rec.Places), rec.City))
	for _, p := range rec.Places {
		b.WriteString(fmt.Sprintf("\n• *%s* (#%d)\n", p.Name, p.ID))
		if p.Rating != nil {
			b.WriteString(fmt.Sprintf("   ⭐ %.1f · %d đánh giá\n", *p.Rating, p.ReviewCount))
		}
		if p.PriceVND != nil {
			b.WriteString(fmt.Sprintf("   💵 %s VND\n", trip.FormatGrouped(*p.PriceVND)))
		}
		if p.OpenTime != "" || p.CloseTime != "" {
			b.WriteString(fmt.Sprintf("   🕐 %s - %s\n", orQuestion(p.OpenTime), orQuestion(p.CloseTime)))
		}
		if len(p.Tags) > 0 {
			tags := p.Tags
			if len(tags) > 4 {
				tags = tags[:4]
			}
			b.WriteString(fmt.Sprintf("   🏷 %s\n", strings.Join(tags, ", ")))
		}
		if addr := formatAddress(p.Address); addr != "" {
			b.WriteString(fmt.Sprintf("   📍 %s\n", addr))
		}
		summary := p.Summary
		if summary == "" {
			summary = p.Description
		}
		if summary = FlattenHTML(summary); summary != "" {
			b.WriteString(fmt.Sprintf("   %s\n", truncate(summary, 160)))
		}
	}
	return b.String()
}

// History renders the saved-trip history grouped by date, oldest last.
func History(h *api.History, dates []string) string {
	if h == nil || len(h.TripsByDate) == 0 {
		return "Chưa có lịch trình nào được lưu.\n"
	}

	var b strings.Builder
	for _, date := range dates {
		trips := h.TripsByDate[date]
		if len(trips) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("📅 *%s* (%d chuyến)\n", date, len(trips)))
		for _, t := range trips {
			b.WriteString(fmt.Sprintf("• #%d %s — %d ngày · %d người · %s VND\n",
				t.ID, t.City, t.NumDays, t.NumPeople, trip.FormatGrouped(int64(t.TotalCost))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatAddress(a *api.Address) string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{a.HouseNumber, a.Street, a.Ward, a.District, a.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func orQuestion(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
