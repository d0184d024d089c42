package trip

import (
	"math"
	"strconv"
)

// DayCost sums the prices of every item in every block of the day.
func DayCost(d Day) int64 {
	var total int64
	for _, items := range d.Blocks {
		for _, it := range items {
			total += int64(it.PriceVND)
		}
	}
	return total
}

// TotalCost sums DayCost over all days.
func TotalCost(days Days) int64 {
	var total int64
	for _, d := range days {
		total += DayCost(d)
	}
	return total
}

// CountPlaces counts the items across all blocks of all days.
func CountPlaces(days Days) int {
	count := 0
	for _, d := range days {
		for _, items := range d.Blocks {
			count += len(items)
		}
	}
	return count
}

// FormatCurrency renders an amount compactly: one decimal in the millions
// range ("2.3M"), rounded whole thousands below that ("2K"), the literal
// integer otherwise.
func FormatCurrency(amount int64) string {
	switch {
	case amount >= 1_000_000:
		return strconv.FormatFloat(float64(amount)/1_000_000, 'f', 1, 64) + "M"
	case amount >= 1_000:
		return strconv.FormatInt(int64(math.Round(float64(amount)/1_000)), 10) + "K"
	default:
		return strconv.FormatInt(amount, 10)
	}
}

// FormatGrouped renders an amount with dot thousand separators, the usual
// Vietnamese style for full totals ("1.250.000").
func FormatGrouped(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, '.')
		}
		out = append(out, s[i:i+3]...)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
