package collect

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatPrice formats a price in dollars with thousands separators,
// e.g. "$24,500". A missing price formats as "-".
func FormatPrice(price *int) string {
	if price == nil {
		return "-"
	}
	return "$" + humanize.Comma(int64(*price))
}

// FormatMileage formats a mileage reading, e.g. "32,000 mi".
// A missing reading formats as "-".
func FormatMileage(mileage *int) string {
	if mileage == nil {
		return "-"
	}
	return humanize.Comma(int64(*mileage)) + " mi"
}

// FormatYear formats a model year, or "-" when it is missing.
func FormatYear(year *int) string {
	if year == nil {
		return "-"
	}
	return strconv.Itoa(*year)
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// TruncateText shortens text for display, keeping the start. Cuts happen
// on rune boundaries.
func TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if maxLen <= 0 {
		return ""
	}
	if len(runes) <= maxLen {
		return text
	}
	if maxLen < 4 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
