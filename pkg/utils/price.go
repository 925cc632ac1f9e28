package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonPriceChars = regexp.MustCompile(`[^0-9.]`)
	leadingFloat  = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)`)
)

// ParsePrice converts a free-form price string ("$1,299.00", "USD 19.99") to float64.
// Every character that is not a digit or a decimal point is dropped, then the longest
// leading number is parsed. ok is false when nothing numeric remains.
func ParsePrice(priceStr string) (float64, bool) {
	cleanPrice := nonPriceChars.ReplaceAllString(priceStr, "")

	match := leadingFloat.FindString(cleanPrice)
	if match == "" {
		return math.NaN(), false
	}

	price, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return math.NaN(), false
	}

	return price, true
}

// ParseCount converts a count string with thousands separators ("1,234") to an int.
func ParseCount(countStr string) (int, bool) {
	cleanCount := strings.TrimSpace(strings.ReplaceAll(countStr, ",", ""))
	if cleanCount == "" {
		return 0, false
	}

	count, err := strconv.Atoi(cleanCount)
	if err != nil {
		return 0, false
	}

	return count, true
}

// FormatPrice renders a parsed price the way the search summary shows it.
func FormatPrice(price float64) string {
	return "$" + strconv.FormatFloat(price, 'f', 2, 64)
}
