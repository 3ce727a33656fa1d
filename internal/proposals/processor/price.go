package processor

import (
	"regexp"
	"strconv"
	"strings"
)

var pricePattern = regexp.MustCompile(`\$?([\d,]+)`)

// ParsePriceValue extracts the leading dollar figure from a free-text price
// range. The first run of digits and commas (after an optional dollar sign)
// wins, so "$2,500 - $5,000" yields 2500. Text with no digits yields 0.
func ParsePriceValue(priceRange string) int {
	match := pricePattern.FindStringSubmatch(priceRange)
	if match == nil {
		return 0
	}
	digits := strings.ReplaceAll(match[1], ",", "")
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return value
}
