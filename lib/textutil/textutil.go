package textutil

import (
	"regexp"
	"strings"
)

var digitRegex = regexp.MustCompile(`\d+`)
var innerWhitespace = regexp.MustCompile(`\s+`)

// IsMissingPrice reports whether a scraped price value is a sentinel
// rather than an actual price.
func IsMissingPrice(price string) bool {
	switch strings.ToLower(strings.TrimSpace(price)) {
	case "", "n/a", "not found", "error":
		return true
	}
	return false
}

// NormalizePrice reduces a price string to its digits, e.g.
// "₹ 93,500" -> "93500". Sentinels and digit-free strings reduce to "".
func NormalizePrice(price string) string {
	if IsMissingPrice(price) {
		return ""
	}
	price = strings.ReplaceAll(price, ",", "")
	return strings.Join(digitRegex.FindAllString(price, -1), "")
}

// CollapseWhitespace trims a scraped text fragment and folds newlines
// and runs of whitespace into single spaces.
func CollapseWhitespace(s string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// TrimTrailingSlash normalizes a URL for equality checks.
func TrimTrailingSlash(u string) string {
	return strings.TrimRight(u, "/")
}
