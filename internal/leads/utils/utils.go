package utils

import (
	"fmt"
	"math/rand"
	"net/url"
	"time"
)

// GenerateAnalysisToken produces the share token embedded in report links.
// The format is "test" followed by the current unix millisecond timestamp,
// which existing shared links depend on.
func GenerateAnalysisToken() string {
	return fmt.Sprintf("test%d", time.Now().UnixMilli())
}

// BuildLegacyReportURL builds the original share URL form where the token is
// the query parameter NAME and the website URL is its value.
func BuildLegacyReportURL(origin, token, websiteURL string) string {
	return fmt.Sprintf("%s/?%s=%s", origin, token, url.QueryEscape(websiteURL))
}

// BuildReportURL builds the preferred share URL form with a fixed parameter
// name carrying the token as its value.
func BuildReportURL(origin, token string) string {
	return fmt.Sprintf("%s/?report=%s", origin, token)
}

// RandomInRange returns a random int in [min, max)
func RandomInRange(min, max int) int {
	return min + rand.Intn(max-min)
}
