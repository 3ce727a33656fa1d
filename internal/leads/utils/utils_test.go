package utils

import (
	"regexp"
	"testing"
)

func TestGenerateAnalysisTokenFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^test\d+$`)
	token := GenerateAnalysisToken()
	if !pattern.MatchString(token) {
		t.Errorf("token %q does not match ^test\\d+$", token)
	}
}

func TestBuildLegacyReportURLEncodesWebsite(t *testing.T) {
	got := BuildLegacyReportURL("https://app.example.com", "test1700000000000", "https://acme.com")
	want := "https://app.example.com/?test1700000000000=https%3A%2F%2Facme.com"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildReportURL(t *testing.T) {
	got := BuildReportURL("https://app.example.com", "test1700000000000")
	want := "https://app.example.com/?report=test1700000000000"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRandomInRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		v := RandomInRange(10, 20)
		if v < 10 || v >= 20 {
			t.Fatalf("value %d outside [10, 20)", v)
		}
	}
}
