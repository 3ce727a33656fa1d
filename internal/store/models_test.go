package store

import (
	"reflect"
	"testing"
)

func TestStringArrayValueQuotesElements(t *testing.T) {
	a := StringArray{"AI content audit", `Fix "meta" tags`, "Schema, markup"}

	v, err := a.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"AI content audit","Fix \"meta\" tags","Schema, markup"}`
	if v != want {
		t.Errorf("Value() = %q, want %q", v, want)
	}
}

func TestStringArrayRoundTrip(t *testing.T) {
	original := StringArray{"Audit", "Schema, markup", `Fix "meta" tags`, `back\slash`}

	v, err := original.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var scanned StringArray
	if err := scanned.Scan(v.(string)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual([]string(scanned), []string(original)) {
		t.Errorf("round trip = %v, want %v", scanned, original)
	}
}

func TestStringArrayScanEmpty(t *testing.T) {
	var a StringArray
	if err := a.Scan("{}"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 0 {
		t.Errorf("expected empty array, got %v", a)
	}
}
