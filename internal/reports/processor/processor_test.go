package processor

import (
	"context"
	"errors"
	"testing"

	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/store"

	"github.com/google/uuid"
)

type stubReportStore struct {
	byToken map[string]store.SiteAnalysis
	byURL   map[string]store.SiteAnalysis

	lastTokenLookup string
	lastURLLookup   string
}

func (s *stubReportStore) GetSiteAnalysisByToken(ctx context.Context, token string) (store.SiteAnalysis, error) {
	s.lastTokenLookup = token
	analysis, ok := s.byToken[token]
	if !ok {
		return store.SiteAnalysis{}, store.ErrNotFound
	}
	return analysis, nil
}

func (s *stubReportStore) GetLatestSiteAnalysisByWebsiteURL(ctx context.Context, websiteURL string) (store.SiteAnalysis, error) {
	s.lastURLLookup = websiteURL
	analysis, ok := s.byURL[websiteURL]
	if !ok {
		return store.SiteAnalysis{}, store.ErrNotFound
	}
	return analysis, nil
}

func TestResolvePrefersReportParam(t *testing.T) {
	want := store.SiteAnalysis{ID: uuid.New(), AnalysisToken: "test1700000000000"}
	stub := &stubReportStore{
		byToken: map[string]store.SiteAnalysis{"test1700000000000": want},
	}
	p := New(stub, observability.NewLogger())

	got, err := p.ResolveFromQuery(context.Background(), "report=test1700000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("resolved analysis %s, want %s", got.ID, want.ID)
	}
}

func TestResolveLegacyTokenAsParamName(t *testing.T) {
	want := store.SiteAnalysis{ID: uuid.New(), WebsiteURL: "https://acme.com"}
	stub := &stubReportStore{
		byURL: map[string]store.SiteAnalysis{"https://acme.com": want},
	}
	p := New(stub, observability.NewLogger())

	got, err := p.ResolveFromQuery(context.Background(), "test1700000000000=https%3A%2F%2Facme.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("resolved analysis %s, want %s", got.ID, want.ID)
	}
	if stub.lastURLLookup != "https://acme.com" {
		t.Errorf("looked up %q, want decoded website url", stub.lastURLLookup)
	}
}

func TestResolveUsesFirstTestPrefixedParam(t *testing.T) {
	first := store.SiteAnalysis{ID: uuid.New(), WebsiteURL: "https://first.com"}
	stub := &stubReportStore{
		byURL: map[string]store.SiteAnalysis{
			"https://first.com":  first,
			"https://second.com": {ID: uuid.New()},
		},
	}
	p := New(stub, observability.NewLogger())

	got, err := p.ResolveFromQuery(context.Background(), "utm_source=x&test111=https%3A%2F%2Ffirst.com&test222=https%3A%2F%2Fsecond.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("resolved analysis %s, want first match %s", got.ID, first.ID)
	}
}

func TestResolveUnknownTokenNotFound(t *testing.T) {
	stub := &stubReportStore{}
	p := New(stub, observability.NewLogger())

	_, err := p.ResolveFromQuery(context.Background(), "report=test999")
	if !errors.Is(err, ErrAnalysisNotFound) {
		t.Errorf("expected ErrAnalysisNotFound, got %v", err)
	}
}

func TestResolveUnknownWebsiteNotFound(t *testing.T) {
	stub := &stubReportStore{}
	p := New(stub, observability.NewLogger())

	_, err := p.ResolveFromQuery(context.Background(), "test111=https%3A%2F%2Funknown.com")
	if !errors.Is(err, ErrAnalysisNotFound) {
		t.Errorf("expected ErrAnalysisNotFound, got %v", err)
	}
}

func TestResolveNoMatchingParams(t *testing.T) {
	stub := &stubReportStore{}
	p := New(stub, observability.NewLogger())

	_, err := p.ResolveFromQuery(context.Background(), "utm_source=x&foo=bar")
	if !errors.Is(err, ErrAnalysisNotFound) {
		t.Errorf("expected ErrAnalysisNotFound, got %v", err)
	}
}
