package processor

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/store"
)

// ReportStore defines the database operations required by ReportProcessor
type ReportStore interface {
	GetSiteAnalysisByToken(ctx context.Context, token string) (store.SiteAnalysis, error)
	GetLatestSiteAnalysisByWebsiteURL(ctx context.Context, websiteURL string) (store.SiteAnalysis, error)
}

var ErrAnalysisNotFound = errors.New("analysis not found")

type ReportProcessor struct {
	store  ReportStore
	logger *observability.Logger
}

func New(store ReportStore, logger *observability.Logger) ReportProcessor {
	return ReportProcessor{store: store, logger: logger}
}

// ResolveFromQuery resolves a shared report link from its raw query string.
//
// The preferred form carries the token as the value of a fixed "report"
// parameter. The legacy form uses the token itself as the parameter NAME
// with the website URL as its value; for those, parameter order matters,
// so the raw query is scanned pair by pair instead of going through
// url.Values (which is an unordered map).
func (p *ReportProcessor) ResolveFromQuery(ctx context.Context, rawQuery string) (store.SiteAnalysis, error) {
	pairs := parseQueryPairs(rawQuery)

	for _, pair := range pairs {
		if pair.name == "report" && pair.value != "" {
			analysis, err := p.store.GetSiteAnalysisByToken(ctx, pair.value)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return store.SiteAnalysis{}, ErrAnalysisNotFound
				}
				p.logger.Error(ctx, "failed to get analysis by token", err)
				return store.SiteAnalysis{}, err
			}
			return analysis, nil
		}
	}

	for _, pair := range pairs {
		if strings.HasPrefix(pair.name, "test") && pair.value != "" {
			analysis, err := p.store.GetLatestSiteAnalysisByWebsiteURL(ctx, pair.value)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return store.SiteAnalysis{}, ErrAnalysisNotFound
				}
				p.logger.Error(ctx, "failed to get analysis by website url", err)
				return store.SiteAnalysis{}, err
			}
			return analysis, nil
		}
	}

	return store.SiteAnalysis{}, ErrAnalysisNotFound
}

type queryPair struct {
	name  string
	value string
}

func parseQueryPairs(rawQuery string) []queryPair {
	var pairs []queryPair
	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}
		name, value, _ := strings.Cut(segment, "=")
		decodedName, err := url.QueryUnescape(name)
		if err != nil {
			continue
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}
		pairs = append(pairs, queryPair{name: decodedName, value: decodedValue})
	}
	return pairs
}
