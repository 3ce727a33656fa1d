package processor

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/store"

	"github.com/google/uuid"
)

type stubLeadStore struct {
	customerParams store.CreateCustomerParams
	analysisParams store.CreateSiteAnalysisParams
	customerErr    error
	analysisErr    error
	analysisCalls  int
}

func (s *stubLeadStore) CreateCustomer(ctx context.Context, params store.CreateCustomerParams) (store.Customer, error) {
	if s.customerErr != nil {
		return store.Customer{}, s.customerErr
	}
	s.customerParams = params
	return store.Customer{
		ID:                    uuid.New(),
		BusinessName:          params.BusinessName,
		ContactName:           params.ContactName,
		ContactEmail:          params.ContactEmail,
		WebsiteURL:            params.WebsiteURL,
		Status:                params.Status,
		CurrentMonthlyTraffic: params.CurrentMonthlyTraffic,
		EstimatedTrafficLoss:  params.EstimatedTrafficLoss,
		OptimizationScore:     params.OptimizationScore,
	}, nil
}

func (s *stubLeadStore) CreateSiteAnalysis(ctx context.Context, params store.CreateSiteAnalysisParams) (store.SiteAnalysis, error) {
	s.analysisCalls++
	if s.analysisErr != nil {
		return store.SiteAnalysis{}, s.analysisErr
	}
	s.analysisParams = params
	return store.SiteAnalysis{
		ID:            uuid.New(),
		CustomerID:    params.CustomerID,
		WebsiteURL:    params.WebsiteURL,
		AnalysisToken: params.AnalysisToken,
	}, nil
}

var tokenPattern = regexp.MustCompile(`^test\d+$`)

func TestSubmitLeadGeneratesTokenAndURLs(t *testing.T) {
	stub := &stubLeadStore{}
	p := New(stub, "https://app.example.com", observability.NewLogger())

	resp, err := p.SubmitLead(context.Background(), SubmitLeadRequest{
		BusinessName: "Acme Corp",
		ContactName:  "Jane Doe",
		ContactEmail: "jane@acme.com",
		WebsiteURL:   "https://acme.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token := resp.Analysis.AnalysisToken
	if !tokenPattern.MatchString(token) {
		t.Errorf("token %q does not match ^test\\d+$", token)
	}

	wantLegacy := "https://app.example.com/?" + token + "=https%3A%2F%2Facme.com"
	if resp.LegacyReportURL != wantLegacy {
		t.Errorf("legacy report url = %q, want %q", resp.LegacyReportURL, wantLegacy)
	}

	wantReport := "https://app.example.com/?report=" + token
	if resp.ReportURL != wantReport {
		t.Errorf("report url = %q, want %q", resp.ReportURL, wantReport)
	}
}

func TestSubmitLeadCustomerFields(t *testing.T) {
	stub := &stubLeadStore{}
	p := New(stub, "https://app.example.com", observability.NewLogger())

	_, err := p.SubmitLead(context.Background(), SubmitLeadRequest{
		BusinessName: "Acme Corp",
		ContactName:  "Jane Doe",
		ContactEmail: "jane@acme.com",
		WebsiteURL:   "https://acme.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := stub.customerParams
	if params.Status != store.CustomerStatusLead {
		t.Errorf("status = %q, want %q", params.Status, store.CustomerStatusLead)
	}
	assertInRange(t, "current_monthly_traffic", params.CurrentMonthlyTraffic, 10000, 60000)
	assertInRange(t, "estimated_traffic_loss", params.EstimatedTrafficLoss, 10000, 60000)
	assertInRange(t, "optimization_score", params.OptimizationScore, 20, 50)
}

func TestSubmitLeadAnalysisMetricRanges(t *testing.T) {
	stub := &stubLeadStore{}
	p := New(stub, "https://app.example.com", observability.NewLogger())

	_, err := p.SubmitLead(context.Background(), SubmitLeadRequest{
		BusinessName: "Acme Corp",
		ContactName:  "Jane Doe",
		ContactEmail: "jane@acme.com",
		WebsiteURL:   "https://acme.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := stub.analysisParams
	assertInRange(t, "seo_score", params.SEOScore, 30, 70)
	assertInRange(t, "ai_optimization_score", params.AIOptimizationScore, 20, 50)
	assertInRange(t, "technical_errors", params.TechnicalErrors, 5, 20)
	assertInRange(t, "content_issues", params.ContentIssues, 3, 13)
	assertInRange(t, "traffic_loss_percentage", params.TrafficLossPercentage, 30, 70)
	assertInRange(t, "estimated_monthly_loss", params.EstimatedMonthlyLoss, 10000, 60000)
	assertInRange(t, "koray_framework_compliance", params.KorayFrameworkCompliance, 15, 40)

	if len(params.Recommendations) != 5 {
		t.Errorf("expected 5 recommendations, got %d", len(params.Recommendations))
	}
	if params.CustomerID == nil {
		t.Error("expected analysis to be linked to the customer")
	}
}

func TestSubmitLeadCustomerFailureAborts(t *testing.T) {
	stub := &stubLeadStore{customerErr: errors.New("db down")}
	p := New(stub, "https://app.example.com", observability.NewLogger())

	_, err := p.SubmitLead(context.Background(), SubmitLeadRequest{
		BusinessName: "Acme Corp",
		ContactName:  "Jane Doe",
		ContactEmail: "jane@acme.com",
		WebsiteURL:   "https://acme.com",
	})
	if err == nil {
		t.Fatal("expected error when customer insert fails")
	}
	if stub.analysisCalls != 0 {
		t.Errorf("expected no analysis insert after customer failure, got %d", stub.analysisCalls)
	}
}

func TestSubmitLeadAnalysisFailureReturnsError(t *testing.T) {
	stub := &stubLeadStore{analysisErr: errors.New("db down")}
	p := New(stub, "https://app.example.com", observability.NewLogger())

	_, err := p.SubmitLead(context.Background(), SubmitLeadRequest{
		BusinessName: "Acme Corp",
		ContactName:  "Jane Doe",
		ContactEmail: "jane@acme.com",
		WebsiteURL:   "https://acme.com",
	})
	if err == nil {
		t.Fatal("expected error when analysis insert fails")
	}
}

func assertInRange(t *testing.T, name string, value, min, max int) {
	t.Helper()
	if value < min || value >= max {
		t.Errorf("%s = %d, want in [%d, %d)", name, value, min, max)
	}
}
