package processor

import (
	"context"
	"fmt"

	"geo-optimizer-server/internal/leads/utils"
	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/store"
)

// LeadStore defines the database operations required by LeadProcessor
type LeadStore interface {
	CreateCustomer(ctx context.Context, params store.CreateCustomerParams) (store.Customer, error)
	CreateSiteAnalysis(ctx context.Context, params store.CreateSiteAnalysisParams) (store.SiteAnalysis, error)
}

type LeadProcessor struct {
	store        LeadStore
	webAppOrigin string
	logger       *observability.Logger
}

func New(store LeadStore, webAppOrigin string, logger *observability.Logger) LeadProcessor {
	return LeadProcessor{
		store:        store,
		webAppOrigin: webAppOrigin,
		logger:       logger,
	}
}

// SubmitLeadRequest represents an inbound contact form submission
type SubmitLeadRequest struct {
	BusinessName string
	ContactName  string
	ContactEmail string
	Phone        *string
	WebsiteURL   string
	Message      *string
}

// SubmitLeadResponse carries the new customer, its analysis and the share URLs
type SubmitLeadResponse struct {
	Customer        store.Customer     `json:"customer"`
	Analysis        store.SiteAnalysis `json:"analysis"`
	ReportURL       string             `json:"report_url"`
	LegacyReportURL string             `json:"legacy_report_url"`
}

var defaultRecommendations = []string{
	"Implement AI-first content optimization",
	"Add structured data for AI engines",
	"Optimize for voice search queries",
	"Improve entity recognition",
	"Enhance topical authority",
}

// SubmitLead records a contact form submission as a lead with a generated
// website audit. The audit metrics are synthetic; real crawling is out of
// scope and the numbers only need to land in their documented ranges.
func (p *LeadProcessor) SubmitLead(ctx context.Context, req SubmitLeadRequest) (SubmitLeadResponse, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "business_name", Value: req.BusinessName},
		observability.Field{Key: "website_url", Value: req.WebsiteURL},
	)

	token := utils.GenerateAnalysisToken()

	customer, err := p.store.CreateCustomer(ctx, store.CreateCustomerParams{
		BusinessName:          req.BusinessName,
		ContactName:           req.ContactName,
		ContactEmail:          req.ContactEmail,
		Phone:                 req.Phone,
		WebsiteURL:            req.WebsiteURL,
		Status:                store.CustomerStatusLead,
		CurrentMonthlyTraffic: utils.RandomInRange(10000, 60000),
		EstimatedTrafficLoss:  utils.RandomInRange(10000, 60000),
		OptimizationScore:     utils.RandomInRange(20, 50),
		Notes:                 req.Message,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create customer", err)
		return SubmitLeadResponse{}, fmt.Errorf("failed to create customer: %w", err)
	}

	analysis, err := p.store.CreateSiteAnalysis(ctx, store.CreateSiteAnalysisParams{
		CustomerID:               &customer.ID,
		WebsiteURL:               req.WebsiteURL,
		BusinessName:             req.BusinessName,
		AnalysisToken:            token,
		SEOScore:                 utils.RandomInRange(30, 70),
		AIOptimizationScore:      utils.RandomInRange(20, 50),
		TechnicalErrors:          utils.RandomInRange(5, 20),
		ContentIssues:            utils.RandomInRange(3, 13),
		TrafficLossPercentage:    utils.RandomInRange(30, 70),
		EstimatedMonthlyLoss:     utils.RandomInRange(10000, 60000),
		KorayFrameworkCompliance: utils.RandomInRange(15, 40),
		Recommendations:          defaultRecommendations,
	})
	if err != nil {
		// The customer row stays; the console still shows the lead even
		// when the audit insert fails.
		p.logger.Error(ctx, "failed to create site analysis", err)
		return SubmitLeadResponse{}, fmt.Errorf("failed to create site analysis: %w", err)
	}

	return SubmitLeadResponse{
		Customer:        customer,
		Analysis:        analysis,
		ReportURL:       utils.BuildReportURL(p.webAppOrigin, token),
		LegacyReportURL: utils.BuildLegacyReportURL(p.webAppOrigin, token, req.WebsiteURL),
	}, nil
}
