package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SiteAnalysis represents a generated website audit snapshot
type SiteAnalysis struct {
	ID                       uuid.UUID   `db:"id" json:"id"`
	CustomerID               *uuid.UUID  `db:"customer_id" json:"customer_id,omitempty"`
	WebsiteURL               string      `db:"website_url" json:"website_url"`
	BusinessName             string      `db:"business_name" json:"business_name"`
	AnalysisToken            string      `db:"analysis_token" json:"analysis_token"`
	SEOScore                 int         `db:"seo_score" json:"seo_score"`
	AIOptimizationScore      int         `db:"ai_optimization_score" json:"ai_optimization_score"`
	TechnicalErrors          int         `db:"technical_errors" json:"technical_errors"`
	ContentIssues            int         `db:"content_issues" json:"content_issues"`
	TrafficLossPercentage    int         `db:"traffic_loss_percentage" json:"traffic_loss_percentage"`
	EstimatedMonthlyLoss     int         `db:"estimated_monthly_loss" json:"estimated_monthly_loss"`
	KorayFrameworkCompliance int         `db:"koray_framework_compliance" json:"koray_framework_compliance"`
	Recommendations          StringArray `db:"recommendations" json:"recommendations"`
	ReportGeneratedAt        time.Time   `db:"report_generated_at" json:"report_generated_at"`
	CreatedAt                time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time   `db:"updated_at" json:"updated_at"`
}

// CreateSiteAnalysisParams represents parameters for creating a site analysis
type CreateSiteAnalysisParams struct {
	CustomerID               *uuid.UUID
	WebsiteURL               string
	BusinessName             string
	AnalysisToken            string
	SEOScore                 int
	AIOptimizationScore      int
	TechnicalErrors          int
	ContentIssues            int
	TrafficLossPercentage    int
	EstimatedMonthlyLoss     int
	KorayFrameworkCompliance int
	Recommendations          StringArray
}

const siteAnalysisColumns = `id, customer_id, website_url, business_name, analysis_token, seo_score, ai_optimization_score, technical_errors, content_issues, traffic_loss_percentage, estimated_monthly_loss, koray_framework_compliance, recommendations, report_generated_at, created_at, updated_at`

const sqlCreateSiteAnalysis = `
INSERT INTO site_analyses (
	customer_id, website_url, business_name, analysis_token,
	seo_score, ai_optimization_score, technical_errors, content_issues,
	traffic_loss_percentage, estimated_monthly_loss, koray_framework_compliance,
	recommendations, report_generated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, CURRENT_TIMESTAMP)
RETURNING ` + siteAnalysisColumns

// CreateSiteAnalysis creates a new site analysis
func (s *Store) CreateSiteAnalysis(ctx context.Context, params CreateSiteAnalysisParams) (SiteAnalysis, error) {
	var analysis SiteAnalysis
	err := s.db.GetContext(ctx, &analysis, sqlCreateSiteAnalysis,
		params.CustomerID,
		params.WebsiteURL,
		params.BusinessName,
		params.AnalysisToken,
		params.SEOScore,
		params.AIOptimizationScore,
		params.TechnicalErrors,
		params.ContentIssues,
		params.TrafficLossPercentage,
		params.EstimatedMonthlyLoss,
		params.KorayFrameworkCompliance,
		params.Recommendations)
	if err != nil {
		return SiteAnalysis{}, fmt.Errorf("failed to create site analysis: %w", err)
	}
	return analysis, nil
}

const sqlGetLatestSiteAnalysisByWebsiteURL = `
SELECT ` + siteAnalysisColumns + `
FROM site_analyses
WHERE website_url = $1
ORDER BY report_generated_at DESC
LIMIT 1
`

// GetLatestSiteAnalysisByWebsiteURL retrieves the newest analysis for an
// exactly matching website URL
func (s *Store) GetLatestSiteAnalysisByWebsiteURL(ctx context.Context, websiteURL string) (SiteAnalysis, error) {
	var analysis SiteAnalysis
	err := s.db.GetContext(ctx, &analysis, sqlGetLatestSiteAnalysisByWebsiteURL, websiteURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SiteAnalysis{}, ErrNotFound
		}
		return SiteAnalysis{}, fmt.Errorf("failed to get site analysis by website url: %w", err)
	}
	return analysis, nil
}

const sqlGetSiteAnalysisByToken = `
SELECT ` + siteAnalysisColumns + `
FROM site_analyses
WHERE analysis_token = $1
`

// GetSiteAnalysisByToken retrieves an analysis by its share token
func (s *Store) GetSiteAnalysisByToken(ctx context.Context, token string) (SiteAnalysis, error) {
	var analysis SiteAnalysis
	err := s.db.GetContext(ctx, &analysis, sqlGetSiteAnalysisByToken, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SiteAnalysis{}, ErrNotFound
		}
		return SiteAnalysis{}, fmt.Errorf("failed to get site analysis by token: %w", err)
	}
	return analysis, nil
}

const sqlGetSiteAnalysesByCustomer = `
SELECT ` + siteAnalysisColumns + `
FROM site_analyses
WHERE customer_id = $1
ORDER BY report_generated_at DESC
`

// GetSiteAnalysesByCustomer retrieves all analyses for a customer, newest first
func (s *Store) GetSiteAnalysesByCustomer(ctx context.Context, customerID uuid.UUID) ([]SiteAnalysis, error) {
	var analyses []SiteAnalysis
	err := s.db.SelectContext(ctx, &analyses, sqlGetSiteAnalysesByCustomer, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get site analyses by customer: %w", err)
	}
	return analyses, nil
}

const sqlGetLatestSiteAnalysisByCustomer = `
SELECT ` + siteAnalysisColumns + `
FROM site_analyses
WHERE customer_id = $1
ORDER BY report_generated_at DESC
LIMIT 1
`

// GetLatestSiteAnalysisByCustomer retrieves the newest analysis for a customer
func (s *Store) GetLatestSiteAnalysisByCustomer(ctx context.Context, customerID uuid.UUID) (SiteAnalysis, error) {
	var analysis SiteAnalysis
	err := s.db.GetContext(ctx, &analysis, sqlGetLatestSiteAnalysisByCustomer, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SiteAnalysis{}, ErrNotFound
		}
		return SiteAnalysis{}, fmt.Errorf("failed to get latest site analysis by customer: %w", err)
	}
	return analysis, nil
}
