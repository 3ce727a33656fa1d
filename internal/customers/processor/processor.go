package processor

import (
	"context"
	"errors"

	"geo-optimizer-server/internal/leads/utils"
	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/store"

	"github.com/google/uuid"
)

// CustomerStore defines the database operations required by CustomerProcessor
type CustomerStore interface {
	ListCustomers(ctx context.Context, params store.ListCustomersParams) ([]store.Customer, error)
	CountCustomers(ctx context.Context, search *string, status *string) (int, error)
	GetCustomerByID(ctx context.Context, customerID uuid.UUID) (store.Customer, error)
	UpdateCustomerStatus(ctx context.Context, customerID uuid.UUID, status string) (store.Customer, error)
	UpdateCustomer(ctx context.Context, customerID uuid.UUID, params store.UpdateCustomerParams) (store.Customer, error)
	DeleteCustomer(ctx context.Context, customerID uuid.UUID) error
	GetCustomerStats(ctx context.Context) (store.CustomerStats, error)
	GetSiteAnalysesByCustomer(ctx context.Context, customerID uuid.UUID) ([]store.SiteAnalysis, error)
	GetLatestSiteAnalysisByCustomer(ctx context.Context, customerID uuid.UUID) (store.SiteAnalysis, error)
	GetProposalsByCustomer(ctx context.Context, customerID uuid.UUID) ([]store.Proposal, error)
}

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidStatus    = errors.New("invalid customer status")
	ErrNoAnalysis       = errors.New("customer has no analysis")
)

var validStatuses = map[string]bool{
	store.CustomerStatusLead:         true,
	store.CustomerStatusContacted:    true,
	store.CustomerStatusProposalSent: true,
	store.CustomerStatusClient:       true,
	store.CustomerStatusClosed:       true,
}

type CustomerProcessor struct {
	store        CustomerStore
	webAppOrigin string
	logger       *observability.Logger
}

func New(store CustomerStore, webAppOrigin string, logger *observability.Logger) CustomerProcessor {
	return CustomerProcessor{
		store:        store,
		webAppOrigin: webAppOrigin,
		logger:       logger,
	}
}

// ListCustomersRequest carries list filters. Search is a case-insensitive
// substring match over business name, contact email and website URL; status
// is an exact match. Both compose with AND, empty means "all".
type ListCustomersRequest struct {
	Search *string
	Status *string
	Limit  int
	Offset int
}

type ListCustomersResponse struct {
	Customers []store.Customer `json:"customers"`
	Total     int              `json:"total"`
}

func (p *CustomerProcessor) ListCustomers(ctx context.Context, req ListCustomersRequest) (ListCustomersResponse, error) {
	if req.Status != nil && *req.Status != "" && !validStatuses[*req.Status] {
		return ListCustomersResponse{}, ErrInvalidStatus
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 50
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	customers, err := p.store.ListCustomers(ctx, store.ListCustomersParams{
		Search: req.Search,
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to list customers", err)
		return ListCustomersResponse{}, err
	}

	total, err := p.store.CountCustomers(ctx, req.Search, req.Status)
	if err != nil {
		p.logger.Error(ctx, "failed to count customers", err)
		return ListCustomersResponse{}, err
	}

	return ListCustomersResponse{Customers: customers, Total: total}, nil
}

// CustomerDetail bundles a customer with its analyses and proposal history
type CustomerDetail struct {
	Customer  store.Customer       `json:"customer"`
	Analyses  []store.SiteAnalysis `json:"analyses"`
	Proposals []store.Proposal     `json:"proposals"`
}

func (p *CustomerProcessor) GetCustomerDetail(ctx context.Context, customerID uuid.UUID) (CustomerDetail, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "customer_id", Value: customerID.String()})

	customer, err := p.store.GetCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CustomerDetail{}, ErrCustomerNotFound
		}
		p.logger.Error(ctx, "failed to get customer", err)
		return CustomerDetail{}, err
	}

	analyses, err := p.store.GetSiteAnalysesByCustomer(ctx, customerID)
	if err != nil {
		p.logger.Error(ctx, "failed to get customer analyses", err)
		return CustomerDetail{}, err
	}

	proposals, err := p.store.GetProposalsByCustomer(ctx, customerID)
	if err != nil {
		p.logger.Error(ctx, "failed to get customer proposals", err)
		return CustomerDetail{}, err
	}

	return CustomerDetail{Customer: customer, Analyses: analyses, Proposals: proposals}, nil
}

// UpdateStatus sets any of the five funnel statuses. Transitions are
// deliberately unconstrained; operators move customers freely.
func (p *CustomerProcessor) UpdateStatus(ctx context.Context, customerID uuid.UUID, status string) (store.Customer, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "customer_id", Value: customerID.String()},
		observability.Field{Key: "status", Value: status},
	)

	if !validStatuses[status] {
		return store.Customer{}, ErrInvalidStatus
	}

	customer, err := p.store.UpdateCustomerStatus(ctx, customerID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Customer{}, ErrCustomerNotFound
		}
		p.logger.Error(ctx, "failed to update customer status", err)
		return store.Customer{}, err
	}
	return customer, nil
}

// UpdateCustomerRequest carries optional contact detail changes
type UpdateCustomerRequest struct {
	BusinessName *string
	ContactName  *string
	ContactEmail *string
	Phone        *string
	Notes        *string
}

func (p *CustomerProcessor) UpdateCustomer(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (store.Customer, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "customer_id", Value: customerID.String()})

	customer, err := p.store.UpdateCustomer(ctx, customerID, store.UpdateCustomerParams{
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Notes:        req.Notes,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Customer{}, ErrCustomerNotFound
		}
		p.logger.Error(ctx, "failed to update customer", err)
		return store.Customer{}, err
	}
	return customer, nil
}

func (p *CustomerProcessor) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "customer_id", Value: customerID.String()})

	err := p.store.DeleteCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCustomerNotFound
		}
		p.logger.Error(ctx, "failed to delete customer", err)
		return err
	}
	return nil
}

func (p *CustomerProcessor) GetStats(ctx context.Context) (store.CustomerStats, error) {
	stats, err := p.store.GetCustomerStats(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to get customer stats", err)
		return store.CustomerStats{}, err
	}
	return stats, nil
}

// ReportURLs holds both share URL forms for a customer's newest analysis
type ReportURLs struct {
	ReportURL       string `json:"report_url"`
	LegacyReportURL string `json:"legacy_report_url"`
}

// GetReportURL regenerates the share link for a customer's newest analysis
// so operators can re-send it without a fresh intake.
func (p *CustomerProcessor) GetReportURL(ctx context.Context, customerID uuid.UUID) (ReportURLs, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "customer_id", Value: customerID.String()})

	if _, err := p.store.GetCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ReportURLs{}, ErrCustomerNotFound
		}
		p.logger.Error(ctx, "failed to get customer", err)
		return ReportURLs{}, err
	}

	analysis, err := p.store.GetLatestSiteAnalysisByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ReportURLs{}, ErrNoAnalysis
		}
		p.logger.Error(ctx, "failed to get latest analysis", err)
		return ReportURLs{}, err
	}

	return ReportURLs{
		ReportURL:       utils.BuildReportURL(p.webAppOrigin, analysis.AnalysisToken),
		LegacyReportURL: utils.BuildLegacyReportURL(p.webAppOrigin, analysis.AnalysisToken, analysis.WebsiteURL),
	}, nil
}
