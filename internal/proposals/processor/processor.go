package processor

import (
	"context"
	"errors"
	"fmt"

	"geo-optimizer-server/internal/email"
	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/store"

	"github.com/google/uuid"
)

// ProposalStore defines the database operations required by ProposalProcessor
type ProposalStore interface {
	GetCustomerByID(ctx context.Context, customerID uuid.UUID) (store.Customer, error)
	GetLatestSiteAnalysisByCustomer(ctx context.Context, customerID uuid.UUID) (store.SiteAnalysis, error)
	GetServicesByIDs(ctx context.Context, serviceIDs []uuid.UUID) ([]store.Service, error)
	CreateProposal(ctx context.Context, params store.CreateProposalParams) (store.Proposal, error)
	UpdateCustomerStatus(ctx context.Context, customerID uuid.UUID, status string) (store.Customer, error)
	GetProposalsByCustomer(ctx context.Context, customerID uuid.UUID) ([]store.Proposal, error)
}

// EmailSender renders and dispatches the proposal email
type EmailSender interface {
	SendProposalEmail(ctx context.Context, to, subject string, data email.ProposalData) error
}

// WhatsAppSender dispatches a WhatsApp message server-side. It is optional;
// the deep link is always returned regardless.
type WhatsAppSender interface {
	SendMessage(ctx context.Context, to, body string) (string, error)
}

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrNoServicesSelected  = errors.New("no services selected")
	ErrNoActiveServices    = errors.New("no active services selected")
	ErrInvalidProposalType = errors.New("invalid proposal type")
	ErrEmailSendFailed     = errors.New("failed to send proposal email")
)

type ProposalProcessor struct {
	store          ProposalStore
	emailSender    EmailSender
	whatsappSender WhatsAppSender
	logger         *observability.Logger
}

// New creates a ProposalProcessor. whatsappSender may be nil when Twilio is
// not configured.
func New(store ProposalStore, emailSender EmailSender, whatsappSender WhatsAppSender, logger *observability.Logger) ProposalProcessor {
	return ProposalProcessor{
		store:          store,
		emailSender:    emailSender,
		whatsappSender: whatsappSender,
		logger:         logger,
	}
}

// SendProposalRequest carries a proposal send for a customer
type SendProposalRequest struct {
	ServiceIDs    []uuid.UUID
	CustomMessage *string
	ProposalType  string
}

// SendProposalResponse carries the recorded proposal and, for the WhatsApp
// path, the wa.me deep link the operator opens.
type SendProposalResponse struct {
	Proposal     store.Proposal `json:"proposal"`
	Customer     store.Customer `json:"customer"`
	TotalValue   int            `json:"total_value"`
	WhatsAppLink string         `json:"whatsapp_link,omitempty"`
}

// SendProposal composes and dispatches a proposal over the requested channel.
// Both channels record a Proposal row and move the customer to proposal_sent;
// re-sending records a fresh row each time.
func (p *ProposalProcessor) SendProposal(ctx context.Context, customerID uuid.UUID, req SendProposalRequest) (SendProposalResponse, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "customer_id", Value: customerID.String()},
		observability.Field{Key: "proposal_type", Value: req.ProposalType},
	)

	if req.ProposalType != store.ProposalTypeEmail && req.ProposalType != store.ProposalTypeWhatsApp {
		return SendProposalResponse{}, ErrInvalidProposalType
	}
	if len(req.ServiceIDs) == 0 {
		return SendProposalResponse{}, ErrNoServicesSelected
	}

	customer, err := p.store.GetCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SendProposalResponse{}, ErrCustomerNotFound
		}
		p.logger.Error(ctx, "failed to get customer", err)
		return SendProposalResponse{}, err
	}

	selected, err := p.store.GetServicesByIDs(ctx, req.ServiceIDs)
	if err != nil {
		p.logger.Error(ctx, "failed to get services", err)
		return SendProposalResponse{}, err
	}

	var services []store.Service
	for _, service := range selected {
		if service.IsActive {
			services = append(services, service)
		}
	}
	if len(services) == 0 {
		return SendProposalResponse{}, ErrNoActiveServices
	}

	totalValue := 0
	serviceIDs := make([]string, 0, len(services))
	serviceNames := make([]string, 0, len(services))
	for _, service := range services {
		totalValue += ParsePriceValue(service.PriceRange)
		serviceIDs = append(serviceIDs, service.ID.String())
		serviceNames = append(serviceNames, service.ServiceName)
	}

	// The newest audit feeds the default message and the email subject.
	// A customer without one still gets a proposal, just with zeroed
	// findings.
	analysis, err := p.store.GetLatestSiteAnalysisByCustomer(ctx, customerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to get latest analysis", err)
		return SendProposalResponse{}, err
	}

	message := DefaultProposalMessage(customer, analysis)
	if req.CustomMessage != nil && *req.CustomMessage != "" {
		message = *req.CustomMessage
	}

	var whatsappLink string
	switch req.ProposalType {
	case store.ProposalTypeEmail:
		if err := p.sendEmail(ctx, customer, analysis, services, message, totalValue); err != nil {
			return SendProposalResponse{}, err
		}
	case store.ProposalTypeWhatsApp:
		whatsappMessage := BuildWhatsAppMessage(message, serviceNames, totalValue)
		whatsappLink = BuildWhatsAppLink(whatsappMessage)
		p.dispatchWhatsApp(ctx, customer, whatsappMessage)
	}

	proposal, err := p.store.CreateProposal(ctx, store.CreateProposalParams{
		CustomerID:       customerID,
		SelectedServices: serviceIDs,
		CustomMessage:    message,
		TotalValue:       totalValue,
		ProposalType:     req.ProposalType,
		Status:           store.ProposalStatusSent,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to record proposal", err)
		return SendProposalResponse{}, err
	}

	updatedCustomer, err := p.store.UpdateCustomerStatus(ctx, customerID, store.CustomerStatusProposalSent)
	if err != nil {
		p.logger.Error(ctx, "failed to update customer status", err)
		return SendProposalResponse{}, err
	}

	return SendProposalResponse{
		Proposal:     proposal,
		Customer:     updatedCustomer,
		TotalValue:   totalValue,
		WhatsAppLink: whatsappLink,
	}, nil
}

func (p *ProposalProcessor) sendEmail(ctx context.Context, customer store.Customer, analysis store.SiteAnalysis, services []store.Service, message string, totalValue int) error {
	proposalServices := make([]email.ProposalService, 0, len(services))
	for _, service := range services {
		proposalServices = append(proposalServices, email.ProposalService{
			Name:         service.ServiceName,
			Description:  service.ServiceDescription,
			PriceRange:   service.PriceRange,
			DeliveryTime: service.DeliveryTime,
			Features:     service.Features,
		})
	}

	subject := fmt.Sprintf("AI Optimization Proposal for %s - Recover $%s/month",
		customer.BusinessName, formatAmount(analysis.EstimatedMonthlyLoss))

	err := p.emailSender.SendProposalEmail(ctx, customer.ContactEmail, subject, email.ProposalData{
		BusinessName: customer.BusinessName,
		Message:      message,
		Services:     proposalServices,
		TotalValue:   totalValue,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to send proposal email", err)
		return ErrEmailSendFailed
	}
	return nil
}

// dispatchWhatsApp pushes the message through Twilio when both the client
// and the customer's phone number are available. Failures are logged; the
// operator still gets the deep link.
func (p *ProposalProcessor) dispatchWhatsApp(ctx context.Context, customer store.Customer, message string) {
	if p.whatsappSender == nil || customer.Phone == nil || *customer.Phone == "" {
		return
	}
	if _, err := p.whatsappSender.SendMessage(ctx, *customer.Phone, message); err != nil {
		p.logger.Error(ctx, "failed to dispatch whatsapp message", err)
	}
}

// GetProposals returns a customer's proposal history, newest first
func (p *ProposalProcessor) GetProposals(ctx context.Context, customerID uuid.UUID) ([]store.Proposal, error) {
	if _, err := p.store.GetCustomerByID(ctx, customerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		p.logger.Error(ctx, "failed to get customer", err)
		return nil, err
	}

	proposals, err := p.store.GetProposalsByCustomer(ctx, customerID)
	if err != nil {
		p.logger.Error(ctx, "failed to get proposals", err)
		return nil, err
	}
	return proposals, nil
}
