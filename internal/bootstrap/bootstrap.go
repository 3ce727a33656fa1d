package bootstrap

import (
	"context"
	"fmt"

	"geo-optimizer-server/internal/config"
	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/store"

	"geo-optimizer-server/internal/auth/handler"
	"geo-optimizer-server/internal/auth/processor"
	"geo-optimizer-server/internal/clients/mail"
	"geo-optimizer-server/internal/clients/whatsapp"
	customerHandler "geo-optimizer-server/internal/customers/handler"
	customerProcessor "geo-optimizer-server/internal/customers/processor"
	"geo-optimizer-server/internal/email"
	leadHandler "geo-optimizer-server/internal/leads/handler"
	leadProcessor "geo-optimizer-server/internal/leads/processor"
	proposalHandler "geo-optimizer-server/internal/proposals/handler"
	proposalProcessor "geo-optimizer-server/internal/proposals/processor"
	reportHandler "geo-optimizer-server/internal/reports/handler"
	reportProcessor "geo-optimizer-server/internal/reports/processor"
	serviceHandler "geo-optimizer-server/internal/services/handler"
	serviceProcessor "geo-optimizer-server/internal/services/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Handlers
	AuthHandler     handler.Handler
	LeadHandler     leadHandler.Handler
	ReportHandler   reportHandler.Handler
	CustomerHandler customerHandler.Handler
	ServiceHandler  serviceHandler.Handler
	ProposalHandler proposalHandler.Handler
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	connectionString := cfg.Database.ConnectionString()
	var err error
	deps.Store, err = store.New(connectionString, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize clients
	mailClient, err := mail.NewResendClient(cfg.Services.ResendAPIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create resend client: %w", err)
	}

	emailService := email.New(mailClient, cfg.Services.DefaultEmailSender, logger)

	// WhatsApp dispatch is optional; without Twilio credentials proposals
	// still return the wa.me deep link.
	var whatsappClient proposalProcessor.WhatsAppSender
	if cfg.Services.TwilioAccountSID != "" && cfg.Services.TwilioAuthToken != "" {
		whatsappClient = whatsapp.NewTwilioClient(
			cfg.Services.TwilioAccountSID,
			cfg.Services.TwilioAuthToken,
			cfg.Services.TwilioWhatsAppFrom,
			logger,
		)
	}

	// Initialize auth processor and handler
	authProc := processor.New(&deps.Store, cfg.Auth.JWTSecret, logger)
	deps.AuthHandler = handler.New(authProc, logger)

	// Initialize lead processor and handler
	leadProc := leadProcessor.New(&deps.Store, cfg.Services.WebAppURI, logger)
	deps.LeadHandler = leadHandler.New(leadProc, logger)

	// Initialize report processor and handler
	reportProc := reportProcessor.New(&deps.Store, logger)
	deps.ReportHandler = reportHandler.New(reportProc, logger)

	// Initialize customer processor and handler
	customerProc := customerProcessor.New(&deps.Store, cfg.Services.WebAppURI, logger)
	deps.CustomerHandler = customerHandler.New(customerProc, logger)

	// Initialize service processor and handler
	serviceProc := serviceProcessor.New(&deps.Store, logger)
	deps.ServiceHandler = serviceHandler.New(serviceProc, logger)

	// Initialize proposal processor and handler
	proposalProc := proposalProcessor.New(&deps.Store, emailService, whatsappClient, logger)
	deps.ProposalHandler = proposalHandler.New(proposalProc, logger)

	return deps, nil
}
