package email

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"geo-optimizer-server/internal/clients/mail"
	"geo-optimizer-server/internal/observability"
)

// EmailService renders and sends proposal emails
type EmailService struct {
	mailClient    *mail.ResendClient
	logger        *observability.Logger
	defaultSender string
	templates     map[string]string
}

// ProposalService is one recommended service rendered in the email
type ProposalService struct {
	Name         string
	Description  string
	PriceRange   string
	DeliveryTime string
	Features     []string
}

// ProposalData feeds the proposal email template
type ProposalData struct {
	BusinessName string
	Message      string
	Services     []ProposalService
	TotalValue   int
	ReplyTo      string
}

// New creates a new EmailService
func New(mailClient *mail.ResendClient, defaultSender string, logger *observability.Logger) *EmailService {
	return &EmailService{
		mailClient:    mailClient,
		logger:        logger,
		defaultSender: defaultSender,
		templates: map[string]string{
			"proposal": `
			<html>
				<body style="margin: 0; padding: 0; background-color: #F3F4F6; font-family: Arial, sans-serif;">
					<div style="max-width: 640px; margin: 0 auto; background-color: #FFFFFF;">
						<div style="background: linear-gradient(135deg, #2563EB, #7C3AED); padding: 32px; text-align: center; color: #FFFFFF;">
							<h1 style="margin: 0;">AI Optimization Proposal</h1>
							<p style="margin: 8px 0 0 0;">For {{.BusinessName}}</p>
						</div>
						<div style="padding: 24px;">
							<p style="white-space: pre-line; color: #374151;">{{.Message}}</p>
							<h2 style="color: #2563EB; border-bottom: 2px solid #E5E7EB; padding-bottom: 8px;">Recommended Services</h2>
							{{range .Services}}
							<div style="border: 1px solid #E5E7EB; border-radius: 8px; padding: 16px; margin-bottom: 16px;">
								<h3 style="margin: 0 0 8px 0; color: #1F2937;">{{.Name}}</h3>
								<p style="margin: 0 0 8px 0; color: #6B7280;">{{.Description}}</p>
								<p style="margin: 0 0 4px 0; color: #059669; font-weight: bold;">Investment: {{.PriceRange}}</p>
								<p style="margin: 0 0 8px 0; color: #374151;">Delivery: {{.DeliveryTime}}</p>
								{{if .Features}}
								<div style="background-color: #F9FAFB; border-radius: 6px; padding: 12px;">
									<p style="margin: 0 0 4px 0; font-weight: bold; color: #1F2937;">What's Included:</p>
									<ul style="margin: 0; padding-left: 20px; color: #374151;">
										{{range .Features}}<li>{{.}}</li>{{end}}
									</ul>
								</div>
								{{end}}
							</div>
							{{end}}
							<div style="background: linear-gradient(135deg, #059669, #10B981); border-radius: 8px; padding: 24px; text-align: center; color: #FFFFFF;">
								<h2 style="margin: 0;">Total Investment: ${{.TotalValue}}+</h2>
								<p style="margin: 8px 0 0 0;">Potential ROI: 300-500% within 6 months</p>
							</div>
							<div style="text-align: center; margin-top: 24px;">
								<a href="mailto:{{.ReplyTo}}" style="background-color: #2563EB; color: #FFFFFF; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Accept Proposal &amp; Schedule Call</a>
							</div>
						</div>
						<div style="padding: 16px; text-align: center; color: #9CA3AF; font-size: 12px;">
							&copy; 2024 AI Geo Optimizer. All rights reserved.
						</div>
					</div>
				</body>
			</html>
			`,
		},
	}
}

// renderTemplate renders a template with the provided data
func (s *EmailService) renderTemplate(templateName string, data ProposalData) (string, error) {
	tmplStr, ok := s.templates[templateName]
	if !ok {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	tmpl, err := template.New(templateName).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// SendProposalEmail renders the branded proposal document and sends it with
// the plain-text message as the text part.
func (s *EmailService) SendProposalEmail(ctx context.Context, to, subject string, data ProposalData) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_type", Value: "proposal"},
		observability.Field{Key: "business_name", Value: data.BusinessName},
	)

	if data.ReplyTo == "" {
		data.ReplyTo = s.defaultSender
	}

	html, err := s.renderTemplate("proposal", data)
	if err != nil {
		s.logger.Error(ctx, "failed to render proposal template", err)
		return err
	}

	_, err = s.mailClient.SendEmail(ctx, s.defaultSender, to, subject, html, data.Message)
	if err != nil {
		s.logger.Error(ctx, "failed to send proposal email", err)
		return err
	}

	return nil
}
