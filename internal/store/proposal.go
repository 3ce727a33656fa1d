package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Proposal represents a proposal sent to a customer
type Proposal struct {
	ID               uuid.UUID   `db:"id" json:"id"`
	CustomerID       uuid.UUID   `db:"customer_id" json:"customer_id"`
	SelectedServices StringArray `db:"selected_services" json:"selected_services"`
	CustomMessage    string      `db:"custom_message" json:"custom_message"`
	TotalValue       int         `db:"total_value" json:"total_value"`
	ProposalType     string      `db:"proposal_type" json:"proposal_type"`
	Status           string      `db:"status" json:"status"`
	SentAt           time.Time   `db:"sent_at" json:"sent_at"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updated_at"`
}

// CreateProposalParams represents parameters for recording a sent proposal
type CreateProposalParams struct {
	CustomerID       uuid.UUID
	SelectedServices StringArray
	CustomMessage    string
	TotalValue       int
	ProposalType     string
	Status           string
}

const proposalColumns = `id, customer_id, selected_services, custom_message, total_value, proposal_type, status, sent_at, created_at, updated_at`

const sqlCreateProposal = `
INSERT INTO proposals (customer_id, selected_services, custom_message, total_value, proposal_type, status, sent_at)
VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
RETURNING ` + proposalColumns

// CreateProposal records a proposal. Each send produces a fresh row, so
// re-sending to the same customer is visible in the history.
func (s *Store) CreateProposal(ctx context.Context, params CreateProposalParams) (Proposal, error) {
	var proposal Proposal
	err := s.db.GetContext(ctx, &proposal, sqlCreateProposal,
		params.CustomerID,
		params.SelectedServices,
		params.CustomMessage,
		params.TotalValue,
		params.ProposalType,
		params.Status)
	if err != nil {
		return Proposal{}, fmt.Errorf("failed to create proposal: %w", err)
	}
	return proposal, nil
}

const sqlGetProposalsByCustomer = `
SELECT ` + proposalColumns + `
FROM proposals
WHERE customer_id = $1
ORDER BY sent_at DESC
`

// GetProposalsByCustomer retrieves a customer's proposals, newest first
func (s *Store) GetProposalsByCustomer(ctx context.Context, customerID uuid.UUID) ([]Proposal, error) {
	var proposals []Proposal
	err := s.db.SelectContext(ctx, &proposals, sqlGetProposalsByCustomer, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposals by customer: %w", err)
	}
	return proposals, nil
}
