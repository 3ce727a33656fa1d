package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Customer represents a lead or client in the sales funnel
type Customer struct {
	ID                    uuid.UUID  `db:"id" json:"id"`
	BusinessName          string     `db:"business_name" json:"business_name"`
	ContactName           string     `db:"contact_name" json:"contact_name"`
	ContactEmail          string     `db:"contact_email" json:"contact_email"`
	Phone                 *string    `db:"phone" json:"phone,omitempty"`
	WebsiteURL            string     `db:"website_url" json:"website_url"`
	Status                string     `db:"status" json:"status"`
	CurrentMonthlyTraffic int        `db:"current_monthly_traffic" json:"current_monthly_traffic"`
	EstimatedTrafficLoss  int        `db:"estimated_traffic_loss" json:"estimated_traffic_loss"`
	OptimizationScore     int        `db:"optimization_score" json:"optimization_score"`
	Notes                 *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt             *time.Time `db:"deleted_at" json:"-"`
}

// CreateCustomerParams represents parameters for creating a customer
type CreateCustomerParams struct {
	BusinessName          string
	ContactName           string
	ContactEmail          string
	Phone                 *string
	WebsiteURL            string
	Status                string
	CurrentMonthlyTraffic int
	EstimatedTrafficLoss  int
	OptimizationScore     int
	Notes                 *string
}

// customerColumns contains all columns for SELECT queries
const customerColumns = `id, business_name, contact_name, contact_email, phone, website_url, status, current_monthly_traffic, estimated_traffic_loss, optimization_score, notes, created_at, updated_at, deleted_at`

const sqlCreateCustomer = `
INSERT INTO customers (
	business_name, contact_name, contact_email, phone, website_url, status,
	current_monthly_traffic, estimated_traffic_loss, optimization_score, notes
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + customerColumns

// CreateCustomer creates a new customer
func (s *Store) CreateCustomer(ctx context.Context, params CreateCustomerParams) (Customer, error) {
	var customer Customer
	err := s.db.GetContext(ctx, &customer, sqlCreateCustomer,
		params.BusinessName,
		params.ContactName,
		params.ContactEmail,
		params.Phone,
		params.WebsiteURL,
		params.Status,
		params.CurrentMonthlyTraffic,
		params.EstimatedTrafficLoss,
		params.OptimizationScore,
		params.Notes)
	if err != nil {
		return Customer{}, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

const sqlGetCustomerByID = `
SELECT ` + customerColumns + `
FROM customers
WHERE id = $1 AND deleted_at IS NULL
`

// GetCustomerByID retrieves a customer by ID
func (s *Store) GetCustomerByID(ctx context.Context, customerID uuid.UUID) (Customer, error) {
	var customer Customer
	err := s.db.GetContext(ctx, &customer, sqlGetCustomerByID, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, ErrNotFound
		}
		return Customer{}, fmt.Errorf("failed to get customer by id: %w", err)
	}
	return customer, nil
}

// ListCustomersParams represents filter parameters for listing customers
type ListCustomersParams struct {
	Search *string
	Status *string
	Limit  int
	Offset int
}

// ListCustomers retrieves customers newest first, filtered by a
// case-insensitive substring search over business name, contact email and
// website URL, AND an exact status match. Nil filters mean "all".
func (s *Store) ListCustomers(ctx context.Context, params ListCustomersParams) ([]Customer, error) {
	query := `SELECT ` + customerColumns + `
	FROM customers
	WHERE deleted_at IS NULL`

	args := []interface{}{}
	argCount := 0

	if params.Search != nil && *params.Search != "" {
		argCount++
		query += fmt.Sprintf(" AND (business_name ILIKE $%d OR contact_email ILIKE $%d OR website_url ILIKE $%d)", argCount, argCount, argCount)
		args = append(args, "%"+*params.Search+"%")
	}

	if params.Status != nil && *params.Status != "" {
		argCount++
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, *params.Status)
	}

	query += " ORDER BY created_at DESC"

	argCount++
	query += fmt.Sprintf(" LIMIT $%d", argCount)
	args = append(args, params.Limit)

	argCount++
	query += fmt.Sprintf(" OFFSET $%d", argCount)
	args = append(args, params.Offset)

	var customers []Customer
	err := s.db.SelectContext(ctx, &customers, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// CountCustomers counts customers matching the filter criteria
func (s *Store) CountCustomers(ctx context.Context, search *string, status *string) (int, error) {
	query := `SELECT COUNT(*) FROM customers WHERE deleted_at IS NULL`
	args := []interface{}{}
	argCount := 0

	if search != nil && *search != "" {
		argCount++
		query += fmt.Sprintf(" AND (business_name ILIKE $%d OR contact_email ILIKE $%d OR website_url ILIKE $%d)", argCount, argCount, argCount)
		args = append(args, "%"+*search+"%")
	}

	if status != nil && *status != "" {
		argCount++
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, *status)
	}

	var count int
	err := s.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

const sqlUpdateCustomerStatus = `
UPDATE customers
SET status = $2,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND deleted_at IS NULL
RETURNING ` + customerColumns

// UpdateCustomerStatus sets a customer's funnel status
func (s *Store) UpdateCustomerStatus(ctx context.Context, customerID uuid.UUID, status string) (Customer, error) {
	var customer Customer
	err := s.db.GetContext(ctx, &customer, sqlUpdateCustomerStatus, customerID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, ErrNotFound
		}
		return Customer{}, fmt.Errorf("failed to update customer status: %w", err)
	}
	return customer, nil
}

// UpdateCustomerParams represents parameters for updating customer contact details
type UpdateCustomerParams struct {
	BusinessName *string
	ContactName  *string
	ContactEmail *string
	Phone        *string
	Notes        *string
}

const sqlUpdateCustomer = `
UPDATE customers
SET business_name = COALESCE($2, business_name),
    contact_name = COALESCE($3, contact_name),
    contact_email = COALESCE($4, contact_email),
    phone = COALESCE($5, phone),
    notes = COALESCE($6, notes),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND deleted_at IS NULL
RETURNING ` + customerColumns

// UpdateCustomer updates a customer's contact details
func (s *Store) UpdateCustomer(ctx context.Context, customerID uuid.UUID, params UpdateCustomerParams) (Customer, error) {
	var customer Customer
	err := s.db.GetContext(ctx, &customer, sqlUpdateCustomer,
		customerID,
		params.BusinessName,
		params.ContactName,
		params.ContactEmail,
		params.Phone,
		params.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Customer{}, ErrNotFound
		}
		return Customer{}, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

const sqlDeleteCustomer = `
UPDATE customers
SET deleted_at = CURRENT_TIMESTAMP
WHERE id = $1 AND deleted_at IS NULL
`

// DeleteCustomer soft deletes a customer
func (s *Store) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteCustomer, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// CustomerStats holds funnel aggregates for the admin dashboard
type CustomerStats struct {
	TotalCustomers        int `db:"total_customers" json:"total_customers"`
	ActiveLeads           int `db:"active_leads" json:"active_leads"`
	Clients               int `db:"clients" json:"clients"`
	TotalRevenuePotential int `db:"total_revenue_potential" json:"total_revenue_potential"`
}

const sqlGetCustomerStats = `
SELECT COUNT(*) AS total_customers,
       COUNT(*) FILTER (WHERE status IN ($1, $2, $3)) AS active_leads,
       COUNT(*) FILTER (WHERE status = $4) AS clients,
       COALESCE(SUM(estimated_traffic_loss), 0) AS total_revenue_potential
FROM customers
WHERE deleted_at IS NULL
`

// GetCustomerStats computes funnel aggregates in a single query
func (s *Store) GetCustomerStats(ctx context.Context) (CustomerStats, error) {
	var stats CustomerStats
	err := s.db.GetContext(ctx, &stats, sqlGetCustomerStats,
		CustomerStatusLead,
		CustomerStatusContacted,
		CustomerStatusProposalSent,
		CustomerStatusClient)
	if err != nil {
		return CustomerStats{}, fmt.Errorf("failed to get customer stats: %w", err)
	}
	return stats, nil
}
