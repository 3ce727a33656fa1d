package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service represents a sellable offering in the catalog
type Service struct {
	ID                 uuid.UUID   `db:"id" json:"id"`
	ServiceName        string      `db:"service_name" json:"service_name"`
	ServiceDescription string      `db:"service_description" json:"service_description"`
	PriceRange         string      `db:"price_range" json:"price_range"`
	DeliveryTime       string      `db:"delivery_time" json:"delivery_time"`
	Features           StringArray `db:"features" json:"features"`
	IsActive           bool        `db:"is_active" json:"is_active"`
	CreatedAt          time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at" json:"updated_at"`
}

// CreateServiceParams represents parameters for creating a service
type CreateServiceParams struct {
	ServiceName        string
	ServiceDescription string
	PriceRange         string
	DeliveryTime       string
	Features           StringArray
	IsActive           bool
}

const serviceColumns = `id, service_name, service_description, price_range, delivery_time, features, is_active, created_at, updated_at`

const sqlCreateService = `
INSERT INTO services (service_name, service_description, price_range, delivery_time, features, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + serviceColumns

// CreateService creates a new catalog service
func (s *Store) CreateService(ctx context.Context, params CreateServiceParams) (Service, error) {
	var service Service
	err := s.db.GetContext(ctx, &service, sqlCreateService,
		params.ServiceName,
		params.ServiceDescription,
		params.PriceRange,
		params.DeliveryTime,
		params.Features,
		params.IsActive)
	if err != nil {
		return Service{}, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

const sqlGetServiceByID = `
SELECT ` + serviceColumns + `
FROM services
WHERE id = $1
`

// GetServiceByID retrieves a service by ID
func (s *Store) GetServiceByID(ctx context.Context, serviceID uuid.UUID) (Service, error) {
	var service Service
	err := s.db.GetContext(ctx, &service, sqlGetServiceByID, serviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Service{}, ErrNotFound
		}
		return Service{}, fmt.Errorf("failed to get service by id: %w", err)
	}
	return service, nil
}

// ListServices retrieves services newest first, optionally restricted to
// active ones
func (s *Store) ListServices(ctx context.Context, activeOnly bool) ([]Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	var services []Service
	err := s.db.SelectContext(ctx, &services, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

const sqlGetServicesByIDs = `
SELECT ` + serviceColumns + `
FROM services
WHERE id = ANY($1)
ORDER BY created_at DESC
`

// GetServicesByIDs retrieves services matching the given IDs
func (s *Store) GetServicesByIDs(ctx context.Context, serviceIDs []uuid.UUID) ([]Service, error) {
	ids := make([]string, len(serviceIDs))
	for i, id := range serviceIDs {
		ids[i] = id.String()
	}

	var services []Service
	err := s.db.SelectContext(ctx, &services, sqlGetServicesByIDs, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get services by ids: %w", err)
	}
	return services, nil
}

const sqlUpdateServiceActive = `
UPDATE services
SET is_active = $2,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + serviceColumns

// UpdateServiceActive toggles a service's availability
func (s *Store) UpdateServiceActive(ctx context.Context, serviceID uuid.UUID, isActive bool) (Service, error) {
	var service Service
	err := s.db.GetContext(ctx, &service, sqlUpdateServiceActive, serviceID, isActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Service{}, ErrNotFound
		}
		return Service{}, fmt.Errorf("failed to update service active flag: %w", err)
	}
	return service, nil
}
