package processor

import (
	"context"
	"errors"
	"strings"

	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/store"

	"github.com/google/uuid"
)

// ServiceStore defines the database operations required by ServiceProcessor
type ServiceStore interface {
	CreateService(ctx context.Context, params store.CreateServiceParams) (store.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]store.Service, error)
	UpdateServiceActive(ctx context.Context, serviceID uuid.UUID, isActive bool) (store.Service, error)
}

var ErrServiceNotFound = errors.New("service not found")

type ServiceProcessor struct {
	store  ServiceStore
	logger *observability.Logger
}

func New(store ServiceStore, logger *observability.Logger) ServiceProcessor {
	return ServiceProcessor{store: store, logger: logger}
}

// CreateServiceRequest carries a new catalog entry. Features arrive as one
// newline-separated string, matching the admin form's textarea.
type CreateServiceRequest struct {
	ServiceName        string
	ServiceDescription string
	PriceRange         string
	DeliveryTime       string
	Features           string
	IsActive           *bool
}

// SplitFeatures turns the textarea input into a feature list: split on
// newlines, trim each line, drop blanks.
func SplitFeatures(raw string) []string {
	var features []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		features = append(features, trimmed)
	}
	return features
}

func (p *ServiceProcessor) CreateService(ctx context.Context, req CreateServiceRequest) (store.Service, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "service_name", Value: req.ServiceName})

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	service, err := p.store.CreateService(ctx, store.CreateServiceParams{
		ServiceName:        req.ServiceName,
		ServiceDescription: req.ServiceDescription,
		PriceRange:         req.PriceRange,
		DeliveryTime:       req.DeliveryTime,
		Features:           SplitFeatures(req.Features),
		IsActive:           isActive,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create service", err)
		return store.Service{}, err
	}
	return service, nil
}

func (p *ServiceProcessor) ListServices(ctx context.Context, activeOnly bool) ([]store.Service, error) {
	services, err := p.store.ListServices(ctx, activeOnly)
	if err != nil {
		p.logger.Error(ctx, "failed to list services", err)
		return nil, err
	}
	return services, nil
}

func (p *ServiceProcessor) SetServiceActive(ctx context.Context, serviceID uuid.UUID, isActive bool) (store.Service, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "service_id", Value: serviceID.String()})

	service, err := p.store.UpdateServiceActive(ctx, serviceID, isActive)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Service{}, ErrServiceNotFound
		}
		p.logger.Error(ctx, "failed to update service active flag", err)
		return store.Service{}, err
	}
	return service, nil
}
