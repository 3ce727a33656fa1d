package processor

import (
	"context"
	"reflect"
	"testing"

	"geo-optimizer-server/internal/observability"
	"geo-optimizer-server/internal/store"

	"github.com/google/uuid"
)

type stubServiceStore struct {
	createParams store.CreateServiceParams
	services     []store.Service
	updateErr    error
}

func (s *stubServiceStore) CreateService(ctx context.Context, params store.CreateServiceParams) (store.Service, error) {
	s.createParams = params
	return store.Service{
		ID:          uuid.New(),
		ServiceName: params.ServiceName,
		Features:    params.Features,
		IsActive:    params.IsActive,
	}, nil
}

func (s *stubServiceStore) ListServices(ctx context.Context, activeOnly bool) ([]store.Service, error) {
	return s.services, nil
}

func (s *stubServiceStore) UpdateServiceActive(ctx context.Context, serviceID uuid.UUID, isActive bool) (store.Service, error) {
	if s.updateErr != nil {
		return store.Service{}, s.updateErr
	}
	return store.Service{ID: serviceID, IsActive: isActive}, nil
}

func TestSplitFeatures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "simple lines",
			raw:  "AI content audit\nSchema markup\nEntity optimization",
			want: []string{"AI content audit", "Schema markup", "Entity optimization"},
		},
		{
			name: "blank and whitespace lines dropped",
			raw:  "First\n\n   \nSecond\n",
			want: []string{"First", "Second"},
		},
		{
			name: "lines trimmed",
			raw:  "  padded feature  \nanother",
			want: []string{"padded feature", "another"},
		},
		{
			name: "empty input",
			raw:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitFeatures(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitFeatures(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCreateServiceDefaultsActive(t *testing.T) {
	stub := &stubServiceStore{}
	p := New(stub, observability.NewLogger())

	_, err := p.CreateService(context.Background(), CreateServiceRequest{
		ServiceName: "AI Optimization Sprint",
		Features:    "Audit\nFixes",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !stub.createParams.IsActive {
		t.Error("expected is_active to default to true")
	}
	if len(stub.createParams.Features) != 2 {
		t.Errorf("expected 2 features, got %d", len(stub.createParams.Features))
	}
}

func TestCreateServiceExplicitInactive(t *testing.T) {
	stub := &stubServiceStore{}
	p := New(stub, observability.NewLogger())

	inactive := false
	_, err := p.CreateService(context.Background(), CreateServiceRequest{
		ServiceName: "Legacy Package",
		IsActive:    &inactive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.createParams.IsActive {
		t.Error("expected is_active to honor explicit false")
	}
}
