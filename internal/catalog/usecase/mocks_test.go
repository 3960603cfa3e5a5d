package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nexus-marketplace/catalog-service/internal/catalog/domain"
)

type MockListingSource struct{ mock.Mock }

func (m *MockListingSource) Fetch(ctx context.Context) ([]domain.RemoteRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RemoteRecord), args.Error(1)
}

type MockRefreshableSource struct{ MockListingSource }

func (m *MockRefreshableSource) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockImageResolver struct{ mock.Mock }

func (m *MockImageResolver) Resolve(ctx context.Context, ref string) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func listingIDs(ls []domain.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}
