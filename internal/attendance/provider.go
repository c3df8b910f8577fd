package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Provider reports who is present for a given calendar day. Dashboards
// and the roster never hardcode presence; they ask this interface so a
// real clock-in subsystem can slot in without touching aggregation
// logic.
//
//go:generate mockgen -source=provider.go -destination=mock/provider_mock.go -package=mock
type Provider interface {
	PresentToday(ctx context.Context, day time.Time) (int64, error)
	PresentSet(ctx context.Context, day time.Time) (map[uuid.UUID]struct{}, error)
}

// UnimplementedProvider is the shipped stand-in while attendance
// tracking does not exist: nobody is ever present. Work status derived
// from it is therefore ON_LEAVE or ABSENT, a known placeholder.
type UnimplementedProvider struct{}

func NewUnimplementedProvider() Provider {
	return UnimplementedProvider{}
}

func (UnimplementedProvider) PresentToday(ctx context.Context, day time.Time) (int64, error) {
	return 0, nil
}

func (UnimplementedProvider) PresentSet(ctx context.Context, day time.Time) (map[uuid.UUID]struct{}, error) {
	return map[uuid.UUID]struct{}{}, nil
}
