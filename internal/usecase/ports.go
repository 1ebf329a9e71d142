package usecase

import (
	"context"
	"time"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

// PaymentGateway opens payment sessions with the external provider.
// Implementations classify failures as ErrGatewayUnavailable or
// ErrGatewayDeclined.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req model.SessionRequest) (*model.PaymentSession, error)
}

// Observer receives business counters.
type Observer interface {
	OrderPlaced(method model.PaymentMethod)
	PlacementFailed(reason string)
	StatusChanged(from, to model.OrderStatus)
}

type nopObserver struct{}

func (nopObserver) OrderPlaced(model.PaymentMethod)                    {}
func (nopObserver) PlacementFailed(string)                             {}
func (nopObserver) StatusChanged(model.OrderStatus, model.OrderStatus) {}

// Settings tunes use case behaviour.
type Settings struct {
	Currency          string
	CatalogTimeout    time.Duration
	LookupConcurrency int
	Now               func() time.Time
}

func (s Settings) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
