package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
	"github.com/devxankit/Electrici-toys/internal/domain/repository"
)

// StatusUseCase moves orders through the fulfilment lifecycle.
type StatusUseCase struct {
	orders   repository.OrderRepository
	observer Observer
	settings Settings
	logger   *slog.Logger
}

// NewStatusUseCase constructs StatusUseCase.
func NewStatusUseCase(orders repository.OrderRepository, observer Observer, settings Settings, logger *slog.Logger) *StatusUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &StatusUseCase{orders: orders, observer: observer, settings: settings, logger: logger}
}

// UpdateStatus applies an administrative status change. Validation order is
// status value, then order existence, then the transition itself.
func (u *StatusUseCase) UpdateStatus(ctx context.Context, reference, rawStatus string) (*model.Order, error) {
	status, err := model.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: order reference is required", domainErrors.ErrInvalidRequest)
	}

	return u.transition(ctx, reference, status, nil)
}

// Cancel moves the order to cancelled on behalf of its owner or an admin.
func (u *StatusUseCase) Cancel(ctx context.Context, reference string, actor model.Actor) (*model.Order, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: order reference is required", domainErrors.ErrInvalidRequest)
	}

	return u.transition(ctx, reference, model.OrderStatusCancelled, func(order *model.Order) error {
		if !actor.CanAccess(order.UserID) {
			return domainErrors.ErrForbidden
		}
		return nil
	})
}

func (u *StatusUseCase) transition(ctx context.Context, reference string, to model.OrderStatus, authorize func(*model.Order) error) (*model.Order, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "order.transition")
	defer span.End()
	span.SetAttributes(attribute.String("order.reference", reference), attribute.String("order.status.to", string(to)))

	order, err := retryOnConflict(func() (*model.Order, error) {
		order, err := resolveOrder(ctx, u.orders, reference)
		if err != nil {
			return nil, err
		}
		if authorize != nil {
			if err := authorize(order); err != nil {
				return nil, err
			}
		}

		from := order.Status
		now := u.settings.now()
		if err := order.TransitionTo(to, now); err != nil {
			return nil, err
		}

		event, err := model.NewOrderEvent(model.EventOrderStatusChanged, order, from, now)
		if err != nil {
			return nil, fmt.Errorf("build order event: %w", err)
		}
		if err := u.orders.Update(ctx, order, event); err != nil {
			return nil, persistenceFailure(err)
		}

		u.observer.StatusChanged(from, to)
		u.logger.InfoContext(ctx, "order status changed",
			"order_id", order.ID,
			"from", string(from),
			"to", string(to),
		)
		return order, nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return order, nil
}
