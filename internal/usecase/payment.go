package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
	"github.com/devxankit/Electrici-toys/internal/domain/repository"
)

// PaymentUseCase applies payment outcomes reported by the gateway.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	observer Observer
	settings Settings
	logger   *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(orders repository.OrderRepository, observer Observer, settings Settings, logger *slog.Logger) *PaymentUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	return &PaymentUseCase{orders: orders, observer: observer, settings: settings, logger: logger}
}

// Verify records the payment status for the order behind reference, which
// is the gateway session id or, for orders without one, the order id.
// A paid report moves a pending order to processing. Replaying an already
// applied report changes nothing.
func (u *PaymentUseCase) Verify(ctx context.Context, reference, transactionID, rawStatus string) (*model.Order, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: order reference is required", domainErrors.ErrInvalidRequest)
	}
	status, err := model.ParsePaymentStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	transactionID = strings.TrimSpace(transactionID)

	return retryOnConflict(func() (*model.Order, error) {
		order, err := resolveOrder(ctx, u.orders, reference)
		if err != nil {
			return nil, err
		}

		previous := order.Status
		now := u.settings.now()
		if !order.ApplyPayment(status, transactionID, now) {
			return order, nil
		}

		if status == model.PaymentStatusPaid && order.Status == model.OrderStatusCancelled {
			u.logger.WarnContext(ctx, "payment captured for cancelled order",
				"order_id", order.ID,
				"transaction_id", transactionID,
			)
		}

		event, err := model.NewOrderEvent(model.EventOrderPaymentUpdated, order, previous, now)
		if err != nil {
			return nil, fmt.Errorf("build order event: %w", err)
		}
		if err := u.orders.Update(ctx, order, event); err != nil {
			return nil, persistenceFailure(err)
		}

		if order.Status != previous {
			u.observer.StatusChanged(previous, order.Status)
		}
		return order, nil
	})
}

// resolveOrder finds an order by gateway session id, falling back to the
// order id so orders placed without a session stay addressable.
func resolveOrder(ctx context.Context, orders repository.OrderRepository, reference string) (*model.Order, error) {
	order, err := orders.GetBySessionID(ctx, reference)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, domainErrors.ErrOrderNotFound) {
		return nil, err
	}
	return orders.GetByID(ctx, reference)
}
