package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
	"github.com/devxankit/Electrici-toys/internal/domain/repository"
)

const tracerName = "github.com/devxankit/Electrici-toys/internal/usecase"

// receiptMaxLen is the longest receipt the gateway accepts.
const receiptMaxLen = 40

// LineItemInput is a cart entry as submitted by the client. Quantity is the
// raw text so malformed values are reported per line.
type LineItemInput struct {
	ProductID string
	Quantity  string
}

// PlaceOrderInput carries everything needed to create an order.
type PlaceOrderInput struct {
	UserID            string
	Items             []LineItemInput
	ShippingAddressID string
	PaymentMethod     string
}

// PlacementUseCase turns a cart into a persisted order.
type PlacementUseCase struct {
	orders   repository.OrderRepository
	catalog  repository.ProductCatalog
	gateway  PaymentGateway
	observer Observer
	settings Settings
	logger   *slog.Logger
}

// NewPlacementUseCase constructs PlacementUseCase.
func NewPlacementUseCase(orders repository.OrderRepository, catalog repository.ProductCatalog, gateway PaymentGateway, observer Observer, settings Settings, logger *slog.Logger) *PlacementUseCase {
	if observer == nil {
		observer = nopObserver{}
	}
	if settings.LookupConcurrency <= 0 {
		settings.LookupConcurrency = 1
	}
	return &PlacementUseCase{
		orders:   orders,
		catalog:  catalog,
		gateway:  gateway,
		observer: observer,
		settings: settings,
		logger:   logger,
	}
}

// Place validates the cart against live catalog prices, opens a gateway
// session for gateway-routed payments and persists the order. Nothing is
// persisted unless every step before the write succeeds.
func (u *PlacementUseCase) Place(ctx context.Context, in PlaceOrderInput) (*model.Order, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "order.place")
	defer span.End()

	order, err := u.place(ctx, in)
	if err != nil {
		reason := failureReason(err)
		u.observer.PlacementFailed(reason)
		span.SetStatus(codes.Error, reason)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.String("order.payment_method", string(order.PaymentMethod)),
		attribute.Int("order.items", len(order.Items)),
	)
	u.observer.OrderPlaced(order.PaymentMethod)
	return order, nil
}

func (u *PlacementUseCase) place(ctx context.Context, in PlaceOrderInput) (*model.Order, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, fmt.Errorf("%w: user is required", domainErrors.ErrInvalidRequest)
	}
	if strings.TrimSpace(in.ShippingAddressID) == "" {
		return nil, fmt.Errorf("%w: shipping address is required", domainErrors.ErrInvalidRequest)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one product is required", domainErrors.ErrInvalidRequest)
	}

	method, err := model.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	items, err := u.resolveItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	orderID := uuid.NewString()
	total := model.SumLineTotals(items)

	var sessionID string
	if method.RoutesThroughGateway() {
		amount, err := MinorUnits(total)
		if err != nil {
			return nil, err
		}
		session, err := u.gateway.CreateSession(ctx, model.SessionRequest{
			AmountMinor: amount,
			Currency:    u.settings.Currency,
			Receipt:     receiptFor(orderID),
		})
		if err != nil {
			return nil, err
		}
		sessionID = session.ID
	}

	now := u.settings.now()
	order := model.NewOrder(orderID, in.UserID, strings.TrimSpace(in.ShippingAddressID), method, items, sessionID, now)

	event, err := model.NewOrderEvent(model.EventOrderPlaced, order, "", now)
	if err != nil {
		return nil, fmt.Errorf("build order event: %w", err)
	}

	if err := u.orders.Create(ctx, order, event); err != nil {
		if sessionID != "" {
			u.logger.ErrorContext(ctx, "order not persisted after gateway session was opened",
				"order_id", order.ID,
				"session_id", sessionID,
				"error", err,
			)
		}
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrPersistence, err)
	}

	return order, nil
}

// resolveItems looks up every product concurrently under the catalog
// deadline. Product existence is checked for the whole cart before line
// validation, and within each class the lowest failing index is reported.
func (u *PlacementUseCase) resolveItems(ctx context.Context, inputs []LineItemInput) ([]model.LineItem, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, u.settings.CatalogTimeout)
	defer cancel()

	products := make([]*model.Product, len(inputs))

	g, gctx := errgroup.WithContext(lookupCtx)
	g.SetLimit(u.settings.LookupConcurrency)
	for i, in := range inputs {
		productID := strings.TrimSpace(in.ProductID)
		if productID == "" {
			continue
		}
		g.Go(func() error {
			product, err := u.catalog.GetProduct(gctx, productID)
			if errors.Is(err, domainErrors.ErrProductNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("lookup product %s: %w", productID, err)
			}
			products[i] = product
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, product := range products {
		if !product.Orderable() {
			return nil, &domainErrors.LineItemError{Index: i, Err: domainErrors.ErrProductNotFound}
		}
	}

	items := make([]model.LineItem, len(inputs))
	for i, in := range inputs {
		price, ok := ParseUnitPrice(products[i].SellingPrice)
		if !ok {
			return nil, &domainErrors.LineItemError{Index: i, Reason: "product price is not a positive number", Err: domainErrors.ErrInvalidLineItem}
		}
		quantity, ok := ParseQuantity(in.Quantity)
		if !ok {
			return nil, &domainErrors.LineItemError{Index: i, Reason: "quantity must be a positive integer", Err: domainErrors.ErrInvalidLineItem}
		}
		items[i] = model.NewLineItem(products[i].ID, quantity, price)
	}

	return items, nil
}

func receiptFor(orderID string) string {
	receipt := "rcpt_" + strings.ReplaceAll(orderID, "-", "")
	if len(receipt) > receiptMaxLen {
		receipt = receipt[:receiptMaxLen]
	}
	return receipt
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, domainErrors.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, domainErrors.ErrInvalidLineItem):
		return "invalid_line_item"
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domainErrors.ErrGatewayUnavailable):
		return "gateway_unavailable"
	case errors.Is(err, domainErrors.ErrGatewayDeclined):
		return "gateway_declined"
	case errors.Is(err, domainErrors.ErrPersistence):
		return "persistence"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal"
	}
}
