package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
	testhelpers "github.com/devxankit/Electrici-toys/internal/test"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testSettings() Settings {
	return Settings{
		Currency:          "INR",
		CatalogTimeout:    time.Second,
		LookupConcurrency: 4,
		Now:               func() time.Time { return fixedNow },
	}
}

type placementFixture struct {
	orders   *testhelpers.MemoryOrderRepository
	catalog  *testhelpers.CatalogStub
	gateway  *testhelpers.GatewayStub
	observer *testhelpers.ObserverRecorder
	uc       *PlacementUseCase
}

func newPlacementFixture(products ...*model.Product) *placementFixture {
	catalog := &testhelpers.CatalogStub{Products: make(map[string]*model.Product)}
	for _, p := range products {
		catalog.Products[p.ID] = p
	}
	f := &placementFixture{
		orders:   testhelpers.NewMemoryOrderRepository(),
		catalog:  catalog,
		gateway:  &testhelpers.GatewayStub{},
		observer: &testhelpers.ObserverRecorder{},
	}
	f.uc = NewPlacementUseCase(f.orders, f.catalog, f.gateway, f.observer, testSettings(), discardLogger())
	return f
}

func product(id, price string) *model.Product {
	return &model.Product{ID: id, Name: "Toy " + id, SellingPrice: price, Active: true}
}

func TestPlaceCashOnDeliveryComputesTotalWithoutGateway(t *testing.T) {
	f := newPlacementFixture(product("p1", "500"))

	order, err := f.uc.Place(context.Background(), PlaceOrderInput{
		UserID:            "u1",
		Items:             []LineItemInput{{ProductID: "p1", Quantity: "2"}},
		ShippingAddressID: "a1",
		PaymentMethod:     "COD",
	})

	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(1000)), "total %s", order.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	assert.Empty(t, order.GatewaySessionID)
	assert.Zero(t, f.gateway.Calls())
	assert.Equal(t, 1, f.orders.Count())
	assert.Equal(t, 1, f.observer.Placed[model.PaymentMethodCOD])

	require.Equal(t, 1, f.orders.EventCount())
	assert.Equal(t, model.EventOrderPlaced, f.orders.Events[0].Type)
	assert.Equal(t, order.ID, f.orders.Events[0].OrderID)
}

func TestPlaceGatewayRedirectOpensSession(t *testing.T) {
	f := newPlacementFixture(product("p1", "199.995"), product("p2", "0.01"))

	order, err := f.uc.Place(context.Background(), PlaceOrderInput{
		UserID:            "u1",
		Items:             []LineItemInput{{ProductID: "p1", Quantity: "1"}, {ProductID: "p2", Quantity: "3"}},
		ShippingAddressID: "a1",
	})

	require.NoError(t, err)
	require.Equal(t, 1, f.gateway.Calls())
	req := f.gateway.Requests[0]
	assert.Equal(t, int64(20003), req.AmountMinor)
	assert.Equal(t, "INR", req.Currency)
	assert.True(t, strings.HasPrefix(req.Receipt, "rcpt_"))
	assert.LessOrEqual(t, len(req.Receipt), receiptMaxLen)
	assert.NotContains(t, req.Receipt, "-")
	assert.Equal(t, "order_test_1", order.GatewaySessionID)
	assert.Equal(t, model.PaymentMethodGatewayRedirect, order.PaymentMethod)

	stored := f.orders.Snapshot(order.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "order_test_1", stored.GatewaySessionID)
}

func TestPlaceGatewayFailurePersistsNothing(t *testing.T) {
	cases := []error{
		fmt.Errorf("%w: connection refused", domainErrors.ErrGatewayUnavailable),
		fmt.Errorf("%w: amount too small", domainErrors.ErrGatewayDeclined),
	}

	for _, gatewayErr := range cases {
		t.Run(gatewayErr.Error(), func(t *testing.T) {
			f := newPlacementFixture(product("p1", "500"))
			f.gateway.CreateFn = func(context.Context, model.SessionRequest) (*model.PaymentSession, error) {
				return nil, gatewayErr
			}

			_, err := f.uc.Place(context.Background(), PlaceOrderInput{
				UserID:            "u1",
				Items:             []LineItemInput{{ProductID: "p1", Quantity: "1"}},
				ShippingAddressID: "a1",
				PaymentMethod:     "GatewayRedirect",
			})

			assert.ErrorIs(t, err, gatewayErr)
			assert.Zero(t, f.orders.Count())
			assert.Zero(t, f.orders.EventCount())
		})
	}
}

func TestPlaceReportsLowestMissingProduct(t *testing.T) {
	f := newPlacementFixture(product("p1", "10"), product("p3", "10"))
	f.catalog.Products["p4"] = &model.Product{ID: "p4", SellingPrice: "10", Active: true, Deleted: true}

	_, err := f.uc.Place(context.Background(), PlaceOrderInput{
		UserID: "u1",
		Items: []LineItemInput{
			{ProductID: "p1", Quantity: "0"},
			{ProductID: "p3", Quantity: "1"},
			{ProductID: "p4", Quantity: "1"},
			{ProductID: "missing", Quantity: "1"},
		},
		ShippingAddressID: "a1",
		PaymentMethod:     "COD",
	})

	var itemErr *domainErrors.LineItemError
	require.ErrorAs(t, err, &itemErr)
	assert.ErrorIs(t, err, domainErrors.ErrProductNotFound)
	assert.Equal(t, 2, itemErr.Index)
	assert.Zero(t, f.orders.Count())
	assert.Equal(t, 1, f.observer.Failures["product_not_found"])
}

func TestPlaceRejectsInvalidLineItems(t *testing.T) {
	cases := []struct {
		name     string
		price    string
		quantity string
	}{
		{"zero quantity", "10", "0"},
		{"negative quantity", "10", "-1"},
		{"fractional quantity", "10", "1.5"},
		{"non numeric quantity", "10", "many"},
		{"non numeric price", "ten", "1"},
		{"zero price", "0", "1"},
		{"empty price", "", "1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPlacementFixture(product("ok", "5"), product("p1", tc.price))

			_, err := f.uc.Place(context.Background(), PlaceOrderInput{
				UserID:            "u1",
				Items:             []LineItemInput{{ProductID: "ok", Quantity: "1"}, {ProductID: "p1", Quantity: tc.quantity}},
				ShippingAddressID: "a1",
				PaymentMethod:     "COD",
			})

			var itemErr *domainErrors.LineItemError
			require.ErrorAs(t, err, &itemErr)
			assert.ErrorIs(t, err, domainErrors.ErrInvalidLineItem)
			assert.Equal(t, 1, itemErr.Index)
			assert.Zero(t, f.orders.Count())
		})
	}
}

func TestPlaceRejectsMalformedRequests(t *testing.T) {
	base := PlaceOrderInput{
		UserID:            "u1",
		Items:             []LineItemInput{{ProductID: "p1", Quantity: "1"}},
		ShippingAddressID: "a1",
		PaymentMethod:     "COD",
	}

	cases := map[string]func(in *PlaceOrderInput){
		"missing address": func(in *PlaceOrderInput) { in.ShippingAddressID = "  " },
		"empty cart":      func(in *PlaceOrderInput) { in.Items = nil },
		"missing user":    func(in *PlaceOrderInput) { in.UserID = "" },
		"unknown method":  func(in *PlaceOrderInput) { in.PaymentMethod = "barter" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newPlacementFixture(product("p1", "10"))
			in := base
			mutate(&in)

			_, err := f.uc.Place(context.Background(), in)

			assert.ErrorIs(t, err, domainErrors.ErrInvalidRequest)
			assert.Zero(t, f.catalog.Lookups)
			assert.Zero(t, f.orders.Count())
		})
	}
}

func TestPlaceCatalogTimeoutIsNotProductNotFound(t *testing.T) {
	f := newPlacementFixture(product("p1", "10"))
	f.catalog.Block = true
	settings := testSettings()
	settings.CatalogTimeout = 20 * time.Millisecond
	f.uc = NewPlacementUseCase(f.orders, f.catalog, f.gateway, f.observer, settings, discardLogger())

	_, err := f.uc.Place(context.Background(), PlaceOrderInput{
		UserID:            "u1",
		Items:             []LineItemInput{{ProductID: "p1", Quantity: "1"}},
		ShippingAddressID: "a1",
		PaymentMethod:     "COD",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, domainErrors.ErrProductNotFound)
	assert.Zero(t, f.orders.Count())
}

func TestPlaceSnapshotsPrice(t *testing.T) {
	f := newPlacementFixture(product("p1", "100"))

	order, err := f.uc.Place(context.Background(), PlaceOrderInput{
		UserID:            "u1",
		Items:             []LineItemInput{{ProductID: "p1", Quantity: "1"}},
		ShippingAddressID: "a1",
		PaymentMethod:     "COD",
	})
	require.NoError(t, err)

	f.catalog.SetPrice("p1", "150")

	stored := f.orders.Snapshot(order.ID)
	assert.True(t, stored.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(100)))
}

func TestPlacePersistenceFailure(t *testing.T) {
	f := newPlacementFixture(product("p1", "100"))
	f.orders.CreateErr = errors.New("connection reset")

	_, err := f.uc.Place(context.Background(), PlaceOrderInput{
		UserID:            "u1",
		Items:             []LineItemInput{{ProductID: "p1", Quantity: "1"}},
		ShippingAddressID: "a1",
	})

	assert.ErrorIs(t, err, domainErrors.ErrPersistence)
	assert.Equal(t, 1, f.gateway.Calls())
	assert.Equal(t, 1, f.observer.Failures["persistence"])
}

func TestPlaceTotalEqualsSumOfLines(t *testing.T) {
	for run := 0; run < 50; run++ {
		catalog := testhelpers.RandomCatalog(6)
		f := newPlacementFixture()
		f.catalog.Products = catalog

		var inputs []LineItemInput
		expected := decimal.Zero
		for id, p := range catalog {
			qty := testhelpers.RandomQuantity(5)
			inputs = append(inputs, LineItemInput{ProductID: id, Quantity: fmt.Sprint(qty)})
			expected = expected.Add(decimal.RequireFromString(p.SellingPrice).Mul(decimal.NewFromInt(qty)))
		}

		order, err := f.uc.Place(context.Background(), PlaceOrderInput{
			UserID:            "u1",
			Items:             inputs,
			ShippingAddressID: "a1",
			PaymentMethod:     "card",
		})

		require.NoError(t, err)
		require.True(t, order.TotalAmount.Equal(expected), "total %s want %s", order.TotalAmount, expected)
		require.True(t, order.TotalAmount.Equal(model.SumLineTotals(order.Items)))
		for i, item := range order.Items {
			require.Equal(t, inputs[i].ProductID, item.ProductID)
			require.True(t, item.LineTotal.Equal(item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))))
		}
	}
}
