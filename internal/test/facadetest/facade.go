// Package facadetest provides an HTTP facade stub for handler and router tests.
package facadetest

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
	"github.com/devxankit/Electrici-toys/internal/usecase"
)

// FacadeStub provides controllable behaviour for order endpoints. Unset
// functions fall back to a canned order.
type FacadeStub struct {
	ParseFn   func(string) (model.Actor, error)
	PlaceFn   func(context.Context, usecase.PlaceOrderInput) (*model.Order, error)
	VerifyFn  func(context.Context, string, string, string) (*model.Order, error)
	UpdateFn  func(context.Context, string, string) (*model.Order, error)
	CancelFn  func(context.Context, string, model.Actor) (*model.Order, error)
	ListFn    func(context.Context) ([]model.OrderView, error)
	UserFn    func(context.Context, string) ([]model.OrderView, error)
	GetFn     func(context.Context, string, model.Actor) (*model.OrderView, error)
	PingErr   error
	Principal map[string]model.Actor
}

// SampleOrder returns a pending COD order owned by userID.
func SampleOrder(userID string) *model.Order {
	at := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	items := []model.LineItem{model.NewLineItem("prod-1", 2, decimal.RequireFromString("499.50"))}
	return model.NewOrder("ord-1", userID, "addr-1", model.PaymentMethodCOD, items, "", at)
}

// SampleView returns the read model of SampleOrder.
func SampleView(userID string) model.OrderView {
	order := SampleOrder(userID)
	return model.OrderView{
		ID:                order.ID,
		UserID:            userID,
		ShippingAddressID: "addr-1",
		Customer:          &model.Customer{ID: userID, Name: "Asha"},
		ShippingAddress:   &model.ShippingAddress{ID: "addr-1", City: "Pune"},
		Items:             []model.LineItemView{{LineItem: order.Items[0], ProductName: "RC Car"}},
		TotalAmount:       order.TotalAmount,
		PaymentMethod:     order.PaymentMethod,
		PaymentStatus:     order.PaymentStatus,
		Status:            order.Status,
		StatusTimestamps:  order.StatusTimestamps,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

// ParseToken resolves tokens listed in Principal.
func (s FacadeStub) ParseToken(token string) (model.Actor, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if actor, ok := s.Principal[token]; ok {
		return actor, nil
	}
	return model.Actor{UserID: "user-1", Role: model.RoleUser}, nil
}

func (s FacadeStub) PlaceOrder(ctx context.Context, in usecase.PlaceOrderInput) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, in)
	}
	return SampleOrder(in.UserID), nil
}

func (s FacadeStub) VerifyPayment(ctx context.Context, reference, transactionID, status string) (*model.Order, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, reference, transactionID, status)
	}
	return SampleOrder("user-1"), nil
}

func (s FacadeStub) UpdateOrderStatus(ctx context.Context, reference, status string) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, reference, status)
	}
	return SampleOrder("user-1"), nil
}

func (s FacadeStub) CancelOrder(ctx context.Context, reference string, actor model.Actor) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, reference, actor)
	}
	return SampleOrder(actor.UserID), nil
}

func (s FacadeStub) Orders(ctx context.Context) ([]model.OrderView, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.OrderView{SampleView("user-1")}, nil
}

func (s FacadeStub) UserOrders(ctx context.Context, userID string) ([]model.OrderView, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, userID)
	}
	return []model.OrderView{SampleView(userID)}, nil
}

func (s FacadeStub) Order(ctx context.Context, id string, actor model.Actor) (*model.OrderView, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id, actor)
	}
	if id != "ord-1" {
		return nil, domainErrors.ErrOrderNotFound
	}
	view := SampleView("user-1")
	return &view, nil
}

func (s FacadeStub) Ping(context.Context) error {
	return s.PingErr
}
