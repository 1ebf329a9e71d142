package test

import (
	"context"
	"sort"
	"sync"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

// MemoryOrderRepository keeps orders in memory with the same optimistic
// version check the Postgres storage performs.
type MemoryOrderRepository struct {
	mu        sync.Mutex
	orders    map[string]*model.Order
	sessions  map[string]string
	Events    []model.OutboxEvent
	Customers map[string]*model.Customer
	Addresses map[string]*model.ShippingAddress
	Names     map[string]string

	CreateErr error
	GetErr    error
	UpdateErr error
	// BeforeUpdate runs before the version check of every Update call.
	BeforeUpdate func(order *model.Order)

	Creates int
	Updates int
	Reads   int
}

// NewMemoryOrderRepository constructs an empty repository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders:   make(map[string]*model.Order),
		sessions: make(map[string]string),
	}
}

// Create stores a copy of the order and its event.
func (r *MemoryOrderRepository) Create(ctx context.Context, order *model.Order, event model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.Creates++
	r.orders[order.ID] = order.Clone()
	if order.GatewaySessionID != "" {
		r.sessions[order.GatewaySessionID] = order.ID
	}
	r.Events = append(r.Events, event)
	return nil
}

// Put seeds an order without recording an event.
func (r *MemoryOrderRepository) Put(order *model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order.Clone()
	if order.GatewaySessionID != "" {
		r.sessions[order.GatewaySessionID] = order.ID
	}
}

// Snapshot returns the stored order.
func (r *MemoryOrderRepository) Snapshot(id string) *model.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[id].Clone()
}

// Count returns the number of stored orders.
func (r *MemoryOrderRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

// EventCount returns the number of recorded outbox events.
func (r *MemoryOrderRepository) EventCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Events)
}

func (r *MemoryOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads++
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	order, ok := r.orders[id]
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	return order.Clone(), nil
}

func (r *MemoryOrderRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	r.mu.Lock()
	id, ok := r.sessions[sessionID]
	r.mu.Unlock()
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	return r.GetByID(ctx, id)
}

// Update replaces the stored order when versions match.
func (r *MemoryOrderRepository) Update(ctx context.Context, order *model.Order, event model.OutboxEvent) error {
	if r.BeforeUpdate != nil {
		r.BeforeUpdate(order)
	}
	if r.UpdateErr != nil {
		return r.UpdateErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[order.ID]
	if !ok {
		return domainErrors.ErrOrderNotFound
	}
	if stored.Version != order.Version {
		return domainErrors.ErrConcurrentModification
	}
	r.Updates++
	order.Version++
	r.orders[order.ID] = order.Clone()
	r.Events = append(r.Events, event)
	return nil
}

// Bump increments the stored version as if another writer had committed.
func (r *MemoryOrderRepository) Bump(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.orders[id]; ok {
		stored.Version++
	}
}

func (r *MemoryOrderRepository) ListAll(ctx context.Context) ([]model.OrderView, error) {
	return r.list(func(*model.Order) bool { return true }), nil
}

func (r *MemoryOrderRepository) ListByUser(ctx context.Context, userID string) ([]model.OrderView, error) {
	return r.list(func(o *model.Order) bool { return o.UserID == userID }), nil
}

func (r *MemoryOrderRepository) GetView(ctx context.Context, id string) (*model.OrderView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, domainErrors.ErrOrderNotFound
	}
	view := r.view(order)
	return &view, nil
}

func (r *MemoryOrderRepository) list(keep func(*model.Order) bool) []model.OrderView {
	r.mu.Lock()
	defer r.mu.Unlock()
	views := make([]model.OrderView, 0, len(r.orders))
	for _, order := range r.orders {
		if keep(order) {
			views = append(views, r.view(order))
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views
}

func (r *MemoryOrderRepository) view(order *model.Order) model.OrderView {
	items := make([]model.LineItemView, len(order.Items))
	for i, item := range order.Items {
		items[i] = model.LineItemView{LineItem: item, ProductName: r.Names[item.ProductID]}
	}
	clone := order.Clone()
	return model.OrderView{
		ID:                order.ID,
		GatewaySessionID:  order.GatewaySessionID,
		UserID:            order.UserID,
		ShippingAddressID: order.ShippingAddressID,
		Customer:          r.Customers[order.UserID],
		ShippingAddress:   r.Addresses[order.ShippingAddressID],
		Items:             items,
		TotalAmount:       order.TotalAmount,
		PaymentMethod:     order.PaymentMethod,
		PaymentStatus:     order.PaymentStatus,
		TransactionID:     order.TransactionID,
		Status:            order.Status,
		StatusTimestamps:  clone.StatusTimestamps,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

// CatalogStub serves products from a map.
type CatalogStub struct {
	mu       sync.Mutex
	Products map[string]*model.Product
	Err      error
	// Block makes lookups wait for context cancellation.
	Block   bool
	Lookups int
}

func (c *CatalogStub) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	c.mu.Lock()
	c.Lookups++
	block, err := c.Block, c.Err
	product, ok := c.Products[id]
	c.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainErrors.ErrProductNotFound
	}
	cp := *product
	return &cp, nil
}

// SetPrice changes a product's selling price.
func (c *CatalogStub) SetPrice(id, price string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Products[id].SellingPrice = price
}
