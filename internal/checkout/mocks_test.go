package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/jacksleight/simple-commerce/internal/cart"
	"github.com/jacksleight/simple-commerce/internal/domain"
	"github.com/jacksleight/simple-commerce/internal/gateway"
	"github.com/jacksleight/simple-commerce/internal/repository"
	"github.com/jacksleight/simple-commerce/internal/validate"
)

// In-memory fakes for the external collaborators. Save stores a copy and
// Get returns a copy, so stages only observe state that was persisted.

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.LineItems = append([]domain.LineItem(nil), o.LineItems...)
	if o.Data != nil {
		clone.Data = make(map[string]any, len(o.Data))
		for k, v := range o.Data {
			clone.Data[k] = v
		}
	}
	return &clone
}

type memOrders struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	saves  int
}

func newMemOrders(seed ...*domain.Order) *memOrders {
	m := &memOrders{orders: make(map[string]*domain.Order)}
	for _, o := range seed {
		m.orders[o.ID] = cloneOrder(o)
	}
	return m
}

func (m *memOrders) Get(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (m *memOrders) Save(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", len(m.orders)+1)
	}
	m.orders[order.ID] = cloneOrder(order)
	m.saves++
	return nil
}

// persisted returns the stored copy, bypassing the caller's working copy.
func (m *memOrders) persisted(id string) *domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneOrder(m.orders[id])
}

type memCustomers struct {
	mu        sync.Mutex
	customers map[string]*domain.Customer
}

func newMemCustomers(seed ...*domain.Customer) *memCustomers {
	m := &memCustomers{customers: make(map[string]*domain.Customer)}
	for _, c := range seed {
		m.customers[c.ID] = c
	}
	return m
}

func (m *memCustomers) Get(_ context.Context, id string) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (m *memCustomers) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, repository.ErrCustomerNotFound
}

func (m *memCustomers) Save(_ context.Context, customer *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if customer.ID == "" {
		customer.ID = fmt.Sprintf("customer-%d", len(m.customers)+1)
	}
	clone := *customer
	m.customers[customer.ID] = &clone
	return nil
}

type memCoupons struct {
	mu      sync.Mutex
	coupons map[string]*domain.Coupon
	redeems map[string]int
}

func newMemCoupons(seed ...*domain.Coupon) *memCoupons {
	m := &memCoupons{coupons: make(map[string]*domain.Coupon), redeems: make(map[string]int)}
	for _, c := range seed {
		m.coupons[c.ID] = c
	}
	return m
}

func (m *memCoupons) Get(_ context.Context, id string) (*domain.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.coupons[id]
	if !ok {
		return nil, repository.ErrCouponNotFound
	}
	clone := *c
	return &clone, nil
}

func (m *memCoupons) FindByCode(_ context.Context, code string) (*domain.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.coupons {
		if c.Code == code {
			clone := *c
			return &clone, nil
		}
	}
	return nil, repository.ErrCouponNotFound
}

func (m *memCoupons) Save(_ context.Context, coupon *domain.Coupon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *coupon
	m.coupons[coupon.ID] = &clone
	return nil
}

func (m *memCoupons) Redeem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.coupons[id]
	if !ok {
		return repository.ErrCouponNotFound
	}
	if c.MaxRedemptions > 0 && c.RedeemedCount >= c.MaxRedemptions {
		return repository.ErrCouponExhausted
	}
	c.RedeemedCount++
	m.redeems[id]++
	return nil
}

type memProducts struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newMemProducts(seed ...*domain.Product) *memProducts {
	m := &memProducts{products: make(map[string]*domain.Product)}
	for _, p := range seed {
		m.products[p.ID] = p
	}
	return m
}

func (m *memProducts) Get(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memProducts) Save(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

type memCarts struct {
	mu        sync.Mutex
	sessions  map[string]string
	forgotten []string
}

func newMemCarts() *memCarts {
	return &memCarts{sessions: make(map[string]string)}
}

func (m *memCarts) CurrentOrderID(_ context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.sessions[sessionID]
	if !ok {
		return "", cart.ErrNoCart
	}
	return id, nil
}

func (m *memCarts) Attach(_ context.Context, sessionID, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = orderID
	return nil
}

func (m *memCarts) Forget(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	m.forgotten = append(m.forgotten, sessionID)
	return nil
}

// recordingGateway wraps another gateway and counts purchase calls.
type recordingGateway struct {
	inner     gateway.Gateway
	purchases int
}

func (g *recordingGateway) Name() string                              { return g.inner.Name() }
func (g *recordingGateway) PurchaseRules() map[string][]validate.Rule { return g.inner.PurchaseRules() }
func (g *recordingGateway) PurchaseMessages() map[string]string       { return g.inner.PurchaseMessages() }

func (g *recordingGateway) Purchase(ctx context.Context, request map[string]any, order *domain.Order) (gateway.PurchaseResult, error) {
	g.purchases++
	return g.inner.Purchase(ctx, request, order)
}
