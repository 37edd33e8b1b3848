package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"order_management/internal/domain/entities"
	"order_management/internal/usecase/interfaces"
)

// memStore is an in-memory stand-in for the DynamoDB tables that keeps the same
// conditional-write semantics: order writes are checked against the stored version and the
// payment append moves the ledger and the order together or not at all.
type memStore struct {
	mu        sync.Mutex
	customers map[string]entities.Customer
	products  map[string]entities.Product
	orders    map[string]entities.Order
	payments  map[string][]entities.Payment
}

func newMemStore() *memStore {
	return &memStore{
		customers: map[string]entities.Customer{},
		products:  map[string]entities.Product{},
		orders:    map[string]entities.Order{},
		payments:  map[string][]entities.Payment{},
	}
}

func cloneOrder(o entities.Order) entities.Order {
	o.Lines = append([]entities.OrderLine(nil), o.Lines...)
	o.PaymentIDs = append([]string{}, o.PaymentIDs...)
	return o
}

type memCustomers struct{ s *memStore }
type memProducts struct{ s *memStore }
type memOrders struct{ s *memStore }
type memPayments struct{ s *memStore }

var (
	_ interfaces.ICustomerRepository = memCustomers{}
	_ interfaces.IProductRepository  = memProducts{}
	_ interfaces.IOrderRepository    = memOrders{}
	_ interfaces.IPaymentRepository  = memPayments{}
)

func (r memCustomers) Create(_ context.Context, c entities.Customer) (entities.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.customers {
		if existing.Email == c.Email {
			return entities.Customer{}, interfaces.ErrEmailAlreadyUsed
		}
	}
	r.s.customers[c.ID] = c
	return c, nil
}

func (r memCustomers) GetByID(_ context.Context, id string) (entities.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.customers[id], nil
}

func (r memCustomers) List(_ context.Context) ([]entities.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entities.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		out = append(out, c)
	}
	return out, nil
}

func (r memProducts) Create(_ context.Context, p entities.Product) (entities.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = p
	return p, nil
}

func (r memProducts) GetByID(_ context.Context, id string) (entities.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.products[id], nil
}

func (r memProducts) List(_ context.Context, f interfaces.ProductFilter) ([]entities.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entities.Product{}
	for _, p := range r.s.products {
		if f.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.NameContains)) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Active != nil && p.Active != *f.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r memProducts) SetActive(_ context.Context, id string, active bool) (entities.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return entities.Product{}, nil
	}
	p.Active = active
	r.s.products[id] = p
	return p, nil
}

// setPrice changes the catalog price behind the use cases' back.
func (r memProducts) setPrice(id string, cents int64) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.products[id]
	p.PriceCents = cents
	r.s.products[id] = p
}

func (r memOrders) Create(_ context.Context, o entities.Order) (entities.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID] = cloneOrder(o)
	return o, nil
}

func (r memOrders) GetByID(_ context.Context, id string) (entities.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return entities.Order{}, nil
	}
	return cloneOrder(o), nil
}

func (r memOrders) List(_ context.Context) ([]entities.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entities.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (r memOrders) UpdateStatus(_ context.Context, id string, status entities.OrderStatus, expectedVersion int64) (entities.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok || o.Version != expectedVersion {
		return entities.Order{}, interfaces.ErrStaleOrder
	}
	o.Status = status
	o.Version++
	o.UpdatedAt = time.Now().UTC()
	r.s.orders[id] = o
	return cloneOrder(o), nil
}

func (r memPayments) Append(_ context.Context, p entities.Payment, order entities.Order, next entities.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[order.ID]
	if !ok || o.Version != order.Version {
		return interfaces.ErrStaleOrder
	}
	o.Status = next
	o.PaymentIDs = append(append([]string{}, o.PaymentIDs...), p.ID)
	o.Version++
	o.UpdatedAt = time.Now().UTC()
	r.s.orders[o.ID] = o
	r.s.payments[p.OrderID] = append(r.s.payments[p.OrderID], p)
	return nil
}

func (r memPayments) ListByOrderID(_ context.Context, orderID string) ([]entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]entities.Payment{}, r.s.payments[orderID]...), nil
}
