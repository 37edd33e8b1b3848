package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"order_management/internal/domain/entities"
	"order_management/internal/infrastructure/metrics"
	"order_management/internal/usecase/interfaces"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrProductNotFound         = errors.New("product not found")
	ErrProductInactive         = errors.New("product is inactive")
	ErrInvalidOrderID          = errors.New("invalid order id")
	ErrInvalidCustomerID       = errors.New("invalid customer id")
	ErrInvalidProductID        = errors.New("invalid product id")
	ErrEmptyOrder              = errors.New("order must have at least one item")
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrInvalidOrderStatus      = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrConcurrentUpdate        = errors.New("order was updated concurrently, try again")
	ErrOrderTotalOverflow      = errors.New("order total exceeds the supported amount")
)

// OrderItemInput is one requested (product, quantity) pair.
type OrderItemInput struct {
	ProductID string
	Quantity  int64
}

// OrderDetails is an order hydrated with its customer and ledger, ready for response shaping.
type OrderDetails struct {
	Order    entities.Order
	Customer entities.Customer
	Payments []entities.Payment
}

func (d OrderDetails) PaidCents() int64 {
	return entities.SumPayments(d.Payments)
}

// IOrderUseCase exposes order operations.
//
//   - Create: the order builder (prices frozen into lines, total fixed, status NEW)
//   - List / GetByID: read-only projections
//   - UpdateStatus: explicit status changes outside the payment path (cancellation)

type IOrderUseCase interface {
	Create(ctx context.Context, customerID string, items []OrderItemInput) (OrderDetails, error)
	List(ctx context.Context) ([]entities.Order, error)
	GetByID(ctx context.Context, id string) (OrderDetails, error)
	UpdateStatus(ctx context.Context, id string, status string) (OrderDetails, error)
}

type OrderUseCase struct {
	repo         interfaces.IOrderRepository
	customerRepo interfaces.ICustomerRepository
	productRepo  interfaces.IProductRepository
	paymentRepo  interfaces.IPaymentRepository
	maxAttempts  int
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(
	repo interfaces.IOrderRepository,
	customerRepo interfaces.ICustomerRepository,
	productRepo interfaces.IProductRepository,
	paymentRepo interfaces.IPaymentRepository,
	maxAttempts int,
) *OrderUseCase {
	return &OrderUseCase{
		repo:         repo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		paymentRepo:  paymentRepo,
		maxAttempts:  maxAttempts,
	}
}

func (u *OrderUseCase) Create(ctx context.Context, customerID string, items []OrderItemInput) (OrderDetails, error) {
	customerID = strings.TrimSpace(customerID)
	log.Printf("[order][usecase] create start customer_id=%s items=%d", customerID, len(items))
	if customerID == "" {
		return OrderDetails{}, ErrInvalidCustomerID
	}
	if len(items) == 0 {
		return OrderDetails{}, ErrEmptyOrder
	}
	for _, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return OrderDetails{}, ErrInvalidProductID
		}
		if it.Quantity < 1 {
			return OrderDetails{}, ErrInvalidQuantity
		}
	}

	customer, err := u.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		log.Printf("[order][usecase] failed loading customer customer_id=%s err=%v", customerID, err)
		return OrderDetails{}, err
	}
	if customer.ID == "" {
		log.Printf("[order][usecase] customer not found customer_id=%s", customerID)
		return OrderDetails{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerID)
	}

	// Every product must resolve before anything is written.
	resolved := make(map[string]entities.Product, len(items))
	lines := make([]entities.OrderLine, 0, len(items))
	for _, it := range items {
		productID := strings.TrimSpace(it.ProductID)
		product, ok := resolved[productID]
		if !ok {
			product, err = u.productRepo.GetByID(ctx, productID)
			if err != nil {
				log.Printf("[order][usecase] failed loading product product_id=%s err=%v", productID, err)
				return OrderDetails{}, err
			}
			if product.ID == "" {
				log.Printf("[order][usecase] product not found product_id=%s", productID)
				return OrderDetails{}, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
			}
			if !product.Active {
				log.Printf("[order][usecase] product inactive product_id=%s", productID)
				return OrderDetails{}, fmt.Errorf("%w: %s", ErrProductInactive, productID)
			}
			resolved[productID] = product
		}

		lines = append(lines, entities.OrderLine{
			ProductID:      product.ID,
			ProductName:    product.Name,
			Quantity:       it.Quantity,
			UnitPriceCents: product.PriceCents,
		})
	}

	total, ok := entities.LinesTotal(lines)
	if !ok {
		log.Printf("[order][usecase] order total overflow customer_id=%s lines=%d", customerID, len(lines))
		return OrderDetails{}, ErrOrderTotalOverflow
	}

	now := time.Now().UTC()
	o := entities.Order{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		Status:     entities.OrderStatusNew,
		TotalCents: total,
		Lines:      lines,
		PaymentIDs: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    1,
	}

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		log.Printf("[order][usecase] order repository create failed order_id=%s err=%v", o.ID, err)
		return OrderDetails{}, err
	}
	metrics.OrderCreated()
	log.Printf("[order][usecase] create success order_id=%s customer_id=%s total_cents=%d lines=%d", created.ID, created.CustomerID, created.TotalCents, len(created.Lines))

	return OrderDetails{Order: created, Customer: customer, Payments: []entities.Payment{}}, nil
}

// List returns every order, newest first.
func (u *OrderUseCase) List(ctx context.Context) ([]entities.Order, error) {
	orders, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (OrderDetails, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return OrderDetails{}, ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return OrderDetails{}, err
	}
	if o.ID == "" {
		return OrderDetails{}, ErrOrderNotFound
	}
	return u.hydrate(ctx, o)
}

// UpdateStatus applies an explicit status change. Re-applying the current status is a no-op;
// the only real transition available here is NEW -> CANCELLED. PAID is reached through the
// payments ledger only.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status string) (OrderDetails, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return OrderDetails{}, ErrInvalidOrderID
	}
	target, ok := entities.ParseOrderStatus(status)
	if !ok {
		return OrderDetails{}, fmt.Errorf("%w: %q", ErrInvalidOrderStatus, status)
	}
	log.Printf("[order][usecase] update-status start order_id=%s target=%s", id, target)

	var updated entities.Order
	err := retryOnStale(ctx, u.maxAttempts, "update_status", id, func() error {
		current, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.ID == "" {
			return ErrOrderNotFound
		}
		if current.Status == target {
			updated = current
			return nil
		}
		if current.Status != entities.OrderStatusNew || target != entities.OrderStatusCancelled {
			log.Printf("[order][usecase] rejected transition order_id=%s from=%s to=%s", id, current.Status, target)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, target)
		}

		updated, err = u.repo.UpdateStatus(ctx, id, target, current.Version)
		return err
	})
	if err != nil {
		return OrderDetails{}, err
	}
	log.Printf("[order][usecase] update-status success order_id=%s status=%s", updated.ID, updated.Status)
	return u.hydrate(ctx, updated)
}

func (u *OrderUseCase) hydrate(ctx context.Context, o entities.Order) (OrderDetails, error) {
	customer, err := u.customerRepo.GetByID(ctx, o.CustomerID)
	if err != nil {
		return OrderDetails{}, err
	}
	payments, err := u.paymentRepo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderDetails{}, err
	}
	return OrderDetails{Order: o, Customer: customer, Payments: payments}, nil
}
