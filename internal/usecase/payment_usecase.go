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
	ErrInvalidPaymentOrderID = errors.New("invalid order_id")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrInvalidPaymentAmount  = errors.New("payment amount must be positive")
	ErrOrderAlreadyPaid      = errors.New("order already settled")
	ErrOrderCancelled        = errors.New("order cancelled")
)

// IPaymentUseCase is the payments ledger.
//
//   - Submit: append a payment and reconcile the order in the same write
//   - ListByOrderID: the order's ledger, oldest first
//   - Reconcile: re-run settlement for an order against its current ledger

type IPaymentUseCase interface {
	Submit(ctx context.Context, orderID string, method string, amountCents int64) (entities.Payment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error)
	Reconcile(ctx context.Context, orderID string) (entities.Order, error)
}

type PaymentUseCase struct {
	repo        interfaces.IPaymentRepository
	orderRepo   interfaces.IOrderRepository
	maxAttempts int
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, orderRepo interfaces.IOrderRepository, maxAttempts int) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, orderRepo: orderRepo, maxAttempts: maxAttempts}
}

func (u *PaymentUseCase) Submit(ctx context.Context, orderID string, method string, amountCents int64) (entities.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	log.Printf("[payment][usecase] submit start order_id=%s method=%s amount_cents=%d", orderID, method, amountCents)
	if orderID == "" {
		return entities.Payment{}, ErrInvalidPaymentOrderID
	}
	pm, ok := entities.ParsePaymentMethod(method)
	if !ok {
		return entities.Payment{}, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method)
	}
	if amountCents <= 0 {
		return entities.Payment{}, ErrInvalidPaymentAmount
	}

	p := entities.Payment{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		Method:      pm,
		AmountCents: amountCents,
		PaidAt:      time.Now().UTC(),
	}

	var (
		before entities.OrderStatus
		next   entities.OrderStatus
	)
	err := retryOnStale(ctx, u.maxAttempts, "submit_payment", orderID, func() error {
		o, err := u.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			log.Printf("[payment][usecase] failed loading order order_id=%s err=%v", orderID, err)
			return err
		}
		if o.ID == "" {
			log.Printf("[payment][usecase] order not found order_id=%s", orderID)
			return ErrOrderNotFound
		}
		switch o.Status {
		case entities.OrderStatusPaid:
			log.Printf("[payment][usecase] order already paid order_id=%s", orderID)
			return ErrOrderAlreadyPaid
		case entities.OrderStatusCancelled:
			log.Printf("[payment][usecase] order cancelled order_id=%s", orderID)
			return ErrOrderCancelled
		}

		ledger, err := u.repo.ListByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		ledger = append(ledger, p)
		before = o.Status
		next = reconcile(o, ledger)
		log.Printf("[payment][usecase] reconciled order_id=%s total_cents=%d paid_cents=%d next=%s",
			orderID, o.TotalCents, entities.SumPayments(ledger), next)

		return u.repo.Append(ctx, p, o, next)
	})
	if err != nil {
		log.Printf("[payment][usecase] submit failed order_id=%s err=%v", orderID, err)
		return entities.Payment{}, err
	}

	metrics.PaymentAccepted(string(p.Method), p.AmountCents)
	if before != next && next == entities.OrderStatusPaid {
		metrics.OrderSettled()
		log.Printf("[payment][usecase] order settled order_id=%s", orderID)
	}
	log.Printf("[payment][usecase] submit success order_id=%s payment_id=%s status=%s", orderID, p.ID, next)
	return p, nil
}

func (u *PaymentUseCase) ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrInvalidPaymentOrderID
	}

	o, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.ID == "" {
		return nil, ErrOrderNotFound
	}

	payments, err := u.repo.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].PaidAt.Before(payments[j].PaidAt)
	})
	return payments, nil
}

// Reconcile recomputes the order's status from its stored ledger and persists a change,
// if any. Running it again with the same ledger changes nothing.
func (u *PaymentUseCase) Reconcile(ctx context.Context, orderID string) (entities.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Order{}, ErrInvalidPaymentOrderID
	}

	var result entities.Order
	err := retryOnStale(ctx, u.maxAttempts, "reconcile", orderID, func() error {
		o, err := u.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.ID == "" {
			return ErrOrderNotFound
		}
		ledger, err := u.repo.ListByOrderID(ctx, orderID)
		if err != nil {
			return err
		}

		next := reconcile(o, ledger)
		if next == o.Status {
			result = o
			return nil
		}
		result, err = u.orderRepo.UpdateStatus(ctx, orderID, next, o.Version)
		if err != nil {
			return err
		}
		metrics.OrderSettled()
		log.Printf("[payment][usecase] reconcile changed status order_id=%s from=%s to=%s", orderID, o.Status, next)
		return nil
	})
	if err != nil {
		return entities.Order{}, err
	}
	return result, nil
}
