package usecase

import "order_management/internal/domain/entities"

// reconcile is the decision half of settlement: a pure function of the order's total and
// the ledger it is given. Persisting the result is the caller's job.
func reconcile(o entities.Order, ledger []entities.Payment) entities.OrderStatus {
	return entities.SettlementStatus(o.Status, o.TotalCents, entities.SumPayments(ledger))
}
