package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders accepted by the order builder",
	})

	ordersSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_settled_total",
		Help: "Orders moved to PAID by reconciliation",
	})

	paymentsAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_accepted_total",
			Help: "Payments appended to the ledger",
		},
		[]string{"method"},
	)

	paymentAmount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_amount_cents_total",
			Help: "Sum of accepted payment amounts in minor currency units",
		},
		[]string{"method"},
	)

	ledgerRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_retries_total",
			Help: "Optimistic concurrency retries on order writes",
		},
		[]string{"operation"},
	)
)

func OrderCreated() { ordersCreated.Inc() }

func OrderSettled() { ordersSettled.Inc() }

func PaymentAccepted(method string, amountCents int64) {
	paymentsAccepted.WithLabelValues(method).Inc()
	paymentAmount.WithLabelValues(method).Add(float64(amountCents))
}

func LedgerRetry(operation string) { ledgerRetries.WithLabelValues(operation).Inc() }
