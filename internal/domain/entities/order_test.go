package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettlementStatus(t *testing.T) {
	cases := []struct {
		name    string
		current OrderStatus
		total   int64
		paid    int64
		want    OrderStatus
	}{
		{name: "new uncovered", current: OrderStatusNew, total: 500000, paid: 300000, want: OrderStatusNew},
		{name: "new exactly covered", current: OrderStatusNew, total: 500000, paid: 500000, want: OrderStatusPaid},
		{name: "new overpaid", current: OrderStatusNew, total: 100, paid: 150, want: OrderStatusPaid},
		{name: "new nothing paid", current: OrderStatusNew, total: 100, paid: 0, want: OrderStatusNew},
		{name: "paid stays paid", current: OrderStatusPaid, total: 100, paid: 0, want: OrderStatusPaid},
		{name: "cancelled never settles", current: OrderStatusCancelled, total: 100, paid: 1000, want: OrderStatusCancelled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SettlementStatus(tc.current, tc.total, tc.paid))
		})
	}
}

func TestSettlementStatus_Idempotent(t *testing.T) {
	for _, paid := range []int64{0, 99, 100, 101} {
		first := SettlementStatus(OrderStatusNew, 100, paid)
		second := SettlementStatus(first, 100, paid)
		assert.Equal(t, first, second, "paid=%d", paid)
	}
}

func TestLinesTotal(t *testing.T) {
	lines := []OrderLine{
		{ProductID: "p1", Quantity: 2, UnitPriceCents: 15000},
		{ProductID: "p2", Quantity: 1, UnitPriceCents: 500000},
		{ProductID: "p1", Quantity: 3, UnitPriceCents: 3000},
	}
	total, ok := LinesTotal(lines)
	require.True(t, ok)
	assert.Equal(t, int64(539000), total)
	assert.Equal(t, int64(30000), lines[0].TotalCents())

	total, ok = LinesTotal(nil)
	assert.True(t, ok)
	assert.Zero(t, total)
}

func TestLinesTotal_Int64Edges(t *testing.T) {
	cases := []struct {
		name   string
		lines  []OrderLine
		want   int64
		wantOK bool
	}{
		{
			name:   "largest line that fits",
			lines:  []OrderLine{{Quantity: math.MaxInt64 / 500000, UnitPriceCents: 500000}},
			want:   (math.MaxInt64 / 500000) * 500000,
			wantOK: true,
		},
		{
			name:  "line product overflows",
			lines: []OrderLine{{Quantity: math.MaxInt64/500000 + 1, UnitPriceCents: 500000}},
		},
		{
			name:   "total exactly at max",
			lines:  []OrderLine{{Quantity: 1, UnitPriceCents: math.MaxInt64 - 1}, {Quantity: 1, UnitPriceCents: 1}},
			want:   math.MaxInt64,
			wantOK: true,
		},
		{
			name:  "running total overflows",
			lines: []OrderLine{{Quantity: 1, UnitPriceCents: math.MaxInt64}, {Quantity: 1, UnitPriceCents: 1}},
		},
		{
			name:   "free product with huge quantity",
			lines:  []OrderLine{{Quantity: math.MaxInt64, UnitPriceCents: 0}},
			want:   0,
			wantOK: true,
		},
		{
			name:  "negative quantity",
			lines: []OrderLine{{Quantity: -1, UnitPriceCents: 100}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := LinesTotal(tc.lines)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	s, ok := ParseOrderStatus(" cancelled ")
	require.True(t, ok)
	assert.Equal(t, OrderStatusCancelled, s)

	_, ok = ParseOrderStatus("PARTIALLY_PAID")
	assert.False(t, ok)

	assert.True(t, OrderStatusPaid.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusNew.IsTerminal())
}
