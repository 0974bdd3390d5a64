package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusPaid is the only order status counted by the aggregates.
const StatusPaid = "paid"

// LineItem is one entry of an order's item list.
type LineItem struct {
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// OrderRecord is a decoded document from the orders collection.
// Timestamps are not stored separately; the last "-" segment of ID carries
// the creation time in milliseconds.
type OrderRecord struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Total  decimal.Decimal `json:"total"`
	Items  []LineItem      `json:"items,omitempty"`
}

// Paid reports whether the order counts towards the sales aggregates.
func (o OrderRecord) Paid() bool {
	return o.Status == StatusPaid
}

// AggregationResult holds the sales aggregates of one run.
// Map iteration order carries no meaning; use the sorted views for display.
type AggregationResult struct {
	TotalRevenue   decimal.Decimal            `json:"totalRevenue"`
	QuantityByItem map[string]int64           `json:"quantityByItem"`
	RevenueByItem  map[string]decimal.Decimal `json:"revenueByItem"`
	RevenueByDate  map[string]decimal.Decimal `json:"revenueByDate"`
	OrdersSeen     int                        `json:"ordersSeen"`
	PaidOrders     int                        `json:"paidOrders"`
}

// ItemQuantity is a row of the items-by-quantity view.
type ItemQuantity struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// ItemRevenue is a row of the items-by-revenue view.
type ItemRevenue struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DailyRevenue is a point of the revenue timeline. Date is YYYY-MM-DD (UTC).
type DailyRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Summary is the sorted, display-ready form of an AggregationResult.
type Summary struct {
	RunID           string          `json:"runId,omitempty"`
	GeneratedAt     time.Time       `json:"generatedAt"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	OrdersSeen      int             `json:"ordersSeen"`
	PaidOrders      int             `json:"paidOrders"`
	ItemsByQuantity []ItemQuantity  `json:"itemsByQuantity"`
	TopItems        []ItemQuantity  `json:"topItems"`
	ItemsByRevenue  []ItemRevenue   `json:"itemsByRevenue"`
	Timeline        []DailyRevenue  `json:"timeline"`
}
