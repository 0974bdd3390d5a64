package sales

import (
	"iter"
	"maps"

	"github.com/papudim/sales-report/pkg/model"
	"github.com/shopspring/decimal"
)

// Accumulator folds order records into sales aggregates.
// It has a single owner and is not safe for concurrent use.
type Accumulator struct {
	totalRevenue   decimal.Decimal
	quantityByItem map[string]int64
	revenueByItem  map[string]decimal.Decimal
	revenueByDate  map[string]decimal.Decimal
	ordersSeen     int
	paidOrders     int
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		quantityByItem: make(map[string]int64),
		revenueByItem:  make(map[string]decimal.Decimal),
		revenueByDate:  make(map[string]decimal.Decimal),
	}
}

// Add folds one record. Unpaid records are counted as seen and otherwise ignored.
// A paid record with an unnamed item is rejected before any aggregate changes.
func (a *Accumulator) Add(rec model.OrderRecord) error {
	a.ordersSeen++
	if !rec.Paid() {
		return nil
	}
	for i, item := range rec.Items {
		if item.Name == "" {
			return &model.CoercionError{OrderID: rec.ID, Item: i, Field: "name"}
		}
	}

	a.paidOrders++
	a.totalRevenue = a.totalRevenue.Add(rec.Total)

	if date, ok := DateFromOrderID(rec.ID); ok {
		a.revenueByDate[date] = a.revenueByDate[date].Add(rec.Total)
	}

	for _, item := range rec.Items {
		a.quantityByItem[item.Name] += item.Quantity
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		a.revenueByItem[item.Name] = a.revenueByItem[item.Name].Add(lineTotal)
	}
	return nil
}

// Result returns a copy of the aggregates folded so far.
func (a *Accumulator) Result() model.AggregationResult {
	return model.AggregationResult{
		TotalRevenue:   a.totalRevenue,
		QuantityByItem: maps.Clone(a.quantityByItem),
		RevenueByItem:  maps.Clone(a.revenueByItem),
		RevenueByDate:  maps.Clone(a.revenueByDate),
		OrdersSeen:     a.ordersSeen,
		PaidOrders:     a.paidOrders,
	}
}

// Aggregate consumes records once, in order, and returns the sales aggregates.
// The first error from the sequence or from a record aborts the run and no
// partial result is returned.
func Aggregate(records iter.Seq2[model.OrderRecord, error]) (model.AggregationResult, error) {
	acc := NewAccumulator()
	for rec, err := range records {
		if err != nil {
			return model.AggregationResult{}, err
		}
		if err := acc.Add(rec); err != nil {
			return model.AggregationResult{}, err
		}
	}
	return acc.Result(), nil
}

// Merge sums two results field by field.
func Merge(a, b model.AggregationResult) model.AggregationResult {
	out := model.AggregationResult{
		TotalRevenue:   a.TotalRevenue.Add(b.TotalRevenue),
		QuantityByItem: make(map[string]int64, len(a.QuantityByItem)),
		RevenueByItem:  make(map[string]decimal.Decimal, len(a.RevenueByItem)),
		RevenueByDate:  make(map[string]decimal.Decimal, len(a.RevenueByDate)),
		OrdersSeen:     a.OrdersSeen + b.OrdersSeen,
		PaidOrders:     a.PaidOrders + b.PaidOrders,
	}
	for _, src := range []model.AggregationResult{a, b} {
		for k, v := range src.QuantityByItem {
			out.QuantityByItem[k] += v
		}
		for k, v := range src.RevenueByItem {
			out.RevenueByItem[k] = out.RevenueByItem[k].Add(v)
		}
		for k, v := range src.RevenueByDate {
			out.RevenueByDate[k] = out.RevenueByDate[k].Add(v)
		}
	}
	return out
}

// Slice adapts an in-memory slice to the record sequence Aggregate consumes.
func Slice(records []model.OrderRecord) iter.Seq2[model.OrderRecord, error] {
	return func(yield func(model.OrderRecord, error) bool) {
		for _, rec := range records {
			if !yield(rec, nil) {
				return
			}
		}
	}
}
