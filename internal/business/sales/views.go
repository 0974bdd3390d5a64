package sales

import (
	"cmp"
	"slices"

	"github.com/papudim/sales-report/pkg/model"
)

// ItemsByQuantity lists every item, best sellers first; ties go to the
// lexicographically smaller name.
func ItemsByQuantity(res model.AggregationResult) []model.ItemQuantity {
	out := make([]model.ItemQuantity, 0, len(res.QuantityByItem))
	for name, qty := range res.QuantityByItem {
		out = append(out, model.ItemQuantity{Name: name, Quantity: qty})
	}
	slices.SortFunc(out, func(a, b model.ItemQuantity) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// TopItemsByQuantity returns at most n entries of ItemsByQuantity.
func TopItemsByQuantity(res model.AggregationResult, n int) []model.ItemQuantity {
	return firstN(ItemsByQuantity(res), n)
}

// firstN truncates s to n entries; a negative n keeps everything.
func firstN[S ~[]E, E any](s S, n int) S {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// ItemsByRevenue lists every item by descending revenue, ties by name.
func ItemsByRevenue(res model.AggregationResult) []model.ItemRevenue {
	out := make([]model.ItemRevenue, 0, len(res.RevenueByItem))
	for name, rev := range res.RevenueByItem {
		out = append(out, model.ItemRevenue{Name: name, Revenue: rev})
	}
	slices.SortFunc(out, func(a, b model.ItemRevenue) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Timeline lists daily revenue in chronological order.
func Timeline(res model.AggregationResult) []model.DailyRevenue {
	out := make([]model.DailyRevenue, 0, len(res.RevenueByDate))
	for date, rev := range res.RevenueByDate {
		out = append(out, model.DailyRevenue{Date: date, Revenue: rev})
	}
	slices.SortFunc(out, func(a, b model.DailyRevenue) int {
		return cmp.Compare(a.Date, b.Date)
	})
	return out
}

// Summarize materializes all sorted views of res.
func Summarize(res model.AggregationResult, topN int) model.Summary {
	byQty := ItemsByQuantity(res)
	return model.Summary{
		TotalRevenue:    res.TotalRevenue,
		OrdersSeen:      res.OrdersSeen,
		PaidOrders:      res.PaidOrders,
		ItemsByQuantity: byQty,
		TopItems:        slices.Clone(firstN(byQty, topN)),
		ItemsByRevenue:  ItemsByRevenue(res),
		Timeline:        Timeline(res),
	}
}
