package repository

import (
	"math"
	"strconv"
	"strings"

	"github.com/papudim/sales-report/pkg/model"
	"github.com/shopspring/decimal"
)

// Field names accepted in order documents. The store was first written
// with Portuguese keys, so both spellings are read.
var (
	itemsKeys     = []string{"items", "itens"}
	nameKeys      = []string{"name", "nome"}
	quantityKeys  = []string{"quantity", "quantidade"}
	unitPriceKeys = []string{"unitPrice", "price", "preco"}
)

var statusAliases = map[string]string{
	"pago": model.StatusPaid,
}

// DecodeOrder converts a raw order document into its typed form.
// The record ID is the document's "id" field, or docID when that field is
// absent or not a string. Order IDs carry the creation timestamp, so the
// fallback lets an order without an "id" field still be dated whenever its
// document ID follows the same <prefix>-<millis> shape.
// A missing or non-numeric total becomes zero. Items are only decoded for
// paid orders; a malformed item in a paid order is a *model.CoercionError.
func DecodeOrder(docID string, data map[string]any) (model.OrderRecord, error) {
	rec := model.OrderRecord{
		ID:     docID,
		Status: stringField(data, "status"),
	}
	if id, ok := data["id"].(string); ok {
		rec.ID = id
	}
	if alias, ok := statusAliases[rec.Status]; ok {
		rec.Status = alias
	}
	if total, ok := toDecimal(data["total"]); ok {
		rec.Total = total
	}

	if !rec.Paid() {
		return rec, nil
	}

	rawItems, key, present := lookup(data, itemsKeys)
	if !present || rawItems == nil {
		return rec, nil
	}
	list, ok := rawItems.([]any)
	if !ok {
		return model.OrderRecord{}, &model.CoercionError{OrderID: rec.ID, Item: -1, Field: key, Value: rawItems}
	}

	rec.Items = make([]model.LineItem, 0, len(list))
	for i, raw := range list {
		item, err := decodeItem(rec.ID, i, raw)
		if err != nil {
			return model.OrderRecord{}, err
		}
		rec.Items = append(rec.Items, item)
	}
	return rec, nil
}

func decodeItem(orderID string, idx int, raw any) (model.LineItem, error) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return model.LineItem{}, &model.CoercionError{OrderID: orderID, Item: idx, Field: "item", Value: raw}
	}

	nameVal, nameKey, _ := lookup(fields, nameKeys)
	name, ok := nameVal.(string)
	if !ok || name == "" {
		return model.LineItem{}, &model.CoercionError{OrderID: orderID, Item: idx, Field: nameKey, Value: nameVal}
	}

	qtyVal, qtyKey, _ := lookup(fields, quantityKeys)
	qty, ok := toInt(qtyVal)
	if !ok {
		return model.LineItem{}, &model.CoercionError{OrderID: orderID, Item: idx, Field: qtyKey, Value: qtyVal}
	}

	priceVal, priceKey, _ := lookup(fields, unitPriceKeys)
	price, ok := toDecimal(priceVal)
	if !ok {
		return model.LineItem{}, &model.CoercionError{OrderID: orderID, Item: idx, Field: priceKey, Value: priceVal}
	}

	return model.LineItem{Name: name, Quantity: qty, UnitPrice: price}, nil
}

// lookup returns the value of the first present key. When none is present
// the first key is reported so errors name the canonical field.
func lookup(data map[string]any, keys []string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := data[k]; ok {
			return v, k, true
		}
	}
	return nil, keys[0], false
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case int64:
		return decimal.NewFromInt(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(n), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}

// toInt truncates floats toward zero.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
