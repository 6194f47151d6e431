// models/bill.go
package models

// BillItem is a single ordered line on a bill. All money is integer cents.
type BillItem struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// AmountCents returns the line total.
func (i BillItem) AmountCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// Bill is the immutable order snapshot a checkout settles against. It comes
// from the order-management side and is read-only to the settlement engine.
type Bill struct {
	TableCode          string     `json:"table_code,omitempty"`
	OriginalTotalCents int64      `json:"original_total_cents"`
	Items              []BillItem `json:"items"`
}

// ItemsTotalCents sums the line totals of a set of items.
func ItemsTotalCents(items []BillItem) int64 {
	var total int64
	for _, item := range items {
		total += item.AmountCents()
	}
	return total
}
