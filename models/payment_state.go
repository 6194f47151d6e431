// models/payment_state.go
package models

import "time"

// CustomAmount is an operator-added adjustment line. The amount may be
// negative (ad-hoc discount) or positive (additional charge).
type CustomAmount struct {
	ID          string `json:"id"`
	AmountCents int64  `json:"amount_cents"`
	Note        string `json:"note"`
}

// Surcharge is a named fixed amount added to the bill total, separate from
// per-payment card surcharges.
type Surcharge struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
}

// PaymentEntry is one completed payment toward the bill. Entries are
// append-only and never mutated after creation.
type PaymentEntry struct {
	// ID is "split-{n}" for equal-split slot payments so repeated partial
	// payments toward the same slot aggregate.
	ID               string     `json:"id"`
	Method           string     `json:"payment_method"`
	PaymentType      int        `json:"payment_type"`
	AmountCents      int64      `json:"amount_cents"`
	ExpectedCents    int64      `json:"expected_cents"`
	ChangeCents      int64      `json:"change_cents"`
	SurchargeCents   int64      `json:"surcharge_cents,omitempty"`
	SurchargePercent float64    `json:"surcharge_percent,omitempty"`
	Reference        string     `json:"reference,omitempty"`
	Items            []BillItem `json:"items,omitempty"`
	Timestamp        time.Time  `json:"timestamp"`
}

// PaymentDraft is the in-progress payment being keyed in. It never affects
// derived totals until committed by AddPayment.
type PaymentDraft struct {
	Method         string `json:"payment_method"`
	AmountCents    int64  `json:"amount_cents"`
	FeeCredit      string `json:"fee_credit,omitempty"`
	SurchargeCents int64  `json:"surcharge_cents"`
	ChangeCents    int64  `json:"change_cents"`
	Reference      string `json:"reference,omitempty"`
	// SplitSlotID names the equal-split slot this draft is seeded for.
	SplitSlotID string `json:"split_slot_id,omitempty"`
}

// PaymentState is the owned settlement aggregate for one checkout.
// FinalTotalCents and RemainingCents are always recomputed from the full
// modifier and payment history, never adjusted incrementally.
type PaymentState struct {
	OriginalTotalCents int64          `json:"original_total_cents"`
	Items              []BillItem     `json:"items"`
	TipCents           int64          `json:"tip_cents"`
	DiscountCents      int64          `json:"discount_cents"`
	Surcharges         []Surcharge    `json:"surcharges"`
	CustomAmounts      []CustomAmount `json:"custom_amounts"`
	FinalTotalCents    int64          `json:"final_total_cents"`
	RemainingCents     int64          `json:"remaining_cents"`
	Payments           []PaymentEntry `json:"payments"`
	Current            PaymentDraft   `json:"current_payment"`
	SplitType          string         `json:"split_type"`
	SplitCount         int            `json:"split_count,omitempty"`
	SplitItems         []BillItem     `json:"split_items,omitempty"`
}
