// models/settlement.go
package models

import "time"

// Settlement is the immutable record produced when a checkout is finalized.
// This is what gets handed to persistence and the charge-confirmation flow.
type Settlement struct {
	ID                 string         `json:"id"`
	TableCode          string         `json:"table_code,omitempty"`
	OriginalTotalCents int64          `json:"original_total_cents"`
	TipCents           int64          `json:"tip_cents"`
	DiscountCents      int64          `json:"discount_cents"`
	FinalTotalCents    int64          `json:"final_total_cents"`
	ChangeCents        int64          `json:"change_cents"`
	Payments           []PaymentEntry `json:"payments"`
	SettledAt          time.Time      `json:"settled_at"`
}

// OpenSessionRequest opens a checkout session, either for a bill loaded by
// table code or for an inline bill snapshot.
type OpenSessionRequest struct {
	TableCode string `json:"table_code,omitempty"`
	Bill      *Bill  `json:"bill,omitempty"`
}

// SessionResponse wraps a session id with its current state for rendering.
type SessionResponse struct {
	SessionID string        `json:"session_id"`
	State     *PaymentState `json:"state"`
	TotalDue  string        `json:"total_due"`
	Change    string        `json:"change"`
}

// UpdateDraftRequest is a partial update of the current-payment draft; each
// present field applies its typed setter.
type UpdateDraftRequest struct {
	Method      *string `json:"payment_method,omitempty"`
	AmountCents *int64  `json:"amount_cents,omitempty"`
	FeeCredit   *string `json:"fee_credit,omitempty"`
	Reference   *string `json:"reference,omitempty"`
}

// KeypadRequest applies one cash-keypad token to the draft amount.
type KeypadRequest struct {
	Token string `json:"token" binding:"required"`
}

// ModifierRequest sets the tip or discount amount.
type ModifierRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

// SurchargeRequest adds a named fixed surcharge line.
type SurchargeRequest struct {
	Name        string `json:"name" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
}

// CustomAmountRequest adds an adjustment line; amount may be negative.
type CustomAmountRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required"`
	Note        string `json:"note"`
}

// GiftCardRequest redeems a gift card against the bill.
type GiftCardRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required"`
	Reference   string `json:"reference"`
}

// AmountSplitRequest starts an equal split across count payers.
type AmountSplitRequest struct {
	Count int `json:"count" binding:"required"`
}

// ItemSplitRequest assigns bill items to the active split-by-item payer.
type ItemSplitRequest struct {
	ItemIDs []string `json:"item_ids" binding:"required,min=1"`
}

// FinalizeResponse returns the persisted settlement.
type FinalizeResponse struct {
	Settlement *Settlement `json:"settlement"`
}

// ReceiptResponse carries a printable receipt for a settlement.
type ReceiptResponse struct {
	SettlementID string `json:"settlement_id"`
	PreviewText  string `json:"preview_text"`
	EscposBase64 string `json:"escpos_base64"`
	FileName     string `json:"file_name"`
}
