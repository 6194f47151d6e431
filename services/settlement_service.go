package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rakadenny/tablepos-backend/models"
	"github.com/rakadenny/tablepos-backend/utils"
)

// SettlementService owns the settlement arithmetic for one checkout's
// PaymentState. It is stateless: every method takes the state explicitly, and
// every mutation recomputes the derived totals from the full modifier and
// payment history rather than adjusting them incrementally. It never returns
// errors; invalid input is a no-op and validation belongs to the caller.
type SettlementService struct{}

// NewSettlementService creates a new settlement service
func NewSettlementService() *SettlementService {
	return &SettlementService{}
}

// NewPaymentState builds a fresh settlement state for a bill snapshot.
func (s *SettlementService) NewPaymentState(bill *models.Bill) *models.PaymentState {
	items := make([]models.BillItem, len(bill.Items))
	copy(items, bill.Items)

	state := &models.PaymentState{
		OriginalTotalCents: bill.OriginalTotalCents,
		Items:              items,
		Surcharges:         []models.Surcharge{},
		CustomAmounts:      []models.CustomAmount{},
		Payments:           []models.PaymentEntry{},
		SplitType:          utils.SplitTypeNone,
	}
	s.recompute(state)
	return state
}

// ResetPaymentState restores the state to its post-construction shape: same
// bill, zeroed modifiers, no payments, empty draft, no split.
func (s *SettlementService) ResetPaymentState(state *models.PaymentState) {
	state.TipCents = 0
	state.DiscountCents = 0
	state.Surcharges = []models.Surcharge{}
	state.CustomAmounts = []models.CustomAmount{}
	state.Payments = []models.PaymentEntry{}
	state.Current = models.PaymentDraft{}
	state.SplitType = utils.SplitTypeNone
	state.SplitCount = 0
	state.SplitItems = nil
	s.recompute(state)
}

// SetDraftMethod updates the draft payment method and refreshes the dependent
// draft fields (card surcharge, cash change).
func (s *SettlementService) SetDraftMethod(state *models.PaymentState, method string) {
	state.Current.Method = method
	s.refreshDraft(state)
}

// SetDraftAmount updates the draft amount in cents.
func (s *SettlementService) SetDraftAmount(state *models.PaymentState, amountCents int64) {
	state.Current.AmountCents = amountCents
	s.refreshDraft(state)
}

// SetDraftFeeCredit updates the card fee-credit type (domestic or amex).
func (s *SettlementService) SetDraftFeeCredit(state *models.PaymentState, feeCredit string) {
	state.Current.FeeCredit = feeCredit
	s.refreshDraft(state)
}

// SetDraftReference records an external reference on the draft (card auth
// code, account name, gift-card number).
func (s *SettlementService) SetDraftReference(state *models.PaymentState, reference string) {
	state.Current.Reference = strings.TrimSpace(reference)
}

// ApplyKeypad feeds one cash-keypad token into the draft amount.
func (s *SettlementService) ApplyKeypad(state *models.PaymentState, token string) {
	s.SetDraftAmount(state, utils.ApplyKeypadToken(state.Current.AmountCents, token))
}

// refreshDraft recomputes the derived draft fields. Pure draft update: it
// never touches the payment list or the derived totals.
func (s *SettlementService) refreshDraft(state *models.PaymentState) {
	draft := &state.Current

	if draft.Method == utils.MethodCard {
		draft.SurchargeCents = utils.SurchargeCents(draft.AmountCents, s.feeRate(draft.FeeCredit))
	} else {
		draft.SurchargeCents = 0
	}

	if draft.Method == utils.MethodCash {
		draft.ChangeCents = utils.ClampNonNegative(draft.AmountCents - state.RemainingCents)
	} else {
		draft.ChangeCents = 0
	}
}

func (s *SettlementService) feeRate(feeCredit string) float64 {
	if feeCredit == utils.FeeCreditAmex {
		return utils.SurchargeRateAmex
	}
	return utils.SurchargeRateDomestic
}

// SetTip sets the tip amount and recomputes totals. Negative values are not
// rejected here; validation is a caller concern.
func (s *SettlementService) SetTip(state *models.PaymentState, amountCents int64) {
	state.TipCents = amountCents
	s.recompute(state)
}

// SetDiscount sets the discount amount and recomputes totals.
func (s *SettlementService) SetDiscount(state *models.PaymentState, amountCents int64) {
	state.DiscountCents = amountCents
	s.recompute(state)
}

// AddSurcharge appends a named fixed surcharge line to the bill total.
func (s *SettlementService) AddSurcharge(state *models.PaymentState, name string, amountCents int64) {
	state.Surcharges = append(state.Surcharges, models.Surcharge{
		Name:        strings.TrimSpace(name),
		AmountCents: amountCents,
	})
	s.recompute(state)
}

// AddCustomAmount appends an adjustment line and returns its generated id.
// The amount may be negative.
func (s *SettlementService) AddCustomAmount(state *models.PaymentState, amountCents int64, note string) string {
	entry := models.CustomAmount{
		ID:          uuid.NewString(),
		AmountCents: amountCents,
		Note:        strings.TrimSpace(note),
	}
	state.CustomAmounts = append(state.CustomAmounts, entry)
	s.recompute(state)
	return entry.ID
}

// RemoveCustomAmount removes the adjustment with the given id, if present.
func (s *SettlementService) RemoveCustomAmount(state *models.PaymentState, id string) {
	kept := state.CustomAmounts[:0]
	for _, entry := range state.CustomAmounts {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	state.CustomAmounts = kept
	s.recompute(state)
}

// RedeemGiftCard appends a gift-card redemption. Its value is subtracted from
// the final total, so it is excluded from the paid-toward accumulation.
func (s *SettlementService) RedeemGiftCard(state *models.PaymentState, amountCents int64, reference string) {
	if amountCents <= 0 {
		return
	}
	state.Payments = append(state.Payments, models.PaymentEntry{
		ID:          uuid.NewString(),
		PaymentType: utils.PaymentTypeGiftCard,
		AmountCents: amountCents,
		Reference:   strings.TrimSpace(reference),
		Timestamp:   time.Now().UTC(),
	})
	s.recompute(state)
}

// StartAmountSplit divides the remaining total into count equal shares and
// seeds the draft for the first unpaid slot. Count below 1 is a no-op.
func (s *SettlementService) StartAmountSplit(state *models.PaymentState, count int) {
	if count < 1 {
		return
	}
	state.SplitType = utils.SplitTypeAmount
	state.SplitCount = count
	state.SplitItems = nil
	s.seedSplitDraft(state)
}

// SetSplitItems assigns the named bill items to the active split-by-item
// payer turn. Unknown ids are ignored.
func (s *SettlementService) SetSplitItems(state *models.PaymentState, itemIDs []string) {
	wanted := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}

	var items []models.BillItem
	for _, item := range state.Items {
		if wanted[item.ID] {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return
	}

	state.SplitType = utils.SplitTypeItem
	state.SplitCount = 0
	state.SplitItems = items
}

// ClearSplit reverts to unsplit settlement and clears the draft.
func (s *SettlementService) ClearSplit(state *models.PaymentState) {
	state.SplitType = utils.SplitTypeNone
	state.SplitCount = 0
	state.SplitItems = nil
	state.Current = models.PaymentDraft{}
}

// AddPayment commits the current draft as a payment entry. A draft with no
// positive amount is a no-op. While an equal split is active every commit
// routes through the slot distributor.
func (s *SettlementService) AddPayment(state *models.PaymentState) {
	if state.Current.AmountCents <= 0 {
		return
	}

	switch state.SplitType {
	case utils.SplitTypeAmount:
		s.distributeSplitPayment(state)
		return
	case utils.SplitTypeItem:
		s.addItemSplitPayment(state)
	default:
		s.addSinglePayment(state)
	}

	s.recompute(state)
	s.afterPayment(state)
}

// addSinglePayment commits the draft against the whole remaining amount.
func (s *SettlementService) addSinglePayment(state *models.PaymentState) {
	draft := state.Current
	entry := models.PaymentEntry{
		ID:            uuid.NewString(),
		Method:        draft.Method,
		ExpectedCents: state.RemainingCents,
		Reference:     draft.Reference,
		Timestamp:     time.Now().UTC(),
	}

	switch draft.Method {
	case utils.MethodCash:
		// The raw entered cash is recorded; the paid-toward sum caps it at
		// the expected amount, and the overage is tracked as change.
		entry.AmountCents = draft.AmountCents
		entry.ChangeCents = utils.ClampNonNegative(draft.AmountCents - entry.ExpectedCents)
	case utils.MethodCard:
		entry.AmountCents = draft.AmountCents + draft.SurchargeCents
		entry.SurchargeCents = draft.SurchargeCents
		entry.SurchargePercent = s.feeRate(draft.FeeCredit) * 100
	default:
		entry.AmountCents = utils.MinCents(draft.AmountCents, entry.ExpectedCents)
	}

	state.Payments = append(state.Payments, entry)
}

// addItemSplitPayment commits the draft against the items assigned to the
// active payer turn.
func (s *SettlementService) addItemSplitPayment(state *models.PaymentState) {
	draft := state.Current
	items := make([]models.BillItem, len(state.SplitItems))
	copy(items, state.SplitItems)

	entry := models.PaymentEntry{
		ID:            uuid.NewString(),
		Method:        draft.Method,
		ExpectedCents: models.ItemsTotalCents(items),
		Reference:     draft.Reference,
		Items:         items,
		Timestamp:     time.Now().UTC(),
	}

	switch draft.Method {
	case utils.MethodCash:
		entry.AmountCents = draft.AmountCents
		entry.ChangeCents = utils.ClampNonNegative(draft.AmountCents - entry.ExpectedCents)
	case utils.MethodCard:
		entry.AmountCents = draft.AmountCents + draft.SurchargeCents
		entry.SurchargeCents = draft.SurchargeCents
		entry.SurchargePercent = s.feeRate(draft.FeeCredit) * 100
	default:
		entry.AmountCents = utils.MinCents(draft.AmountCents, entry.ExpectedCents)
	}

	state.Payments = append(state.Payments, entry)
	state.SplitItems = nil

	if s.allItemsCovered(state) {
		state.SplitType = utils.SplitTypeNone
	}
}

// distributeSplitPayment commits the draft toward the lowest-numbered slot of
// an equal split that is still short of its share. Slot selection always
// starts from slot 1, so interleaved partial payments stay deterministic.
func (s *SettlementService) distributeSplitPayment(state *models.PaymentState) {
	share := s.splitShareCents(state)
	slot, ok := s.nextUnpaidSlot(state, share)
	if !ok {
		return
	}

	draft := state.Current
	slotID := fmt.Sprintf("%s%d", utils.SplitSlotIDPrefix, slot)
	entry := models.PaymentEntry{
		ID:            slotID,
		Method:        draft.Method,
		ExpectedCents: share,
		Reference:     draft.Reference,
		Timestamp:     time.Now().UTC(),
	}

	if draft.Method == utils.MethodCard {
		// The card charge already carries its surcharge; record it as-is.
		entry.AmountCents = draft.AmountCents
		entry.SurchargeCents = draft.SurchargeCents
		entry.SurchargePercent = s.feeRate(draft.FeeCredit) * 100
	} else {
		needed := utils.ClampNonNegative(share - s.slotPaidCents(state, slotID))
		entry.ChangeCents = utils.ClampNonNegative(draft.AmountCents - needed)
		entry.AmountCents = utils.MinCents(draft.AmountCents, needed)
	}

	state.Payments = append(state.Payments, entry)
	s.recompute(state)
	s.afterPayment(state)
}

// afterPayment resets or re-seeds the draft once a payment has landed, and
// closes out a satisfied split.
func (s *SettlementService) afterPayment(state *models.PaymentState) {
	if state.RemainingCents <= utils.SettledEpsilonCents {
		state.Current = models.PaymentDraft{}
		state.SplitType = utils.SplitTypeNone
		state.SplitCount = 0
		state.SplitItems = nil
		return
	}

	if state.SplitType == utils.SplitTypeAmount {
		s.seedSplitDraft(state)
		return
	}

	state.Current = models.PaymentDraft{}
}

// seedSplitDraft points the draft at the next unpaid equal-split slot, or
// ends the split when every slot is satisfied.
func (s *SettlementService) seedSplitDraft(state *models.PaymentState) {
	share := s.splitShareCents(state)
	slot, ok := s.nextUnpaidSlot(state, share)
	if !ok {
		state.SplitType = utils.SplitTypeNone
		state.SplitCount = 0
		state.Current = models.PaymentDraft{}
		return
	}
	state.Current = models.PaymentDraft{
		Method:      utils.MethodSplit,
		SplitSlotID: fmt.Sprintf("%s%d", utils.SplitSlotIDPrefix, slot),
	}
}

// splitShareCents is the equal share of what remains to be split: the final
// total minus everything paid outside the split, floor-divided across the
// slots. The at-most-one-cent floor residue is absorbed by the settlement
// epsilon.
func (s *SettlementService) splitShareCents(state *models.PaymentState) int64 {
	if state.SplitCount < 1 {
		return 0
	}
	var nonSplitPaid int64
	for _, p := range state.Payments {
		if !strings.HasPrefix(p.ID, utils.SplitSlotIDPrefix) {
			nonSplitPaid += s.effectivePaidCents(p)
		}
	}
	return (state.FinalTotalCents - nonSplitPaid) / int64(state.SplitCount)
}

// nextUnpaidSlot scans slots in ascending order and returns the first one
// whose accumulated payments are short of the share by more than the epsilon.
func (s *SettlementService) nextUnpaidSlot(state *models.PaymentState, share int64) (int, bool) {
	for slot := 1; slot <= state.SplitCount; slot++ {
		slotID := fmt.Sprintf("%s%d", utils.SplitSlotIDPrefix, slot)
		if share-s.slotPaidCents(state, slotID) > utils.SettledEpsilonCents {
			return slot, true
		}
	}
	return 0, false
}

// slotPaidCents accumulates the effective payments recorded against a slot.
func (s *SettlementService) slotPaidCents(state *models.PaymentState, slotID string) int64 {
	var paid int64
	for _, p := range state.Payments {
		if p.ID == slotID {
			paid += p.AmountCents
		}
	}
	return paid
}

// recompute rebuilds the derived totals from scratch:
//
//	final = original + tip - discount + surcharges + custom amounts - gift cards
//	remaining = final - effective paid
//
// Gift-card entries are excluded from the effective-paid sum because their
// value already left the final total; counting them twice is the
// double-subtraction hazard this recomputation exists to prevent.
func (s *SettlementService) recompute(state *models.PaymentState) {
	final := state.OriginalTotalCents + state.TipCents - state.DiscountCents
	for _, surcharge := range state.Surcharges {
		final += surcharge.AmountCents
	}
	for _, custom := range state.CustomAmounts {
		final += custom.AmountCents
	}
	for _, p := range state.Payments {
		if p.PaymentType == utils.PaymentTypeGiftCard {
			final -= p.AmountCents
		}
	}

	var paid int64
	for _, p := range state.Payments {
		paid += s.effectivePaidCents(p)
	}

	state.FinalTotalCents = final
	state.RemainingCents = final - paid
}

// effectivePaidCents is the portion of a payment that counts toward reducing
// the remaining balance: cash is capped at what was owed, card excludes its
// surcharge, split-slot entries already store their effective value, and
// gift cards contribute nothing here.
func (s *SettlementService) effectivePaidCents(p models.PaymentEntry) int64 {
	switch {
	case p.PaymentType == utils.PaymentTypeGiftCard:
		return 0
	case strings.HasPrefix(p.ID, utils.SplitSlotIDPrefix):
		return p.AmountCents
	case p.Method == utils.MethodCash:
		return utils.MinCents(p.AmountCents, p.ExpectedCents)
	case p.Method == utils.MethodCard:
		return p.AmountCents - p.SurchargeCents
	default:
		return p.AmountCents
	}
}

// allItemsCovered reports whether the union of items across all payments
// covers every bill item's full quantity.
func (s *SettlementService) allItemsCovered(state *models.PaymentState) bool {
	covered := make(map[string]int, len(state.Items))
	for _, p := range state.Payments {
		for _, item := range p.Items {
			covered[item.ID] += item.Quantity
		}
	}
	for _, item := range state.Items {
		if covered[item.ID] < item.Quantity {
			return false
		}
	}
	return true
}

// ChangeAmount returns the total change due as a display string. While any
// split is active it returns "0.00"; per-split change is shown inline.
func (s *SettlementService) ChangeAmount(state *models.PaymentState) string {
	if state.SplitType != utils.SplitTypeNone {
		return "0.00"
	}
	return utils.FormatCents(s.TotalChangeCents(state))
}

// TotalChangeCents sums change across all payments.
func (s *SettlementService) TotalChangeCents(state *models.PaymentState) int64 {
	var change int64
	for _, p := range state.Payments {
		change += p.ChangeCents
	}
	return change
}

// TotalDue returns the amount still owed as a display string, floored at
// "0.00" once the bill is settled or over-settled.
func (s *SettlementService) TotalDue(state *models.PaymentState) string {
	if state.RemainingCents <= utils.SettledEpsilonCents {
		return "0.00"
	}
	return utils.FormatCents(state.RemainingCents)
}

// Settled reports whether the remaining amount is within the epsilon.
func (s *SettlementService) Settled(state *models.PaymentState) bool {
	return state.RemainingCents <= utils.SettledEpsilonCents
}
