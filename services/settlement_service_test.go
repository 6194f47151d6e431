package services

import (
	"testing"

	"github.com/rakadenny/tablepos-backend/models"
	"github.com/rakadenny/tablepos-backend/utils"
	"github.com/stretchr/testify/assert"
)

func newTestBill(totalCents int64, items ...models.BillItem) *models.Bill {
	return &models.Bill{
		TableCode:          "T12",
		OriginalTotalCents: totalCents,
		Items:              items,
	}
}

func TestSettlementService_NewPaymentState(t *testing.T) {
	service := NewSettlementService()

	state := service.NewPaymentState(newTestBill(10000))

	assert.Equal(t, int64(10000), state.OriginalTotalCents)
	assert.Equal(t, int64(10000), state.FinalTotalCents)
	assert.Equal(t, int64(10000), state.RemainingCents)
	assert.Equal(t, utils.SplitTypeNone, state.SplitType)
	assert.Empty(t, state.Payments)
	assert.False(t, service.Settled(state))
	assert.Equal(t, "100.00", service.TotalDue(state))
}

func TestSettlementService_ModifiersRecomputeTotals(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(10000))

	service.SetTip(state, 1500)
	assert.Equal(t, int64(11500), state.FinalTotalCents)
	assert.Equal(t, int64(11500), state.RemainingCents)

	service.SetDiscount(state, 2000)
	assert.Equal(t, int64(9500), state.FinalTotalCents)

	service.AddSurcharge(state, "Public holiday", 1000)
	assert.Equal(t, int64(10500), state.FinalTotalCents)

	// Setting the tip again replaces it rather than stacking
	service.SetTip(state, 500)
	assert.Equal(t, int64(9500), state.FinalTotalCents)
	assert.Equal(t, int64(9500), state.RemainingCents)
}

func TestSettlementService_CustomAmounts(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(10000))

	id := service.AddCustomAmount(state, 1000, "corkage")
	assert.NotEmpty(t, id)
	assert.Equal(t, int64(11000), state.FinalTotalCents)

	// Negative adjustments are allowed
	service.AddCustomAmount(state, -500, "comped drink")
	assert.Equal(t, int64(10500), state.FinalTotalCents)

	service.RemoveCustomAmount(state, id)
	assert.Equal(t, int64(9500), state.FinalTotalCents)
	assert.Len(t, state.CustomAmounts, 1)
}

func TestSettlementService_GiftCardReducesFinalTotal(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(10000))

	service.RedeemGiftCard(state, 2000, "GC-9981")

	// The redemption reduces what is owed instead of counting as paid,
	// so it must not be subtracted twice.
	assert.Equal(t, int64(8000), state.FinalTotalCents)
	assert.Equal(t, int64(8000), state.RemainingCents)
	assert.Len(t, state.Payments, 1)
	assert.Equal(t, utils.PaymentTypeGiftCard, state.Payments[0].PaymentType)

	service.AddCustomAmount(state, 1000, "")
	assert.Equal(t, int64(9000), state.FinalTotalCents)
	assert.Equal(t, int64(9000), state.RemainingCents)
}

func TestSettlementService_CashOverpaymentGivesChange(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(4750))

	service.SetDraftMethod(state, utils.MethodCash)
	service.SetDraftAmount(state, 5000)
	assert.Equal(t, int64(250), state.Current.ChangeCents)

	service.AddPayment(state)

	assert.Equal(t, int64(0), state.RemainingCents)
	assert.True(t, service.Settled(state))
	assert.Equal(t, int64(250), service.TotalChangeCents(state))
	assert.Equal(t, "2.50", service.ChangeAmount(state))

	// The entry keeps the raw tendered amount
	assert.Equal(t, int64(5000), state.Payments[0].AmountCents)
	assert.Equal(t, int64(250), state.Payments[0].ChangeCents)
}

func TestSettlementService_CardSurcharge(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(10000))

	service.SetDraftMethod(state, utils.MethodCard)
	service.SetDraftAmount(state, 10000)
	assert.Equal(t, int64(190), state.Current.SurchargeCents)

	service.AddPayment(state)

	entry := state.Payments[0]
	assert.Equal(t, int64(10190), entry.AmountCents)
	assert.Equal(t, int64(190), entry.SurchargeCents)
	assert.InDelta(t, 1.9, entry.SurchargePercent, 0.0001)

	// Only the pre-surcharge amount counts toward the bill
	assert.Equal(t, int64(0), state.RemainingCents)
	assert.True(t, service.Settled(state))
}

func TestSettlementService_AmexSurchargeRate(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(10000))

	service.SetDraftMethod(state, utils.MethodCard)
	service.SetDraftFeeCredit(state, utils.FeeCreditAmex)
	service.SetDraftAmount(state, 10000)

	assert.Equal(t, int64(290), state.Current.SurchargeCents)

	service.AddPayment(state)
	assert.Equal(t, int64(10290), state.Payments[0].AmountCents)
	assert.True(t, service.Settled(state))
}

func TestSettlementService_EmptyDraftIsNoOp(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(10000))

	service.SetDraftMethod(state, utils.MethodCash)
	service.AddPayment(state)

	assert.Empty(t, state.Payments)
	assert.Equal(t, int64(10000), state.RemainingCents)
}

func TestSettlementService_EqualSplitThreeWays(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(10000))

	service.StartAmountSplit(state, 3)

	assert.Equal(t, utils.SplitTypeAmount, state.SplitType)
	assert.Equal(t, utils.MethodSplit, state.Current.Method)
	assert.Equal(t, "split-1", state.Current.SplitSlotID)
	assert.Equal(t, "0.00", service.ChangeAmount(state))

	for i := 0; i < 3; i++ {
		service.SetDraftMethod(state, utils.MethodCash)
		service.SetDraftAmount(state, 3333)
		service.AddPayment(state)
	}

	// 3 x 3333 leaves one cent, absorbed by the settlement epsilon
	assert.Equal(t, int64(1), state.RemainingCents)
	assert.True(t, service.Settled(state))
	assert.Equal(t, utils.SplitTypeNone, state.SplitType)
	assert.Equal(t, "0.00", service.TotalDue(state))

	assert.Equal(t, "split-1", state.Payments[0].ID)
	assert.Equal(t, "split-2", state.Payments[1].ID)
	assert.Equal(t, "split-3", state.Payments[2].ID)
}

func TestSettlementService_SplitSlotPartialPayments(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(10000))

	service.StartAmountSplit(state, 3)

	// First payer puts down less than the share
	service.SetDraftMethod(state, utils.MethodCash)
	service.SetDraftAmount(state, 2000)
	service.AddPayment(state)

	// The draft stays pointed at slot 1 until its share is met
	assert.Equal(t, "split-1", state.Current.SplitSlotID)
	assert.Equal(t, int64(8000), state.RemainingCents)

	// Topping up beyond the share returns the overage as change
	service.SetDraftMethod(state, utils.MethodCash)
	service.SetDraftAmount(state, 2000)
	service.AddPayment(state)

	assert.Equal(t, "split-2", state.Current.SplitSlotID)
	topUp := state.Payments[1]
	assert.Equal(t, int64(1333), topUp.AmountCents)
	assert.Equal(t, int64(667), topUp.ChangeCents)
	assert.Equal(t, int64(6667), state.RemainingCents)
}

func TestSettlementService_SplitCardPaymentKeepsSurcharge(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(9000))

	service.StartAmountSplit(state, 3)

	service.SetDraftMethod(state, utils.MethodCard)
	service.SetDraftAmount(state, 3000)
	service.AddPayment(state)

	entry := state.Payments[0]
	assert.Equal(t, "split-1", entry.ID)
	assert.Equal(t, int64(3000), entry.AmountCents)
	assert.Equal(t, int64(57), entry.SurchargeCents)

	// Split-slot entries count at face value toward the remaining amount
	assert.Equal(t, int64(6000), state.RemainingCents)
}

func TestSettlementService_StartAmountSplitInvalidCount(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(10000))

	service.StartAmountSplit(state, 0)

	assert.Equal(t, utils.SplitTypeNone, state.SplitType)
	assert.Equal(t, 0, state.SplitCount)
}

func TestSettlementService_ClearSplit(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(10000))

	service.StartAmountSplit(state, 4)
	service.ClearSplit(state)

	assert.Equal(t, utils.SplitTypeNone, state.SplitType)
	assert.Equal(t, 0, state.SplitCount)
	assert.Equal(t, models.PaymentDraft{}, state.Current)
	assert.Equal(t, int64(10000), state.RemainingCents)
}

func TestSettlementService_ItemSplit(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(5000,
		models.BillItem{ID: "item-a", Description: "Pasta", UnitPriceCents: 1500, Quantity: 2},
		models.BillItem{ID: "item-b", Description: "Wine", UnitPriceCents: 2000, Quantity: 1},
	))

	service.SetSplitItems(state, []string{"item-a"})
	assert.Equal(t, utils.SplitTypeItem, state.SplitType)

	service.SetDraftMethod(state, utils.MethodCash)
	service.SetDraftAmount(state, 3000)
	service.AddPayment(state)

	// First payer covered the pasta; the wine is still open
	assert.Equal(t, utils.SplitTypeItem, state.SplitType)
	assert.Equal(t, int64(2000), state.RemainingCents)
	assert.Len(t, state.Payments[0].Items, 1)
	assert.Nil(t, state.SplitItems)

	service.SetSplitItems(state, []string{"item-b"})
	service.SetDraftMethod(state, utils.MethodCash)
	service.SetDraftAmount(state, 2000)
	service.AddPayment(state)

	assert.True(t, service.Settled(state))
	assert.Equal(t, utils.SplitTypeNone, state.SplitType)
}

func TestSettlementService_SetSplitItemsUnknownIDsIgnored(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(5000,
		models.BillItem{ID: "item-a", Description: "Pasta", UnitPriceCents: 1500, Quantity: 2},
	))

	service.SetSplitItems(state, []string{"missing"})

	assert.Equal(t, utils.SplitTypeNone, state.SplitType)
	assert.Nil(t, state.SplitItems)
}

func TestSettlementService_KeypadEntry(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(10000))
	service.SetDraftMethod(state, utils.MethodCash)

	for _, token := range []string{"1", "2", "5"} {
		service.ApplyKeypad(state, token)
	}
	assert.Equal(t, int64(125), state.Current.AmountCents)

	service.ApplyKeypad(state, "00")
	assert.Equal(t, int64(12500), state.Current.AmountCents)
	assert.Equal(t, int64(2500), state.Current.ChangeCents)

	service.ApplyKeypad(state, "backspace")
	assert.Equal(t, int64(1250), state.Current.AmountCents)

	service.ApplyKeypad(state, "clear")
	assert.Equal(t, int64(0), state.Current.AmountCents)
}

func TestSettlementService_ResetPaymentState(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(10000))

	service.SetTip(state, 1000)
	service.RedeemGiftCard(state, 2000, "GC-1")
	service.StartAmountSplit(state, 2)
	service.ResetPaymentState(state)

	assert.Equal(t, int64(0), state.TipCents)
	assert.Empty(t, state.Payments)
	assert.Equal(t, utils.SplitTypeNone, state.SplitType)
	assert.Equal(t, int64(10000), state.FinalTotalCents)
	assert.Equal(t, int64(10000), state.RemainingCents)
}

func TestSettlementService_AccountPaymentCappedAtExpected(t *testing.T) {
	service := NewSettlementService()
	state := service.NewPaymentState(newTestBill(4000))

	service.SetDraftMethod(state, utils.MethodAccount)
	service.SetDraftAmount(state, 5000)
	service.SetDraftReference(state, "Room 214")
	service.AddPayment(state)

	entry := state.Payments[0]
	assert.Equal(t, int64(4000), entry.AmountCents)
	assert.Equal(t, "Room 214", entry.Reference)
	assert.True(t, service.Settled(state))
}
