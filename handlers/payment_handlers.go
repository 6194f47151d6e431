// handlers/payment_handlers.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rakadenny/tablepos-backend/models"
	"github.com/rakadenny/tablepos-backend/utils"
)

// mutateSession applies one engine operation to the session named in the path
// and renders the updated session.
func mutateSession(c *gin.Context, op func(*models.PaymentState)) {
	session, err := handlerServices.SessionService.Mutate(c.Param("id"), op)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, sessionResponse(session))
}

// UpdateDraft applies a partial update to the current-payment draft
func UpdateDraft(c *gin.Context) {
	var request models.UpdateDraftRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	if request.Method != nil {
		if err := utils.ValidatePaymentMethod(*request.Method); err != nil {
			utils.HandleError(c, err)
			return
		}
	}

	engine := handlerServices.SettlementService
	mutateSession(c, func(state *models.PaymentState) {
		if request.Method != nil {
			engine.SetDraftMethod(state, *request.Method)
		}
		if request.AmountCents != nil {
			engine.SetDraftAmount(state, *request.AmountCents)
		}
		if request.FeeCredit != nil {
			engine.SetDraftFeeCredit(state, *request.FeeCredit)
		}
		if request.Reference != nil {
			engine.SetDraftReference(state, *request.Reference)
		}
	})
}

// ApplyKeypad feeds one cash-keypad token into the draft amount
func ApplyKeypad(c *gin.Context) {
	var request models.KeypadRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	mutateSession(c, func(state *models.PaymentState) {
		handlerServices.SettlementService.ApplyKeypad(state, request.Token)
	})
}

// AddPayment commits the current draft as a payment entry
func AddPayment(c *gin.Context) {
	mutateSession(c, func(state *models.PaymentState) {
		handlerServices.SettlementService.AddPayment(state)
	})
}

// SetTip sets the tip amount
func SetTip(c *gin.Context) {
	var request models.ModifierRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}
	if err := utils.ValidateNonNegativeCents(request.AmountCents, "tip"); err != nil {
		utils.HandleError(c, err)
		return
	}

	mutateSession(c, func(state *models.PaymentState) {
		handlerServices.SettlementService.SetTip(state, request.AmountCents)
	})
}

// SetDiscount sets the discount amount
func SetDiscount(c *gin.Context) {
	var request models.ModifierRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}
	if err := utils.ValidateNonNegativeCents(request.AmountCents, "discount"); err != nil {
		utils.HandleError(c, err)
		return
	}

	mutateSession(c, func(state *models.PaymentState) {
		handlerServices.SettlementService.SetDiscount(state, request.AmountCents)
	})
}

// AddSurcharge adds a named fixed surcharge line
func AddSurcharge(c *gin.Context) {
	var request models.SurchargeRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}
	if err := utils.ValidatePositiveCents(request.AmountCents, "surcharge"); err != nil {
		utils.HandleError(c, err)
		return
	}

	mutateSession(c, func(state *models.PaymentState) {
		handlerServices.SettlementService.AddSurcharge(state, request.Name, request.AmountCents)
	})
}

// AddCustomAmount adds an adjustment line; the amount may be negative
func AddCustomAmount(c *gin.Context) {
	var request models.CustomAmountRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	mutateSession(c, func(state *models.PaymentState) {
		handlerServices.SettlementService.AddCustomAmount(state, request.AmountCents, request.Note)
	})
}

// RemoveCustomAmount removes an adjustment line by id
func RemoveCustomAmount(c *gin.Context) {
	amountID := c.Param("amountId")

	mutateSession(c, func(state *models.PaymentState) {
		handlerServices.SettlementService.RemoveCustomAmount(state, amountID)
	})
}

// RedeemGiftCard redeems a gift card against the bill
func RedeemGiftCard(c *gin.Context) {
	var request models.GiftCardRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}
	if err := utils.ValidatePositiveCents(request.AmountCents, "gift card amount"); err != nil {
		utils.HandleError(c, err)
		return
	}

	mutateSession(c, func(state *models.PaymentState) {
		handlerServices.SettlementService.RedeemGiftCard(state, request.AmountCents, request.Reference)
	})
}

// StartAmountSplit starts an equal split across count payers
func StartAmountSplit(c *gin.Context) {
	var request models.AmountSplitRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}
	if request.Count < 1 {
		utils.HandleError(c, utils.NewValidationError("Split count must be at least 1"))
		return
	}

	mutateSession(c, func(state *models.PaymentState) {
		handlerServices.SettlementService.StartAmountSplit(state, request.Count)
	})
}

// SetSplitItems assigns bill items to the active split-by-item payer
func SetSplitItems(c *gin.Context) {
	var request models.ItemSplitRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	mutateSession(c, func(state *models.PaymentState) {
		handlerServices.SettlementService.SetSplitItems(state, request.ItemIDs)
	})
}

// ClearSplit reverts the session to unsplit settlement
func ClearSplit(c *gin.Context) {
	mutateSession(c, func(state *models.PaymentState) {
		handlerServices.SettlementService.ClearSplit(state)
	})
}
