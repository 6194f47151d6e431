// handlers/session_handlers.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rakadenny/tablepos-backend/models"
	"github.com/rakadenny/tablepos-backend/utils"
)

// OpenSession starts a checkout session for a bill
func OpenSession(c *gin.Context) {
	var request models.OpenSessionRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	session, err := handlerServices.SessionService.Open(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, sessionResponse(session))
}

// GetSession returns the current state of a checkout session
func GetSession(c *gin.Context) {
	session, err := handlerServices.SessionService.Get(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, sessionResponse(session))
}

// ResetSession clears all modifiers, payments and splits from a session
func ResetSession(c *gin.Context) {
	session, err := handlerServices.SessionService.Mutate(c.Param("id"), func(state *models.PaymentState) {
		handlerServices.SettlementService.ResetPaymentState(state)
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, sessionResponse(session))
}

// AbandonSession discards a checkout session without persisting anything
func AbandonSession(c *gin.Context) {
	if err := handlerServices.SessionService.Abandon(c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"abandoned": true})
}

// FinalizeSession persists a settled session as an immutable settlement record
func FinalizeSession(c *gin.Context) {
	settlement, err := handlerServices.SessionService.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, models.FinalizeResponse{Settlement: settlement})
}

// GetSettlement retrieves a finalized settlement by id
func GetSettlement(c *gin.Context) {
	settlement, err := handlerServices.SessionService.LookupSettlement(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, settlement)
}

// GetSettlementReceipt renders the printable receipt for a settlement
func GetSettlementReceipt(c *gin.Context) {
	settlement, err := handlerServices.SessionService.LookupSettlement(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, handlerServices.ReceiptService.BuildReceipt(settlement))
}
