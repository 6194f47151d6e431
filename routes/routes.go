package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rakadenny/tablepos-backend/handlers"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Checkout session endpoints
		v1.POST("/sessions", handlers.OpenSession)
		v1.GET("/sessions/:id", handlers.GetSession)
		v1.POST("/sessions/:id/reset", handlers.ResetSession)
		v1.DELETE("/sessions/:id", handlers.AbandonSession)
		v1.POST("/sessions/:id/finalize", handlers.FinalizeSession)

		// Payment draft endpoints
		v1.PATCH("/sessions/:id/draft", handlers.UpdateDraft)
		v1.POST("/sessions/:id/draft/keypad", handlers.ApplyKeypad)
		v1.POST("/sessions/:id/payments", handlers.AddPayment)

		// Bill modifier endpoints
		v1.POST("/sessions/:id/tip", handlers.SetTip)
		v1.POST("/sessions/:id/discount", handlers.SetDiscount)
		v1.POST("/sessions/:id/surcharges", handlers.AddSurcharge)
		v1.POST("/sessions/:id/customAmounts", handlers.AddCustomAmount)
		v1.DELETE("/sessions/:id/customAmounts/:amountId", handlers.RemoveCustomAmount)
		v1.POST("/sessions/:id/giftCards", handlers.RedeemGiftCard)

		// Split endpoints
		v1.POST("/sessions/:id/split/amount", handlers.StartAmountSplit)
		v1.POST("/sessions/:id/split/items", handlers.SetSplitItems)
		v1.DELETE("/sessions/:id/split", handlers.ClearSplit)

		// Settlement endpoints
		v1.GET("/settlements/:id", handlers.GetSettlement)
		v1.GET("/settlements/:id/receipt", handlers.GetSettlementReceipt)

		// End-of-day Excel export
		v1.GET("/exports/settlements", handlers.ExportDailySettlements)
	}
}
