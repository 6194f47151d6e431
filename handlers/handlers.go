package handlers

import (
	"time"

	"github.com/rakadenny/tablepos-backend/cache"
	"github.com/rakadenny/tablepos-backend/models"
	"github.com/rakadenny/tablepos-backend/repository"
	"github.com/rakadenny/tablepos-backend/services"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	SettlementService *services.SettlementService
	SessionService    *services.SessionService
	ReceiptService    *services.ReceiptService
	ExcelService      *services.ExcelService
}

// NewHandlerServices creates a new handler services instance
func NewHandlerServices(settlementCache cache.SettlementCache, idleTTL time.Duration) *HandlerServices {
	db := repository.GetDB()
	billRepo := repository.NewBillRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)

	settlementService := services.NewSettlementService()
	return &HandlerServices{
		SettlementService: settlementService,
		SessionService:    services.NewSessionService(settlementService, billRepo, settlementRepo, settlementCache, idleTTL),
		ReceiptService:    services.NewReceiptService(),
		ExcelService:      services.NewExcelService(settlementRepo),
	}
}

var handlerServices *HandlerServices

// InitHandlers initializes the handler services
func InitHandlers(settlementCache cache.SettlementCache, idleTTL time.Duration) {
	handlerServices = NewHandlerServices(settlementCache, idleTTL)
}

// sessionResponse renders a session with its derived display amounts.
func sessionResponse(session *services.CheckoutSession) models.SessionResponse {
	return models.SessionResponse{
		SessionID: session.ID,
		State:     session.State,
		TotalDue:  handlerServices.SettlementService.TotalDue(session.State),
		Change:    handlerServices.SettlementService.ChangeAmount(session.State),
	}
}
