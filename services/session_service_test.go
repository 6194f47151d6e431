package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rakadenny/tablepos-backend/cache"
	"github.com/rakadenny/tablepos-backend/models"
	"github.com/rakadenny/tablepos-backend/utils"
	"github.com/stretchr/testify/assert"
)

type fakeBillSource struct {
	bills map[string]*models.Bill
}

func (f *fakeBillSource) GetOpenBillByTable(tableCode string) (*models.Bill, error) {
	bill, ok := f.bills[tableCode]
	if !ok {
		return nil, errors.New("no open bill")
	}
	return bill, nil
}

type fakeSettlementStore struct {
	stored map[string]*models.Settlement
}

func (f *fakeSettlementStore) StoreSettlement(settlement *models.Settlement) error {
	f.stored[settlement.ID] = settlement
	return nil
}

func (f *fakeSettlementStore) GetSettlementByID(id string) (*models.Settlement, error) {
	settlement, ok := f.stored[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return settlement, nil
}

func newTestSessionService() (*SessionService, *fakeSettlementStore) {
	bills := &fakeBillSource{bills: map[string]*models.Bill{
		"T7": newTestBill(4750),
	}}
	store := &fakeSettlementStore{stored: make(map[string]*models.Settlement)}
	service := NewSessionService(NewSettlementService(), bills, store, cache.NoopSettlementCache{}, time.Hour)
	return service, store
}

func TestSessionService_OpenWithInlineBill(t *testing.T) {
	service, _ := newTestSessionService()

	session, err := service.Open(&models.OpenSessionRequest{Bill: newTestBill(10000)})

	assert.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, int64(10000), session.State.RemainingCents)
}

func TestSessionService_OpenByTableCode(t *testing.T) {
	service, _ := newTestSessionService()

	session, err := service.Open(&models.OpenSessionRequest{TableCode: "T7"})

	assert.NoError(t, err)
	assert.Equal(t, "T12", session.TableCode)
	assert.Equal(t, int64(4750), session.State.OriginalTotalCents)
}

func TestSessionService_OpenUnknownTable(t *testing.T) {
	service, _ := newTestSessionService()

	_, err := service.Open(&models.OpenSessionRequest{TableCode: "T99"})

	assert.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestSessionService_OpenRejectsInvalidBill(t *testing.T) {
	service, _ := newTestSessionService()

	_, err := service.Open(&models.OpenSessionRequest{Bill: newTestBill(0)})
	assert.Error(t, err)

	_, err = service.Open(&models.OpenSessionRequest{})
	assert.Error(t, err)
}

func TestSessionService_MutateAppliesEngineOperation(t *testing.T) {
	service, _ := newTestSessionService()
	engine := NewSettlementService()

	session, err := service.Open(&models.OpenSessionRequest{Bill: newTestBill(10000)})
	assert.NoError(t, err)

	updated, err := service.Mutate(session.ID, func(state *models.PaymentState) {
		engine.SetTip(state, 500)
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(10500), updated.State.FinalTotalCents)
}

func TestSessionService_FinalizeRejectsUnsettled(t *testing.T) {
	service, store := newTestSessionService()

	session, err := service.Open(&models.OpenSessionRequest{Bill: newTestBill(10000)})
	assert.NoError(t, err)

	_, err = service.Finalize(context.Background(), session.ID)

	assert.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
	assert.Empty(t, store.stored)

	// The session survives a failed finalize
	_, err = service.Get(session.ID)
	assert.NoError(t, err)
}

func TestSessionService_FinalizeStoresSettlement(t *testing.T) {
	service, store := newTestSessionService()
	engine := NewSettlementService()

	session, err := service.Open(&models.OpenSessionRequest{Bill: newTestBill(4750)})
	assert.NoError(t, err)

	_, err = service.Mutate(session.ID, func(state *models.PaymentState) {
		engine.SetDraftMethod(state, utils.MethodCash)
		engine.SetDraftAmount(state, 5000)
		engine.AddPayment(state)
	})
	assert.NoError(t, err)

	settlement, err := service.Finalize(context.Background(), session.ID)

	assert.NoError(t, err)
	assert.Equal(t, int64(4750), settlement.FinalTotalCents)
	assert.Equal(t, int64(250), settlement.ChangeCents)
	assert.Len(t, settlement.Payments, 1)
	assert.Contains(t, store.stored, settlement.ID)

	// The session is gone once finalized
	_, err = service.Get(session.ID)
	assert.Error(t, err)

	// And the settlement can be looked up again
	found, err := service.LookupSettlement(context.Background(), settlement.ID)
	assert.NoError(t, err)
	assert.Equal(t, settlement.ID, found.ID)
}

func TestSessionService_Abandon(t *testing.T) {
	service, _ := newTestSessionService()

	session, err := service.Open(&models.OpenSessionRequest{Bill: newTestBill(10000)})
	assert.NoError(t, err)

	assert.NoError(t, service.Abandon(session.ID))
	assert.Error(t, service.Abandon(session.ID))
}

func TestSessionService_SweepIdle(t *testing.T) {
	service, _ := newTestSessionService()

	session, err := service.Open(&models.OpenSessionRequest{Bill: newTestBill(10000)})
	assert.NoError(t, err)

	assert.Equal(t, 0, service.SweepIdle())

	// Age the session past the idle TTL
	service.mu.Lock()
	service.sessions[session.ID].UpdatedAt = time.Now().UTC().Add(-2 * time.Hour)
	service.mu.Unlock()

	assert.Equal(t, 1, service.SweepIdle())
	_, err = service.Get(session.ID)
	assert.Error(t, err)
}
