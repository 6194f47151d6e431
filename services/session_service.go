package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rakadenny/tablepos-backend/cache"
	"github.com/rakadenny/tablepos-backend/models"
	"github.com/rakadenny/tablepos-backend/utils"
)

// BillSource loads open-bill snapshots from the order-management side.
type BillSource interface {
	GetOpenBillByTable(tableCode string) (*models.Bill, error)
}

// SettlementStore persists finalized settlements.
type SettlementStore interface {
	StoreSettlement(settlement *models.Settlement) error
	GetSettlementByID(id string) (*models.Settlement, error)
}

// CheckoutSession is one active checkout owning a PaymentState. One logical
// writer per session; the service serializes mutations.
type CheckoutSession struct {
	ID        string               `json:"session_id"`
	TableCode string               `json:"table_code,omitempty"`
	State     *models.PaymentState `json:"state"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// SessionService keeps the in-process registry of active checkouts. State for
// an in-progress checkout lives only here; nothing is persisted until the
// caller finalizes.
type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*CheckoutSession

	settlement *SettlementService
	bills      BillSource
	store      SettlementStore
	cache      cache.SettlementCache
	idleTTL    time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(settlement *SettlementService, bills BillSource, store SettlementStore, settlementCache cache.SettlementCache, idleTTL time.Duration) *SessionService {
	if idleTTL <= 0 {
		idleTTL = 2 * time.Hour
	}
	return &SessionService{
		sessions:   make(map[string]*CheckoutSession),
		settlement: settlement,
		bills:      bills,
		store:      store,
		cache:      settlementCache,
		idleTTL:    idleTTL,
	}
}

// Open starts a checkout session for a bill, loaded by table code or supplied
// inline.
func (s *SessionService) Open(req *models.OpenSessionRequest) (*CheckoutSession, error) {
	bill := req.Bill
	if bill == nil {
		if err := utils.ValidateRequired(req.TableCode, "table code"); err != nil {
			return nil, err
		}
		loaded, err := s.bills.GetOpenBillByTable(req.TableCode)
		if err != nil {
			return nil, utils.NewNotFoundError("Bill")
		}
		bill = loaded
	}

	if err := utils.ValidatePositiveCents(bill.OriginalTotalCents, "bill total"); err != nil {
		return nil, err
	}
	for _, item := range bill.Items {
		if err := utils.ValidateBillItem(item.UnitPriceCents, item.Quantity, item.Description); err != nil {
			return nil, err
		}
	}

	tableCode := bill.TableCode
	if tableCode == "" {
		// Inline bills without a table get a generated reference code so the
		// settlement record and receipt still carry one.
		tableCode = utils.GenerateCode()
	}

	now := time.Now().UTC()
	session := &CheckoutSession{
		ID:        uuid.NewString(),
		TableCode: tableCode,
		State:     s.settlement.NewPaymentState(bill),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

// Get returns the session for rendering.
func (s *SessionService) Get(id string) (*CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, utils.NewNotFoundError("Checkout session")
	}
	return session, nil
}

// Mutate applies one engine operation to a session as an atomic
// read-modify-write.
func (s *SessionService) Mutate(id string, op func(*models.PaymentState)) (*CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, utils.NewNotFoundError("Checkout session")
	}
	op(session.State)
	session.UpdatedAt = time.Now().UTC()
	return session, nil
}

// Finalize turns a settled session into an immutable Settlement record,
// persists it, caches it for receipt re-query, and discards the session.
func (s *SessionService) Finalize(ctx context.Context, id string) (*models.Settlement, error) {
	s.mu.Lock()
	session, exists := s.sessions[id]
	if exists {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !exists {
		return nil, utils.NewNotFoundError("Checkout session")
	}

	state := session.State
	if !s.settlement.Settled(state) {
		// Put it back; the checkout is still in progress.
		s.mu.Lock()
		s.sessions[id] = session
		s.mu.Unlock()
		return nil, utils.NewConflictError(utils.ErrBillNotSettled)
	}

	settlement := &models.Settlement{
		ID:                 uuid.NewString(),
		TableCode:          session.TableCode,
		OriginalTotalCents: state.OriginalTotalCents,
		TipCents:           state.TipCents,
		DiscountCents:      state.DiscountCents,
		FinalTotalCents:    state.FinalTotalCents,
		ChangeCents:        s.settlement.TotalChangeCents(state),
		Payments:           state.Payments,
		SettledAt:          time.Now().UTC(),
	}

	if err := s.store.StoreSettlement(settlement); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	_ = s.cache.Set(ctx, settlement.ID, settlement)

	return settlement, nil
}

// LookupSettlement fetches a finalized settlement, preferring the cache.
func (s *SessionService) LookupSettlement(ctx context.Context, id string) (*models.Settlement, error) {
	if cached, found, err := s.cache.Get(ctx, id); err == nil && found {
		return cached, nil
	}

	settlement, err := s.store.GetSettlementByID(id)
	if err != nil {
		return nil, utils.NewNotFoundError("Settlement")
	}

	_ = s.cache.Set(ctx, settlement.ID, settlement)
	return settlement, nil
}

// Abandon discards a session without persisting anything.
func (s *SessionService) Abandon(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return utils.NewNotFoundError("Checkout session")
	}
	delete(s.sessions, id)
	return nil
}

// SweepIdle drops sessions with no activity past the idle TTL and returns how
// many were removed.
func (s *SessionService) SweepIdle() int {
	cutoff := time.Now().UTC().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
