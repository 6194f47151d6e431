package cache

import (
	"context"

	"github.com/rakadenny/tablepos-backend/models"
)

// SettlementCache fronts settlement-receipt lookups so terminals re-querying
// a just-printed receipt do not hit the database.
type SettlementCache interface {
	Get(ctx context.Context, id string) (*models.Settlement, bool, error)
	Set(ctx context.Context, id string, settlement *models.Settlement) error
}

// NoopSettlementCache is the fallback when no Redis address is configured.
type NoopSettlementCache struct{}

func (NoopSettlementCache) Get(_ context.Context, _ string) (*models.Settlement, bool, error) {
	return nil, false, nil
}

func (NoopSettlementCache) Set(_ context.Context, _ string, _ *models.Settlement) error {
	return nil
}
