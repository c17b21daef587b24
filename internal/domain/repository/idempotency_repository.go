package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/storepos-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves the stored response for a key sent by userID to
	// endpoint ("METHOD /route"). The same key on another endpoint misses.
	GetByKey(ctx context.Context, key string, userID uuid.UUID, endpoint string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys past their expiry and reports how many went
	DeleteExpired(ctx context.Context) (int64, error)
}
