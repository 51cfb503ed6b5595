package repository

import (
	"context"

	"reimburse-api/internal/infra"

	"github.com/google/uuid"
)

type APIKey struct {
	ID   uuid.UUID
	Name string
}

type APIKeyRepository struct {
	db DBTX
}

func NewAPIKeyRepository(db DBTX) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// FindActiveByHash looks up an active key by its sha256 hash. Keys are never
// stored in clear.
func (r *APIKeyRepository) FindActiveByHash(ctx context.Context, keyHash string) (*APIKey, error) {
	var k APIKey
	err := r.db.QueryRow(ctx, `
		SELECT id, name FROM api_keys
		WHERE key_hash = $1 AND is_active = true`, keyHash).Scan(&k.ID, &k.Name)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find api key", err)
	}
	return &k, nil
}
