package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/kv"
)

const revokedTokenKeyPrefix = "revoked_token:"

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked token ids in the key-value store.
type TokenStore struct {
	store  kv.Store
	logger *slog.Logger
	now    func() time.Time
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(store kv.Store, logger *slog.Logger) *TokenStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenStore{store: store, logger: logger, now: time.Now}
}

type revocation struct {
	ExpiresAt time.Time `json:"expiresAt"`
}

// Revoke marks tokenID as no longer accepted. expiresAt is the token's own
// expiry; once it passes the marker is ignored and dropped.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	payload, err := json.Marshal(revocation{ExpiresAt: expiresAt.UTC()})
	if err != nil {
		return fmt.Errorf("marshal revocation: %w", err)
	}
	return s.store.Set(ctx, revokedTokenKeyPrefix+tokenID, payload)
}

// IsRevoked checks whether tokenID was revoked. Store failures are returned
// so the caller can reject the request.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := revokedTokenKeyPrefix + tokenID
	data, found, err := s.store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	var rev revocation
	if err := json.Unmarshal(data, &rev); err != nil {
		// Unreadable marker: treat as revoked.
		return true, nil
	}
	if !rev.ExpiresAt.IsZero() && s.now().After(rev.ExpiresAt) {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("drop expired revocation",
				slog.String("token_id", tokenID), slog.Any("error", err))
		}
		return false, nil
	}
	return true, nil
}
