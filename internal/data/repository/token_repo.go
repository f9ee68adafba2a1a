package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TokenRepository tracks access tokens revoked before they expire.
type TokenRepository interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type tokenRepository struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewTokenRepository(rdb *redis.Client, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		rdb: rdb,
		log: log.With(zap.String("repository", "token")),
	}
}

func revokedTokenKey(tokenID string) string {
	return fmt.Sprintf("revoked:token:%s", tokenID)
}

func (r *tokenRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := r.rdb.Set(ctx, revokedTokenKey(tokenID), 1, ttl).Err(); err != nil {
		r.log.Error("Failed to revoke token",
			zap.Error(err),
			zap.String("token_id", tokenID),
		)
		return fmt.Errorf("revoke token %s: %w", tokenID, err)
	}

	return nil
}

func (r *tokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedTokenKey(tokenID)).Result()
	if err != nil {
		r.log.Error("Failed to check revoked token",
			zap.Error(err),
			zap.String("token_id", tokenID),
		)
		return false, fmt.Errorf("check revoked token %s: %w", tokenID, err)
	}

	return n > 0, nil
}
