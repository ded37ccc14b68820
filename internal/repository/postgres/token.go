package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/glucocare/glucocare-api/internal/repository"
)

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) repository.TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) InvalidateToken(ctx context.Context, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (token, expires_at, revoked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, token, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (r *tokenRepository) IsInvalidated(ctx context.Context, token string) (bool, error) {
	query := `SELECT COUNT(1) FROM revoked_tokens WHERE token = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, token); err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return count > 0, nil
}

func (r *tokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM revoked_tokens WHERE expires_at < $1`
	res, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}
	return res.RowsAffected()
}
