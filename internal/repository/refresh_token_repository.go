package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tenant-admin/internal/domain"
)

// RefreshTokenRepository manages refresh token persistence. Only token hashes
// are stored; raw values never reach this layer.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	// DeleteByHash reports whether a row was actually deleted. Rotation
	// depends on that signal: of two concurrent refreshes using the same
	// stale token, only the one that wins the delete may issue new
	// credentials.
	DeleteByHash(ctx context.Context, tokenHash string) (bool, error)
	DeleteExpiredByUser(ctx context.Context, userID string) error
}

type refreshTokenRepository struct {
	pool *pgxpool.Pool
}

// NewRefreshTokenRepository returns a Postgres-backed implementation.
func NewRefreshTokenRepository(pool *pgxpool.Pool) RefreshTokenRepository {
	return &refreshTokenRepository{pool: pool}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	const query = `
        INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *refreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	const query = `
        SELECT id, user_id, token_hash, expires_at, created_at
        FROM refresh_tokens WHERE token_hash=$1`

	var token domain.RefreshToken
	if err := r.pool.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) DeleteByHash(ctx context.Context, tokenHash string) (bool, error) {
	const query = `DELETE FROM refresh_tokens WHERE token_hash=$1`

	cmd, err := r.pool.Exec(ctx, query, tokenHash)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *refreshTokenRepository) DeleteExpiredByUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM refresh_tokens WHERE user_id=$1 AND expires_at < NOW()`

	_, err := r.pool.Exec(ctx, query, userID)
	return err
}
