package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mdd-api/internal/model"
)

// SessionRepository persists refresh-token sessions keyed by fingerprint.
// Rows are soft-revoked only and never deleted, so a replayed fingerprint
// from a revoked lineage still resolves to its audit trail.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) (model.Session, error) {
	s := model.Session{UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO auth_session (user_id, token_hash, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		userID, tokenHash, expiresAt).Scan(&s.ID, &s.CreatedAt)
	if isUniqueViolation(err) {
		return model.Session{}, model.ErrDuplicateRow
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

func (r *SessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (model.Session, error) {
	var s model.Session
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
		 FROM auth_session WHERE token_hash = $1`, tokenHash).
		Scan(&s.ID, &s.UserID, &s.TokenHash, &s.ExpiresAt, &s.RevokedAt, &s.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Session{}, model.ErrSessionNotFound
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("find session by token hash: %w", err)
	}
	return s, nil
}

// Rotate atomically replaces the session's fingerprint and expiry, keyed on
// the old fingerprint. Of two concurrent refreshes with the same token, at
// most one update matches; the loser gets false and is rejected upstream.
func (r *SessionRepository) Rotate(ctx context.Context, oldHash string, newHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE auth_session SET token_hash = $2, expires_at = $3
		 WHERE token_hash = $1 AND revoked_at IS NULL`,
		oldHash, newHash, expiresAt)
	if isUniqueViolation(err) {
		return false, model.ErrDuplicateRow
	}
	if err != nil {
		return false, fmt.Errorf("rotate session: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Revoke stamps the revocation instant once; already-revoked and unknown
// fingerprints are left untouched.
func (r *SessionRepository) Revoke(ctx context.Context, tokenHash string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE auth_session SET revoked_at = $2
		 WHERE token_hash = $1 AND revoked_at IS NULL`,
		tokenHash, at)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
