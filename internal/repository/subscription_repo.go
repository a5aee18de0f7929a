package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"mdd-api/internal/model"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

func (r *SubscriptionRepository) ListSubjectIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT subject_id FROM subscription WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscribed subject ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan subject id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListSubjects returns the subjects the user is subscribed to, joined for
// the profile view.
func (r *SubscriptionRepository) ListSubjects(ctx context.Context, userID int64) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.description, s.created_at
		 FROM subscription sub
		 JOIN subject s ON s.id = sub.subject_id
		 WHERE sub.user_id = $1
		 ORDER BY s.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subjects := make([]model.Subject, 0)
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *SubscriptionRepository) Exists(ctx context.Context, userID int64, subjectID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM subscription WHERE user_id = $1 AND subject_id = $2)`,
		userID, subjectID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check subscription exists: %w", err)
	}
	return exists, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, userID int64, subjectID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO subscription (user_id, subject_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		userID, subjectID)
	if err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, userID int64, subjectID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM subscription WHERE user_id = $1 AND subject_id = $2`,
		userID, subjectID)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}
