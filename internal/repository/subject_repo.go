package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mdd-api/internal/model"
)

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

func (r *SubjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, created_at FROM subject ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	subjects := make([]model.Subject, 0)
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (model.Subject, error) {
	var s model.Subject
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM subject WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Subject{}, model.ErrSubjectNotFound
	}
	if err != nil {
		return model.Subject{}, fmt.Errorf("find subject by id: %w", err)
	}
	return s, nil
}
