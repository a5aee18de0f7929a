package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mdd-api/internal/model"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, subjectID int64, authorID int64, title string, content string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO post (subject_id, author_id, title, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		subjectID, authorID, title, content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}
	return id, nil
}

func (r *PostRepository) FindDetail(ctx context.Context, id int64) (model.Post, error) {
	var p model.Post
	err := r.pool.QueryRow(ctx,
		`SELECT p.id, p.subject_id, p.author_id, p.title, p.content, p.created_at,
		        u.username, s.name
		 FROM post p
		 JOIN users u ON u.id = p.author_id
		 JOIN subject s ON s.id = p.subject_id
		 WHERE p.id = $1`, id).
		Scan(&p.ID, &p.SubjectID, &p.AuthorID, &p.Title, &p.Content, &p.CreatedAt,
			&p.AuthorUsername, &p.SubjectName)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Post{}, model.ErrPostNotFound
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("find post detail: %w", err)
	}
	return p, nil
}

func (r *PostRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM post WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}

// Feed returns posts from the given subjects with author and subject joined,
// ordered by creation time.
func (r *PostRepository) Feed(ctx context.Context, subjectIDs []int64, ascending bool) ([]model.Post, error) {
	order := "DESC"
	if ascending {
		order = "ASC"
	}

	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.subject_id, p.author_id, p.title, p.content, p.created_at,
		        u.username, s.name
		 FROM post p
		 JOIN users u ON u.id = p.author_id
		 JOIN subject s ON s.id = p.subject_id
		 WHERE p.subject_id = ANY($1)
		 ORDER BY p.created_at `+order, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("query feed: %w", err)
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.SubjectID, &p.AuthorID, &p.Title, &p.Content, &p.CreatedAt,
			&p.AuthorUsername, &p.SubjectName); err != nil {
			return nil, fmt.Errorf("scan feed post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
