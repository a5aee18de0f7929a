package service

import (
	"context"
	"time"

	"mdd-api/internal/model"
)

// Store contracts consumed by the services and implemented by the
// repository package. Tests substitute in-memory fakes.

type UserStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	Create(ctx context.Context, email string, username string, passwordHash string) (model.User, error)
	Update(ctx context.Context, u model.User) error
}

type SessionStore interface {
	Create(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) (model.Session, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (model.Session, error)
	Rotate(ctx context.Context, oldHash string, newHash string, expiresAt time.Time) (bool, error)
	Revoke(ctx context.Context, tokenHash string, at time.Time) error
}

type SubjectStore interface {
	List(ctx context.Context) ([]model.Subject, error)
	FindByID(ctx context.Context, id int64) (model.Subject, error)
}

type SubscriptionStore interface {
	ListSubjectIDs(ctx context.Context, userID int64) ([]int64, error)
	ListSubjects(ctx context.Context, userID int64) ([]model.Subject, error)
	Exists(ctx context.Context, userID int64, subjectID int64) (bool, error)
	Create(ctx context.Context, userID int64, subjectID int64) error
	Delete(ctx context.Context, userID int64, subjectID int64) error
}

type PostStore interface {
	Create(ctx context.Context, subjectID int64, authorID int64, title string, content string) (int64, error)
	FindDetail(ctx context.Context, id int64) (model.Post, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Feed(ctx context.Context, subjectIDs []int64, ascending bool) ([]model.Post, error)
}

type CommentStore interface {
	Create(ctx context.Context, postID int64, authorID int64, content string) error
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
}
