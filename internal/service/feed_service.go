package service

import (
	"context"
	"time"

	"mdd-api/internal/model"
	"mdd-api/pkg/apierror"
)

// FeedService assembles the per-user feed from subscribed subjects.
type FeedService struct {
	posts         PostStore
	subscriptions SubscriptionStore
	users         UserStore
}

func NewFeedService(posts PostStore, subscriptions SubscriptionStore, users UserStore) *FeedService {
	return &FeedService{posts: posts, subscriptions: subscriptions, users: users}
}

// GetFeed returns posts from the user's subscribed subjects ordered by
// creation time; an empty feed when the user has no subscriptions.
func (s *FeedService) GetFeed(ctx context.Context, userID int64, ascending bool) ([]model.FeedPostResponse, error) {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apierror.NotFound("user not found")
	}

	subjectIDs, err := s.subscriptions.ListSubjectIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(subjectIDs) == 0 {
		return []model.FeedPostResponse{}, nil
	}

	posts, err := s.posts.Feed(ctx, subjectIDs, ascending)
	if err != nil {
		return nil, err
	}

	out := make([]model.FeedPostResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, model.FeedPostResponse{
			ID:        post.ID,
			SubjectID: post.SubjectID,
			Author:    post.AuthorUsername,
			Title:     post.Title,
			Content:   post.Content,
			CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}
