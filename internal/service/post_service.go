package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mdd-api/internal/model"
	"mdd-api/pkg/apierror"
)

// PostService handles post creation, post detail, and comments.
type PostService struct {
	posts    PostStore
	comments CommentStore
	subjects SubjectStore
	users    UserStore
}

func NewPostService(posts PostStore, comments CommentStore, subjects SubjectStore, users UserStore) *PostService {
	return &PostService{posts: posts, comments: comments, subjects: subjects, users: users}
}

func (s *PostService) CreatePost(ctx context.Context, userID int64, req model.CreatePostRequest) (model.CreatePostResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return model.CreatePostResponse{}, apierror.BadRequest("title is required", "title")
	}
	if strings.TrimSpace(req.Content) == "" {
		return model.CreatePostResponse{}, apierror.BadRequest("content is required", "content")
	}

	_, err := s.subjects.FindByID(ctx, req.SubjectID)
	if errors.Is(err, model.ErrSubjectNotFound) {
		return model.CreatePostResponse{}, apierror.NotFound("subject not found")
	}
	if err != nil {
		return model.CreatePostResponse{}, err
	}

	if err := s.checkUser(ctx, userID); err != nil {
		return model.CreatePostResponse{}, err
	}

	id, err := s.posts.Create(ctx, req.SubjectID, userID, req.Title, req.Content)
	if err != nil {
		return model.CreatePostResponse{}, err
	}
	return model.CreatePostResponse{ID: id}, nil
}

func (s *PostService) GetPost(ctx context.Context, postID int64) (model.PostDetailResponse, error) {
	post, err := s.posts.FindDetail(ctx, postID)
	if errors.Is(err, model.ErrPostNotFound) {
		return model.PostDetailResponse{}, apierror.NotFound("post not found")
	}
	if err != nil {
		return model.PostDetailResponse{}, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return model.PostDetailResponse{}, err
	}

	commentResponses := make([]model.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		commentResponses = append(commentResponses, model.CommentResponse{
			ID:        comment.ID,
			Content:   comment.Content,
			Author:    comment.AuthorUsername,
			CreatedAt: comment.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return model.PostDetailResponse{
		ID:        post.ID,
		Subject:   model.PostSubjectResponse{ID: post.SubjectID, Name: post.SubjectName},
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.AuthorUsername,
		CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339),
		Comments:  commentResponses,
	}, nil
}

func (s *PostService) AddComment(ctx context.Context, userID int64, postID int64, req model.CreateCommentRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return apierror.BadRequest("content is required", "content")
	}

	exists, err := s.posts.ExistsByID(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return apierror.NotFound("post not found")
	}

	if err := s.checkUser(ctx, userID); err != nil {
		return err
	}

	return s.comments.Create(ctx, postID, userID, req.Content)
}

func (s *PostService) checkUser(ctx context.Context, userID int64) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apierror.NotFound("user not found")
	}
	return nil
}
