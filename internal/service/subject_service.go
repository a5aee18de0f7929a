package service

import (
	"context"
	"errors"

	"mdd-api/internal/model"
	"mdd-api/pkg/apierror"
)

// SubjectService lists subjects and manages user subscriptions.
type SubjectService struct {
	subjects      SubjectStore
	subscriptions SubscriptionStore
	users         UserStore
}

func NewSubjectService(subjects SubjectStore, subscriptions SubscriptionStore, users UserStore) *SubjectService {
	return &SubjectService{subjects: subjects, subscriptions: subscriptions, users: users}
}

// ListSubjects returns every subject with a subscribed flag for the user.
func (s *SubjectService) ListSubjects(ctx context.Context, userID int64) ([]model.SubjectResponse, error) {
	subscribedIDs, err := s.subscriptions.ListSubjectIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	subscribed := make(map[int64]struct{}, len(subscribedIDs))
	for _, id := range subscribedIDs {
		subscribed[id] = struct{}{}
	}

	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		_, isSubscribed := subscribed[subject.ID]
		out = append(out, model.SubjectResponse{
			ID:          subject.ID,
			Name:        subject.Name,
			Description: subject.Description,
			Subscribed:  isSubscribed,
		})
	}
	return out, nil
}

// Subscribe is idempotent: subscribing twice leaves a single row.
func (s *SubjectService) Subscribe(ctx context.Context, userID int64, subjectID int64) (model.SubscriptionStatusResponse, error) {
	if err := s.checkUserAndSubject(ctx, userID, subjectID); err != nil {
		return model.SubscriptionStatusResponse{}, err
	}

	if err := s.subscriptions.Create(ctx, userID, subjectID); err != nil {
		return model.SubscriptionStatusResponse{}, err
	}
	return model.SubscriptionStatusResponse{Subscribed: true}, nil
}

// Unsubscribe is idempotent: removing a missing subscription is a no-op.
func (s *SubjectService) Unsubscribe(ctx context.Context, userID int64, subjectID int64) (model.SubscriptionStatusResponse, error) {
	if err := s.checkUserAndSubject(ctx, userID, subjectID); err != nil {
		return model.SubscriptionStatusResponse{}, err
	}

	if err := s.subscriptions.Delete(ctx, userID, subjectID); err != nil {
		return model.SubscriptionStatusResponse{}, err
	}
	return model.SubscriptionStatusResponse{Subscribed: false}, nil
}

func (s *SubjectService) checkUserAndSubject(ctx context.Context, userID int64, subjectID int64) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apierror.NotFound("user not found")
	}

	_, err = s.subjects.FindByID(ctx, subjectID)
	if errors.Is(err, model.ErrSubjectNotFound) {
		return apierror.NotFound("subject not found")
	}
	return err
}
