package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"mdd-api/internal/model"
	"mdd-api/pkg/apierror"
)

// UserService serves profile reads and the explicit profile-update path,
// the only way user rows are mutated.
type UserService struct {
	users         UserStore
	subscriptions SubscriptionStore
}

func NewUserService(users UserStore, subscriptions SubscriptionStore) *UserService {
	return &UserService{users: users, subscriptions: subscriptions}
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (model.UserProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.UserProfileResponse{}, apierror.NotFound("user not found")
	}
	if err != nil {
		return model.UserProfileResponse{}, err
	}

	subjects, err := s.subscriptions.ListSubjects(ctx, userID)
	if err != nil {
		return model.UserProfileResponse{}, err
	}

	subs := make([]model.SubscriptionResponse, 0, len(subjects))
	for _, subject := range subjects {
		subs = append(subs, model.SubscriptionResponse{
			SubjectID:   subject.ID,
			Name:        subject.Name,
			Description: subject.Description,
		})
	}

	return model.UserProfileResponse{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		Subscriptions: subs,
	}, nil
}

// UpdateProfile applies the provided fields only. Email and username
// conflicts are checked case-insensitively against all other users.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req model.UpdateUserRequest) (model.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.PublicUser{}, apierror.NotFound("user not found")
	}
	if err != nil {
		return model.PublicUser{}, err
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !strings.EqualFold(email, user.Email) {
			if !emailPattern.MatchString(email) {
				return model.PublicUser{}, apierror.BadRequest("invalid email address", "email")
			}
			taken, err := s.users.ExistsByEmail(ctx, email, userID)
			if err != nil {
				return model.PublicUser{}, err
			}
			if taken {
				return model.PublicUser{}, apierror.Conflict("this email address is not available", "email")
			}
			user.Email = email
		}
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if !strings.EqualFold(username, user.Username) {
			if len(username) < 3 || len(username) > 50 {
				return model.PublicUser{}, apierror.BadRequest("username must be between 3 and 50 characters", "username")
			}
			taken, err := s.users.ExistsByUsername(ctx, username, userID)
			if err != nil {
				return model.PublicUser{}, err
			}
			if taken {
				return model.PublicUser{}, apierror.Conflict("this username is not available", "username")
			}
			user.Username = username
		}
	}

	if req.Password != nil {
		if err := validatePassword(*req.Password); err != nil {
			return model.PublicUser{}, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicateRow) {
			return model.PublicUser{}, apierror.Conflict("resource already exists", "")
		}
		if errors.Is(err, model.ErrUserNotFound) {
			return model.PublicUser{}, apierror.NotFound("user not found")
		}
		return model.PublicUser{}, err
	}

	return user.Public(), nil
}
