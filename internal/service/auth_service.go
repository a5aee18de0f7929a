package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"mdd-api/internal/auth"
	"mdd-api/internal/model"
	"mdd-api/pkg/apierror"
)

const bcryptCost = 12

// The same message for unknown identifier and wrong password, so a caller
// cannot probe which accounts exist.
const loginFailedMessage = "invalid username or password"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthService orchestrates registration, login, refresh rotation, and
// logout over the user and session stores.
type AuthService struct {
	users    UserStore
	sessions SessionStore
	signer   *auth.TokenSigner
	refresh  *auth.RefreshTokenManager
	now      func() time.Time
}

func NewAuthService(users UserStore, sessions SessionStore, signer *auth.TokenSigner, refresh *auth.RefreshTokenManager) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		signer:   signer,
		refresh:  refresh,
		now:      time.Now,
	}
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         model.PublicUser
}

type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Register(ctx context.Context, email string, username string, password string) (model.PublicUser, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if err := validateRegistration(email, username, password); err != nil {
		return model.PublicUser{}, err
	}

	emailTaken, err := s.users.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return model.PublicUser{}, err
	}
	if emailTaken {
		return model.PublicUser{}, apierror.Conflict("this email address is not available", "email")
	}

	usernameTaken, err := s.users.ExistsByUsername(ctx, username, 0)
	if err != nil {
		return model.PublicUser{}, err
	}
	if usernameTaken {
		return model.PublicUser{}, apierror.Conflict("this username is not available", "username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, username, string(hash))
	if errors.Is(err, model.ErrDuplicateRow) {
		// Existence checks above are best-effort; the unique index caught
		// a concurrent registration.
		return model.PublicUser{}, apierror.Conflict("resource already exists", "")
	}
	if err != nil {
		return model.PublicUser{}, err
	}

	return user.Public(), nil
}

// Login resolves the identifier as an email when it contains "@", otherwise
// as a username. On success it opens a new session lineage and returns the
// refresh token in plaintext for cookie transport only.
func (s *AuthService) Login(ctx context.Context, identifier string, password string) (LoginResult, error) {
	user, err := s.findByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, apierror.Unauthorized(loginFailedMessage)
	}

	refreshToken, err := s.refresh.GenerateToken()
	if err != nil {
		return LoginResult{}, err
	}

	_, err = s.sessions.Create(ctx, user.ID, s.refresh.Fingerprint(refreshToken), s.refresh.ComputeExpiry())
	if err != nil {
		return LoginResult{}, err
	}

	accessToken, err := s.signer.IssueAccessToken(user.ID)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Public(),
	}, nil
}

// Refresh rotates the session keyed by the presented token's fingerprint.
// The old fingerprint becomes permanently unusable, so a replayed token
// finds no matching row and is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (RefreshResult, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return RefreshResult{}, apierror.Unauthorized("refresh token is missing")
	}

	tokenHash := s.refresh.Fingerprint(refreshToken)
	session, err := s.sessions.FindByTokenHash(ctx, tokenHash)
	if errors.Is(err, model.ErrSessionNotFound) {
		return RefreshResult{}, apierror.Unauthorized("refresh token is invalid")
	}
	if err != nil {
		return RefreshResult{}, err
	}

	if session.RevokedAt != nil {
		return RefreshResult{}, apierror.Unauthorized("session has been revoked")
	}
	if session.ExpiresAt.Before(s.now()) {
		return RefreshResult{}, apierror.Unauthorized("session has expired")
	}

	newToken, err := s.refresh.GenerateToken()
	if err != nil {
		return RefreshResult{}, err
	}

	rotated, err := s.sessions.Rotate(ctx, tokenHash, s.refresh.Fingerprint(newToken), s.refresh.ComputeExpiry())
	if err != nil {
		return RefreshResult{}, err
	}
	if !rotated {
		// A concurrent refresh consumed the token first.
		return RefreshResult{}, apierror.Unauthorized("refresh token is invalid")
	}

	accessToken, err := s.signer.IssueAccessToken(session.UserID)
	if err != nil {
		return RefreshResult{}, err
	}

	return RefreshResult{AccessToken: accessToken, RefreshToken: newToken}, nil
}

// Logout revokes the session behind the presented token. Blank and unknown
// tokens are a deliberate no-op; a second logout never errors.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, s.refresh.Fingerprint(refreshToken), s.now().UTC())
}

func (s *AuthService) findByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	var (
		user model.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.users.FindByEmail(ctx, identifier)
	} else {
		user, err = s.users.FindByUsername(ctx, identifier)
	}

	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, apierror.Unauthorized(loginFailedMessage)
	}
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func validateRegistration(email string, username string, password string) error {
	if !emailPattern.MatchString(email) {
		return apierror.BadRequest("invalid email address", "email")
	}
	if len(username) < 3 || len(username) > 50 {
		return apierror.BadRequest("username must be between 3 and 50 characters", "username")
	}
	return validatePassword(password)
}

func validatePassword(password string) error {
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if len(password) < 8 || !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		return apierror.BadRequest(
			"password must be at least 8 characters with a lowercase letter, an uppercase letter, a digit, and a special character",
			"password")
	}
	return nil
}
