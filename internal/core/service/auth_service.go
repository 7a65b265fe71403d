package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketloop/storefront-api/internal/core/domain"
	"github.com/marketloop/storefront-api/internal/core/ports"
	"github.com/marketloop/storefront-api/pkg/password"
)

const minPasswordLen = 6

// AuthService implements registration, login, password recovery and profile
// updates.
type AuthService struct {
	repo   ports.UserRepository
	issuer *TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, issuer *TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, log: log}
}

// Register validates the payload, enforces email uniqueness and persists a
// new customer account.
//
// Required fields are checked left to right; the first missing one aborts
// with its own message. Callers assert on which message appears when several
// fields are missing, so the order is part of the contract.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	for _, check := range []struct {
		value, message string
	}{
		{in.Name, "Name is required"},
		{in.Email, "Email is required"},
		{in.Password, "Password is required"},
		{in.Phone, "Phone number is required"},
		{in.Address, "Address is required"},
		{in.Answer, "Answer is required"},
	} {
		if check.value == "" {
			return nil, domain.ValidationError{Message: check.message}
		}
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: existence check: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   hash,
		Phone:          in.Phone,
		Address:        in.Address,
		SecurityAnswer: in.Answer,
		Role:           domain.RoleCustomer,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		// The unique email index can still fire here: the check above and
		// the insert are not one atomic step.
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("register: insert user: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a session token.
//
// A wrong password for a registered email is a soft fail: the result carries
// InvalidPassword=true with no error, which the transport renders as a
// success-class response. An unknown email is a hard ErrUserNotFound. The
// asymmetry is deliberate and preserved.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*ports.LoginResult, error) {
	if email == "" || pass == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("login: lookup: %w", err)
	}

	if !password.Verify(pass, user.PasswordHash) {
		return &ports.LoginResult{InvalidPassword: true}, nil
	}

	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")
	return &ports.LoginResult{Token: token, User: user}, nil
}

// ForgotPassword resets an account's password using the pre-registered
// security answer in place of the old password. Only the password hash
// changes; every other field is left untouched.
func (s *AuthService) ForgotPassword(ctx context.Context, in ports.ForgotPasswordInput) error {
	for _, check := range []struct {
		value, message string
	}{
		{in.Email, "Email is required"},
		{in.Answer, "Answer is required"},
		{in.NewPassword, "New Password is required"},
	} {
		if check.value == "" {
			return domain.ValidationError{Message: check.message}
		}
	}

	user, err := s.repo.FindByEmailAndAnswer(ctx, in.Email, in.Answer)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrWrongEmailOrAnswer
		}
		return fmt.Errorf("forgot password: lookup: %w", err)
	}

	hash, err := password.Hash(in.NewPassword)
	if err != nil {
		return fmt.Errorf("forgot password: hash password: %w", err)
	}

	updated := *user
	updated.PasswordHash = hash
	updated.UpdatedAt = time.Now().UTC()

	if _, err := s.repo.UpdateByID(ctx, user.ID, &updated); err != nil {
		return fmt.Errorf("forgot password: update: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

// UpdateProfile applies a partial update to the account. Each supplied field
// replaces the stored value; each empty field falls back to it. An update
// carrying only a phone number leaves name, email and address exactly as
// they were. Role is never touched.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update profile: load: %w", err)
	}

	// Length check fires before any persistence attempt, even when every
	// other field is valid.
	if in.Password != "" && len(in.Password) < minPasswordLen {
		return nil, domain.ValidationError{Message: "Password is required and 6 characters long"}
	}

	merged := *user
	if in.Name != "" {
		merged.Name = in.Name
	}
	if in.Email != "" {
		merged.Email = in.Email
	}
	if in.Phone != "" {
		merged.Phone = in.Phone
	}
	if in.Address != "" {
		merged.Address = in.Address
	}
	if in.Password != "" {
		hash, err := password.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("update profile: hash password: %w", err)
		}
		merged.PasswordHash = hash
	}
	merged.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.UpdateByID(ctx, userID, &merged)
	if err != nil {
		return nil, fmt.Errorf("update profile: update: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}
