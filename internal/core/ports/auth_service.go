package ports

import (
	"context"

	"github.com/marketloop/storefront-api/internal/core/domain"
)

// RegisterInput carries a candidate account payload. Required fields are
// checked by the service in a fixed order (name, email, password, phone,
// address, answer); the first missing one aborts with its own message.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Answer   string
}

// ForgotPasswordInput carries a recovery request. The security answer stands
// in for the old password.
type ForgotPasswordInput struct {
	Email       string
	Answer      string
	NewPassword string
}

// UpdateProfileInput is a partial update: an empty field means "keep the
// current stored value". Role is deliberately absent — it is immutable.
type UpdateProfileInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// LoginResult is returned by a login attempt that got past the email lookup.
// InvalidPassword marks the soft-fail case: a registered email with the wrong
// password yields a success-class response carrying this flag, not a 404.
type LoginResult struct {
	Token           string
	User            *domain.User
	InvalidPassword bool
}

// AuthService defines the account use-cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ForgotPassword(ctx context.Context, in ForgotPasswordInput) error
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
}
