package ports

import (
	"context"

	"github.com/marketloop/storefront-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
//
// Registration performs FindByEmail followed by Insert, which is not atomic:
// two concurrent registrations for the same email can both pass the lookup.
// Implementations are expected to close that window with a unique index on
// email so the second Insert fails with domain.ErrUserExists.
type UserRepository interface {
	// FindByEmail retrieves a user by exact email match.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailAndAnswer retrieves a user matching both the email and the
	// plaintext security answer. Used only by password recovery.
	FindByEmailAndAnswer(ctx context.Context, email, answer string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Insert persists a new user and returns it with the generated id.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateByID overwrites the stored record's mutable fields and returns
	// the updated user.
	UpdateByID(ctx context.Context, id string, user *domain.User) (*domain.User, error)
}
