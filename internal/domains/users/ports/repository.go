package ports

import (
	"context"
	"errors"

	"github.com/clearsolutions/user-api/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")

// Repository is the record store consumed by the application core.
type Repository interface {
	// Save inserts the user when ID is zero, assigning a fresh identifier,
	// and overwrites the existing row otherwise.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
	FindAll(ctx context.Context) ([]*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
}
