package ports

import (
	"context"
	"time"

	"github.com/clearsolutions/user-api/internal/domains/users/domain"
)

// Service exposes the user bounded context use cases to adapters.
type Service interface {
	CreateUser(ctx context.Context, user *domain.User) (int64, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, idText string) error
	SearchByBirthDateRange(ctx context.Context, from, to time.Time) ([]*domain.User, error)
}
