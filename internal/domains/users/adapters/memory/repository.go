package memory

import (
	"context"
	"sync"

	"github.com/clearsolutions/user-api/internal/domains/users/domain"
	"github.com/clearsolutions/user-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user persistence adapter. It assigns sequential
// identifiers starting at 1 and never reuses them.
type Repository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	order  []int64
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{users: map[int64]*domain.User{}, nextID: 1}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	if clone.ID == 0 {
		clone.ID = r.nextID
		r.nextID++
		r.order = append(r.order, clone.ID)
	} else if _, ok := r.users[clone.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	r.users[clone.ID] = &clone
	result := clone
	return &result, nil
}

// Seed inserts a user under a fixed identifier. Intended for tests that need
// stable ids; the counter advances past the seeded value.
func (r *Repository) Seed(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	if _, ok := r.users[clone.ID]; !ok {
		r.order = append(r.order, clone.ID)
	}
	r.users[clone.ID] = &clone
	if clone.ID >= r.nextID {
		r.nextID = clone.ID + 1
	}
}

func (r *Repository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *Repository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindAll returns users in insertion order.
func (r *Repository) FindAll(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.users))
	for _, id := range r.order {
		if user, ok := r.users[id]; ok {
			clone := *user
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *Repository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	if phone == "" {
		return false, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}
