package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clearsolutions/user-api/internal/domains/users/domain"
	"github.com/clearsolutions/user-api/internal/domains/users/ports"
)

// Service enforces the user business rules in front of the record store:
// field validation, the minimum-age rule, and email/phone uniqueness. Every
// check runs before the single write, so failures leave no partial state.
type Service struct {
	repo       ports.Repository
	minUserAge int
	now        func() time.Time
}

type Option func(*Service)

// WithClock overrides the source of "today" for the age rule. Tests use it
// to pin the reference date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the user service with its record store and the configured
// minimum age in years.
func NewService(repo ports.Repository, minUserAge int, opts ...Option) *Service {
	s := &Service{repo: repo, minUserAge: minUserAge, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateUser validates the candidate, enforces the age and uniqueness rules,
// and persists a new record. The store assigns the identifier, which is
// returned to the caller.
func (s *Service) CreateUser(ctx context.Context, user *domain.User) (int64, error) {
	if user == nil {
		return 0, fmt.Errorf("%w: user payload is required", ErrValidation)
	}
	user.ID = 0
	if err := user.Validate(); err != nil {
		return 0, mapError(err)
	}
	if !user.OlderThan(s.now(), s.minUserAge) {
		return 0, fmt.Errorf("%w: user must be at least %d years old", ErrBusinessRule, s.minUserAge)
	}
	if err := s.checkEmailFree(ctx, user.Email); err != nil {
		return 0, err
	}
	if user.Phone != "" {
		if err := s.checkPhoneFree(ctx, user.Phone); err != nil {
			return 0, err
		}
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return 0, err
	}
	return saved.ID, nil
}

// UpdateUser overwrites every mutable field of the stored record with the
// provided values; the identifier never changes. An email or phone equal to
// the record's own current value is not a uniqueness conflict. Absent fields
// are not preserved: this is a full overwrite, not a partial patch.
func (s *Service) UpdateUser(ctx context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("%w: user payload is required", ErrValidation)
	}
	existing, err := s.repo.FindByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if err := user.Validate(); err != nil {
		return mapError(err)
	}
	if !user.OlderThan(s.now(), s.minUserAge) {
		return fmt.Errorf("%w: user must be at least %d years old", ErrBusinessRule, s.minUserAge)
	}
	if user.Email != existing.Email {
		if err := s.checkEmailFree(ctx, user.Email); err != nil {
			return err
		}
	}
	if user.Phone != "" && user.Phone != existing.Phone {
		if err := s.checkPhoneFree(ctx, user.Phone); err != nil {
			return err
		}
	}
	_, err = s.repo.Save(ctx, user)
	return err
}

// DeleteUser parses the textual identifier and removes the record.
func (s *Service) DeleteUser(ctx context.Context, idText string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(idText), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid id format: %s", ErrValidation, idText)
	}
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: id %d", ports.ErrNotFound, id)
	}
	return s.repo.DeleteByID(ctx, id)
}

// SearchByBirthDateRange returns all users born inside [from, to], inclusive
// on both ends. Order follows store iteration order and is unspecified.
func (s *Service) SearchByBirthDateRange(ctx context.Context, from, to time.Time) ([]*domain.User, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: invalid birth date range", ErrValidation)
	}
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*domain.User, 0, len(all))
	for _, user := range all {
		if user.BornWithin(from, to) {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

func (s *Service) checkEmailFree(ctx context.Context, email string) error {
	taken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: the email is already taken", ErrBusinessRule)
	}
	return nil
}

func (s *Service) checkPhoneFree(ctx context.Context, phone string) error {
	taken, err := s.repo.ExistsByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: the phone is already taken", ErrBusinessRule)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
