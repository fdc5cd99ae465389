package application

import (
	"errors"
	"fmt"

	"github.com/clearsolutions/user-api/internal/domains/users/domain"
)

var (
	// ErrValidation signals malformed input: a field-level constraint failed
	// or an identifier/date parameter could not be parsed.
	ErrValidation = errors.New("validation failed")
	// ErrBusinessRule signals well-formed input that violates a domain rule:
	// underage birth date or a duplicate email/phone.
	ErrBusinessRule = errors.New("business rule violated")
)

// mapError lifts field-level domain sentinels into the validation category so
// the transport layer can translate them with a single errors.Is check.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrBlankEmail) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrBlankFirstName) ||
		errors.Is(err, domain.ErrBlankLastName) ||
		errors.Is(err, domain.ErrMissingBirthDate) ||
		errors.Is(err, domain.ErrInvalidPhone) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return err
}
