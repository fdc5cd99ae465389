package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrBlankEmail       = errors.New("email can not be blank")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrBlankFirstName   = errors.New("first name can not be blank")
	ErrBlankLastName    = errors.New("last name can not be blank")
	ErrMissingBirthDate = errors.New("birth date can not be null")
	ErrInvalidPhone     = errors.New("phone number must be in format +380XXXXXXXXX")
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+380\d{9}$`)
)

// User is the sole aggregate of the service. Empty Phone and Address values
// mean "not provided"; phone uniqueness is only enforced when set.
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	BirthDate time.Time
	Address   string
	Phone     string
}

// SetEmail trims and validates the email against the canonical pattern.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrBlankEmail
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetName trims and validates both name components.
func (u *User) SetName(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return ErrBlankFirstName
	}
	if lastName == "" {
		return ErrBlankLastName
	}
	u.FirstName = firstName
	u.LastName = lastName
	return nil
}

// SetBirthDate stores the calendar date, truncated to UTC midnight.
func (u *User) SetBirthDate(birthDate time.Time) error {
	if birthDate.IsZero() {
		return ErrMissingBirthDate
	}
	u.BirthDate = DateOnly(birthDate)
	return nil
}

// SetPhone validates the optional phone number. Empty clears it.
func (u *User) SetPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone != "" && !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	u.Phone = phone
	return nil
}

// SetAddress stores the optional address.
func (u *User) SetAddress(address string) {
	u.Address = strings.TrimSpace(address)
}

// Validate re-applies every field invariant, failing fast on the first
// violated one. Each sentinel names the offending field.
func (u *User) Validate() error {
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	if err := u.SetName(u.FirstName, u.LastName); err != nil {
		return err
	}
	if err := u.SetBirthDate(u.BirthDate); err != nil {
		return err
	}
	if err := u.SetPhone(u.Phone); err != nil {
		return err
	}
	u.SetAddress(u.Address)
	return nil
}

// OlderThan reports whether the user is strictly older than years at the
// given date: the birth date must be strictly before today minus years.
// A birth date landing exactly on the cutoff does not qualify.
func (u *User) OlderThan(today time.Time, years int) bool {
	cutoff := DateOnly(today).AddDate(-years, 0, 0)
	return u.BirthDate.Before(cutoff)
}

// BornWithin reports whether the birth date falls inside [from, to],
// inclusive on both ends.
func (u *User) BornWithin(from, to time.Time) bool {
	from, to = DateOnly(from), DateOnly(to)
	return !u.BirthDate.Before(from) && !u.BirthDate.After(to)
}

// DateOnly drops the time-of-day component, keeping a UTC calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
