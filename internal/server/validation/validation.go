// Package validation holds the input rules of the account operations. Each
// check maps a rule failure onto the matching common sentinel; checks run in
// a fixed order so missing fields are reported before format problems.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/common"
	ozzo "github.com/go-ozzo/ozzo-validation"
	"github.com/nyaruka/phonenumbers"
)

const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail lowercases and trims an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Required fails with common.ErrInvalidInput if any value is empty.
func Required(values ...string) error {
	for _, v := range values {
		if err := ozzo.Validate(v, ozzo.Required); err != nil {
			return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
		}
	}
	return nil
}

// Email fails with common.ErrInvalidEmailFormat unless email looks like
// local@domain.tld.
func Email(email string) error {
	if err := ozzo.Validate(email, ozzo.Match(emailPattern)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidEmailFormat, err)
	}
	return nil
}

// Password fails with common.ErrWeakPassword when shorter than MinPasswordLength.
func Password(password string) error {
	if err := ozzo.Validate(password, ozzo.Length(MinPasswordLength, 0)); err != nil {
		return fmt.Errorf("%w: %v", common.ErrWeakPassword, err)
	}
	return nil
}

// Registration checks a signup payload. email must already be normalized.
func Registration(email, password, firstName, lastName string) error {
	if err := Required(email, password, firstName, lastName); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return Password(password)
}

// Credentials checks a sign-in payload.
func Credentials(email, password string) error {
	if err := Required(email, password); err != nil {
		return err
	}
	return Email(email)
}

// PasswordChange checks a change payload; only the new password is held to
// the strength rule.
func PasswordChange(email, current, next string) error {
	if err := Required(email, current, next); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return Password(next)
}

// NormalizePhone parses raw for the given default region and formats it as
// E.164. An empty input stays empty.
func NormalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("%w: phone: %v", common.ErrInvalidInput, err)
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return "", fmt.Errorf("%w: phone: not a possible number", common.ErrInvalidInput)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
