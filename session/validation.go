package session

import (
	"fmt"
	"net/mail"
	"strings"
)

// Account schema limits enforced by the backend; validated locally so forms
// can reject bad input without a round trip.
const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// ValidateCredentials checks an email/password pair against the backend's
// account rules.
func ValidateCredentials(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}

// ValidateEmail checks that email is a plausible address.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}

	parsed, err := mail.ParseAddress(email)
	if err != nil || parsed.Address != email {
		return fmt.Errorf("email address is not valid")
	}
	return nil
}

// ValidatePassword checks the backend's password length rules.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLength)
	}
	return nil
}
