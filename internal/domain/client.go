package domain

import (
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPhone is returned when a phone number cannot be normalized.
var ErrInvalidPhone = fmt.Errorf("invalid phone number: %w", ErrValidation)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

// Client is identified by a normalized phone number and shared by all of their appointments.
type Client struct {
	ID        int64
	Phone     string
	Name      string
	Email     *string
	CreatedAt time.Time
}

// NormalizePhone reduces a user-entered phone number to "+<digits>".
// Russian national forms are converted to the international one:
// "8XXXXXXXXXX" and bare ten-digit numbers get the 7 country code.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 10:
		digits = "7" + digits
	case len(digits) == 11 && digits[0] == '8':
		digits = "7" + digits[1:]
	}

	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return "", ErrInvalidPhone
	}

	return "+" + digits, nil
}

// ErrInvalidEmail is returned for an obviously malformed email address.
var ErrInvalidEmail = fmt.Errorf("invalid email: %w", ErrValidation)

// ValidateEmail performs a shape check: one "@" with non-empty parts and a dot in the domain.
func ValidateEmail(email string) error {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\n") {
		return ErrInvalidEmail
	}
	domainPart := email[at+1:]
	if !strings.Contains(domainPart, ".") || strings.HasPrefix(domainPart, ".") || strings.HasSuffix(domainPart, ".") {
		return ErrInvalidEmail
	}
	return nil
}
