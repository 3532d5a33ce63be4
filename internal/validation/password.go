package validation

import (
	"fmt"
)

// MaxPasswordLength is bcrypt's input limit; longer passwords are silently truncated.
const MaxPasswordLength = 72

// ValidatePassword checks the password length against min and the bcrypt limit.
// prefix is prepended to the message ("Password", "New password").
func ValidatePassword(prefix, password string, min int) error {
	if len(password) < min {
		return fmt.Errorf("%s must be at least %d characters long!", prefix, min)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%s must not exceed %d characters!", prefix, MaxPasswordLength)
	}

	return nil
}
