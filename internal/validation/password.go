package validation

import (
	"errors"
)

// ValidatePassword checks presence and the bcrypt length cap. Any non-empty
// password is otherwise acceptable.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	// bcrypt silently truncates passwords longer than 72 bytes
	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}

	return nil
}
