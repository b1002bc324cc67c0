package validation

import "fmt"

const (
	MinPasswordLength = 6
	MaxPasswordLength = 72 // предел bcrypt
)

// ValidatePassword проверяет длину пароля.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordLength)
	}
	return nil
}
