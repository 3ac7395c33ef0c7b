package validation

import (
	"fmt"
	"strings"
)

// Error is a user-correctable input error, surfaced as an inline
// message or a 4xx response rather than a server failure.
type Error struct {
	Field   string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUsername checks that a username is non-empty after trimming
// and returns the trimmed value.
func ValidateUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", Error{Field: "username", Message: "username is required"}
	}
	return username, nil
}

// ValidatePassword checks that a password is non-empty after trimming.
// Any non-empty password is accepted; accounts are self-service and
// first login sets the credential.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return Error{Field: "password", Message: "password is required"}
	}
	return nil
}
