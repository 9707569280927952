// Package validation holds input format rules for account fields.
package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

const (
	maxUsernameLen = 150
	minPasswordLen = 8
)

// usernameRegex matches letters, digits and @/./+/-/_ characters.
var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// reservedUsernames are names that collide with route segments.
var reservedUsernames = map[string]struct{}{
	"auth":    {},
	"create":  {},
	"follow":  {},
	"group":   {},
	"groups":  {},
	"posts":   {},
	"profile": {},
	"health":  {},
	"metrics": {},
}

// ValidateUsername validates username format and reserved names.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLen)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may contain only letters, digits and @/./+/-/_ characters")
	}
	if _, exists := reservedUsernames[username]; exists {
		return fmt.Errorf("this username is reserved")
	}
	return nil
}

// ValidateEmail validates basic email address shape.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum length and rejects all-numeric
// passwords.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return fmt.Errorf("password cannot be entirely numeric")
	}
	return nil
}
