// Package validate provides pure form validators.
//
// Validators never touch storage and never return errors; they produce a
// Result with per-field messages for the caller to render.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// emailPattern checks local@domain.tld shape; it does not verify
// deliverability.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field error messages
const (
	MsgEmailRequired    = "Email is required"
	MsgInvalidEmail     = "Please enter a valid email address"
	MsgPasswordRequired = "Password is required"
	MsgPasswordMismatch = "Passwords do not match"
)

// Rules holds the validation policy. The password minimum applies
// everywhere: signup, login and reset use the same rule.
type Rules struct {
	PasswordMinLength int
	NameMinLength     int
	NameMaxLength     int
}

// DefaultRules is the standard policy
var DefaultRules = Rules{
	PasswordMinLength: 8,
	NameMinLength:     2,
	NameMaxLength:     50,
}

// Result aggregates per-field validation errors
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

func newResult() Result {
	return Result{Valid: true, Errors: make(map[string]string)}
}

func (r *Result) fail(field, message string) {
	r.Valid = false
	r.Errors[field] = message
}

// ValidEmail reports whether email has a plausible address shape
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword reports whether password meets the length policy
func (ru Rules) ValidPassword(password string) bool {
	return len(password) >= ru.PasswordMinLength
}

// LoginForm validates login input and returns per-field errors
func (ru Rules) LoginForm(email, password string) Result {
	res := newResult()

	if email == "" {
		res.fail("email", MsgEmailRequired)
	} else if !ValidEmail(email) {
		res.fail("email", MsgInvalidEmail)
	}

	if password == "" {
		res.fail("password", MsgPasswordRequired)
	} else if !ru.ValidPassword(password) {
		res.fail("password", ru.passwordTooShort())
	}

	return res
}

// Registration is the form state checked by RegistrationForm
type Registration struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
}

// RegistrationForm validates signup input: the login checks plus name
// length and password confirmation.
func (ru Rules) RegistrationForm(in Registration) Result {
	res := ru.LoginForm(in.Email, in.Password)

	name := strings.TrimSpace(in.Name)
	if len(name) < ru.NameMinLength || len(name) > ru.NameMaxLength {
		res.fail("name", fmt.Sprintf("Name must be %d to %d characters", ru.NameMinLength, ru.NameMaxLength))
	}

	if in.ConfirmPassword != in.Password {
		res.fail("confirm_password", MsgPasswordMismatch)
	}

	return res
}

func (ru Rules) passwordTooShort() string {
	return fmt.Sprintf("Password must be at least %d characters", ru.PasswordMinLength)
}
