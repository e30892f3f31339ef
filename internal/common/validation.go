package common

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	MaxNameLength     = 150

	// PasswordSymbols is the fixed punctuation set a password must draw at
	// least one character from.
	PasswordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

var (
	emailPattern  = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
)

// Validator collects field errors so a request reports every failing field
// at once. Only the first failure per field is kept.
type Validator struct {
	errors []FieldError
	failed map[string]bool
}

func NewValidator() *Validator {
	return &Validator{failed: make(map[string]bool)}
}

// Add records a failure for field unless that field already failed.
func (v *Validator) Add(field, message string) {
	if v.failed[field] {
		return
	}
	v.failed[field] = true
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// Check records message against field when ok is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.Add(field, message)
	}
}

// Required trims value in place and fails when it is empty.
func (v *Validator) Required(value *string, field, message string) {
	*value = strings.TrimSpace(*value)
	v.Check(*value != "", field, message)
}

// Name validates a required display name.
func (v *Validator) Name(value *string, field string) {
	*value = strings.TrimSpace(*value)
	if *value == "" {
		v.Add(field, "Name is required")
		return
	}
	v.Check(utf8.RuneCountInString(*value) <= MaxNameLength, field,
		fmt.Sprintf("Name cannot exceed %d characters", MaxNameLength))
}

// Email normalizes value in place and validates its syntax.
func (v *Validator) Email(value *string, field string) {
	*value = NormalizeEmail(*value)
	v.Check(emailPattern.MatchString(*value), field, "Valid email is required")
}

// Password applies the password policy.
func (v *Validator) Password(value, field string) {
	if msg := PasswordPolicyViolation(value); msg != "" {
		v.Add(field, msg)
	}
}

// Confirm requires confirmation to equal value exactly.
func (v *Validator) Confirm(value, confirmation, field string) {
	v.Check(value == confirmation, field, "Passwords do not match")
}

// Mobile trims value in place and checks the 10-digit regional format.
func (v *Validator) Mobile(value *string, field string) {
	*value = strings.TrimSpace(*value)
	v.Check(mobilePattern.MatchString(*value), field, "Valid 10-digit mobile required")
}

// OneOf fails unless value is one of allowed.
func (v *Validator) OneOf(value, field, message string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.Add(field, message)
}

// OptionalID fails when id is present but not a positive identifier.
func (v *Validator) OptionalID(id *int64, field, message string) {
	if id != nil {
		v.Check(*id >= 1, field, message)
	}
}

// Valid reports whether no field failed.
func (v *Validator) Valid() bool {
	return len(v.errors) == 0
}

// Errors returns the collected field errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Err returns a 422 AppError listing every failure, or nil.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return NewValidationError(v.errors)
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PasswordPolicyViolation returns the first policy rule password breaks, or
// an empty string when it is acceptable.
func PasswordPolicyViolation(password string) string {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)
	}

	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return "Password must contain at least one uppercase letter"
	case !hasDigit:
		return "Password must contain at least one digit"
	case !hasSymbol:
		return "Password must contain at least one special character"
	}
	return ""
}
