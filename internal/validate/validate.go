// Package validate holds the form checks run before anything is sent to the
// backend. The backend repeats every check and its answer wins.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	"playoh/internal/config"
)

var Validate *validator.Validate

var (
	emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRx = regexp.MustCompile(`^[\d\s\-+()]+$`)
)

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// local@domain.tld, nothing stricter
	Validate.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
		return emailRx.MatchString(fl.Field().String())
	})

	// digits, spaces, hyphens, plus signs and parentheses
	Validate.RegisterValidation("phonechars", func(fl validator.FieldLevel) bool {
		return phoneRx.MatchString(fl.Field().String())
	})
}

// Form collects field-scoped messages. Each check returns whether the value
// passed and sets or clears the message for its field.
type Form struct {
	Errors map[string]string
}

func New() *Form {
	return &Form{Errors: make(map[string]string)}
}

func (f *Form) check(field string, ok bool, msg string) bool {
	if ok {
		delete(f.Errors, field)
		return true
	}
	f.Errors[field] = msg
	return false
}

func passes(value any, tag string) bool {
	return Validate.Var(value, tag) == nil
}

func (f *Form) Email(field, email string) bool {
	if !passes(strings.TrimSpace(email), "required") {
		return f.check(field, false, "Email is required")
	}
	return f.check(field, passes(email, "simpleemail"), "Please enter a valid email address")
}

// Password checks presence and the configured length range.
func (f *Form) Password(field, password string) bool {
	v := config.Validation
	switch {
	case !passes(password, "required"):
		return f.check(field, false, "Password is required")
	case !passes(password, fmt.Sprintf("min=%d", v.PasswordMinLength)):
		return f.check(field, false, fmt.Sprintf("Password must be at least %d characters", v.PasswordMinLength))
	case !passes(password, fmt.Sprintf("max=%d", v.PasswordMaxLength)):
		return f.check(field, false, fmt.Sprintf("Password must not exceed %d characters", v.PasswordMaxLength))
	}
	return f.check(field, true, "")
}

// Name measures the trimmed value.
func (f *Form) Name(field, name string) bool {
	v := config.Validation
	name = strings.TrimSpace(name)
	switch {
	case !passes(name, "required"):
		return f.check(field, false, "Name is required")
	case !passes(name, fmt.Sprintf("min=%d", v.NameMinLength)):
		return f.check(field, false, fmt.Sprintf("Name must be at least %d characters", v.NameMinLength))
	case !passes(name, fmt.Sprintf("max=%d", v.NameMaxLength)):
		return f.check(field, false, fmt.Sprintf("Name must not exceed %d characters", v.NameMaxLength))
	}
	return f.check(field, true, "")
}

// Phone is optional: an empty value passes.
func (f *Form) Phone(field, phone string) bool {
	if phone == "" {
		return f.check(field, true, "")
	}
	limit := config.Validation.PhoneMaxLength
	if !passes(phone, fmt.Sprintf("max=%d", limit)) {
		return f.check(field, false, fmt.Sprintf("Phone number must not exceed %d characters", limit))
	}
	return f.check(field, passes(phone, "phonechars"), "Please enter a valid phone number")
}

// ConfirmPassword passes only when confirm equals password exactly.
func (f *Form) ConfirmPassword(field, confirm, password string) bool {
	if !passes(confirm, "required") {
		return f.check(field, false, "Please confirm your password")
	}
	ok := Validate.VarWithValue(confirm, password, "eqfield") == nil
	return f.check(field, ok, "Passwords do not match")
}

// MaxPlayers parses raw as an integer within the configured player range.
func (f *Form) MaxPlayers(field, raw string) (int, bool) {
	v := config.Validation
	msg := fmt.Sprintf("Max players must be between %d and %d", v.MinPlayers, v.MaxPlayers)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, f.check(field, false, msg)
	}
	return n, f.check(field, passes(n, fmt.Sprintf("min=%d,max=%d", v.MinPlayers, v.MaxPlayers)), msg)
}

// Interval checks a recurrence interval.
func (f *Form) Interval(field string, n int) bool {
	limit := config.Validation.MaxInterval
	return f.check(field, passes(n, fmt.Sprintf("min=1,max=%d", limit)), fmt.Sprintf("Interval must be between 1 and %d", limit))
}

// Required fails with msg when the trimmed value is empty.
func (f *Form) Required(field, value, msg string) bool {
	return f.check(field, passes(strings.TrimSpace(value), "required"), msg)
}

// Add records msg for field unconditionally.
func (f *Form) Add(field, msg string) {
	f.Errors[field] = msg
}

func (f *Form) Error(field string) string {
	return f.Errors[field]
}

func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// Err combines the messages into one error, ordered by field, or nil.
func (f *Form) Err() error {
	fields := make([]string, 0, len(f.Errors))
	for field := range f.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var err error
	for _, field := range fields {
		err = multierr.Append(err, errors.New(field+": "+f.Errors[field]))
	}
	return err
}
