package register

import (
	"regexp"
	"strings"
)

var (
	nameRegex  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\d{10,}$`)
)

// Form holds the registration fields. Nothing is persisted, the form
// is only validated.
type Form struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// Validate checks every field and returns the problems keyed by field
// name. An empty map means the form is valid.
func (f Form) Validate() map[string]string {
	fieldErrors := map[string]string{}

	if err := validateName(f.FirstName); err != "" {
		fieldErrors["firstName"] = "First name " + err
	}
	if err := validateName(f.LastName); err != "" {
		fieldErrors["lastName"] = "Last name " + err
	}
	if !emailRegex.MatchString(strings.TrimSpace(f.Email)) {
		fieldErrors["email"] = "Invalid email address"
	}
	if !phoneRegex.MatchString(strings.TrimSpace(f.Phone)) {
		fieldErrors["phone"] = "Phone number must be at least 10 digits"
	}
	if len(strings.TrimSpace(f.Address)) < 5 {
		fieldErrors["address"] = "Address must be at least 5 characters"
	}

	return fieldErrors
}

func validateName(name string) string {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return "must be at least 2 characters"
	}
	if !nameRegex.MatchString(name) {
		return "must contain only letters"
	}
	return ""
}
