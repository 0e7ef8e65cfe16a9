package app

import (
	"regexp"
	"strings"

	"github.com/arkanhakim/livecart/internal/checkout/domain"
)

const maxAddressLen = 300

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\s()-]{6,20}$`)
)

// validateContact returns a per-field error map; an empty map means the
// contact step passes.
func validateContact(c domain.ContactInfo) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(c.Name) == "" {
		errs[FieldName] = "name is required"
	}

	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		errs[FieldEmail] = "email is required"
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = "email is invalid"
	}

	phone := strings.TrimSpace(c.Phone)
	switch {
	case phone == "":
		errs[FieldPhone] = "phone is required"
	case !phonePattern.MatchString(phone):
		errs[FieldPhone] = "phone is invalid"
	}

	return errs
}

func validateAddress(street string) (string, bool) {
	street = strings.TrimSpace(street)
	if street == "" {
		return "delivery address is required", false
	}
	if len(street) > maxAddressLen {
		return "delivery address is too long", false
	}
	return "", true
}
