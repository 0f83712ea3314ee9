// Package validation configures the request validator with the checkout
// field rules and provides the bind-then-validate helper handlers use.
package validation

import (
	"regexp"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

var (
	fullNameRe = regexp.MustCompile(`^[a-zA-Z\s'.]+$`)
	mobileRe   = regexp.MustCompile(`^[6-9]\d{9}$`)
	pincodeRe  = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

// New returns a validator with the custom checkout tags registered:
// fullname (letters, spaces, apostrophes, dots), inmobile (10-digit Indian
// mobile), pincode (6-digit Indian postal code).
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterValidation("fullname", func(fl validatorv10.FieldLevel) bool {
		return fullNameRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("inmobile", func(fl validatorv10.FieldLevel) bool {
		return mobileRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("pincode", func(fl validatorv10.FieldLevel) bool {
		return pincodeRe.MatchString(fl.Field().String())
	})

	return v
}

// NormalizePhone strips everything but digits so "+91 98765-43210" and
// "9876543210" validate the same way.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	// drop a leading country code if the remainder is a plausible mobile
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	return digits
}
