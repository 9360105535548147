package domain

import (
	"strings"

	"github.com/primowater/deliveryform/pkg/errors"
)

// MembershipDigits is the length of a Costco membership number
const MembershipDigits = 12

// MembershipMessage is shown when the membership number is malformed
const MembershipMessage = "Costco Membership # must be 12 digits."

// NormalizeMembership strips everything but ASCII digits
func NormalizeMembership(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateMembership checks that the number has exactly 12 digits once non-digits are removed
func ValidateMembership(raw string) error {
	if len(NormalizeMembership(raw)) != MembershipDigits {
		return &errors.ErrValidation{Field: "costco", Message: MembershipMessage}
	}
	return nil
}
