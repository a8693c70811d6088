package entity

import "strings"

// Scheme identifies a supported login method. It is chosen by the caller
// (route or endpoint) and never inferred from the request payload.
type Scheme string

const (
	SchemePassword  Scheme = "PASSWORD"
	SchemeSMS       Scheme = "SMS"
	SchemeEmail     Scheme = "EMAIL"
	SchemeDirectory Scheme = "DIRECTORY"
	SchemeTOTP      Scheme = "TOTP"
	SchemeGoogle    Scheme = "GOOGLE"
)

var allSchemes = []Scheme{
	SchemePassword,
	SchemeSMS,
	SchemeEmail,
	SchemeDirectory,
	SchemeTOTP,
	SchemeGoogle,
}

// Schemes returns every scheme known to the system.
func Schemes() []Scheme {
	out := make([]Scheme, len(allSchemes))
	copy(out, allSchemes)

	return out
}

// ParseScheme converts a route parameter such as "sms" into a Scheme.
func ParseScheme(s string) (Scheme, bool) {
	candidate := Scheme(strings.ToUpper(strings.TrimSpace(s)))
	for _, scheme := range allSchemes {
		if scheme == candidate {
			return scheme, true
		}
	}

	return "", false
}

// String returns the string representation of the Scheme.
func (s Scheme) String() string {
	return string(s)
}

// UsesOneTimeCode reports whether the scheme proves possession of a channel
// through a delivered code.
func (s Scheme) UsesOneTimeCode() bool {
	return s == SchemeSMS || s == SchemeEmail
}
