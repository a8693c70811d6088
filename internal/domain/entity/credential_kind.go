package entity

import (
	"regexp"
	"strings"
)

// CredentialKind is the classification of a raw Authorization header.
type CredentialKind int

const (
	CredentialNone CredentialKind = iota
	CredentialBasic
	CredentialDPoP
	CredentialBearerOpaque
	CredentialBearerStructured
)

const (
	basicPrefix  = "Basic "
	dpopPrefix   = "DPoP "
	bearerPrefix = "Bearer "

	// structuredMagic is the base64url encoding of `{"`, the start of every JOSE header.
	structuredMagic = "eyJ"
)

// structuredTokenPattern matches two to five base64url segments. Only inner
// segments may be empty, as in a detached JWS payload.
var structuredTokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+=*(?:\.[A-Za-z0-9_-]*=*){0,3}\.[A-Za-z0-9_-]+=*$`)

// String returns the string representation of the CredentialKind.
func (k CredentialKind) String() string {
	switch k {
	case CredentialBasic:
		return "BASIC"
	case CredentialDPoP:
		return "DPOP"
	case CredentialBearerOpaque:
		return "BEARER_OPAQUE"
	case CredentialBearerStructured:
		return "BEARER_STRUCTURED"
	default:
		return "NONE"
	}
}

// DetectCredentialKind classifies an Authorization header value. It never fails
// and performs no I/O: anything that is not empty and not an explicit Basic or
// DPoP credential ends up as a bearer kind, opaque by default.
func DetectCredentialKind(header string) CredentialKind {
	if hasPrefixFold(header, basicPrefix) {
		return CredentialBasic
	}
	if hasPrefixFold(header, dpopPrefix) {
		return CredentialDPoP
	}

	payload := BearerPayload(header)
	if payload == "" {
		return CredentialNone
	}

	switch {
	case strings.HasPrefix(payload, OpaqueTokenPrefix):
		return CredentialBearerOpaque
	case strings.HasPrefix(payload, structuredMagic):
		return CredentialBearerStructured
	case structuredTokenPattern.MatchString(payload):
		return CredentialBearerStructured
	default:
		return CredentialBearerOpaque
	}
}

// BearerPayload strips an optional "Bearer " prefix and surrounding spaces.
func BearerPayload(header string) string {
	if hasPrefixFold(header, bearerPrefix) {
		header = header[len(bearerPrefix):]
	}

	return strings.TrimSpace(header)
}

// SchemePayload returns the credential after an explicit "Basic " or "DPoP " prefix.
func SchemePayload(header string) string {
	switch {
	case hasPrefixFold(header, basicPrefix):
		return strings.TrimSpace(header[len(basicPrefix):])
	case hasPrefixFold(header, dpopPrefix):
		return strings.TrimSpace(header[len(dpopPrefix):])
	default:
		return BearerPayload(header)
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
