package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCredentialKind(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   CredentialKind
	}{
		{name: "basic credential", header: "Basic QWxhZGRpbjpPcGVuU2VzYW1l", want: CredentialBasic},
		{name: "basic lower case", header: "basic QWxhZGRpbjpPcGVuU2VzYW1l", want: CredentialBasic},
		{name: "dpop credential", header: "DPoP eyJhbGciOiJFUzI1NiJ9.e30.sig", want: CredentialDPoP},
		{name: "dpop upper case", header: "DPOP abc", want: CredentialDPoP},
		{name: "opaque marker", header: "Bearer r2a_abc123", want: CredentialBearerOpaque},
		{name: "jwt magic prefix", header: "Bearer eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0In0.sig", want: CredentialBearerStructured},
		{name: "dotted segments", header: "Bearer abc.def.ghi", want: CredentialBearerStructured},
		{name: "five segments", header: "Bearer a.b.c.d.e", want: CredentialBearerStructured},
		{name: "six segments fall back to opaque", header: "Bearer a.b.c.d.e.f", want: CredentialBearerOpaque},
		{name: "single segment", header: "Bearer deadbeef", want: CredentialBearerOpaque},
		{name: "trailing empty segment", header: "Bearer abc.", want: CredentialBearerOpaque},
		{name: "only empty segments after the first", header: "Bearer a..", want: CredentialBearerOpaque},
		{name: "detached payload", header: "Bearer a..c", want: CredentialBearerStructured},
		{name: "non base64 characters", header: "Bearer a$b.c", want: CredentialBearerOpaque},
		{name: "bearer without payload", header: "Bearer ", want: CredentialNone},
		{name: "bearer with spaces only", header: "Bearer    ", want: CredentialNone},
		{name: "empty header", header: "", want: CredentialNone},
		{name: "bare opaque token", header: "r2a_xyz", want: CredentialBearerOpaque},
		{name: "bare jwt", header: "eyJx.eyJy.z", want: CredentialBearerStructured},
		{name: "marker wins over magic", header: "Bearer r2a_eyJhbGciOiJIUzI1NiJ9.e30.x", want: CredentialBearerOpaque},
		{name: "unicode garbage", header: "Bearer 🔑🔑", want: CredentialBearerOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCredentialKind(tt.header))
		})
	}
}

func TestDetectCredentialKind_Deterministic(t *testing.T) {
	inputs := []string{
		"",
		"Basic",
		"Bearer",
		"Bearer r2a_",
		strings.Repeat(".", 10),
		"DPoP ",
		"\x00\xff",
		strings.Repeat("eyJ", 1000),
	}

	for _, input := range inputs {
		first := DetectCredentialKind(input)
		for range 3 {
			assert.NotPanics(t, func() { DetectCredentialKind(input) })
			assert.Equal(t, first, DetectCredentialKind(input), "input %q", input)
		}
	}
}

func TestSchemePayload(t *testing.T) {
	assert.Equal(t, "QWxhZGRpbjpPcGVuU2VzYW1l", SchemePayload("Basic QWxhZGRpbjpPcGVuU2VzYW1l"))
	assert.Equal(t, "proof", SchemePayload("dpop proof"))
	assert.Equal(t, "r2a_abc", SchemePayload("Bearer r2a_abc"))
	assert.Equal(t, "", SchemePayload(""))
}

func TestCredentialKind_String(t *testing.T) {
	assert.Equal(t, "BEARER_STRUCTURED", CredentialBearerStructured.String())
	assert.Equal(t, "NONE", CredentialKind(42).String())
}
