package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLoginRequest_FixesScheme(t *testing.T) {
	scope := Scope{App: "console", Tenant: "acme"}

	for _, scheme := range Schemes() {
		req := NewLoginRequest(scheme, "someone", "secret", scope)
		assert.Equal(t, scheme, req.Scheme())
		assert.Equal(t, scope, req.Scope)
	}
}

func TestNewPasswordLogin_NormalizesIdentifier(t *testing.T) {
	req := NewPasswordLogin("  Alice@Example.COM ", "pw", Scope{})

	assert.Equal(t, "alice@example.com", req.Identifier)
	assert.Equal(t, "pw", req.Credential)
}

func TestNewCodeLogin(t *testing.T) {
	sms := NewCodeLogin(SchemeSMS, " +15551234567 ", " 123456 ", Scope{})
	assert.Equal(t, "+15551234567", sms.Identifier)
	assert.Equal(t, "123456", sms.Credential)

	email := NewCodeLogin(SchemeEmail, "Bob@Example.com", "654321", Scope{})
	assert.Equal(t, "bob@example.com", email.Identifier)
}

func TestLoginRequest_Canonicalize(t *testing.T) {
	req := NewDirectoryLogin("jdoe", "pw", "E-100", Scope{})
	assert.Equal(t, "E-100", req.DirectoryID)

	req.Canonicalize("john.doe@corp.example")
	assert.Equal(t, "john.doe@corp.example", req.Identifier)

	req.Canonicalize("   ")
	assert.Equal(t, "john.doe@corp.example", req.Identifier)
	assert.Equal(t, SchemeDirectory, req.Scheme())
}

func TestParseScheme(t *testing.T) {
	scheme, ok := ParseScheme("sms")
	assert.True(t, ok)
	assert.Equal(t, SchemeSMS, scheme)

	_, ok = ParseScheme("kerberos")
	assert.False(t, ok)
}
