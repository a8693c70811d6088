package entity

import "strings"

// Scope narrows a login to an application and tenant.
type Scope struct {
	App    string
	Tenant string
}

// LoginRequest is the normalized input of a single login attempt. The scheme is
// fixed by the constructor; the identifier may only change through Canonicalize.
type LoginRequest struct {
	scheme Scheme

	Identifier string
	Credential string
	Scope      Scope

	DirectoryID string // DIRECTORY: secondary directory id supplied by the client.
	RedirectURI string // GOOGLE: client redirect the assertion was issued for.
}

func newLoginRequest(scheme Scheme, identifier, credential string, scope Scope) *LoginRequest {
	return &LoginRequest{
		scheme:     scheme,
		Identifier: strings.TrimSpace(identifier),
		Credential: credential,
		Scope:      scope,
	}
}

// NewPasswordLogin builds a PASSWORD request.
func NewPasswordLogin(identifier, password string, scope Scope) *LoginRequest {
	return newLoginRequest(SchemePassword, strings.ToLower(strings.TrimSpace(identifier)), password, scope)
}

// NewCodeLogin builds a request for a one-time code scheme (SMS or EMAIL).
func NewCodeLogin(scheme Scheme, identifier, code string, scope Scope) *LoginRequest {
	if scheme == SchemeEmail {
		identifier = strings.ToLower(strings.TrimSpace(identifier))
	}

	return newLoginRequest(scheme, identifier, strings.TrimSpace(code), scope)
}

// NewDirectoryLogin builds a DIRECTORY bind request.
func NewDirectoryLogin(username, password, directoryID string, scope Scope) *LoginRequest {
	req := newLoginRequest(SchemeDirectory, username, password, scope)
	req.DirectoryID = strings.TrimSpace(directoryID)

	return req
}

// NewTOTPLogin builds a TOTP request.
func NewTOTPLogin(identifier, passcode string, scope Scope) *LoginRequest {
	return newLoginRequest(SchemeTOTP, strings.ToLower(strings.TrimSpace(identifier)), strings.TrimSpace(passcode), scope)
}

// NewGoogleLogin builds a GOOGLE request around a Google ID token.
func NewGoogleLogin(idToken, redirectURI string, scope Scope) *LoginRequest {
	req := newLoginRequest(SchemeGoogle, "", strings.TrimSpace(idToken), scope)
	req.RedirectURI = redirectURI

	return req
}

// NewLoginRequest dispatches to the scheme specific constructor.
func NewLoginRequest(scheme Scheme, identifier, credential string, scope Scope) *LoginRequest {
	switch scheme {
	case SchemePassword:
		return NewPasswordLogin(identifier, credential, scope)
	case SchemeSMS, SchemeEmail:
		return NewCodeLogin(scheme, identifier, credential, scope)
	case SchemeDirectory:
		return NewDirectoryLogin(identifier, credential, "", scope)
	case SchemeTOTP:
		return NewTOTPLogin(identifier, credential, scope)
	case SchemeGoogle:
		return NewGoogleLogin(credential, "", scope)
	default:
		return newLoginRequest(scheme, identifier, credential, scope)
	}
}

// Scheme returns the scheme the request was constructed for.
func (r *LoginRequest) Scheme() Scheme {
	return r.scheme
}

// Canonicalize replaces the identifier with the authoritative one. Used when a
// backend such as a directory owns the identity.
func (r *LoginRequest) Canonicalize(identifier string) {
	if identifier = strings.TrimSpace(identifier); identifier != "" {
		r.Identifier = identifier
	}
}
