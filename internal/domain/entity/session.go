package entity

import "time"

// Session is the outcome of a successful login: the resolved user and the
// scheme that authenticated it.
type Session struct {
	User            *User
	Scheme          Scheme
	Identifier      string // Canonical identifier after matching.
	Scope           Scope
	AuthenticatedAt time.Time

	credential string
}

// NewSession binds user to the request that authenticated it. Callers must
// only use it after the request was resolved and matched.
func NewSession(user *User, req *LoginRequest, at time.Time) *Session {
	return &Session{
		User:            user,
		Scheme:          req.Scheme(),
		Identifier:      req.Identifier,
		Scope:           req.Scope,
		AuthenticatedAt: at,
		credential:      req.Credential,
	}
}

// Subject returns the token subject for the session.
func (s *Session) Subject() string {
	if s == nil || s.User == nil {
		return ""
	}

	return s.User.ID.String()
}

// Credential returns the credential the session was established with. Only
// the legacy basic token format reads it.
func (s *Session) Credential() string {
	return s.credential
}

// RestoreSession rebuilds the session behind a refresh token. It carries no
// credential, so builders that echo credentials cannot mint from it.
func RestoreSession(user *User, scheme Scheme, at time.Time) *Session {
	identifier := user.Email
	if identifier == "" {
		identifier = user.Username
	}

	return &Session{
		User:            user,
		Scheme:          scheme,
		Identifier:      identifier,
		AuthenticatedAt: at,
	}
}
