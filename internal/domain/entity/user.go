// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Well-known keys of User.Extension.
const (
	ExtensionDirectoryID = "directory_id"
	ExtensionTOTPSecret  = "totp_secret"
	ExtensionDirectoryDN = "directory_dn"
)

// User is the aggregate loaded for a login attempt. It is read-only for the
// duration of the attempt.
type User struct {
	ID           uuid.UUID         // The Global Unique Identifier (GUID) for the user.
	Username     string            // Login name, unique when present.
	Email        string            // Primary contact email, canonical identity for directory accounts.
	Phone        string            // E.164 phone number used by the SMS scheme.
	PasswordHash string            // bcrypt hash, empty for accounts without a local password.
	Roles        Roles             // Authorization roles embedded into issued tokens.
	Groups       []string          // Directory or tenant groups.
	Extension    map[string]string // Scheme specific attributes, see the Extension* keys.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Attr returns the extension attribute for key, or "" when unset.
func (u *User) Attr(key string) string {
	if u == nil || u.Extension == nil {
		return ""
	}

	return u.Extension[key]
}

// SetAttr stores an extension attribute, allocating the map on first use.
func (u *User) SetAttr(key, value string) {
	if u.Extension == nil {
		u.Extension = make(map[string]string)
	}
	u.Extension[key] = value
}
