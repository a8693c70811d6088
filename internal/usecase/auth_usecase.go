// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"passport/internal/domain/entity"
)

// --- Output DTOs ---

// SendCodeOutput describes a delivered one-time code. The code itself never
// leaves the service.
type SendCodeOutput struct {
	Scheme    entity.Scheme
	Receipt   string
	Provider  string
	ExpiresIn time.Duration
}

// TOTPEnrollment is returned once, when a user enrolls an authenticator app.
type TOTPEnrollment struct {
	Secret string
	URL    string
	QRCode []byte // PNG
}

// AuthUsecase runs logins for every registered scheme.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Login resolves the user behind req and verifies its credential.
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.Session, error)
	// Authorize issues a one-time code for req's scheme and identifier and
	// returns it to the caller. A zero ttl selects the scheme default.
	Authorize(ctx context.Context, req *entity.LoginRequest, ttl time.Duration) (string, error)
	// SendCode issues a code and hands it to the delivery channel.
	SendCode(ctx context.Context, req *entity.LoginRequest) (*SendCodeOutput, error)
	// LoadLogged resolves the user without checking the credential. It
	// returns (nil, nil) when no user matches.
	LoadLogged(ctx context.Context, req *entity.LoginRequest) (*entity.Session, error)
	// EnrollTOTP creates and stores a new TOTP secret for subject.
	EnrollTOTP(ctx context.Context, subject string) (*TOTPEnrollment, error)
}
