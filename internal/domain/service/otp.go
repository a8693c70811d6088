package service

import "time"

// OTPKey is a freshly generated TOTP secret.
type OTPKey struct {
	Secret string
	URL    string // otpauth:// provisioning URL
}

// OTPService generates and validates time-based one-time passwords.
type OTPService interface {
	Generate(accountName string) (*OTPKey, error)
	Validate(passcode, secret string, at time.Time) bool
}
