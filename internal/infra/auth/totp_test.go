package auth

import (
	"testing"
	"time"

	"passport/config"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOTPService(t *testing.T) {
	cfg := &config.Config{}
	cfg.TOTP.Issuer = "passport"
	cfg.TOTP.Skew = 1
	svc := NewTOTPService(cfg)

	key, err := svc.Generate("alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, key.Secret)
	assert.Contains(t, key.URL, "otpauth://totp/")
	assert.Contains(t, key.URL, "issuer=passport")

	now := time.Now()
	code, err := totp.GenerateCode(key.Secret, now)
	require.NoError(t, err)

	assert.True(t, svc.Validate(code, key.Secret, now))
	assert.True(t, svc.Validate(code, key.Secret, now.Add(30*time.Second)), "skew allows the next period")
	assert.False(t, svc.Validate(code, key.Secret, now.Add(5*time.Minute)))
	assert.False(t, svc.Validate("", key.Secret, now))
	assert.False(t, svc.Validate(code, "", now))
}
