package auth

import (
	"time"

	"passport/config"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpPeriod = 30

type totpService struct {
	issuer string
	skew   uint
}

// NewTOTPService creates an RFC 6238 generator/validator with SHA1 and six digits,
// the parameters every authenticator app understands.
func NewTOTPService(cfg *config.Config) service.OTPService {
	issuer := cfg.TOTP.Issuer
	if issuer == "" {
		issuer = cfg.Env.ServiceName
	}

	return &totpService{issuer: issuer, skew: cfg.TOTP.Skew}
}

func (s *totpService) Generate(accountName string) (*service.OTPKey, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: accountName,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, errors.Wrap(err, "generate totp key")
	}

	return &service.OTPKey{Secret: key.Secret(), URL: key.URL()}, nil
}

func (s *totpService) Validate(passcode, secret string, at time.Time) bool {
	if passcode == "" || secret == "" {
		return false
	}

	ok, err := totp.ValidateCustom(passcode, secret, at, totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      s.skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})

	return err == nil && ok
}
