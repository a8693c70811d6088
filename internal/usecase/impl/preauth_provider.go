package impl

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"log/slog"
	"math/big"
	"strings"
	"time"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
)

// codeProvider issues numeric one-time codes for a single scheme.
type codeProvider struct {
	scheme   entity.Scheme
	captchas repository.CaptchaRepository
	length   int
	ttl      time.Duration
	limiter  *keyedLimiter
	now      func() time.Time
	logger   *slog.Logger
}

// CodePolicy configures a codeProvider.
type CodePolicy struct {
	Length         int
	TTL            time.Duration
	ResendInterval time.Duration
	ResendBurst    int
}

// NewCodeProvider creates the PreAuthProvider for scheme.
func NewCodeProvider(scheme entity.Scheme, captchas repository.CaptchaRepository, policy CodePolicy, now func() time.Time, logger *slog.Logger) service.PreAuthProvider {
	p := &codeProvider{
		scheme:   scheme,
		captchas: captchas,
		length:   policy.Length,
		ttl:      policy.TTL,
		now:      now,
		logger:   logger,
	}
	if policy.ResendInterval > 0 {
		p.limiter = newKeyedLimiter(policy.ResendInterval, policy.ResendBurst)
	}

	return p
}

func (p *codeProvider) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, p.logger)
}

func (p *codeProvider) Scheme() entity.Scheme {
	return p.scheme
}

// Authorize stores a fresh code for identifier, replacing any earlier one.
func (p *codeProvider) Authorize(ctx context.Context, identifier string, ttl time.Duration) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", domainerrors.ErrValidationFailed.WrapMessage("identifier is required")
	}
	if ttl <= 0 {
		ttl = p.ttl
	}

	now := p.now()
	if p.limiter != nil && !p.limiter.AllowAt(p.scheme.String()+":"+identifier, now) {
		p.log(ctx).Warn("Code resend throttled",
			slog.String("scheme", p.scheme.String()),
			slog.String("identifier", identifier),
		)

		return "", domainerrors.ErrTooManyRequests.WrapMessage("code requested too often")
	}

	code, err := numericCode(p.length)
	if err != nil {
		return "", err
	}

	entry := &entity.CaptchaEntry{Code: code, IssuedAt: now, TTL: ttl}
	if err := p.captchas.Save(ctx, p.scheme, identifier, entry); err != nil {
		return "", errors.Wrap(err, "failed to store code")
	}

	p.log(ctx).Debug("Code issued",
		slog.String("scheme", p.scheme.String()),
		slog.String("identifier", identifier),
		slog.Duration("ttl", ttl),
	)

	return code, nil
}

// IsMatched checks req's credential against the live code and consumes the
// code on success, so each code logs in at most once.
func (p *codeProvider) IsMatched(ctx context.Context, req *entity.LoginRequest) (bool, error) {
	if req.Scheme() != p.scheme {
		return false, domainerrors.ErrSchemeMismatch.WrapMessage("code provider is for " + p.scheme.String())
	}
	if req.Credential == "" {
		return false, nil
	}

	entry, err := p.captchas.Find(ctx, p.scheme, req.Identifier)
	if err != nil {
		return false, errors.Wrap(err, "failed to load code")
	}
	if entry == nil || entry.Expired(p.now()) {
		return false, nil
	}
	if !sameCode(entry.Code, req.Credential) {
		return false, nil
	}

	taken, err := p.captchas.Take(ctx, p.scheme, req.Identifier)
	if err != nil {
		return false, errors.Wrap(err, "failed to consume code")
	}
	// A concurrent login consumed it first.
	if taken == nil {
		return false, nil
	}
	// A resend replaced it; put the fresh code back unless an even newer one landed.
	if !sameCode(taken.Code, req.Credential) {
		if _, err := p.captchas.SaveIfAbsent(ctx, p.scheme, req.Identifier, taken); err != nil {
			return false, errors.Wrap(err, "failed to restore code")
		}

		return false, nil
	}

	return true, nil
}

func sameCode(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

// numericCode returns n uniformly random decimal digits.
func numericCode(n int) (string, error) {
	if n <= 0 {
		n = 6
	}

	var sb strings.Builder
	sb.Grow(n)
	ten := big.NewInt(10)
	for range n {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", errors.Wrap(err, "failed to generate code")
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}

	return sb.String(), nil
}
