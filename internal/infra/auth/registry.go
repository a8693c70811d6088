package auth

import (
	"log/slog"
	"sync"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/registry"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// BuilderFactory constructs a TokenBuilder on first use.
type BuilderFactory func() (service.TokenBuilder, error)

// BuilderRegistration pairs a token type with its factory. Values are
// collected by Fx through the "tokenBuilders" group.
type BuilderRegistration struct {
	Type    entity.TokenType
	Factory BuilderFactory
}

type lazyBuilder struct {
	tokenType entity.TokenType
	factory   BuilderFactory

	once    sync.Once
	builder service.TokenBuilder
	err     error
}

func (l *lazyBuilder) get() (service.TokenBuilder, error) {
	l.once.Do(func() {
		builder, err := l.factory()
		switch {
		case err != nil:
			l.err = errors.Wrapf(domainerrors.ErrConfigurationMissing, "build %s token builder: %v", l.tokenType, err)
		case builder == nil || builder.Type() != l.tokenType:
			l.err = errors.Wrapf(domainerrors.ErrConfigurationMissing, "factory for %s returned a mismatched builder", l.tokenType)
		default:
			l.builder = builder
		}
	})

	return l.builder, l.err
}

// BuilderRegistry resolves token builders by type. Builders are created lazily
// once and shared; the first registration of a type wins.
type BuilderRegistry struct {
	entries *registry.Registry[entity.TokenType, *lazyBuilder]
}

// NewBuilderRegistry creates an empty registry.
func NewBuilderRegistry() *BuilderRegistry {
	return &BuilderRegistry{
		entries: registry.New[entity.TokenType, *lazyBuilder]("token builder"),
	}
}

// Register adds factory for tokenType unless the type is already registered.
func (r *BuilderRegistry) Register(tokenType entity.TokenType, factory BuilderFactory) bool {
	return r.entries.Register(tokenType, &lazyBuilder{tokenType: tokenType, factory: factory})
}

// Builder returns the builder for tokenType, constructing it on first use.
func (r *BuilderRegistry) Builder(tokenType entity.TokenType) (service.TokenBuilder, error) {
	entry, err := r.entries.Lookup(tokenType)
	if err != nil {
		return nil, err
	}

	return entry.get()
}

// Types returns the registered token types in registration order.
func (r *BuilderRegistry) Types() []entity.TokenType {
	return r.entries.Keys()
}

// RegistryParams defines the dependencies of the registry provider.
type RegistryParams struct {
	fx.In

	Config        *config.Config
	Logger        *slog.Logger
	Registrations []BuilderRegistration `group:"tokenBuilders"`
}

// NewRegistry registers every provided builder and checks that the default
// token type is among them.
func NewRegistry(params RegistryParams) (*BuilderRegistry, error) {
	reg := NewBuilderRegistry()
	for _, registration := range params.Registrations {
		if !reg.Register(registration.Type, registration.Factory) {
			params.Logger.Warn("Duplicate token builder registration ignored",
				slog.String("type", registration.Type.String()),
			)
		}
	}

	if err := reg.entries.Require(entity.TokenType(params.Config.Token.DefaultType)); err != nil {
		return nil, err
	}

	return reg, nil
}

// NewJWTRegistration provides the self-contained token builder.
func NewJWTRegistration(cfg *config.Config, refreshTokens repository.RefreshTokenRepository) BuilderRegistration {
	return BuilderRegistration{
		Type: entity.TokenTypeJWT,
		Factory: func() (service.TokenBuilder, error) {
			return NewJWTBuilder(cfg, refreshTokens, time.Now)
		},
	}
}

// NewOpaqueRegistration provides the cache-bound token builder.
func NewOpaqueRegistration(cfg *config.Config, tokens repository.TokenRepository, refreshTokens repository.RefreshTokenRepository) BuilderRegistration {
	return BuilderRegistration{
		Type: entity.TokenTypeOpaque,
		Factory: func() (service.TokenBuilder, error) {
			return NewOpaqueBuilder(cfg, tokens, refreshTokens, time.Now), nil
		},
	}
}

// NewBasicRegistration provides the legacy identifier:credential echo builder.
func NewBasicRegistration(authenticator service.Authenticator) BuilderRegistration {
	return BuilderRegistration{
		Type: entity.TokenTypeBasic,
		Factory: func() (service.TokenBuilder, error) {
			return NewBasicBuilder(authenticator), nil
		},
	}
}

// NewJWTBuilder creates the self-contained builder.
func NewJWTBuilder(cfg *config.Config, refreshTokens repository.RefreshTokenRepository, now func() time.Time) (service.TokenBuilder, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtBuilder{
		secret: []byte(cfg.SecretKey.Access),
		issuer: cfg.Token.Issuer,
		ttl:    cfg.Token.AccessTTL,
		refresh: &refreshMinter{
			repo: refreshTokens,
			ttl:  cfg.Token.RefreshTTL,
			now:  now,
		},
		now: now,
	}, nil
}

// NewOpaqueBuilder creates the cache-bound builder.
func NewOpaqueBuilder(cfg *config.Config, tokens repository.TokenRepository, refreshTokens repository.RefreshTokenRepository, now func() time.Time) service.TokenBuilder {
	return &opaqueBuilder{
		tokens: tokens,
		ttl:    cfg.Token.AccessTTL,
		refresh: &refreshMinter{
			repo: refreshTokens,
			ttl:  cfg.Token.RefreshTTL,
			now:  now,
		},
		now: now,
	}
}

// NewBasicBuilder creates the legacy echo builder.
func NewBasicBuilder(authenticator service.Authenticator) service.TokenBuilder {
	return &basicBuilder{authenticator: authenticator}
}

var _ service.TokenBuilders = (*BuilderRegistry)(nil)
