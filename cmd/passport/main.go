package main

import (
	"context"
	"log/slog"
	"os"

	"passport/config"
	"passport/internal/delivery"
	"passport/internal/delivery/api"
	"passport/internal/delivery/api/middleware"
	"passport/internal/delivery/api/router/handler"
	"passport/internal/domain/service"
	"passport/internal/infra/auth"
	"passport/internal/infra/auth/google"
	"passport/internal/infra/cache"
	"passport/internal/infra/directory"
	logs "passport/internal/infra/log"
	"passport/internal/infra/notify"
	"passport/internal/infra/persistence"
	"passport/internal/infra/persistence/kv"
	"passport/internal/infra/qrcode"
	"passport/internal/usecase"
	"passport/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectTokenBuilders(),
		injectSchemes(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			cache.New,
		),
		notify.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.NewUserRepository,
			kv.NewCaptchaRepository,
			kv.NewTokenRepository,
			kv.NewRefreshTokenRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewTOTPService,
			qrcode.NewFromConfig,
			directory.NewDirectory,
			google.NewVerifier,
			newAuthenticator,
		),
	)
}

// newAuthenticator lets the basic token builder re-run logins.
func newAuthenticator(authUsecase usecase.AuthUsecase) service.Authenticator {
	return authUsecase
}

func injectTokenBuilders() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(auth.NewJWTRegistration, fx.ResultTags(`group:"tokenBuilders"`)),
			fx.Annotate(auth.NewOpaqueRegistration, fx.ResultTags(`group:"tokenBuilders"`)),
			fx.Annotate(auth.NewBasicRegistration, fx.ResultTags(`group:"tokenBuilders"`)),
			fx.Annotate(auth.NewRegistry, fx.As(new(service.TokenBuilders))),
		),
	)
}

func injectSchemes() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(impl.NewPasswordScheme, fx.ResultTags(`group:"schemes"`)),
			fx.Annotate(impl.NewSMSScheme, fx.ResultTags(`group:"schemes"`)),
			fx.Annotate(impl.NewEmailScheme, fx.ResultTags(`group:"schemes"`)),
			fx.Annotate(impl.NewDirectoryScheme, fx.ResultTags(`group:"schemes"`)),
			fx.Annotate(impl.NewTOTPScheme, fx.ResultTags(`group:"schemes"`)),
			fx.Annotate(impl.NewGoogleScheme, fx.ResultTags(`group:"schemes"`)),
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewTokenService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
