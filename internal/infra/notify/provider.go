package notify

import (
	"context"
	"log/slog"

	"passport/config"
	"passport/internal/domain/constants"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SenderParams holds dependencies for MessageSender, injected by Fx.
type SenderParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewMessageSender creates a MessageSender based on configuration.
func NewMessageSender(params SenderParams) (service.MessageSender, error) {
	cfg := params.Config.Delivery
	logger := params.Logger

	switch cfg.Provider {
	case "", constants.DeliveryProviderLog:
		logger.Warn("One-time codes are written to the log, do not use in production")

		return NewLogSender(logger), nil

	case constants.DeliveryProviderPubSub:
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return nil, errors.New("project ID and topic ID are required for pubsub provider")
		}

		sender, err := NewPubSubSender(params.Ctx, cfg.ProjectID, cfg.TopicID, logger)
		if err != nil {
			return nil, err
		}
		params.Lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				logger.Info("Closing Pub/Sub sender")

				return sender.Close()
			},
		})

		return sender, nil

	case constants.DeliveryProviderFirebase:
		if cfg.CredentialsPath == "" {
			return nil, errors.New("credentials path is required for firebase provider")
		}
		logger.Info("Using Firebase push sender")

		return NewFirebaseSender(params.Ctx, cfg.CredentialsPath, logger)

	default:
		return nil, errors.Errorf("unknown delivery provider: %s", cfg.Provider)
	}
}

// Module provides the delivery channel Fx module.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewMessageSender),
)
