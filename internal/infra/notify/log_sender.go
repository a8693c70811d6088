// Package notify delivers one-time codes through the configured channel.
package notify

import (
	"context"
	"log/slog"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/constants"
	"passport/internal/domain/service"

	"github.com/google/uuid"
)

// logSender writes messages to the log instead of delivering them. It is
// meant for local development only.
type logSender struct {
	logger *slog.Logger
}

// NewLogSender creates a MessageSender that only logs.
func NewLogSender(logger *slog.Logger) service.MessageSender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(ctx context.Context, msg *service.Message) (*service.Receipt, error) {
	receipt := &service.Receipt{
		ID:       uuid.NewString(),
		Provider: constants.DeliveryProviderLog,
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("[LogSender] Message delivered",
		slog.String("receipt_id", receipt.ID),
		slog.String("template", msg.Template),
		slog.Any("recipients", msg.Recipients),
		slog.Any("params", msg.Params),
	)

	return receipt, nil
}
