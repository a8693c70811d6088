package notify

import (
	"context"
	"log/slog"
	"strconv"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/constants"
	"passport/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// maxMulticastTokens is the FCM limit for a single multicast request.
const maxMulticastTokens = 500

// pushClient is the subset of messaging.Client used by firebaseSender.
type pushClient interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// firebaseSender pushes codes to registered devices through FCM. Recipients
// are device registration tokens.
type firebaseSender struct {
	client pushClient
	logger *slog.Logger
}

// NewFirebaseSender initializes an FCM client from a service account file.
func NewFirebaseSender(ctx context.Context, credentialsPath string, logger *slog.Logger) (service.MessageSender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return newFirebaseSender(client, logger), nil
}

func newFirebaseSender(client pushClient, logger *slog.Logger) *firebaseSender {
	return &firebaseSender{client: client, logger: logger}
}

func (s *firebaseSender) Send(ctx context.Context, msg *service.Message) (*service.Receipt, error) {
	if len(msg.Recipients) == 0 {
		return nil, errors.New("message has no recipients")
	}
	if len(msg.Recipients) > maxMulticastTokens {
		return nil, errors.Errorf("token count exceeds limit: %d (max %d)", len(msg.Recipients), maxMulticastTokens)
	}

	data := make(map[string]string, len(msg.Params)+1)
	for k, v := range msg.Params {
		data[k] = v
	}
	data["template"] = msg.Template

	response, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens: msg.Recipients,
		Data:   data,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to send multicast notification")
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)
	for idx, resp := range response.Responses {
		if resp.Error != nil && (messaging.IsInvalidArgument(resp.Error) || messaging.IsUnregistered(resp.Error)) {
			logger.Warn("[FirebaseSender] Invalid device token",
				slog.Int("index", idx),
				slog.Any("error", resp.Error),
			)
		}
	}

	if response.SuccessCount == 0 {
		return nil, errors.Errorf("push delivery failed for all %d devices", response.FailureCount)
	}

	var messageID string
	for _, resp := range response.Responses {
		if resp.Success {
			messageID = resp.MessageID

			break
		}
	}

	logger.Info("[FirebaseSender] Message pushed",
		slog.String("template", msg.Template),
		slog.String("delivered", strconv.Itoa(response.SuccessCount)+"/"+strconv.Itoa(len(msg.Recipients))),
	)

	return &service.Receipt{ID: messageID, Provider: constants.DeliveryProviderFirebase}, nil
}
