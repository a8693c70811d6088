package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/constants"
	"passport/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// deliveryRequest is the payload consumed by the SMS/email gateway
// subscribed to the topic.
type deliveryRequest struct {
	Template   string            `json:"template"`
	Params     map[string]string `json:"params"`
	Recipients []string          `json:"recipients"`
	RequestID  string            `json:"requestId,omitempty"`
}

// PubSubSender hands messages to a gateway through Google Cloud Pub/Sub.
type PubSubSender struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewPubSubSender connects to topicID and verifies that it exists.
func NewPubSubSender(ctx context.Context, projectID, topicID string, logger *slog.Logger) (*PubSubSender, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	_, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{
		Topic: topicPath,
	})
	if err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	logger.Info("Google Pub/Sub sender initialized",
		slog.String("project_id", projectID),
		slog.String("topic_id", topicID),
	)

	return &PubSubSender{
		client:    client,
		publisher: client.Publisher(topicID),
		logger:    logger,
	}, nil
}

func (s *PubSubSender) Send(ctx context.Context, msg *service.Message) (*service.Receipt, error) {
	requestID := deliverycontext.GetRequestIDFromContext(ctx)
	data, err := json.Marshal(deliveryRequest{
		Template:   msg.Template,
		Params:     msg.Params,
		Recipients: msg.Recipients,
		RequestID:  requestID,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	attributes := map[string]string{
		"template": msg.Template,
	}
	if requestID != "" {
		attributes["request_id"] = requestID
	}

	result := s.publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	})

	serverID, err := result.Get(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("[PubSubSender] Message published",
		slog.String("template", msg.Template),
		slog.String("server_id", serverID),
		slog.Int("recipient_count", len(msg.Recipients)),
	)

	return &service.Receipt{ID: serverID, Provider: constants.DeliveryProviderPubSub}, nil
}

// Close releases Pub/Sub client resources.
func (s *PubSubSender) Close() error {
	if s.publisher != nil {
		s.publisher.Stop()
	}
	if s.client != nil {
		return errors.WithStack(s.client.Close())
	}

	return nil
}
