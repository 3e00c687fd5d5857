package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/yanqian/moodsip/internal/domain/notification"
)

type publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier publishes notifications to an SNS topic. Subscribers filter on the
// user_id and kind message attributes.
type SNSNotifier struct {
	client   publisher
	topicARN string
}

var _ notification.Notifier = (*SNSNotifier)(nil)

// NewSNSNotifier loads the default AWS configuration for region and builds the notifier.
func NewSNSNotifier(ctx context.Context, region, topicARN string) (*SNSNotifier, error) {
	if topicARN == "" {
		return nil, fmt.Errorf("sns topic arn is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SNSNotifier{client: sns.NewFromConfig(cfg), topicARN: topicARN}, nil
}

// Notify publishes msg with a per-protocol payload.
func (n *SNSNotifier) Notify(ctx context.Context, userID int64, msg notification.Notification) error {
	body, err := buildMessage(msg)
	if err != nil {
		return err
	}
	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn:         aws.String(n.topicARN),
		Subject:          aws.String(msg.Title),
		MessageStructure: aws.String("json"),
		Message:          aws.String(body),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"user_id": {DataType: aws.String("Number"), StringValue: aws.String(strconv.FormatInt(userID, 10))},
			"kind":    {DataType: aws.String("String"), StringValue: aws.String(string(msg.Kind))},
		},
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// buildMessage renders the json message structure: a plain default plus a GCM
// payload carrying the notification and its kind.
func buildMessage(msg notification.Notification) (string, error) {
	gcm, err := json.Marshal(map[string]any{
		"notification": map[string]string{"title": msg.Title, "body": msg.Message},
		"data":         map[string]string{"kind": string(msg.Kind)},
	})
	if err != nil {
		return "", fmt.Errorf("encode gcm payload: %w", err)
	}
	raw, err := json.Marshal(map[string]string{
		"default": msg.Message,
		"GCM":     string(gcm),
	})
	if err != nil {
		return "", fmt.Errorf("encode sns message: %w", err)
	}
	return string(raw), nil
}
