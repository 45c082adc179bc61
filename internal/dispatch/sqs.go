package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/workshop-ops/reorderflow/internal/aws"
)

// SQSDispatcher routes task envelopes through a queue consumed by the worker
// Lambda, for deployments that want queue-level retry/DLQ semantics instead
// of direct self-invocation.
type SQSDispatcher struct {
	client   aws.SQSAPI
	queueURL string
}

// NewSQSDispatcher returns a dispatcher bound to a queue URL.
func NewSQSDispatcher(client aws.SQSAPI, queueURL string) *SQSDispatcher {
	return &SQSDispatcher{client: client, queueURL: queueURL}
}

// Dispatch sends the envelope as a message, tagging action and view id as
// message attributes for queue-side filtering.
func (d *SQSDispatcher) Dispatch(ctx context.Context, env Envelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal task envelope: %w", err)
	}
	bodyStr := string(body)

	input := &sqs.SendMessageInput{
		QueueUrl:    &d.queueURL,
		MessageBody: &bodyStr,
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"action": {
				DataType:    awsString("String"),
				StringValue: &env.Action,
			},
		},
	}
	if env.ViewID != "" {
		input.MessageAttributes["view_id"] = sqstypes.MessageAttributeValue{
			DataType:    awsString("String"),
			StringValue: &env.ViewID,
		}
	}

	if _, err := d.client.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func awsString(s string) *string { return &s }
