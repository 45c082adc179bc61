package metrics

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/workshop-ops/reorderflow/internal/aws"
)

// Metric names emitted by the workflow.
const (
	SessionsOpened       = "SessionsOpened"
	SubmissionsCompleted = "SubmissionsCompleted"
	SubmissionsFailed    = "SubmissionsFailed"
)

// Publisher emits count metrics to CloudWatch. Publishing is best effort:
// failures are logged and swallowed so metrics never break a user flow.
// A nil Publisher is valid and does nothing.
type Publisher struct {
	client    aws.CloudWatchAPI
	namespace string
}

// NewPublisher returns a Publisher for the given namespace.
func NewPublisher(client aws.CloudWatchAPI, namespace string) *Publisher {
	return &Publisher{client: client, namespace: namespace}
}

// Count increments the named metric by one.
func (p *Publisher) Count(ctx context.Context, name string) {
	if p == nil || p.client == nil {
		return
	}

	value := 1.0
	_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: &p.namespace,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: &name,
				Value:      &value,
				Unit:       cwtypes.StandardUnitCount,
			},
		},
	})
	if err != nil {
		log.Printf("[metrics] failed to publish %s: %v", name, err)
	}
}
