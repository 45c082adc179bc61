// Package app wires the reorder workflow's collaborators together for the
// Lambda entrypoints. Clients are constructed per invocation rather than
// cached in package state: the execution environment reuses or discards
// processes unpredictably.
package app

import (
	"context"

	"github.com/workshop-ops/reorderflow/internal/aws"
	"github.com/workshop-ops/reorderflow/internal/catalog"
	"github.com/workshop-ops/reorderflow/internal/config"
	"github.com/workshop-ops/reorderflow/internal/dispatch"
	"github.com/workshop-ops/reorderflow/internal/metrics"
	"github.com/workshop-ops/reorderflow/internal/reorder"
	"github.com/workshop-ops/reorderflow/internal/session"
	"github.com/workshop-ops/reorderflow/internal/slack"
)

// MetricsNamespace is the CloudWatch namespace for workflow counters.
const MetricsNamespace = "Reorder"

// Secret keys inside the JSON secrets.
const (
	clickUpTokenKey  = "CLICKUP_API_TOKEN"
	slackBotTokenKey = "SLACK_BOT_TOKEN"
)

// BuildService resolves the API tokens and assembles a Service for one
// invocation. When a queue URL is configured, dispatch goes through SQS to
// the worker; otherwise the function re-invokes itself asynchronously.
func BuildService(ctx context.Context, clients *aws.AWSClients, cfg config.Config) (*reorder.Service, error) {
	provider := config.NewProvider(clients.SecretsManager, clients.SSM)

	clickUpToken, err := provider.Secret(ctx, cfg.ClickUpSecretName, clickUpTokenKey)
	if err != nil {
		return nil, err
	}
	slackToken, err := provider.Secret(ctx, cfg.SlackBotSecretName, slackBotTokenKey)
	if err != nil {
		return nil, err
	}

	var dispatcher dispatch.Dispatcher
	if cfg.QueueURL != "" {
		dispatcher = dispatch.NewSQSDispatcher(clients.SQS, cfg.QueueURL)
	} else {
		dispatcher = dispatch.NewLambdaDispatcher(clients.Lambda, cfg.SelfFunctionName)
	}

	return reorder.NewService(
		cfg,
		provider,
		catalog.NewClient(clickUpToken, nil),
		session.NewStore(clients.DynamoDB, cfg.StateTableName, session.DefaultTTL),
		slack.NewClient(slackToken, nil),
		dispatcher,
		metrics.NewPublisher(clients.CloudWatch, MetricsNamespace),
	), nil
}
