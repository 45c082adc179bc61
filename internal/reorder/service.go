// Package reorder implements the interactive reorder session workflow: a
// Slack modal backed by a cached catalog snapshot and background tasks for
// the slow calls that cannot finish inside Slack's synchronous response
// window.
package reorder

import (
	"context"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/workshop-ops/reorderflow/internal/catalog"
	"github.com/workshop-ops/reorderflow/internal/config"
	"github.com/workshop-ops/reorderflow/internal/dispatch"
	"github.com/workshop-ops/reorderflow/internal/metrics"
	"github.com/workshop-ops/reorderflow/internal/modal"
	"github.com/workshop-ops/reorderflow/internal/session"
	"github.com/workshop-ops/reorderflow/internal/validation"
)

// CatalogGateway is the ClickUp surface the workflow uses.
type CatalogGateway interface {
	ListTasks(ctx context.Context, listID string) ([]catalog.Task, error)
	GetTask(ctx context.Context, taskID string) (*catalog.Task, error)
	CreateTask(ctx context.Context, listID string, payload catalog.CreateTaskRequest) (*catalog.Task, error)
}

// SnapshotStore is the session state table.
type SnapshotStore interface {
	Put(ctx context.Context, viewID string, items []session.CandidateItem) error
	Get(ctx context.Context, viewID string) ([]session.CandidateItem, error)
}

// SlackGateway is the presentation platform surface the workflow uses.
type SlackGateway interface {
	OpenView(ctx context.Context, triggerID string, view modal.View) (string, error)
	UpdateView(ctx context.Context, viewID string, view modal.View) error
	UserRealName(ctx context.Context, userID string) (string, error)
}

// ConfigSource resolves the SSM-held workflow parameters.
type ConfigSource interface {
	JSONParameter(ctx context.Context, name string, out interface{}) error
	JSONParameterKey(ctx context.Context, name, key string) (string, error)
}

// Service wires the workflow's collaborators together. It is constructed
// per invocation; it holds no cross-invocation state of its own — all
// coordination goes through the snapshot store and Slack's view addressing.
type Service struct {
	cfg        config.Config
	params     ConfigSource
	catalog    CatalogGateway
	store      SnapshotStore
	slack      SlackGateway
	dispatcher dispatch.Dispatcher
	metrics    *metrics.Publisher
	validate   *validatorv10.Validate
}

// NewService returns a Service over the given collaborators.
func NewService(cfg config.Config, params ConfigSource, cat CatalogGateway, store SnapshotStore, slackClient SlackGateway, dispatcher dispatch.Dispatcher, pub *metrics.Publisher) *Service {
	return &Service{
		cfg:        cfg,
		params:     params,
		catalog:    cat,
		store:      store,
		slack:      slackClient,
		dispatcher: dispatcher,
		metrics:    pub,
		validate:   validation.New(),
	}
}
