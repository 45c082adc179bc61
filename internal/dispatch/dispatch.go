// Package dispatch schedules background tasks for asynchronous,
// at-most-once-attempted execution. Callers get no completion handle; a
// dispatched task reports its outcome only by pushing an updated view keyed
// by the view id it carries.
package dispatch

import (
	"context"
	"encoding/json"
)

// Known task actions.
const (
	ActionLoadCatalog       = "load_catalog_and_update_view"
	ActionProcessSubmission = "process_submission"
)

// Envelope is the message handed to a background task.
type Envelope struct {
	Action  string          `json:"action" validate:"required"`
	ViewID  string          `json:"view_id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Dispatcher schedules an envelope and returns without waiting for the
// task's result. Dispatch itself failing (the execution platform being
// unreachable) propagates synchronously to the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, env Envelope) error
}
