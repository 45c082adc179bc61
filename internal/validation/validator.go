package validation

import (
	"encoding/json"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/workshop-ops/reorderflow/internal/dispatch"
)

// New returns a configured validator with struct-level validation registered
// for background task envelopes.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// register struct-level validation for Envelope: each action has its own
	// required fields beyond the tag-level ones.
	v.RegisterStructValidation(envelopeStructValidation, dispatch.Envelope{})

	return v
}

// submissionPayload is the minimal shape a submission envelope must embed:
// without a view id the task has nowhere to push its outcome, and without a
// user id the requestor cannot be resolved.
type submissionPayload struct {
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	View struct {
		ID string `json:"id"`
	} `json:"view"`
}

// envelopeStructValidation enforces per-action payload requirements: a
// catalog load must address a view, a submission must carry an interaction
// payload that identifies both the view and the submitting user.
func envelopeStructValidation(sl validatorv10.StructLevel) {
	env := sl.Current().Interface().(dispatch.Envelope)

	switch env.Action {
	case dispatch.ActionLoadCatalog:
		if env.ViewID == "" {
			sl.ReportError(env.ViewID, "view_id", "ViewID", "required_for_load", "")
		}
	case dispatch.ActionProcessSubmission:
		var payload submissionPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			sl.ReportError(env.Payload, "payload", "Payload", "required_for_submission", "")
			return
		}
		if payload.View.ID == "" {
			sl.ReportError(env.Payload, "payload", "Payload", "submission_view_id", "")
		}
		if payload.User.ID == "" {
			sl.ReportError(env.Payload, "payload", "Payload", "submission_user_id", "")
		}
	}
}
