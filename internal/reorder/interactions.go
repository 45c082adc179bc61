package reorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/workshop-ops/reorderflow/internal/dispatch"
	"github.com/workshop-ops/reorderflow/internal/metrics"
	"github.com/workshop-ops/reorderflow/internal/modal"
	"github.com/workshop-ops/reorderflow/internal/slack"
)

// HandleCommand handles the initiating slash command: open the loading
// placeholder, capture the issued view id, and dispatch the catalog load.
// The catalog itself is never fetched on this path — it cannot finish inside
// Slack's response window.
func (s *Service) HandleCommand(ctx context.Context, triggerID string) error {
	if triggerID == "" {
		return errors.New("trigger_id not found in request body")
	}

	viewID, err := s.slack.OpenView(ctx, triggerID, modal.Loading())
	if err != nil {
		return fmt.Errorf("open loading view: %w", err)
	}
	log.Printf("[reorder] opened loading view %s", viewID)

	if err := s.dispatcher.Dispatch(ctx, dispatch.Envelope{
		Action: ActionLoadCatalog,
		ViewID: viewID,
	}); err != nil {
		return fmt.Errorf("dispatch catalog load: %w", err)
	}

	s.metrics.Count(ctx, metrics.SessionsOpened)
	return nil
}

// HandleBlockAction handles filter and item-selection interactions. The item
// list is always read from the snapshot store, never from the round-tripped
// view state: the full catalog does not fit Slack's per-field size limits.
// All outcomes, including failures, end in a view push; the webhook response
// is an empty 200 either way.
func (s *Service) HandleBlockAction(ctx context.Context, payload *slack.InteractionPayload) {
	viewID := payload.View.ID

	items, err := s.store.Get(ctx, viewID)
	if err != nil {
		log.Printf("[reorder] no snapshot for view %s: %v", viewID, err)
		s.pushView(ctx, viewID, modal.Error("your session has expired, please reopen the form"))
		return
	}

	if len(payload.Actions) == 0 {
		log.Printf("[reorder] block_actions payload for view %s has no actions", viewID)
		return
	}
	action := payload.Actions[0]

	state := slack.NewFormState(payload.View.State)
	sel := modal.FormSelection{
		Workspace: state.SelectedOption(modal.BlockWorkspaceFilter, modal.ActionSelectedWorkspace),
		ItemID:    state.SelectedOption(modal.BlockItemSelection, modal.ActionSelectedItem),
	}

	switch action.ActionID {
	case modal.ActionSelectedWorkspace:
		// A filter change always clears the selection and description; a
		// selection hidden by the new filter must not survive it.
		sel.Workspace = action.SelectedValue()
		sel.ItemID = ""
		sel.Description = ""
	case modal.ActionSelectedItem:
		sel.ItemID = action.SelectedValue()
		sel.Description = ""
		if sel.ItemID != "" {
			if item, ok := findItem(items, sel.ItemID); ok {
				sel.Description = item.Description
			}
		}
	default:
		log.Printf("[reorder] unexpected action %q for view %s", action.ActionID, viewID)
		return
	}

	filtered := FilterByWorkspace(items, sel.Workspace)
	s.pushView(ctx, viewID, modal.ReorderForm(filtered, Workspaces(items), sel))
}

// HandleSubmission acknowledges a modal submission within the synchronous
// window and dispatches the slow work. The returned view goes back to Slack
// as a response_action update: Processing on success, an error view when
// dispatch itself fails.
func (s *Service) HandleSubmission(ctx context.Context, payload *slack.InteractionPayload) modal.View {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[reorder] marshal submission payload for view %s: %v", payload.View.ID, err)
		return modal.Error("could not process the submission")
	}

	if err := s.dispatcher.Dispatch(ctx, dispatch.Envelope{
		Action:  ActionProcessSubmission,
		ViewID:  payload.View.ID,
		Payload: raw,
	}); err != nil {
		log.Printf("[reorder] dispatch submission for view %s: %v", payload.View.ID, err)
		return modal.Error(err.Error())
	}

	return modal.Processing()
}

// pushView updates a modal best effort; a failed push is logged, not
// propagated — the invocation has nothing else to report it to.
func (s *Service) pushView(ctx context.Context, viewID string, view modal.View) {
	if err := s.slack.UpdateView(ctx, viewID, view); err != nil {
		log.Printf("[reorder] failed to update view %s: %v", viewID, err)
	}
}
