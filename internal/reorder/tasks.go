package reorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/workshop-ops/reorderflow/internal/catalog"
	"github.com/workshop-ops/reorderflow/internal/config"
	"github.com/workshop-ops/reorderflow/internal/dispatch"
	"github.com/workshop-ops/reorderflow/internal/metrics"
	"github.com/workshop-ops/reorderflow/internal/modal"
	"github.com/workshop-ops/reorderflow/internal/slack"
)

// Background task actions carried in dispatch envelopes, re-exported for
// callers that only import this package.
const (
	ActionLoadCatalog       = dispatch.ActionLoadCatalog
	ActionProcessSubmission = dispatch.ActionProcessSubmission
)

// RunTask routes a background task envelope. Both the self-invoked Lambda
// path and the SQS worker feed envelopes through here.
func (s *Service) RunTask(ctx context.Context, raw json.RawMessage) error {
	var env dispatch.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode task envelope: %w", err)
	}
	if err := s.validate.Struct(env); err != nil {
		return fmt.Errorf("invalid task envelope: %w", err)
	}

	switch env.Action {
	case ActionLoadCatalog:
		s.RunLoad(ctx, env.ViewID)
		return nil
	case ActionProcessSubmission:
		s.RunSubmit(ctx, env.Payload)
		return nil
	default:
		return fmt.Errorf("unknown task action %q", env.Action)
	}
}

// RunLoad is the background catalog load: fetch the full candidate list,
// snapshot it, and replace the loading placeholder with the populated form.
// Failures are converted into a best-effort pushed error view; nothing
// propagates past the task.
func (s *Service) RunLoad(ctx context.Context, viewID string) {
	log.Printf("[reorder] loading catalog for view %s", viewID)
	if err := s.loadCatalog(ctx, viewID); err != nil {
		log.Printf("[reorder] catalog load failed for view %s: %v", viewID, err)
		s.pushView(ctx, viewID, modal.Error(err.Error()))
	}
}

func (s *Service) loadCatalog(ctx context.Context, viewID string) error {
	masterListID, err := s.params.JSONParameterKey(ctx, s.cfg.MasterItemsListParamName, "list_id")
	if err != nil {
		return err
	}
	workspaceFieldID, err := s.params.JSONParameterKey(ctx, s.cfg.WorkspaceFieldIDParamName, "workspace_field_id")
	if err != nil {
		return err
	}

	tasks, err := s.catalog.ListTasks(ctx, masterListID)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		// Terminal: the session never reaches Ready and no snapshot exists.
		s.pushView(ctx, viewID, modal.NoItems())
		return nil
	}

	items := PrepareItems(tasks, workspaceFieldID)
	if err := s.store.Put(ctx, viewID, items); err != nil {
		return err
	}
	log.Printf("[reorder] stored snapshot of %d items for view %s", len(items), viewID)

	s.pushView(ctx, viewID, modal.ReorderForm(items, Workspaces(items), modal.FormSelection{}))
	return nil
}

// RunSubmit is the background submission: resolve the selected item's full
// detail, create the purchase-request record, and push the terminal view.
func (s *Service) RunSubmit(ctx context.Context, raw json.RawMessage) {
	var payload slack.InteractionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("[reorder] invalid submission payload: %v", err)
		return
	}
	viewID := payload.View.ID

	if err := s.processSubmission(ctx, &payload); err != nil {
		log.Printf("[reorder] submission failed for view %s: %v", viewID, err)
		s.metrics.Count(ctx, metrics.SubmissionsFailed)
		s.pushView(ctx, viewID, modal.Error(err.Error()))
		return
	}

	s.metrics.Count(ctx, metrics.SubmissionsCompleted)
	s.pushView(ctx, viewID, modal.Success())
}

func (s *Service) processSubmission(ctx context.Context, payload *slack.InteractionPayload) error {
	state := slack.NewFormState(payload.View.State)

	itemID := state.SelectedOption(modal.BlockItemSelection, modal.ActionSelectedItem)
	if itemID == "" {
		return errors.New("could not determine the selected item from the submission")
	}
	deliveryDate := state.SelectedDate(modal.BlockDeliveryDate, modal.ActionDeliveryDate)
	description := state.ValueByBlockPrefix(modal.BlockDescriptionPrefix, modal.ActionDescription)

	requestor, err := s.slack.UserRealName(ctx, payload.User.ID)
	if err != nil {
		return fmt.Errorf("resolve requestor: %w", err)
	}

	var prCfg config.PurchaseRequestsConfig
	if err := s.params.JSONParameter(ctx, s.cfg.PurchaseRequestsParamName, &prCfg); err != nil {
		return err
	}
	workspaceFieldID, err := s.params.JSONParameterKey(ctx, s.cfg.WorkspaceFieldIDParamName, "workspace_field_id")
	if err != nil {
		return err
	}

	detail, err := s.catalog.GetTask(ctx, itemID)
	if err != nil {
		return err
	}

	// The record's description is what the user typed, not the catalog
	// item's own description; the carried attributes are copied raw.
	request := catalog.CreateTaskRequest{
		Name:        detail.Name,
		Description: description,
		CustomFields: []catalog.CustomFieldValue{
			{ID: workspaceFieldID, Value: catalog.RawFieldValue(detail, workspaceFieldID)},
			{ID: prCfg.SupplierLinkFieldID, Value: catalog.RawFieldValue(detail, prCfg.SupplierLinkFieldID)},
			{ID: prCfg.RequestorNameFieldID, Value: requestor},
			{ID: prCfg.ItemTypeFieldID, Value: catalog.RawFieldValue(detail, prCfg.ItemTypeFieldID)},
		},
	}
	if deliveryDate != "" {
		dueDate, err := parseDeliveryDate(deliveryDate)
		if err != nil {
			return err
		}
		request.DueDate = &dueDate
	}

	if _, err := s.catalog.CreateTask(ctx, prCfg.ListID, request); err != nil {
		return err
	}
	log.Printf("[reorder] created purchase request for item %s (view %s)", itemID, payload.View.ID)
	return nil
}
