package reorder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/workshop-ops/reorderflow/internal/catalog"
	"github.com/workshop-ops/reorderflow/internal/config"
	"github.com/workshop-ops/reorderflow/internal/dispatch"
	"github.com/workshop-ops/reorderflow/internal/modal"
	"github.com/workshop-ops/reorderflow/internal/session"
)

// --- fake collaborators ---

type createCall struct {
	listID  string
	payload catalog.CreateTaskRequest
}

type fakeCatalog struct {
	tasks     []catalog.Task
	listErr   error
	details   map[string]*catalog.Task
	getErr    error
	created   []createCall
	createErr error
	listCalls int
}

func (f *fakeCatalog) ListTasks(ctx context.Context, listID string) ([]catalog.Task, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tasks, nil
}

func (f *fakeCatalog) GetTask(ctx context.Context, taskID string) (*catalog.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	task, ok := f.details[taskID]
	if !ok {
		return nil, &catalog.APIError{Status: 404, Body: "Task not found"}
	}
	return task, nil
}

func (f *fakeCatalog) CreateTask(ctx context.Context, listID string, payload catalog.CreateTaskRequest) (*catalog.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, createCall{listID: listID, payload: payload})
	return &catalog.Task{ID: "created-1", Name: payload.Name}, nil
}

type fakeStore struct {
	snapshots map[string][]session.CandidateItem
	putErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{snapshots: map[string][]session.CandidateItem{}}
}

func (f *fakeStore) Put(ctx context.Context, viewID string, items []session.CandidateItem) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.snapshots[viewID] = items
	return nil
}

func (f *fakeStore) Get(ctx context.Context, viewID string) ([]session.CandidateItem, error) {
	items, ok := f.snapshots[viewID]
	if !ok {
		return nil, session.ErrNotFound
	}
	return items, nil
}

type viewUpdate struct {
	viewID string
	view   modal.View
}

type fakeSlack struct {
	viewID   string
	openErr  error
	opened   []modal.View
	updates  []viewUpdate
	realName string
	userErr  error
}

func (f *fakeSlack) OpenView(ctx context.Context, triggerID string, view modal.View) (string, error) {
	if f.openErr != nil {
		return "", f.openErr
	}
	f.opened = append(f.opened, view)
	return f.viewID, nil
}

func (f *fakeSlack) UpdateView(ctx context.Context, viewID string, view modal.View) error {
	f.updates = append(f.updates, viewUpdate{viewID: viewID, view: view})
	return nil
}

func (f *fakeSlack) UserRealName(ctx context.Context, userID string) (string, error) {
	if f.userErr != nil {
		return "", f.userErr
	}
	return f.realName, nil
}

func (f *fakeSlack) lastUpdate() *viewUpdate {
	if len(f.updates) == 0 {
		return nil
	}
	return &f.updates[len(f.updates)-1]
}

type fakeDispatcher struct {
	envelopes []dispatch.Envelope
	err       error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, env dispatch.Envelope) error {
	if f.err != nil {
		return f.err
	}
	f.envelopes = append(f.envelopes, env)
	return nil
}

type fakeParams struct {
	keys map[string]map[string]string
	pr   *config.PurchaseRequestsConfig
}

func (f *fakeParams) JSONParameter(ctx context.Context, name string, out interface{}) error {
	if f.pr != nil && name == "pr-param" {
		raw, _ := json.Marshal(f.pr)
		return json.Unmarshal(raw, out)
	}
	return fmt.Errorf("unknown parameter %q", name)
}

func (f *fakeParams) JSONParameterKey(ctx context.Context, name, key string) (string, error) {
	if vals, ok := f.keys[name]; ok {
		if v, ok := vals[key]; ok {
			return v, nil
		}
	}
	return "", fmt.Errorf("key %q not found in parameter %q", key, name)
}

// --- wiring helpers ---

type testEnv struct {
	svc        *Service
	catalog    *fakeCatalog
	store      *fakeStore
	slack      *fakeSlack
	dispatcher *fakeDispatcher
}

func newTestEnv() *testEnv {
	cfg := config.Config{
		ClickUpSecretName:         "clickup-secret",
		SlackBotSecretName:        "slack-secret",
		MasterItemsListParamName:  "master-param",
		PurchaseRequestsParamName: "pr-param",
		WorkspaceFieldIDParamName: "ws-param",
		StateTableName:            "state-table",
		SelfFunctionName:          "reorder-fn",
	}
	params := &fakeParams{
		keys: map[string]map[string]string{
			"master-param": {"list_id": "master-list"},
			"ws-param":     {"workspace_field_id": "field-ws"},
		},
		pr: &config.PurchaseRequestsConfig{
			ListID:               "pr-list",
			SupplierLinkFieldID:  "f-supplier",
			RequestorNameFieldID: "f-requestor",
			ItemTypeFieldID:      "f-itemtype",
		},
	}
	env := &testEnv{
		catalog:    &fakeCatalog{details: map[string]*catalog.Task{}},
		store:      newFakeStore(),
		slack:      &fakeSlack{viewID: "V1", realName: "Jordan Doe"},
		dispatcher: &fakeDispatcher{},
	}
	env.svc = NewService(cfg, params, env.catalog, env.store, env.slack, env.dispatcher, nil)
	return env
}

// mustEnvelope marshals a dispatch envelope for RunTask.
func mustEnvelope(action, viewID string, payload interface{}) json.RawMessage {
	env := dispatch.Envelope{Action: action, ViewID: viewID}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			panic(err)
		}
		env.Payload = raw
	}
	raw, err := json.Marshal(env)
	if err != nil {
		panic(err)
	}
	return raw
}
