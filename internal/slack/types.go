package slack

// InteractionPayload is the JSON Slack posts for block_actions and
// view_submission callbacks. Only the fields the workflow reads are mapped.
type InteractionPayload struct {
	Type    string   `json:"type"`
	User    User     `json:"user"`
	View    View     `json:"view"`
	Actions []Action `json:"actions,omitempty"`
}

// Payload types Slack sends on the interaction webhook.
const (
	TypeBlockActions   = "block_actions"
	TypeViewSubmission = "view_submission"
)

// User identifies the interacting Slack user.
type User struct {
	ID string `json:"id"`
}

// View is the modal instance the interaction happened in.
type View struct {
	ID         string    `json:"id"`
	CallbackID string    `json:"callback_id,omitempty"`
	State      ViewState `json:"state"`
}

// ViewState holds the round-tripped form values, keyed block id -> action id.
type ViewState struct {
	Values map[string]map[string]ElementState `json:"values"`
}

// ElementState is the per-element state Slack round-trips.
type ElementState struct {
	Value          string       `json:"value,omitempty"`
	SelectedDate   string       `json:"selected_date,omitempty"`
	SelectedOption *OptionValue `json:"selected_option,omitempty"`
}

// OptionValue is the chosen option of a select element.
type OptionValue struct {
	Value string `json:"value"`
}

// Action is one entry of a block_actions payload.
type Action struct {
	ActionID       string       `json:"action_id"`
	SelectedOption *OptionValue `json:"selected_option,omitempty"`
}

// SelectedValue returns the action's chosen option value, or "" when the
// selection was cleared.
func (a Action) SelectedValue() string {
	if a.SelectedOption == nil {
		return ""
	}
	return a.SelectedOption.Value
}
