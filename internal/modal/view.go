// Package modal builds the Block Kit views of the reorder workflow. Builders
// are pure: no I/O, same inputs produce the same structural output. The one
// intentional exception is the description block id, which carries a varying
// token when an item is selected (see build.go).
package modal

// Block and action identifiers shared with the interaction handlers.
const (
	CallbackReorderSubmit = "reorder_modal_submit"

	BlockWorkspaceFilter    = "workspace_filter"
	ActionSelectedWorkspace = "selected_workspace"

	BlockItemSelection = "item_selection"
	ActionSelectedItem = "selected_item"

	BlockDeliveryDate  = "delivery_date_block"
	ActionDeliveryDate = "delivery_date_action"

	// The description block id is this prefix alone, or prefix + "_" + token
	// when a selection forces a re-render.
	BlockDescriptionPrefix = "description_block"
	ActionDescription      = "description_action"
)

// View is a Slack modal view.
type View struct {
	Type            string  `json:"type"`
	CallbackID      string  `json:"callback_id,omitempty"`
	PrivateMetadata string  `json:"private_metadata,omitempty"`
	Title           *Text   `json:"title,omitempty"`
	Submit          *Text   `json:"submit,omitempty"`
	Close           *Text   `json:"close,omitempty"`
	Blocks          []Block `json:"blocks"`
}

// Text is a Block Kit text object.
type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func plain(s string) *Text { return &Text{Type: "plain_text", Text: s} }
func mrkdwn(s string) *Text { return &Text{Type: "mrkdwn", Text: s} }

// Block is an input or section block.
type Block struct {
	Type           string   `json:"type"`
	BlockID        string   `json:"block_id,omitempty"`
	Label          *Text    `json:"label,omitempty"`
	Hint           *Text    `json:"hint,omitempty"`
	Text           *Text    `json:"text,omitempty"`
	DispatchAction bool     `json:"dispatch_action,omitempty"`
	Optional       bool     `json:"optional,omitempty"`
	Element        *Element `json:"element,omitempty"`
}

// Element is an interactive form element.
type Element struct {
	Type          string   `json:"type"`
	ActionID      string   `json:"action_id"`
	Placeholder   *Text    `json:"placeholder,omitempty"`
	Options       []Option `json:"options,omitempty"`
	InitialOption *Option  `json:"initial_option,omitempty"`
	InitialValue  string   `json:"initial_value,omitempty"`
	Multiline     bool     `json:"multiline,omitempty"`
}

// Option is one entry of a static_select.
type Option struct {
	Text  Text   `json:"text"`
	Value string `json:"value"`
}
