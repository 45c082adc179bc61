package slack

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// WebhookRequest is the decoded form-encoded body Slack posts to the command
// webhook. A slash command carries a trigger id; interaction callbacks carry
// a JSON payload instead.
type WebhookRequest struct {
	TriggerID   string
	Interaction *InteractionPayload
}

// ParseWebhookBody decodes a url-encoded webhook body.
func ParseWebhookBody(body string) (*WebhookRequest, error) {
	form, err := url.ParseQuery(body)
	if err != nil {
		return nil, fmt.Errorf("parse webhook body: %w", err)
	}

	if payloadStr := form.Get("payload"); payloadStr != "" {
		var payload InteractionPayload
		if err := json.Unmarshal([]byte(payloadStr), &payload); err != nil {
			return nil, fmt.Errorf("decode interaction payload: %w", err)
		}
		return &WebhookRequest{Interaction: &payload}, nil
	}

	return &WebhookRequest{TriggerID: form.Get("trigger_id")}, nil
}
