package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/workshop-ops/reorderflow/internal/modal"
)

// DefaultBaseURL is the production Slack Web API endpoint.
const DefaultBaseURL = "https://slack.com/api"

// Client calls the handful of Slack Web API methods the workflow needs.
type Client struct {
	baseURL    string
	botToken   string
	httpClient *http.Client
}

// NewClient returns a Client authenticated with the given bot token. A nil
// httpClient uses http.DefaultClient.
func NewClient(botToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    DefaultBaseURL,
		botToken:   botToken,
		httpClient: httpClient,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a test server.
func NewClientWithBaseURL(botToken, baseURL string, httpClient *http.Client) *Client {
	c := NewClient(botToken, httpClient)
	c.baseURL = baseURL
	return c
}

type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	View  *struct {
		ID string `json:"id"`
	} `json:"view,omitempty"`
	User *struct {
		RealName string `json:"real_name,omitempty"`
	} `json:"user,omitempty"`
}

// OpenView opens a modal against a trigger id and returns the issued view id.
func (c *Client) OpenView(ctx context.Context, triggerID string, view modal.View) (string, error) {
	resp, err := c.post(ctx, "views.open", map[string]interface{}{
		"trigger_id": triggerID,
		"view":       view,
	})
	if err != nil {
		return "", err
	}
	if resp.View == nil || resp.View.ID == "" {
		return "", fmt.Errorf("views.open response missing view id")
	}
	return resp.View.ID, nil
}

// UpdateView replaces the content of an open modal, addressed by view id.
func (c *Client) UpdateView(ctx context.Context, viewID string, view modal.View) error {
	_, err := c.post(ctx, "views.update", map[string]interface{}{
		"view_id": viewID,
		"view":    view,
	})
	return err
}

// UserRealName resolves a Slack user id to the user's real name. Falls back
// to "Unknown User" when the profile has no name set (not when the call
// itself fails).
func (c *Client) UserRealName(ctx context.Context, userID string) (string, error) {
	u := fmt.Sprintf("%s/users.info?%s", c.baseURL, url.Values{"user": {userID}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build users.info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.botToken)

	resp, err := c.doRequest(req)
	if err != nil {
		return "", err
	}
	if resp.User == nil || resp.User.RealName == "" {
		return "Unknown User", nil
	}
	return resp.User.RealName, nil
}

func (c *Client) post(ctx context.Context, method string, body map[string]interface{}) (*apiResponse, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.botToken)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	return c.doRequest(req)
}

// doRequest executes a request and decodes the Slack envelope. Slack reports
// most failures as "ok": false on an HTTP 200, so both layers are checked.
func (c *Client) doRequest(req *http.Request) (*apiResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("slack request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read slack response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("slack API error: status %d - %s", resp.StatusCode, string(respBody))
	}

	var decoded apiResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode slack response: %w", err)
	}
	if !decoded.OK {
		return nil, fmt.Errorf("slack API error: %s", decoded.Error)
	}
	return &decoded, nil
}
