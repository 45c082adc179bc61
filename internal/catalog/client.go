package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultBaseURL is the production ClickUp API endpoint.
const DefaultBaseURL = "https://api.clickup.com/api/v2"

// maxListPages bounds pagination; hitting the ceiling truncates silently
// (with a warning log) rather than erroring.
const maxListPages = 20

// Client is a thin gateway over the ClickUp REST API.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient returns a Client for the given API token. A nil httpClient uses
// http.DefaultClient.
func NewClient(apiToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    DefaultBaseURL,
		apiToken:   apiToken,
		httpClient: httpClient,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a test server.
func NewClientWithBaseURL(apiToken, baseURL string, httpClient *http.Client) *Client {
	c := NewClient(apiToken, httpClient)
	c.baseURL = baseURL
	return c
}

type listTasksResponse struct {
	Tasks    []Task `json:"tasks"`
	LastPage *bool  `json:"last_page,omitempty"`
}

// ListTasks fetches every task in a list, following pagination until the API
// signals the last page or the page ceiling is reached.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]Task, error) {
	var all []Task
	for page := 0; ; page++ {
		if page >= maxListPages {
			log.Printf("[catalog] reached maximum page limit (%d) for list %s, truncating", maxListPages, listID)
			break
		}

		query := url.Values{}
		query.Set("archived", "false")
		query.Set("page", strconv.Itoa(page))
		query.Set("subtasks", "false")
		query.Set("include_closed", "false")

		var resp listTasksResponse
		if err := c.do(ctx, http.MethodGet, fmt.Sprintf("list/%s/task", listID), query, nil, &resp); err != nil {
			return nil, err
		}

		all = append(all, resp.Tasks...)

		lastPage := true
		if resp.LastPage != nil {
			lastPage = *resp.LastPage
		}
		if lastPage || len(resp.Tasks) == 0 {
			break
		}
	}
	return all, nil
}

// GetTask fetches the full detail of a single task. The list endpoint can
// omit description text, so submission always goes through here.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("task/%s", taskID), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task in the given list and returns the created record.
func (c *Client) CreateTask(ctx context.Context, listID string, payload CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("list/%s/task", listID), nil, payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body, out interface{}) error {
	u := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
