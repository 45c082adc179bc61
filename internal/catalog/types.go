package catalog

import "fmt"

// Task is a raw ClickUp task record as returned by the list and detail
// endpoints. Only the fields the workflow touches are mapped; custom field
// values stay loosely typed because ClickUp varies them per field type.
type Task struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	TextContent  string        `json:"text_content,omitempty"`
	CustomFields []CustomField `json:"custom_fields,omitempty"`
}

// CustomField is one entry in a task's custom attribute array.
type CustomField struct {
	ID         string      `json:"id"`
	Name       string      `json:"name,omitempty"`
	Type       string      `json:"type,omitempty"`
	Value      interface{} `json:"value,omitempty"`
	TypeConfig *TypeConfig `json:"type_config,omitempty"`
}

// TypeConfig carries the option table for drop_down fields.
type TypeConfig struct {
	Options []FieldOption `json:"options,omitempty"`
}

// FieldOption is one selectable option of a drop_down field.
type FieldOption struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	OrderIndex int    `json:"orderindex"`
}

// CustomFieldValue is the write-side shape used when creating a task.
type CustomFieldValue struct {
	ID    string      `json:"id"`
	Value interface{} `json:"value"`
}

// CreateTaskRequest is the payload for the task-create endpoint.
type CreateTaskRequest struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	CustomFields []CustomFieldValue `json:"custom_fields,omitempty"`
	DueDate      *int64             `json:"due_date,omitempty"` // epoch millis
}

// APIError is the uniform error for any failed ClickUp call. Network-level
// failures carry Status 0; HTTP failures carry the status and response body.
type APIError struct {
	Status int
	Body   string
	Err    error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("clickup request failed: %v", e.Err)
	}
	return fmt.Sprintf("clickup API error: status %d - %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error { return e.Err }
