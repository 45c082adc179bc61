package config

import (
	"fmt"
	"os"
)

// Config holds the environment-level settings for the reorder workflow.
// Secret and parameter names point at Secrets Manager / SSM; the values
// themselves are fetched per invocation through a Provider.
type Config struct {
	ClickUpSecretName         string
	SlackBotSecretName        string
	MasterItemsListParamName  string
	PurchaseRequestsParamName string
	WorkspaceFieldIDParamName string
	StateTableName            string
	SelfFunctionName          string
	QueueURL                  string // optional: set when dispatch goes through SQS
}

// FromEnv reads the configuration from environment variables. Missing
// required variables are an error rather than a silent empty value.
func FromEnv() (Config, error) {
	cfg := Config{
		ClickUpSecretName:         os.Getenv("CLICKUP_SECRET_NAME"),
		SlackBotSecretName:        os.Getenv("SLACK_BOT_SECRET_NAME"),
		MasterItemsListParamName:  os.Getenv("CLICKUP_MASTER_ITEMS_LIST_PARAM_NAME"),
		PurchaseRequestsParamName: os.Getenv("CLICKUP_PURCHASE_REQUESTS_PARAM_NAME"),
		WorkspaceFieldIDParamName: os.Getenv("CLICKUP_WORKSPACE_FIELD_ID_PARAM_NAME"),
		StateTableName:            os.Getenv("STATE_TABLE_NAME"),
		SelfFunctionName:          os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		QueueURL:                  os.Getenv("REORDER_QUEUE_URL"),
	}

	required := map[string]string{
		"CLICKUP_SECRET_NAME":                   cfg.ClickUpSecretName,
		"SLACK_BOT_SECRET_NAME":                 cfg.SlackBotSecretName,
		"CLICKUP_MASTER_ITEMS_LIST_PARAM_NAME":  cfg.MasterItemsListParamName,
		"CLICKUP_PURCHASE_REQUESTS_PARAM_NAME":  cfg.PurchaseRequestsParamName,
		"CLICKUP_WORKSPACE_FIELD_ID_PARAM_NAME": cfg.WorkspaceFieldIDParamName,
		"STATE_TABLE_NAME":                      cfg.StateTableName,
	}
	for name, val := range required {
		if val == "" {
			return Config{}, fmt.Errorf("missing required environment variable %s", name)
		}
	}
	return cfg, nil
}

// PurchaseRequestsConfig is the SSM-held description of the purchase-request
// intake list: where to create records and which custom fields to populate.
type PurchaseRequestsConfig struct {
	ListID               string `json:"list_id"`
	SupplierLinkFieldID  string `json:"supplier_link_field_id"`
	RequestorNameFieldID string `json:"requestor_name_field_id"`
	ItemTypeFieldID      string `json:"item_type_field_id"`
}
