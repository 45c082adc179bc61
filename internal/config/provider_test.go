package config

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
)

type fakeSecrets struct {
	values map[string]string // secret name -> secret string
	err    error
}

func (f *fakeSecrets) GetSecretValue(ctx context.Context, input *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	val, ok := f.values[*input.SecretId]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: &val}, nil
}

type fakeSSM struct {
	values         map[string]string // parameter name -> value
	err            error
	lastDecryption *bool
}

func (f *fakeSSM) GetParameter(ctx context.Context, input *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.lastDecryption = input.WithDecryption
	if f.err != nil {
		return nil, f.err
	}
	val, ok := f.values[*input.Name]
	if !ok {
		return nil, errors.New("ParameterNotFound")
	}
	return &ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{Value: &val},
	}, nil
}

func TestSecret(t *testing.T) {
	secrets := &fakeSecrets{values: map[string]string{
		"clickup-secret": `{"CLICKUP_API_TOKEN": "  pk_token_123  "}`,
	}}
	p := NewProvider(secrets, &fakeSSM{})

	got, err := p.Secret(context.Background(), "clickup-secret", "CLICKUP_API_TOKEN")
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if got != "pk_token_123" {
		t.Errorf("Secret = %q, want whitespace-trimmed token", got)
	}
}

func TestSecretMissingKey(t *testing.T) {
	secrets := &fakeSecrets{values: map[string]string{
		"clickup-secret": `{"OTHER": "x"}`,
	}}
	p := NewProvider(secrets, &fakeSSM{})

	_, err := p.Secret(context.Background(), "clickup-secret", "CLICKUP_API_TOKEN")
	if err == nil || !strings.Contains(err.Error(), "CLICKUP_API_TOKEN") {
		t.Fatalf("Secret error = %v, want missing-key error naming the key", err)
	}
}

func TestSecretNotJSON(t *testing.T) {
	secrets := &fakeSecrets{values: map[string]string{
		"clickup-secret": `not-json`,
	}}
	p := NewProvider(secrets, &fakeSSM{})

	if _, err := p.Secret(context.Background(), "clickup-secret", "CLICKUP_API_TOKEN"); err == nil {
		t.Fatal("expected error for non-JSON secret")
	}
}

func TestSecretFetchFailure(t *testing.T) {
	p := NewProvider(&fakeSecrets{err: errors.New("AccessDeniedException")}, &fakeSSM{})

	if _, err := p.Secret(context.Background(), "clickup-secret", "CLICKUP_API_TOKEN"); err == nil {
		t.Fatal("expected error when the fetch fails")
	}
}

func TestSecretMissingResource(t *testing.T) {
	secrets := &fakeSecrets{err: &smithy.GenericAPIError{Code: "ResourceNotFoundException"}}
	p := NewProvider(secrets, &fakeSSM{})

	_, err := p.Secret(context.Background(), "clickup-secret", "CLICKUP_API_TOKEN")
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("Secret error = %v, want missing-secret classification", err)
	}
}

func TestParameterMissingResource(t *testing.T) {
	params := &fakeSSM{err: &smithy.GenericAPIError{Code: "ParameterNotFound"}}
	p := NewProvider(&fakeSecrets{}, params)

	_, err := p.JSONParameterKey(context.Background(), "master-param", "list_id")
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("JSONParameterKey error = %v, want missing-parameter classification", err)
	}
}

func TestJSONParameter(t *testing.T) {
	params := &fakeSSM{values: map[string]string{
		"pr-param": `{"list_id":"pr-list","supplier_link_field_id":"f-sup","requestor_name_field_id":"f-req","item_type_field_id":"f-type"}`,
	}}
	p := NewProvider(&fakeSecrets{}, params)

	var cfg PurchaseRequestsConfig
	if err := p.JSONParameter(context.Background(), "pr-param", &cfg); err != nil {
		t.Fatalf("JSONParameter: %v", err)
	}
	want := PurchaseRequestsConfig{
		ListID:               "pr-list",
		SupplierLinkFieldID:  "f-sup",
		RequestorNameFieldID: "f-req",
		ItemTypeFieldID:      "f-type",
	}
	if cfg != want {
		t.Errorf("decoded config = %+v, want %+v", cfg, want)
	}
	if params.lastDecryption == nil || !*params.lastDecryption {
		t.Error("GetParameter called without WithDecryption")
	}
}

func TestJSONParameterKey(t *testing.T) {
	params := &fakeSSM{values: map[string]string{
		"master-param": `{"list_id": "master-list"}`,
	}}
	p := NewProvider(&fakeSecrets{}, params)

	got, err := p.JSONParameterKey(context.Background(), "master-param", "list_id")
	if err != nil {
		t.Fatalf("JSONParameterKey: %v", err)
	}
	if got != "master-list" {
		t.Errorf("JSONParameterKey = %q, want master-list", got)
	}

	if _, err := p.JSONParameterKey(context.Background(), "master-param", "absent"); err == nil {
		t.Error("expected error for absent key")
	}
}

func TestJSONParameterInvalid(t *testing.T) {
	params := &fakeSSM{values: map[string]string{
		"master-param": `plain string, not json`,
	}}
	p := NewProvider(&fakeSecrets{}, params)

	var out map[string]string
	if err := p.JSONParameter(context.Background(), "master-param", &out); err == nil {
		t.Fatal("expected error for non-JSON parameter")
	}
}
