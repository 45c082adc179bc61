package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/smithy-go"

	internalaws "github.com/workshop-ops/reorderflow/internal/aws"
)

// Provider fetches secrets and structured parameters. There is no local
// fallback: if Secrets Manager or SSM are unreachable the error propagates.
type Provider struct {
	secrets internalaws.SecretsManagerAPI
	params  internalaws.SSMAPI
}

// NewProvider returns a Provider backed by the given service clients.
func NewProvider(secrets internalaws.SecretsManagerAPI, params internalaws.SSMAPI) *Provider {
	return &Provider{secrets: secrets, params: params}
}

// Secret retrieves one key from a JSON secret stored in Secrets Manager.
// String values are stripped of surrounding whitespace.
func (p *Provider) Secret(ctx context.Context, name, key string) (string, error) {
	out, err := p.secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &name,
	})
	if err != nil {
		// detect a missing secret: a deployment problem, not a transient one
		var sc smithy.APIError
		if errors.As(err, &sc) && sc.ErrorCode() == "ResourceNotFoundException" {
			return "", fmt.Errorf("secret %q does not exist: %w", name, err)
		}
		return "", fmt.Errorf("get secret %q: %w", name, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %q has no string value", name)
	}

	var values map[string]string
	if err := json.Unmarshal([]byte(*out.SecretString), &values); err != nil {
		return "", fmt.Errorf("secret %q is not a JSON object: %w", name, err)
	}
	val, ok := values[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, name)
	}
	return strings.TrimSpace(val), nil
}

// JSONParameter retrieves an SSM parameter and decodes its value into out.
func (p *Provider) JSONParameter(ctx context.Context, name string, out interface{}) error {
	raw, err := p.parameterValue(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("parameter %q is not valid JSON: %w", name, err)
	}
	return nil
}

// JSONParameterKey retrieves a JSON object parameter and returns one string key.
func (p *Provider) JSONParameterKey(ctx context.Context, name, key string) (string, error) {
	var values map[string]string
	if err := p.JSONParameter(ctx, name, &values); err != nil {
		return "", err
	}
	val, ok := values[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in parameter %q", key, name)
	}
	return val, nil
}

func (p *Provider) parameterValue(ctx context.Context, name string) (string, error) {
	withDecryption := true
	out, err := p.params.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: &withDecryption,
	})
	if err != nil {
		var sc smithy.APIError
		if errors.As(err, &sc) && sc.ErrorCode() == "ParameterNotFound" {
			return "", fmt.Errorf("parameter %q does not exist: %w", name, err)
		}
		return "", fmt.Errorf("get parameter %q: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %q has no value", name)
	}
	return *out.Parameter.Value, nil
}
