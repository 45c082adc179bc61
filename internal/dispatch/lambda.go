package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/workshop-ops/reorderflow/internal/aws"
)

// LambdaDispatcher re-invokes the running function asynchronously (Event
// invocation), so slow work happens outside the synchronous response window.
type LambdaDispatcher struct {
	client       aws.LambdaAPI
	functionName string
}

// NewLambdaDispatcher returns a dispatcher that targets functionName.
func NewLambdaDispatcher(client aws.LambdaAPI, functionName string) *LambdaDispatcher {
	return &LambdaDispatcher{client: client, functionName: functionName}
}

// Dispatch fires the envelope at the target function and returns immediately.
func (d *LambdaDispatcher) Dispatch(ctx context.Context, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal task envelope: %w", err)
	}

	_, err = d.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   &d.functionName,
		InvocationType: lambdatypes.InvocationTypeEvent,
		Payload:        payload,
	})
	if err != nil {
		return fmt.Errorf("invoke %s: %w", d.functionName, err)
	}
	return nil
}
