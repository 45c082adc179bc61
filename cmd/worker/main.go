package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/workshop-ops/reorderflow/internal/app"
	internalaws "github.com/workshop-ops/reorderflow/internal/aws"
	"github.com/workshop-ops/reorderflow/internal/config"
)

// The worker consumes background task envelopes from SQS for deployments
// that dispatch through a queue instead of Lambda self-invocation.

func handleSQSEvent(ctx context.Context, clients *internalaws.AWSClients, cfg config.Config, event events.SQSEvent) error {
	log.Printf("received %d SQS messages", len(event.Records))

	svc, err := app.BuildService(ctx, clients, cfg)
	if err != nil {
		// Return the error so the SQS/Lambda runtime handles retries.
		return err
	}

	for _, rec := range event.Records {
		if err := svc.RunTask(ctx, json.RawMessage(rec.Body)); err != nil {
			// Only malformed envelopes error here; task-level failures are
			// reported by the task itself through a pushed view.
			log.Printf("worker error: %v, body: %s", err, rec.Body)
			return err
		}
	}
	return nil
}

func main() {
	clients, err := internalaws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// If RUN_LOCAL=true, simulate a single SQS event for local testing.
	if os.Getenv("RUN_LOCAL") == "true" {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			testBody = `{"action":"load_catalog_and_update_view","view_id":"local-view-1"}`
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{
				{Body: testBody},
			},
		}
		if err := handleSQSEvent(context.Background(), clients, cfg, event); err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		return
	}

	lambda.Start(func(ctx context.Context, event events.SQSEvent) error {
		return handleSQSEvent(ctx, clients, cfg, event)
	})
}
