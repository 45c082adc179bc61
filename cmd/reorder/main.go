package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/workshop-ops/reorderflow/internal/app"
	internalaws "github.com/workshop-ops/reorderflow/internal/aws"
	"github.com/workshop-ops/reorderflow/internal/config"
	"github.com/workshop-ops/reorderflow/internal/handlers"
)

func setupRouter(svc handlers.ReorderService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterReorderRoutes(r, svc)

	return r
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

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		svc, err := app.BuildService(context.Background(), clients, cfg)
		if err != nil {
			log.Fatalf("failed to build service: %v", err)
		}
		addr := ":8080"
		log.Printf("running local server on %s", addr)
		if err := setupRouter(svc).Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// The function receives two event shapes: its own asynchronous task
	// envelopes (tagged with "action") and API Gateway proxy events carrying
	// the Slack webhook body. Route on the raw payload.
	lambda.Start(func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		svc, err := app.BuildService(ctx, clients, cfg)
		if err != nil {
			return nil, fmt.Errorf("build service: %w", err)
		}

		var probe struct {
			Action string `json:"action"`
		}
		if err := json.Unmarshal(raw, &probe); err == nil && probe.Action != "" {
			if err := svc.RunTask(ctx, raw); err != nil {
				return nil, err
			}
			return map[string]int{"statusCode": 200}, nil
		}

		var req events.APIGatewayProxyRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, fmt.Errorf("unrecognized event payload: %w", err)
		}

		adapter := ginadapter.New(setupRouter(svc))
		return adapter.ProxyWithContext(ctx, req)
	})
}
