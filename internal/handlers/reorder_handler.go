package handlers

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workshop-ops/reorderflow/internal/modal"
	"github.com/workshop-ops/reorderflow/internal/slack"
)

// ReorderService is the workflow surface the webhook routes into.
type ReorderService interface {
	HandleCommand(ctx context.Context, triggerID string) error
	HandleBlockAction(ctx context.Context, payload *slack.InteractionPayload)
	HandleSubmission(ctx context.Context, payload *slack.InteractionPayload) modal.View
}

// RegisterReorderRoutes registers the Slack webhook endpoint. Slack disables
// retries on non-200 responses for interaction callbacks, so those paths
// always answer 200 regardless of internal outcome; only the initial
// slash-command path may answer 500.
func RegisterReorderRoutes(r *gin.Engine, svc ReorderService) {
	r.POST("/slack/reorder", func(c *gin.Context) {
		ctx := c.Request.Context()

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			log.Printf("[webhook] failed to read request body: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read request body"})
			return
		}

		req, err := slack.ParseWebhookBody(string(body))
		if err != nil {
			log.Printf("[webhook] failed to parse request body: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not parse request body"})
			return
		}

		if req.Interaction != nil {
			switch req.Interaction.Type {
			case slack.TypeBlockActions:
				svc.HandleBlockAction(ctx, req.Interaction)
				c.String(http.StatusOK, "")
			case slack.TypeViewSubmission:
				view := svc.HandleSubmission(ctx, req.Interaction)
				c.JSON(http.StatusOK, gin.H{
					"response_action": "update",
					"view":            view,
				})
			default:
				log.Printf("[webhook] ignoring interaction type %q", req.Interaction.Type)
				c.String(http.StatusOK, "")
			}
			return
		}

		if err := svc.HandleCommand(ctx, req.TriggerID); err != nil {
			log.Printf("[webhook] command handling failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred."})
			return
		}
		c.String(http.StatusOK, "")
	})
}
