// handlers/webhook.go
package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/AmmarAssaf/renderbot/engine"
	"github.com/AmmarAssaf/renderbot/transport"
)

// WebhookHandler feeds webhook deliveries into the engine.
type WebhookHandler struct {
	Engine *engine.Engine
}

func NewWebhookHandler(e *engine.Engine) *WebhookHandler {
	return &WebhookHandler{Engine: e}
}

// HandleUpdate accepts one update per delivery. It always answers 200 once
// the payload parses: a retry storm from the API is worse than a dropped
// update, and the engine logs its own failures.
func (h *WebhookHandler) HandleUpdate(c *fiber.Ctx) error {
	var upd transport.Update
	if err := c.BodyParser(&upd); err != nil {
		log.Printf("⚠️ [Webhook] unparseable update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid update payload",
		})
	}

	h.Engine.HandleUpdate(c.UserContext(), upd)
	return c.SendStatus(fiber.StatusOK)
}

// HandleHealth is the liveness probe.
func (h *WebhookHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
