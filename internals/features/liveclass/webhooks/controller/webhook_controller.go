package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jbh_backend/internals/features/liveclass/webhooks/service"
	"jbh_backend/internals/helpers/videosdk"
)

type WebhookController struct {
	reconciler *service.Reconciler
}

func NewWebhookController(db *gorm.DB, rooms videosdk.RoomProvider, playback service.PlaybackConfig) *WebhookController {
	return &WebhookController{
		reconciler: service.NewReconciler(db, rooms, playback),
	}
}

type webhookEnvelope struct {
	WebhookType string              `json:"webhookType"`
	Data        service.WebhookData `json:"data"`
}

// POST /api/webhook/videosdk
//
// Always acknowledges with 200: a failure response would make the provider
// retry forever. Internal errors are logged and absorbed.
func (ctl *WebhookController) HandleVideoSDK(c *fiber.Ctx) error {
	var env webhookEnvelope
	if err := c.BodyParser(&env); err != nil {
		log.Printf("[WEBHOOK] unparseable payload: %v", err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
	}

	if err := ctl.reconciler.Handle(c.UserContext(), env.WebhookType, env.Data, c.Body()); err != nil {
		log.Printf("[WEBHOOK] %s for room %q failed: %v", env.WebhookType, env.Data.RoomID, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
