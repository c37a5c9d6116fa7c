package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jbh_backend/internals/features/liveclass/webhooks/controller"
	"jbh_backend/internals/features/liveclass/webhooks/service"
	"jbh_backend/internals/helpers/videosdk"
)

// WebhookRoutes mounts the provider intake. No auth: the path is on the
// middleware skip list and the handler acknowledges everything.
func WebhookRoutes(r fiber.Router, db *gorm.DB, rooms videosdk.RoomProvider, playback service.PlaybackConfig) {
	ctl := controller.NewWebhookController(db, rooms, playback)
	r.Post("/videosdk", ctl.HandleVideoSDK)
}
