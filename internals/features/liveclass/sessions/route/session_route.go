package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jbh_backend/internals/features/liveclass/sessions/controller"
	"jbh_backend/internals/helpers/videosdk"
)

// InstructorSessionRoutes mounts start/end for live classes.
func InstructorSessionRoutes(r fiber.Router, db *gorm.DB, rooms videosdk.RoomProvider) {
	ctl := controller.NewSessionController(db, rooms)

	live := r.Group("/live")
	live.Post("/start", ctl.StartClass)
	live.Post("/end", ctl.EndClass)
}

// StudentSessionRoutes mounts join and today's upcoming lectures.
func StudentSessionRoutes(r fiber.Router, db *gorm.DB, rooms videosdk.RoomProvider) {
	ctl := controller.NewSessionController(db, rooms)

	live := r.Group("/live")
	live.Get("/upcoming", ctl.UpcomingToday)
	live.Post("/:id/join", ctl.JoinClass)
}
