package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jbh_backend/internals/features/liveclass/attendance/controller"
)

func StudentAttendanceRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAttendanceController(db)
	r.Get("/attendance", ctl.History)
}
