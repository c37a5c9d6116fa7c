package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jbh_backend/internals/features/liveclass/timetable/controller"
)

// StudentTimetableRoutes mounts the student-facing resolver endpoints.
func StudentTimetableRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewTimetableController(db)

	timetable := r.Group("/timetable")
	timetable.Get("/today", ctl.StudentToday)
	timetable.Get("/week", ctl.StudentWeek)
}

// InstructorTimetableRoutes mounts the instructor schedule and dashboard.
func InstructorTimetableRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewTimetableController(db)

	r.Get("/schedule", ctl.InstructorSchedule)
	r.Get("/dashboard", ctl.InstructorDashboard)
}
