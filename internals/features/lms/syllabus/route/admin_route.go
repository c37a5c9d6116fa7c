package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jbh_backend/internals/features/lms/syllabus/controller"
)

// LessonAdminRoutes mounts lesson CRUD under an admin-gated group.
func LessonAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewLessonController(db)

	lessons := r.Group("/lessons")
	lessons.Post("/", ctl.AddLesson)
	lessons.Get("/:id", ctl.GetLesson)
	lessons.Patch("/:id", ctl.UpdateLesson)
	lessons.Delete("/:id", ctl.DeleteLesson)
}
