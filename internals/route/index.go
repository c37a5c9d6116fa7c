package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "jbh_backend/internals/features/liveclass/attendance/route"
	sessionRoute "jbh_backend/internals/features/liveclass/sessions/route"
	timetableRoute "jbh_backend/internals/features/liveclass/timetable/route"
	webhookRoute "jbh_backend/internals/features/liveclass/webhooks/route"
	webhookService "jbh_backend/internals/features/liveclass/webhooks/service"
	syllabusRoute "jbh_backend/internals/features/lms/syllabus/route"
	authMiddleware "jbh_backend/internals/middlewares/auth"

	"jbh_backend/internals/configs"
	"jbh_backend/internals/helpers/videosdk"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, rooms videosdk.RoomProvider) {
	playback := webhookService.PlaybackConfig{
		CDNBaseURL:   configs.CDNBaseURL,
		BucketName:   configs.BucketName,
		BucketRegion: configs.BucketRegion,
	}

	// ===================== WEBHOOK (provider-facing, no auth) =====================
	log.Println("[INFO] Setting up webhook routes...")
	webhook := app.Group("/api/webhook")
	webhookRoute.WebhookRoutes(webhook, db, rooms, playback)

	// ===================== STUDENT =====================
	log.Println("[INFO] Setting up student routes...")
	student := app.Group("/api/u", authMiddleware.AuthMiddleware())
	timetableRoute.StudentTimetableRoutes(student, db)
	sessionRoute.StudentSessionRoutes(student, db, rooms)
	attendanceRoute.StudentAttendanceRoutes(student, db)

	// ===================== INSTRUCTOR =====================
	log.Println("[INFO] Setting up instructor routes...")
	instructor := app.Group("/api/i",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyInstructor(),
	)
	timetableRoute.InstructorTimetableRoutes(instructor, db)
	sessionRoute.InstructorSessionRoutes(instructor, db, rooms)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up admin routes...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyAdmin(),
	)
	syllabusRoute.LessonAdminRoutes(admin, db)
}
