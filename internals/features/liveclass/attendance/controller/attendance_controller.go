package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jbh_backend/internals/features/liveclass/attendance/service"
	helper "jbh_backend/internals/helpers"
)

type AttendanceController struct {
	ledger *service.Ledger
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{ledger: service.NewLedger(db)}
}

type historyEntry struct {
	Date            time.Time `json:"date"`
	Status          string    `json:"status"`
	Topic           string    `json:"topic,omitempty"`
	DurationSeconds int       `json:"duration_seconds"`
}

// GET /api/u/attendance
func (ctl *AttendanceController) History(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	records, err := ctl.ledger.History(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	out := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		entry := historyEntry{
			Date:            rec.RecordedAt,
			Status:          string(rec.Status),
			DurationSeconds: rec.DurationSeconds,
		}
		if rec.LiveLecture != nil && rec.LiveLecture.Lesson != nil {
			entry.Topic = rec.LiveLecture.Lesson.Title
		}
		out = append(out, entry)
	}
	return helper.JsonOK(c, "OK", out)
}
