package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jbh_backend/internals/features/liveclass/sessions/dto"
	"jbh_backend/internals/features/liveclass/sessions/service"
	timetabledto "jbh_backend/internals/features/liveclass/timetable/dto"
	courseservice "jbh_backend/internals/features/lms/courses/service"
	helper "jbh_backend/internals/helpers"
	"jbh_backend/internals/helpers/videosdk"
)

type SessionController struct {
	lifecycle *service.Lifecycle
	directory *courseservice.Directory
	rooms     videosdk.RoomProvider
	validate  *validator.Validate
}

func NewSessionController(db *gorm.DB, rooms videosdk.RoomProvider) *SessionController {
	return &SessionController{
		lifecycle: service.NewLifecycle(db, rooms),
		directory: courseservice.NewDirectory(db),
		rooms:     rooms,
		validate:  validator.New(),
	}
}

// POST /api/i/live/start
func (ctl *SessionController) StartClass(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.StartClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	topic := req.Topic
	if topic == "" {
		topic = "Live Class"
	}

	result, err := ctl.lifecycle.Start(c.UserContext(), instructorID, req.ScheduleID, topic)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	token, err := ctl.rooms.GenerateAccessToken(videosdk.RoleModerator)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	message := "Class started successfully"
	if result.Resumed {
		message = "Resuming existing active session"
	}
	return helper.JsonOK(c, message, fiber.Map{
		"room_id":         result.RoomID,
		"live_lecture_id": result.LiveLectureID,
		"lesson_id":       result.LessonID,
		"resumed":         result.Resumed,
		"token":           token,
	})
}

// POST /api/i/live/end
func (ctl *SessionController) EndClass(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.EndClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctl.lifecycle.End(c.UserContext(), instructorID, req.LiveLectureID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	message := "Class ended"
	if result.AlreadyCompleted {
		message = "Class was already completed"
	}
	return helper.JsonOK(c, message, result)
}

// POST /api/u/live/:id/join
func (ctl *SessionController) JoinClass(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	lectureID, err := c.ParamsInt("id")
	if err != nil || lectureID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid live lecture id")
	}

	result, err := ctl.lifecycle.Join(c.UserContext(), userID, lectureID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Joined live class", result)
}

// GET /api/u/live/upcoming
func (ctl *SessionController) UpcomingToday(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	courseIDs, err := ctl.directory.ListEnrolledCourseIDs(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	sessions, err := ctl.lifecycle.UpcomingToday(c.UserContext(), courseIDs, helper.NowLocal())
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	out := make([]timetabledto.UpcomingLectureResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, timetabledto.ToUpcomingLectureResponse(s))
	}
	return helper.JsonOK(c, "OK", out)
}
