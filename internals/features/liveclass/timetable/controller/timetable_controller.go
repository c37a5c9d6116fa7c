package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jbh_backend/internals/features/liveclass/timetable/dto"
	"jbh_backend/internals/features/liveclass/timetable/model"
	"jbh_backend/internals/features/liveclass/timetable/service"
	coursemodel "jbh_backend/internals/features/lms/courses/model"
	courseservice "jbh_backend/internals/features/lms/courses/service"
	helper "jbh_backend/internals/helpers"
)

type TimetableController struct {
	db        *gorm.DB
	resolver  *service.Resolver
	directory *courseservice.Directory
}

func NewTimetableController(db *gorm.DB) *TimetableController {
	return &TimetableController{
		db:        db,
		resolver:  service.NewResolver(db),
		directory: courseservice.NewDirectory(db),
	}
}

// annotate runs the matcher over each slot against the instructors' current
// live sessions.
func (ctl *TimetableController) annotate(ctx context.Context, slots []model.ScheduleSlotModel) ([]dto.SlotResponse, error) {
	instructorIDs := make([]int, 0, len(slots))
	seen := map[int]struct{}{}
	for _, s := range slots {
		if _, ok := seen[s.InstructorID]; !ok {
			seen[s.InstructorID] = struct{}{}
			instructorIDs = append(instructorIDs, s.InstructorID)
		}
	}

	now := helper.NowLocal()
	candidates, err := ctl.resolver.LiveCandidates(ctx, instructorIDs, now)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		match := service.MatchLiveSession(slot, candidates, now)
		out = append(out, dto.ToSlotResponse(slot, match))
	}
	return out, nil
}

// GET /api/u/timetable/today
func (ctl *TimetableController) StudentToday(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	courseIDs, err := ctl.directory.ListEnrolledCourseIDs(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	slots, err := ctl.resolver.ResolveForDate(c.UserContext(), courseIDs, helper.NowLocal())
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	annotated, err := ctl.annotate(c.UserContext(), slots)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", annotated)
}

// GET /api/u/timetable/week
func (ctl *TimetableController) StudentWeek(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	courseIDs, err := ctl.directory.ListEnrolledCourseIDs(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	slots, err := ctl.resolver.ResolveWeek(c.UserContext(), courseIDs)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	out := make([]dto.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, dto.ToSlotResponse(slot, service.MatchResult{}))
	}
	return helper.JsonOK(c, "OK", out)
}

// GET /api/i/schedule
func (ctl *TimetableController) InstructorSchedule(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	slots, err := ctl.resolver.ResolveForInstructor(c.UserContext(), instructorID, helper.NowLocal())
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	annotated, err := ctl.annotate(c.UserContext(), slots)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", annotated)
}

// GET /api/i/dashboard
func (ctl *TimetableController) InstructorDashboard(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()

	slots, err := ctl.resolver.ResolveForInstructor(ctx, instructorID, helper.NowLocal())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	todaySchedule, err := ctl.annotate(ctx, slots)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	courseIDs, err := ctl.directory.ListAssignedCourseIDs(ctx, instructorID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var courses []coursemodel.CourseModel
	if len(courseIDs) > 0 {
		if err := ctl.db.WithContext(ctx).Find(&courses, "course_id IN ?", courseIDs).Error; err != nil {
			return helper.JsonFromError(c, err)
		}
	}

	upcoming, err := ctl.resolver.UpcomingOneTime(ctx, instructorID, helper.NowLocal(), 5)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	upcomingSpecial := make([]dto.SlotResponse, 0, len(upcoming))
	for _, slot := range upcoming {
		upcomingSpecial = append(upcomingSpecial, dto.ToSlotResponse(slot, service.MatchResult{}))
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"today_schedule":   todaySchedule,
		"courses":          courses,
		"upcoming_special": upcomingSpecial,
	})
}
