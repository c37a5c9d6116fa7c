package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	attendanceservice "jbh_backend/internals/features/liveclass/attendance/service"
	"jbh_backend/internals/features/liveclass/sessions/model"
	timetablemodel "jbh_backend/internals/features/liveclass/timetable/model"
	syllabusmodel "jbh_backend/internals/features/lms/syllabus/model"
	helper "jbh_backend/internals/helpers"
	"jbh_backend/internals/helpers/errs"
	"jbh_backend/internals/helpers/videosdk"
)

// resumeWindow bounds how old a live session may be and still count as "the
// same class" for the resume check.
const resumeWindow = 12 * time.Hour

// optimisticSessionLength is the placeholder end_time set at creation and
// overwritten at completion.
const optimisticSessionLength = time.Hour

// Lifecycle owns the (none) -> live -> completed state machine of a live
// session, including the syllabus auto-provisioning that happens on start.
type Lifecycle struct {
	db     *gorm.DB
	rooms  videosdk.RoomProvider
	ledger *attendanceservice.Ledger
}

func NewLifecycle(db *gorm.DB, rooms videosdk.RoomProvider) *Lifecycle {
	return &Lifecycle{
		db:     db,
		rooms:  rooms,
		ledger: attendanceservice.NewLedger(db),
	}
}

type StartResult struct {
	RoomID        string `json:"room_id"`
	LiveLectureID int    `json:"live_lecture_id"`
	LessonID      int    `json:"lesson_id"`
	Resumed       bool   `json:"resumed"`
}

// Start starts (or resumes) the live class for a timetable slot.
//
// Start is idempotent under client retries and reconnects: if the instructor
// already has a live session for the slot's course started within the last
// 12 hours, its identifiers are returned with Resumed=true and nothing new
// is created. The resume check and all provisioning run inside one
// transaction, serialized per (instructor, course), so two racing starts
// cannot each create a lesson, room and session. A period module
// ("Live Classes - <Month> <Year>"), today's lesson and the external room
// are provisioned together; a provider failure leaves no dangling syllabus
// rows.
func (s *Lifecycle) Start(ctx context.Context, instructorID, scheduleID int, topic string) (*StartResult, error) {
	var slot timetablemodel.ScheduleSlotModel
	if err := s.db.WithContext(ctx).First(&slot, "schedule_id = ?", scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Schedule not found")
		}
		return nil, err
	}
	if slot.InstructorID != instructorID {
		return nil, errs.Forbidden("Unauthorized access to this schedule")
	}

	now := helper.NowLocal()
	monthName := now.Month().String()
	moduleTitle := fmt.Sprintf("Live Classes - %s %d", monthName, now.Year())
	dayMarker := fmt.Sprintf("(%d %s)", now.Day(), monthName)

	var result StartResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockInstructorCourse(tx, instructorID, slot.CourseID); err != nil {
			return err
		}

		existing, err := s.findResumable(tx, instructorID, slot.CourseID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = StartResult{
				RoomID:        existing.RoomID,
				LiveLectureID: existing.LiveLectureID,
				LessonID:      existing.LessonID,
				Resumed:       true,
			}
			return nil
		}

		module, err := s.findOrCreateModule(tx, slot.CourseID, moduleTitle)
		if err != nil {
			return err
		}

		lesson, err := s.findOrCreateLesson(tx, module.ModuleID, topic, dayMarker)
		if err != nil {
			return err
		}

		// Provider call inside the transaction: if room creation fails the
		// module/lesson writes roll back instead of stranding orphans.
		roomID, err := s.rooms.CreateRoom(ctx)
		if err != nil {
			return err
		}

		startTime := time.Now()
		estimatedEnd := startTime.Add(optimisticSessionLength)
		session := model.LiveSessionModel{
			RoomID:       roomID,
			InstructorID: instructorID,
			LessonID:     lesson.LessonID,
			StartTime:    startTime,
			EndTime:      &estimatedEnd,
			Status:       model.SessionLive,
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		result = StartResult{
			RoomID:        roomID,
			LiveLectureID: session.LiveLectureID,
			LessonID:      lesson.LessonID,
			Resumed:       false,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// lockInstructorCourse takes a transaction-scoped advisory lock so racing
// starts for the same (instructor, course) pair execute one at a time. The
// lock releases at commit/rollback. Postgres only; other dialects rely on
// the unique syllabus indexes.
func lockInstructorCourse(tx *gorm.DB, instructorID, courseID int) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", instructorID, courseID).Error
}

// findResumable looks for a live session by this instructor for this course
// started within the resume window.
func (s *Lifecycle) findResumable(tx *gorm.DB, instructorID, courseID int) (*model.LiveSessionModel, error) {
	var existing model.LiveSessionModel
	err := tx.
		Joins("JOIN lessons ON lessons.lesson_id = live_lectures.lesson_id").
		Joins("JOIN syllabus_modules ON syllabus_modules.module_id = lessons.module_id").
		Where("live_lectures.instructor_id = ? AND live_lectures.status = ?", instructorID, model.SessionLive).
		Where("syllabus_modules.course_id = ?", courseID).
		Where("live_lectures.start_time >= ?", time.Now().Add(-resumeWindow)).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &existing, nil
}

// findOrCreateModule appends the period module after the highest existing
// order. The (course_id, title) unique index resolves concurrent creates:
// the loser re-reads the winner's row.
func (s *Lifecycle) findOrCreateModule(tx *gorm.DB, courseID int, title string) (*syllabusmodel.SyllabusModuleModel, error) {
	var module syllabusmodel.SyllabusModuleModel
	err := tx.First(&module, "course_id = ? AND title = ?", courseID, title).Error
	if err == nil {
		return &module, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var lastOrder int
	if err := tx.Model(&syllabusmodel.SyllabusModuleModel{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(module_order), 0)").
		Scan(&lastOrder).Error; err != nil {
		return nil, err
	}

	module = syllabusmodel.SyllabusModuleModel{
		CourseID:    courseID,
		Title:       title,
		ModuleOrder: lastOrder + 1,
	}
	if err := tx.Create(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race, use the winner's row.
			err = tx.First(&module, "course_id = ? AND title = ?", courseID, title).Error
		}
		if err != nil {
			return nil, err
		}
	}
	return &module, nil
}

// findOrCreateLesson reuses today's lesson when one exists (a dropped
// connection restarting the class appends to one syllabus entry instead of
// fragmenting it), keyed by the day_marker column. The (module_id,
// day_marker) unique index resolves concurrent creates the same way the
// module path does: the loser re-reads the winner's row.
func (s *Lifecycle) findOrCreateLesson(tx *gorm.DB, moduleID int, topic, dayMarker string) (*syllabusmodel.LessonModel, error) {
	var lesson syllabusmodel.LessonModel
	err := tx.First(&lesson, "module_id = ? AND day_marker = ?", moduleID, dayMarker).Error
	if err == nil {
		return &lesson, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var lastOrder int
	if err := tx.Model(&syllabusmodel.LessonModel{}).
		Where("module_id = ?", moduleID).
		Select("COALESCE(MAX(lesson_order), 0)").
		Scan(&lastOrder).Error; err != nil {
		return nil, err
	}

	lesson = syllabusmodel.LessonModel{
		ModuleID:    moduleID,
		Title:       fmt.Sprintf("%s %s", topic, dayMarker),
		ContentType: syllabusmodel.ContentLive,
		ContentURL:  "",
		IsFree:      false,
		DayMarker:   &dayMarker,
		LessonOrder: lastOrder + 1,
	}
	if err := tx.Create(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race, use the winner's row.
			err = tx.First(&lesson, "module_id = ? AND day_marker = ?", moduleID, dayMarker).Error
		}
		if err != nil {
			return nil, err
		}
	}
	return &lesson, nil
}

type EndResult struct {
	LiveLectureID    int  `json:"live_lecture_id"`
	AlreadyCompleted bool `json:"already_completed"`
}

// End completes a live session and triggers per-lesson attendance
// finalization. The first completed transition wins: ending an already
// completed session is a no-op success and never moves end_time.
func (s *Lifecycle) End(ctx context.Context, instructorID, liveLectureID int) (*EndResult, error) {
	var session model.LiveSessionModel
	if err := s.db.WithContext(ctx).First(&session, "live_lecture_id = ?", liveLectureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Live session not found")
		}
		return nil, err
	}
	if session.InstructorID != instructorID {
		return nil, errs.Forbidden("You do not own this live session")
	}

	res := s.db.WithContext(ctx).Model(&model.LiveSessionModel{}).
		Where("live_lecture_id = ? AND status = ?", liveLectureID, model.SessionLive).
		Updates(map[string]interface{}{
			"status":   model.SessionCompleted,
			"end_time": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	alreadyCompleted := res.RowsAffected == 0

	// Finalize is a pure recompute, safe to run again even when the session
	// was already completed by a webhook.
	if err := s.ledger.FinalizeLesson(ctx, session.LessonID); err != nil {
		return nil, err
	}

	return &EndResult{LiveLectureID: liveLectureID, AlreadyCompleted: alreadyCompleted}, nil
}

type JoinResult struct {
	Token      string  `json:"token"`
	RoomID     string  `json:"room_id"`
	MeetingURL *string `json:"meeting_url,omitempty"`
}

// Join is the explicit student join path: the student is marked present the
// moment they join, then receives a participant token for the room.
func (s *Lifecycle) Join(ctx context.Context, userID, liveLectureID int) (*JoinResult, error) {
	var session model.LiveSessionModel
	if err := s.db.WithContext(ctx).First(&session, "live_lecture_id = ?", liveLectureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Live session not found")
		}
		return nil, err
	}
	if session.Status == model.SessionCompleted {
		return nil, errs.BadRequest("This class has ended")
	}

	if err := s.ledger.RecordJoin(ctx, liveLectureID, userID); err != nil {
		return nil, err
	}

	token, err := s.rooms.GenerateAccessToken(videosdk.RoleParticipant)
	if err != nil {
		return nil, err
	}
	return &JoinResult{
		Token:      token,
		RoomID:     session.RoomID,
		MeetingURL: session.MeetingURL,
	}, nil
}

// UpcomingToday lists live lectures for the given courses that are still
// ahead of now on today's local calendar, soonest first.
func (s *Lifecycle) UpcomingToday(ctx context.Context, courseIDs []int, now time.Time) ([]model.LiveSessionModel, error) {
	if len(courseIDs) == 0 {
		return []model.LiveSessionModel{}, nil
	}
	_, dayEnd := helper.LocalDayBounds(now)

	var sessions []model.LiveSessionModel
	err := s.db.WithContext(ctx).
		Preload("Lesson.Module").
		Joins("JOIN lessons ON lessons.lesson_id = live_lectures.lesson_id").
		Joins("JOIN syllabus_modules ON syllabus_modules.module_id = lessons.module_id").
		Where("syllabus_modules.course_id IN ?", courseIDs).
		Where("live_lectures.start_time BETWEEN ? AND ?", now, dayEnd).
		Order("live_lectures.start_time ASC").
		Find(&sessions).Error
	return sessions, err
}
