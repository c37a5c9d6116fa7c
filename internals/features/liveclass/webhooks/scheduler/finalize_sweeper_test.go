package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	attendancemodel "jbh_backend/internals/features/liveclass/attendance/model"
	attendanceservice "jbh_backend/internals/features/liveclass/attendance/service"
	sessionmodel "jbh_backend/internals/features/liveclass/sessions/model"
	"jbh_backend/internals/features/liveclass/webhooks/model"
	coursemodel "jbh_backend/internals/features/lms/courses/model"
	syllabusmodel "jbh_backend/internals/features/lms/syllabus/model"
	"jbh_backend/internals/helpers/dbtest"
)

func seedCompletedSession(t *testing.T, db *gorm.DB) sessionmodel.LiveSessionModel {
	t.Helper()

	module := syllabusmodel.SyllabusModuleModel{CourseID: 1, Title: "Live Classes - September 2025", ModuleOrder: 1}
	require.NoError(t, db.Create(&module).Error)
	lesson := syllabusmodel.LessonModel{ModuleID: module.ModuleID, Title: "Vectors (3 September)", ContentType: syllabusmodel.ContentLive, LessonOrder: 1}
	require.NoError(t, db.Create(&lesson).Error)

	start := time.Now().Add(-2 * time.Hour)
	end := start.Add(time.Hour)
	session := sessionmodel.LiveSessionModel{
		RoomID:       "room-1",
		InstructorID: 10,
		LessonID:     lesson.LessonID,
		StartTime:    start,
		EndTime:      &end,
		Status:       sessionmodel.SessionCompleted,
	}
	require.NoError(t, db.Create(&session).Error)
	return session
}

func TestSweepOnceRunsDueJobsAndStampsThem(t *testing.T) {
	db := dbtest.Open(t)
	ledger := attendanceservice.NewLedger(db)
	ctx := context.Background()

	session := seedCompletedSession(t, db)
	require.NoError(t, db.Create(&coursemodel.EnrollmentModel{UserID: 55, CourseID: 1}).Error)
	require.NoError(t, db.Create(&model.FinalizeJobModel{
		LiveLectureID: session.LiveLectureID,
		RunAt:         time.Now().Add(-time.Minute),
	}).Error)

	n, err := SweepOnce(ctx, db, ledger)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// The job ran: the never-joined student got an absent row.
	var rec attendancemodel.AttendanceRecordModel
	require.NoError(t, db.First(&rec, "live_lecture_id = ? AND user_id = ?", session.LiveLectureID, 55).Error)
	assert.Equal(t, attendancemodel.AttendanceAbsent, rec.Status)

	var job model.FinalizeJobModel
	require.NoError(t, db.First(&job, "live_lecture_id = ?", session.LiveLectureID).Error)
	assert.NotNil(t, job.CompletedAt)

	// Stamped jobs never run twice.
	n, err = SweepOnce(ctx, db, ledger)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSweepOnceLeavesFutureJobsAlone(t *testing.T) {
	db := dbtest.Open(t)
	ledger := attendanceservice.NewLedger(db)

	session := seedCompletedSession(t, db)
	require.NoError(t, db.Create(&model.FinalizeJobModel{
		LiveLectureID: session.LiveLectureID,
		RunAt:         time.Now().Add(time.Hour),
	}).Error)

	n, err := SweepOnce(context.Background(), db, ledger)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var job model.FinalizeJobModel
	require.NoError(t, db.First(&job, "live_lecture_id = ?", session.LiveLectureID).Error)
	assert.Nil(t, job.CompletedAt)
}
