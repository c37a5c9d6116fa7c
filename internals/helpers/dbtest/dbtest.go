// Package dbtest opens throwaway in-memory databases for service tests.
package dbtest

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	attendancemodel "jbh_backend/internals/features/liveclass/attendance/model"
	sessionmodel "jbh_backend/internals/features/liveclass/sessions/model"
	timetablemodel "jbh_backend/internals/features/liveclass/timetable/model"
	webhookmodel "jbh_backend/internals/features/liveclass/webhooks/model"
	coursemodel "jbh_backend/internals/features/lms/courses/model"
	syllabusmodel "jbh_backend/internals/features/lms/syllabus/model"
)

// Open returns a migrated in-memory sqlite database. TranslateError matches
// production so unique-constraint races surface as gorm.ErrDuplicatedKey.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every session on the same :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&coursemodel.UserModel{},
		&coursemodel.CourseModel{},
		&coursemodel.EnrollmentModel{},
		&syllabusmodel.SyllabusModuleModel{},
		&syllabusmodel.LessonModel{},
		&timetablemodel.ScheduleSlotModel{},
		&sessionmodel.LiveSessionModel{},
		&attendancemodel.AttendanceRecordModel{},
		&webhookmodel.FinalizeJobModel{},
		&webhookmodel.WebhookEventModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
