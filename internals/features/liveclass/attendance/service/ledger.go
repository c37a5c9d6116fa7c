package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jbh_backend/internals/features/liveclass/attendance/model"
	sessionmodel "jbh_backend/internals/features/liveclass/sessions/model"
)

// PresentThresholdRatio is the fraction of total class duration a student
// must be connected for to be marked present.
const PresentThresholdRatio = 0.75

// minClassSeconds guards finalization against accidental starts.
const minClassSeconds = 60

// Ledger accumulates presence duration from provider telemetry and turns it
// into a stable present/absent verdict at finalization. Every operation is
// safe to re-run: leaves increment, joins force present, finalize is a pure
// recompute of accumulated duration against the threshold.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// RecordLeave upserts the (session, user) row, incrementing the accumulated
// duration so a user leaving and rejoining several times sums up. The row is
// created as absent; finalize flips it to present if the threshold is met.
func (l *Ledger) RecordLeave(ctx context.Context, liveLectureID, userID, durationSeconds int) error {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	rec := model.AttendanceRecordModel{
		LiveLectureID:   liveLectureID,
		UserID:          userID,
		Status:          model.AttendanceAbsent,
		DurationSeconds: durationSeconds,
	}
	return l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "live_lecture_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"duration_seconds": gorm.Expr("attendance.duration_seconds + excluded.duration_seconds"),
		}),
	}).Create(&rec).Error
}

// RecordJoin marks an explicit student join as present immediately, so a
// join is never lost even if the matching leave webhook never arrives.
func (l *Ledger) RecordJoin(ctx context.Context, liveLectureID, userID int) error {
	rec := model.AttendanceRecordModel{
		LiveLectureID: liveLectureID,
		UserID:        userID,
		Status:        model.AttendancePresent,
	}
	return l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "live_lecture_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status": string(model.AttendancePresent),
		}),
	}).Create(&rec).Error
}

// FinalizeSession reconciles one session: backfills absent rows for enrolled
// students who never joined and recomputes present/absent for everyone else.
// Sessions shorter than a minute are skipped entirely.
func (l *Ledger) FinalizeSession(ctx context.Context, liveLectureID int) error {
	var session sessionmodel.LiveSessionModel
	err := l.db.WithContext(ctx).Preload("Lesson.Module").
		First(&session, "live_lecture_id = ?", liveLectureID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if session.EndTime == nil || session.Lesson == nil || session.Lesson.Module == nil {
		return nil
	}

	classSeconds := session.EndTime.Sub(session.StartTime).Seconds()
	if classSeconds < minClassSeconds {
		log.Printf("[ATTENDANCE] session %d too short (%.0fs), skipping finalize", liveLectureID, classSeconds)
		return nil
	}
	threshold := classSeconds * PresentThresholdRatio
	courseID := session.Lesson.Module.CourseID

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var enrolledIDs []int
		if err := tx.Table("enrollments").
			Where("course_id = ?", courseID).
			Pluck("user_id", &enrolledIDs).Error; err != nil {
			return err
		}

		var existing []model.AttendanceRecordModel
		if err := tx.Where("live_lecture_id = ?", liveLectureID).Find(&existing).Error; err != nil {
			return err
		}
		seen := make(map[int]struct{}, len(existing))
		for _, rec := range existing {
			seen[rec.UserID] = struct{}{}
		}

		// Never-joined students get an explicit absent row.
		var backfill []model.AttendanceRecordModel
		for _, uid := range enrolledIDs {
			if _, ok := seen[uid]; ok {
				continue
			}
			backfill = append(backfill, model.AttendanceRecordModel{
				LiveLectureID:   liveLectureID,
				UserID:          uid,
				Status:          model.AttendanceAbsent,
				DurationSeconds: 0,
			})
		}
		if len(backfill) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				CreateInBatches(backfill, 200).Error; err != nil {
				return err
			}
		}

		// 75% rule for everyone who has telemetry; write only real changes.
		for _, rec := range existing {
			newStatus := model.AttendanceAbsent
			if float64(rec.DurationSeconds) >= threshold {
				newStatus = model.AttendancePresent
			}
			if rec.Status == newStatus {
				continue
			}
			if err := tx.Model(&model.AttendanceRecordModel{}).
				Where("attendance_id = ?", rec.AttendanceID).
				Update("status", newStatus).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FinalizeLesson reconciles across every completed session backing one
// lesson (reconnects fragment a class into several sessions). Durations are
// summed per user across all fragments before the threshold is applied.
func (l *Ledger) FinalizeLesson(ctx context.Context, lessonID int) error {
	var sessions []sessionmodel.LiveSessionModel
	err := l.db.WithContext(ctx).
		Where("lesson_id = ? AND status = ?", lessonID, sessionmodel.SessionCompleted).
		Find(&sessions).Error
	if err != nil {
		return err
	}

	var totalClassSeconds float64
	sessionIDs := make([]int, 0, len(sessions))
	for _, s := range sessions {
		sessionIDs = append(sessionIDs, s.LiveLectureID)
		if s.EndTime != nil {
			totalClassSeconds += s.EndTime.Sub(s.StartTime).Seconds()
		}
	}
	if totalClassSeconds == 0 {
		return nil
	}
	threshold := totalClassSeconds * PresentThresholdRatio

	var records []model.AttendanceRecordModel
	if err := l.db.WithContext(ctx).
		Where("live_lecture_id IN ?", sessionIDs).
		Find(&records).Error; err != nil {
		return err
	}

	userTotals := make(map[int]int)
	for _, rec := range records {
		userTotals[rec.UserID] += rec.DurationSeconds
	}

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for userID, total := range userTotals {
			newStatus := model.AttendanceAbsent
			if float64(total) >= threshold {
				newStatus = model.AttendancePresent
			}
			if err := tx.Model(&model.AttendanceRecordModel{}).
				Where("user_id = ? AND live_lecture_id IN ?", userID, sessionIDs).
				Where("status <> ?", newStatus).
				Update("status", newStatus).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// History returns a student's attendance ledger, newest first.
func (l *Ledger) History(ctx context.Context, userID int) ([]model.AttendanceRecordModel, error) {
	var records []model.AttendanceRecordModel
	err := l.db.WithContext(ctx).
		Preload("LiveLecture.Lesson").
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Find(&records).Error
	return records, err
}
