package model

import (
	"time"

	sessionmodel "jbh_backend/internals/features/liveclass/sessions/model"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// AttendanceRecordModel is the per (session, user) presence ledger row.
// duration_seconds only ever grows (leave events increment it); status is
// recomputed against the 75% threshold at finalization. Rows are upserted
// on the unique pair and never deleted.
type AttendanceRecordModel struct {
	AttendanceID    int              `gorm:"primaryKey;autoIncrement;column:attendance_id" json:"attendance_id"`
	LiveLectureID   int              `gorm:"not null;uniqueIndex:uq_attendance_lecture_user;column:live_lecture_id" json:"live_lecture_id"`
	UserID          int              `gorm:"not null;uniqueIndex:uq_attendance_lecture_user;column:user_id" json:"user_id"`
	Status          AttendanceStatus `gorm:"type:varchar(16);not null;default:'absent';column:status" json:"status"`
	DurationSeconds int              `gorm:"not null;default:0;column:duration_seconds" json:"duration_seconds"`
	RecordedAt      time.Time        `gorm:"autoCreateTime;column:recorded_at" json:"recorded_at"`

	LiveLecture *sessionmodel.LiveSessionModel `gorm:"foreignKey:LiveLectureID;references:LiveLectureID" json:"live_lecture,omitempty"`
}

func (AttendanceRecordModel) TableName() string { return "attendance" }
