package model

import (
	"time"

	syllabusmodel "jbh_backend/internals/features/lms/syllabus/model"
)

type SessionStatus string

const (
	SessionLive      SessionStatus = "live"
	SessionCompleted SessionStatus = "completed"
)

// LiveSessionModel ("live lecture") is one concrete meeting instance backed
// by an external room. end_time holds an optimistic estimate while live and
// the real end once completed. Rows are never deleted.
type LiveSessionModel struct {
	LiveLectureID int           `gorm:"primaryKey;autoIncrement;column:live_lecture_id" json:"live_lecture_id"`
	RoomID        string        `gorm:"type:varchar(128);not null;index;column:room_id" json:"room_id"`
	InstructorID  int           `gorm:"not null;index;column:instructor_id" json:"instructor_id"`
	LessonID      int           `gorm:"not null;index;column:lesson_id" json:"lesson_id"`
	StartTime     time.Time     `gorm:"not null;column:start_time" json:"start_time"`
	EndTime       *time.Time    `gorm:"column:end_time" json:"end_time,omitempty"`
	Status        SessionStatus `gorm:"type:varchar(16);not null;default:'live';column:status" json:"status"`
	MeetingURL    *string       `gorm:"type:text;column:meeting_url" json:"meeting_url,omitempty"`
	CreatedAt     time.Time     `gorm:"autoCreateTime;column:created_at" json:"created_at"`

	Lesson *syllabusmodel.LessonModel `gorm:"foreignKey:LessonID;references:LessonID" json:"lesson,omitempty"`
}

func (LiveSessionModel) TableName() string { return "live_lectures" }
