package model

import "time"

type ContentType string

const (
	ContentVideo ContentType = "video"
	ContentPDF   ContentType = "pdf"
	ContentLive  ContentType = "live"
)

// LessonModel is one syllabus entry. Live classes auto-create one lesson per
// class day (content_type "live", empty content_url); the recording webhook
// later flips it to "video" and fills content_url/duration. day_marker is
// set on auto-created lessons only; its (module_id, day_marker) unique index
// backs the per-day find-or-create, with a lost race surfacing as
// gorm.ErrDuplicatedKey for the caller to re-read.
type LessonModel struct {
	LessonID    int         `gorm:"primaryKey;autoIncrement;column:lesson_id" json:"lesson_id"`
	ModuleID    int         `gorm:"not null;uniqueIndex:uq_lessons_module_day;column:module_id" json:"module_id"`
	Title       string      `gorm:"type:varchar(255);not null;column:title" json:"title"`
	ContentType ContentType `gorm:"type:varchar(16);not null;column:content_type" json:"content_type"`
	ContentURL  string      `gorm:"type:text;not null;default:'';column:content_url" json:"content_url"`
	IsFree      bool        `gorm:"not null;default:false;column:is_free" json:"is_free"`
	Duration    *int        `gorm:"column:duration" json:"duration,omitempty"` // minutes
	DayMarker   *string     `gorm:"type:varchar(32);uniqueIndex:uq_lessons_module_day;column:day_marker" json:"day_marker,omitempty"`
	LessonOrder int         `gorm:"not null;default:0;column:lesson_order" json:"lesson_order"`
	CreatedAt   time.Time   `gorm:"autoCreateTime;column:created_at" json:"created_at"`

	Module *SyllabusModuleModel `gorm:"foreignKey:ModuleID;references:ModuleID" json:"module,omitempty"`
}

func (LessonModel) TableName() string { return "lessons" }
