package model

import "time"

// SyllabusModuleModel groups lessons within a course, ordered by
// module_order. The (course_id, title) unique index backs the
// find-or-create of auto-generated "Live Classes - <Month> <Year>" modules:
// a lost race surfaces as gorm.ErrDuplicatedKey and the caller re-reads.
type SyllabusModuleModel struct {
	ModuleID    int       `gorm:"primaryKey;autoIncrement;column:module_id" json:"module_id"`
	CourseID    int       `gorm:"not null;uniqueIndex:uq_modules_course_title;column:course_id" json:"course_id"`
	Title       string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_modules_course_title;column:title" json:"title"`
	ModuleOrder int       `gorm:"not null;default:0;column:module_order" json:"module_order"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (SyllabusModuleModel) TableName() string { return "syllabus_modules" }
