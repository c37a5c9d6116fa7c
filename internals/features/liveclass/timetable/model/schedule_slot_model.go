package model

import (
	"time"

	coursemodel "jbh_backend/internals/features/lms/courses/model"
)

type ScheduleType string

const (
	ScheduleRecurring ScheduleType = "recurring"
	ScheduleOneTime   ScheduleType = "one-time"
)

// ScheduleSlotModel is one row of the class timetable. Exactly one of
// day_of_week (recurring) or specific_date (one-time) is set, matching
// schedule_type. start_time/end_time are wall-clock "HH:MM" strings
// interpreted in the institution's local timezone. Slots are created and
// edited by admins only; the live-class subsystem never mutates them.
type ScheduleSlotModel struct {
	ScheduleID   int          `gorm:"primaryKey;autoIncrement;column:schedule_id" json:"schedule_id"`
	CourseID     int          `gorm:"not null;index;column:course_id" json:"course_id"`
	InstructorID int          `gorm:"not null;index;column:instructor_id" json:"instructor_id"`
	ModuleID     *int         `gorm:"column:module_id" json:"module_id,omitempty"`
	ScheduleType ScheduleType `gorm:"type:varchar(16);not null;column:schedule_type" json:"schedule_type"`
	DayOfWeek    *string      `gorm:"type:varchar(16);column:day_of_week" json:"day_of_week,omitempty"`
	SpecificDate *time.Time   `gorm:"column:specific_date" json:"specific_date,omitempty"`
	ValidFrom    *time.Time   `gorm:"column:valid_from" json:"valid_from,omitempty"`
	ValidTo      *time.Time   `gorm:"column:valid_to" json:"valid_to,omitempty"`
	StartTime    string       `gorm:"type:varchar(5);not null;column:start_time" json:"start_time"`
	EndTime      string       `gorm:"type:varchar(5);not null;column:end_time" json:"end_time"`
	CreatedAt    time.Time    `gorm:"autoCreateTime;column:created_at" json:"created_at"`

	Course     *coursemodel.CourseModel `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
	Instructor *coursemodel.UserModel   `gorm:"foreignKey:InstructorID;references:UserID" json:"instructor,omitempty"`
}

func (ScheduleSlotModel) TableName() string { return "time_table" }
