package model

import "time"

// EnrollmentModel defines the universe of expected attendees for a course.
type EnrollmentModel struct {
	EnrollmentID int       `gorm:"primaryKey;autoIncrement;column:enrollment_id" json:"enrollment_id"`
	UserID       int       `gorm:"not null;uniqueIndex:uq_enrollments_user_course;column:user_id" json:"user_id"`
	CourseID     int       `gorm:"not null;uniqueIndex:uq_enrollments_user_course;column:course_id" json:"course_id"`
	EnrolledAt   time.Time `gorm:"autoCreateTime;column:enrolled_at" json:"enrolled_at"`

	Course *CourseModel `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
