package service

import (
	"context"

	"gorm.io/gorm"
)

// Directory answers "which courses / which students" questions for the
// live-class core.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) ListEnrolledCourseIDs(ctx context.Context, userID int) ([]int, error) {
	var ids []int
	err := d.db.WithContext(ctx).
		Table("enrollments").
		Where("user_id = ?", userID).
		Pluck("course_id", &ids).Error
	return ids, err
}

func (d *Directory) ListAssignedCourseIDs(ctx context.Context, instructorID int) ([]int, error) {
	var ids []int
	err := d.db.WithContext(ctx).
		Table("time_table").
		Distinct("course_id").
		Where("instructor_id = ?", instructorID).
		Pluck("course_id", &ids).Error
	return ids, err
}

func (d *Directory) ListEnrolledStudentIDs(ctx context.Context, courseID int) ([]int, error) {
	var ids []int
	err := d.db.WithContext(ctx).
		Table("enrollments").
		Where("course_id = ?", courseID).
		Pluck("user_id", &ids).Error
	return ids, err
}
