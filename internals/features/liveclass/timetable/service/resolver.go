package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"jbh_backend/internals/features/liveclass/timetable/model"
	helper "jbh_backend/internals/helpers"
)

// Resolver turns the timetable into "what is scheduled" answers, always in
// the institution's local calendar.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// ResolveForDate returns the slots applicable on date's local calendar day
// for the given courses, ordered by start_time. Recurring slots match by
// weekday name (case-insensitive) within their optional valid_from/valid_to
// bounds; one-time slots match by exact local day. An empty course list is
// an empty result, not an error.
func (r *Resolver) ResolveForDate(ctx context.Context, courseIDs []int, date time.Time) ([]model.ScheduleSlotModel, error) {
	if len(courseIDs) == 0 {
		return []model.ScheduleSlotModel{}, nil
	}

	dayStart, dayEnd := helper.LocalDayBounds(date)
	dayName := helper.LocalDayName(date)

	var slots []model.ScheduleSlotModel
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Instructor").
		Where("course_id IN ?", courseIDs).
		Where(
			r.db.Where(
				"schedule_type = ? AND LOWER(day_of_week) = LOWER(?) AND (valid_from IS NULL OR valid_from <= ?) AND (valid_to IS NULL OR valid_to >= ?)",
				model.ScheduleRecurring, dayName, dayEnd, dayStart,
			).Or(
				"schedule_type = ? AND specific_date BETWEEN ? AND ?",
				model.ScheduleOneTime, dayStart, dayEnd,
			),
		).
		Order("start_time ASC").
		Find(&slots).Error
	return slots, err
}

// ResolveForInstructor is ResolveForDate keyed by instructor instead of
// enrolled courses (the instructor's own daily schedule).
func (r *Resolver) ResolveForInstructor(ctx context.Context, instructorID int, date time.Time) ([]model.ScheduleSlotModel, error) {
	dayStart, dayEnd := helper.LocalDayBounds(date)
	dayName := helper.LocalDayName(date)

	var slots []model.ScheduleSlotModel
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("instructor_id = ?", instructorID).
		Where(
			r.db.Where(
				"schedule_type = ? AND LOWER(day_of_week) = LOWER(?) AND (valid_from IS NULL OR valid_from <= ?) AND (valid_to IS NULL OR valid_to >= ?)",
				model.ScheduleRecurring, dayName, dayEnd, dayStart,
			).Or(
				"schedule_type = ? AND specific_date BETWEEN ? AND ?",
				model.ScheduleOneTime, dayStart, dayEnd,
			),
		).
		Order("start_time ASC").
		Find(&slots).Error
	return slots, err
}

// ResolveWeek returns every slot for the given courses with no date filter,
// for forward-looking display. Never used for live matching.
func (r *Resolver) ResolveWeek(ctx context.Context, courseIDs []int) ([]model.ScheduleSlotModel, error) {
	if len(courseIDs) == 0 {
		return []model.ScheduleSlotModel{}, nil
	}

	var slots []model.ScheduleSlotModel
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Instructor").
		Where("course_id IN ?", courseIDs).
		Order("course_id ASC, start_time ASC").
		Find(&slots).Error
	return slots, err
}

// UpcomingOneTime lists an instructor's future one-time ("special") slots.
func (r *Resolver) UpcomingOneTime(ctx context.Context, instructorID int, after time.Time, limit int) ([]model.ScheduleSlotModel, error) {
	var slots []model.ScheduleSlotModel
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("instructor_id = ? AND schedule_type = ? AND specific_date > ?",
			instructorID, model.ScheduleOneTime, after).
		Order("specific_date ASC").
		Limit(limit).
		Find(&slots).Error
	return slots, err
}
