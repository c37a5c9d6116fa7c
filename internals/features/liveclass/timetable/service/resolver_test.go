package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jbh_backend/internals/features/liveclass/timetable/model"
	helper "jbh_backend/internals/helpers"
	"jbh_backend/internals/helpers/dbtest"
)

func strPtr(s string) *string       { return &s }
func datePtr(t time.Time) *time.Time { return &t }

func mustLocalDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := helper.ParseLocalDate(s)
	require.NoError(t, err)
	return d
}

func seedSlot(t *testing.T, db *gorm.DB, slot model.ScheduleSlotModel) model.ScheduleSlotModel {
	t.Helper()
	require.NoError(t, db.Create(&slot).Error)
	return slot
}

func TestResolveForDateRecurring(t *testing.T) {
	db := dbtest.Open(t)
	r := NewResolver(db)
	ctx := context.Background()

	wednesday := mustLocalDate(t, "2025-09-03")
	thursday := mustLocalDate(t, "2025-09-04")

	slotA := seedSlot(t, db, model.ScheduleSlotModel{
		CourseID: 1, InstructorID: 10,
		ScheduleType: model.ScheduleRecurring,
		DayOfWeek:    strPtr("Wednesday"),
		StartTime:    "09:00", EndTime: "10:00",
	})
	// Case-insensitive weekday match.
	slotB := seedSlot(t, db, model.ScheduleSlotModel{
		CourseID: 1, InstructorID: 10,
		ScheduleType: model.ScheduleRecurring,
		DayOfWeek:    strPtr("wednesday"),
		StartTime:    "14:00", EndTime: "15:00",
	})
	seedSlot(t, db, model.ScheduleSlotModel{
		CourseID: 1, InstructorID: 10,
		ScheduleType: model.ScheduleRecurring,
		DayOfWeek:    strPtr("Thursday"),
		StartTime:    "09:00", EndTime: "10:00",
	})

	got, err := r.ResolveForDate(ctx, []int{1}, wednesday)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordered by start_time ascending.
	assert.Equal(t, slotA.ScheduleID, got[0].ScheduleID)
	assert.Equal(t, slotB.ScheduleID, got[1].ScheduleID)

	got, err = r.ResolveForDate(ctx, []int{1}, thursday)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, strPtr("Thursday"), got[0].DayOfWeek)
}

func TestResolveForDateOneTime(t *testing.T) {
	db := dbtest.Open(t)
	r := NewResolver(db)
	ctx := context.Background()

	classDay := mustLocalDate(t, "2025-09-03")
	slot := seedSlot(t, db, model.ScheduleSlotModel{
		CourseID: 1, InstructorID: 10,
		ScheduleType: model.ScheduleOneTime,
		SpecificDate: datePtr(classDay.Add(11 * time.Hour)),
		StartTime:    "11:00", EndTime: "12:00",
	})

	got, err := r.ResolveForDate(ctx, []int{1}, classDay)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, slot.ScheduleID, got[0].ScheduleID)

	// Excluded on every other calendar day, weekday notwithstanding.
	got, err = r.ResolveForDate(ctx, []int{1}, mustLocalDate(t, "2025-09-10"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveForDateValidityBounds(t *testing.T) {
	db := dbtest.Open(t)
	r := NewResolver(db)
	ctx := context.Background()

	wednesday := mustLocalDate(t, "2025-09-03")

	seedSlot(t, db, model.ScheduleSlotModel{
		CourseID: 1, InstructorID: 10,
		ScheduleType: model.ScheduleRecurring,
		DayOfWeek:    strPtr("Wednesday"),
		ValidFrom:    datePtr(mustLocalDate(t, "2025-10-01")),
		StartTime:    "09:00", EndTime: "10:00",
	})
	seedSlot(t, db, model.ScheduleSlotModel{
		CourseID: 1, InstructorID: 10,
		ScheduleType: model.ScheduleRecurring,
		DayOfWeek:    strPtr("Wednesday"),
		ValidTo:      datePtr(mustLocalDate(t, "2025-08-01")),
		StartTime:    "10:00", EndTime: "11:00",
	})
	inRange := seedSlot(t, db, model.ScheduleSlotModel{
		CourseID: 1, InstructorID: 10,
		ScheduleType: model.ScheduleRecurring,
		DayOfWeek:    strPtr("Wednesday"),
		ValidFrom:    datePtr(mustLocalDate(t, "2025-08-01")),
		ValidTo:      datePtr(mustLocalDate(t, "2025-12-31")),
		StartTime:    "11:00", EndTime: "12:00",
	})

	got, err := r.ResolveForDate(ctx, []int{1}, wednesday)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inRange.ScheduleID, got[0].ScheduleID)
}

func TestResolveForDateNoCourses(t *testing.T) {
	db := dbtest.Open(t)
	r := NewResolver(db)

	got, err := r.ResolveForDate(context.Background(), nil, helper.NowLocal())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveWeekOrdering(t *testing.T) {
	db := dbtest.Open(t)
	r := NewResolver(db)
	ctx := context.Background()

	seedSlot(t, db, model.ScheduleSlotModel{
		CourseID: 2, InstructorID: 10,
		ScheduleType: model.ScheduleRecurring,
		DayOfWeek:    strPtr("Monday"),
		StartTime:    "08:00", EndTime: "09:00",
	})
	seedSlot(t, db, model.ScheduleSlotModel{
		CourseID: 1, InstructorID: 10,
		ScheduleType: model.ScheduleRecurring,
		DayOfWeek:    strPtr("Friday"),
		StartTime:    "15:00", EndTime: "16:00",
	})
	seedSlot(t, db, model.ScheduleSlotModel{
		CourseID: 1, InstructorID: 10,
		ScheduleType: model.ScheduleRecurring,
		DayOfWeek:    strPtr("Monday"),
		StartTime:    "09:00", EndTime: "10:00",
	})

	got, err := r.ResolveWeek(ctx, []int{1, 2})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].CourseID)
	assert.Equal(t, "09:00", got[0].StartTime)
	assert.Equal(t, 1, got[1].CourseID)
	assert.Equal(t, "15:00", got[1].StartTime)
	assert.Equal(t, 2, got[2].CourseID)
}

func TestResolveForInstructor(t *testing.T) {
	db := dbtest.Open(t)
	r := NewResolver(db)
	ctx := context.Background()

	wednesday := mustLocalDate(t, "2025-09-03")

	mine := seedSlot(t, db, model.ScheduleSlotModel{
		CourseID: 1, InstructorID: 10,
		ScheduleType: model.ScheduleRecurring,
		DayOfWeek:    strPtr("Wednesday"),
		StartTime:    "09:00", EndTime: "10:00",
	})
	seedSlot(t, db, model.ScheduleSlotModel{
		CourseID: 1, InstructorID: 99,
		ScheduleType: model.ScheduleRecurring,
		DayOfWeek:    strPtr("Wednesday"),
		StartTime:    "09:00", EndTime: "10:00",
	})

	got, err := r.ResolveForInstructor(ctx, 10, wednesday)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ScheduleID, got[0].ScheduleID)
}
