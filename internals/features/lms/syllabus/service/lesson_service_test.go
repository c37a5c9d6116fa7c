package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	coursemodel "jbh_backend/internals/features/lms/courses/model"
	"jbh_backend/internals/features/lms/syllabus/model"
	"jbh_backend/internals/helpers/dbtest"
	"jbh_backend/internals/helpers/errs"
)

func seedModule(t *testing.T, db *gorm.DB, courseID int) model.SyllabusModuleModel {
	t.Helper()
	module := model.SyllabusModuleModel{CourseID: courseID, Title: "Fundamentals", ModuleOrder: 1}
	require.NoError(t, db.Create(&module).Error)
	return module
}

func TestAddLessonAppendsOrder(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewLessonService(db)
	ctx := context.Background()

	module := seedModule(t, db, 1)

	first, err := svc.AddLesson(ctx, AddLessonInput{
		ModuleID: module.ModuleID, Title: "Intro", ContentType: model.ContentVideo, ContentURL: "https://v/1",
	})
	require.NoError(t, err)
	second, err := svc.AddLesson(ctx, AddLessonInput{
		ModuleID: module.ModuleID, Title: "Deep dive", ContentType: model.ContentPDF, ContentURL: "https://v/2",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, first.LessonOrder)
	assert.Equal(t, 2, second.LessonOrder)

	_, err = svc.AddLesson(ctx, AddLessonInput{ModuleID: 4242, Title: "Orphan"})
	assert.True(t, errs.Is(err, errs.KindBadRequest))
}

func TestGetLessonEnforcesEnrollmentGate(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewLessonService(db)
	ctx := context.Background()

	module := seedModule(t, db, 1)
	paid, err := svc.AddLesson(ctx, AddLessonInput{
		ModuleID: module.ModuleID, Title: "Paid", ContentType: model.ContentVideo,
	})
	require.NoError(t, err)
	free, err := svc.AddLesson(ctx, AddLessonInput{
		ModuleID: module.ModuleID, Title: "Teaser", ContentType: model.ContentVideo, IsFree: true,
	})
	require.NoError(t, err)

	// Free lessons bypass the gate entirely.
	got, err := svc.GetLesson(ctx, 55, free.LessonID)
	require.NoError(t, err)
	assert.Equal(t, "Teaser", got.Title)

	_, err = svc.GetLesson(ctx, 55, paid.LessonID)
	assert.True(t, errs.Is(err, errs.KindForbidden))

	require.NoError(t, db.Create(&coursemodel.EnrollmentModel{UserID: 55, CourseID: 1}).Error)
	got, err = svc.GetLesson(ctx, 55, paid.LessonID)
	require.NoError(t, err)
	assert.Equal(t, "Paid", got.Title)

	_, err = svc.GetLesson(ctx, 55, 4242)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestUpdateLessonAppliesOnlyProvidedFields(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewLessonService(db)
	ctx := context.Background()

	module := seedModule(t, db, 1)
	lesson, err := svc.AddLesson(ctx, AddLessonInput{
		ModuleID: module.ModuleID, Title: "Intro", ContentType: model.ContentVideo, ContentURL: "https://v/1",
	})
	require.NoError(t, err)

	newTitle := "Intro (revised)"
	free := true
	_, err = svc.UpdateLesson(ctx, lesson.LessonID, UpdateLessonInput{Title: &newTitle, IsFree: &free})
	require.NoError(t, err)

	var got model.LessonModel
	require.NoError(t, db.First(&got, "lesson_id = ?", lesson.LessonID).Error)
	assert.Equal(t, "Intro (revised)", got.Title)
	assert.True(t, got.IsFree)
	// Untouched fields stay put.
	assert.Equal(t, "https://v/1", got.ContentURL)
	assert.Equal(t, model.ContentVideo, got.ContentType)

	_, err = svc.UpdateLesson(ctx, 4242, UpdateLessonInput{Title: &newTitle})
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestDeleteLesson(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewLessonService(db)
	ctx := context.Background()

	module := seedModule(t, db, 1)
	lesson, err := svc.AddLesson(ctx, AddLessonInput{
		ModuleID: module.ModuleID, Title: "Intro", ContentType: model.ContentVideo,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLesson(ctx, lesson.LessonID))
	assert.True(t, errs.Is(svc.DeleteLesson(ctx, lesson.LessonID), errs.KindNotFound))
}
