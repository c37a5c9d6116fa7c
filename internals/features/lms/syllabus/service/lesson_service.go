package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	coursemodel "jbh_backend/internals/features/lms/courses/model"
	"jbh_backend/internals/features/lms/syllabus/model"
	"jbh_backend/internals/helpers/errs"
)

type LessonService struct {
	db *gorm.DB
}

func NewLessonService(db *gorm.DB) *LessonService {
	return &LessonService{db: db}
}

type AddLessonInput struct {
	ModuleID    int
	Title       string
	ContentURL  string
	ContentType model.ContentType
	Duration    *int
	IsFree      bool
}

func (s *LessonService) AddLesson(ctx context.Context, in AddLessonInput) (*model.LessonModel, error) {
	var module model.SyllabusModuleModel
	if err := s.db.WithContext(ctx).First(&module, "module_id = ?", in.ModuleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.BadRequest("Module not found")
		}
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.LessonModel{}).
		Where("module_id = ?", in.ModuleID).Count(&count).Error; err != nil {
		return nil, err
	}

	lesson := model.LessonModel{
		ModuleID:    in.ModuleID,
		Title:       in.Title,
		ContentURL:  in.ContentURL,
		ContentType: in.ContentType,
		Duration:    in.Duration,
		IsFree:      in.IsFree,
		LessonOrder: int(count) + 1,
	}
	if err := s.db.WithContext(ctx).Create(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// GetLesson returns a lesson, enforcing the enrollment gate unless is_free.
func (s *LessonService) GetLesson(ctx context.Context, userID, lessonID int) (*model.LessonModel, error) {
	var lesson model.LessonModel
	err := s.db.WithContext(ctx).Preload("Module").First(&lesson, "lesson_id = ?", lessonID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Lesson not found")
		}
		return nil, err
	}

	if lesson.IsFree {
		return &lesson, nil
	}

	var enrollment coursemodel.EnrollmentModel
	err = s.db.WithContext(ctx).
		First(&enrollment, "user_id = ? AND course_id = ?", userID, lesson.Module.CourseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Forbidden("You must enroll in this course to view this lesson")
		}
		return nil, err
	}
	return &lesson, nil
}

type UpdateLessonInput struct {
	Title       *string
	ContentURL  *string
	ContentType *model.ContentType
	Duration    *int
	IsFree      *bool
	Order       *int
}

// UpdateLesson applies only the fields present in the request.
func (s *LessonService) UpdateLesson(ctx context.Context, lessonID int, in UpdateLessonInput) (*model.LessonModel, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.ContentURL != nil {
		updates["content_url"] = *in.ContentURL
	}
	if in.ContentType != nil {
		updates["content_type"] = *in.ContentType
	}
	if in.Duration != nil {
		updates["duration"] = *in.Duration
	}
	if in.IsFree != nil {
		updates["is_free"] = *in.IsFree
	}
	if in.Order != nil {
		updates["lesson_order"] = *in.Order
	}

	var lesson model.LessonModel
	if err := s.db.WithContext(ctx).First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("Lesson not found")
		}
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&lesson).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &lesson, nil
}

func (s *LessonService) DeleteLesson(ctx context.Context, lessonID int) error {
	res := s.db.WithContext(ctx).Delete(&model.LessonModel{}, "lesson_id = ?", lessonID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("Lesson not found")
	}
	return nil
}
