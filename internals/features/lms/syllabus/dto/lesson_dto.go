package dto

import (
	"jbh_backend/internals/features/lms/syllabus/model"
)

type AddLessonRequest struct {
	ModuleID    int    `json:"module_id" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required"`
	ContentURL  string `json:"content_url" validate:"required,url"`
	ContentType string `json:"content_type" validate:"required,oneof=video pdf"`
	Duration    *int   `json:"duration" validate:"omitempty,gte=0"`
	IsFree      *bool  `json:"is_free"`
}

type UpdateLessonRequest struct {
	Title       *string `json:"title"`
	ContentURL  *string `json:"content_url" validate:"omitempty,url"`
	ContentType *string `json:"content_type" validate:"omitempty,oneof=video pdf live"`
	Duration    *int    `json:"duration" validate:"omitempty,gte=0"`
	IsFree      *bool   `json:"is_free"`
	Order       *int    `json:"order" validate:"omitempty,gt=0"`
}

type LessonResponse struct {
	LessonID    int    `json:"lesson_id"`
	ModuleID    int    `json:"module_id"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	ContentURL  string `json:"content_url"`
	IsFree      bool   `json:"is_free"`
	Duration    *int   `json:"duration,omitempty"`
	LessonOrder int    `json:"lesson_order"`
}

func ToLessonResponse(m *model.LessonModel) LessonResponse {
	return LessonResponse{
		LessonID:    m.LessonID,
		ModuleID:    m.ModuleID,
		Title:       m.Title,
		ContentType: string(m.ContentType),
		ContentURL:  m.ContentURL,
		IsFree:      m.IsFree,
		Duration:    m.Duration,
		LessonOrder: m.LessonOrder,
	}
}
