package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jbh_backend/internals/features/lms/syllabus/dto"
	"jbh_backend/internals/features/lms/syllabus/model"
	"jbh_backend/internals/features/lms/syllabus/service"
	helper "jbh_backend/internals/helpers"
)

type LessonController struct {
	svc      *service.LessonService
	validate *validator.Validate
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{
		svc:      service.NewLessonService(db),
		validate: validator.New(),
	}
}

// POST /api/a/lessons
func (ctl *LessonController) AddLesson(c *fiber.Ctx) error {
	var req dto.AddLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	isFree := false
	if req.IsFree != nil {
		isFree = *req.IsFree
	}

	lesson, err := ctl.svc.AddLesson(c.UserContext(), service.AddLessonInput{
		ModuleID:    req.ModuleID,
		Title:       req.Title,
		ContentURL:  req.ContentURL,
		ContentType: model.ContentType(req.ContentType),
		Duration:    req.Duration,
		IsFree:      isFree,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Lesson created", dto.ToLessonResponse(lesson))
}

// GET /api/a/lessons/:id
func (ctl *LessonController) GetLesson(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	lessonID, err := c.ParamsInt("id")
	if err != nil || lessonID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lesson id")
	}

	lesson, err := ctl.svc.GetLesson(c.UserContext(), userID, lessonID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.ToLessonResponse(lesson))
}

// PATCH /api/a/lessons/:id
func (ctl *LessonController) UpdateLesson(c *fiber.Ctx) error {
	lessonID, err := c.ParamsInt("id")
	if err != nil || lessonID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lesson id")
	}

	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var contentType *model.ContentType
	if req.ContentType != nil {
		ct := model.ContentType(*req.ContentType)
		contentType = &ct
	}

	lesson, err := ctl.svc.UpdateLesson(c.UserContext(), lessonID, service.UpdateLessonInput{
		Title:       req.Title,
		ContentURL:  req.ContentURL,
		ContentType: contentType,
		Duration:    req.Duration,
		IsFree:      req.IsFree,
		Order:       req.Order,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Lesson updated", dto.ToLessonResponse(lesson))
}

// DELETE /api/a/lessons/:id
func (ctl *LessonController) DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := c.ParamsInt("id")
	if err != nil || lessonID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lesson id")
	}
	if err := ctl.svc.DeleteLesson(c.UserContext(), lessonID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Lesson deleted", nil)
}
