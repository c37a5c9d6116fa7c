package helper

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"jbh_backend/internals/helpers/errs"
)

// JsonFromError maps a service error onto the JSON error envelope.
func JsonFromError(c *fiber.Ctx, err error) error {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return JsonError(c, fiber.StatusNotFound, err.Error())
	case errs.KindForbidden:
		return JsonError(c, fiber.StatusForbidden, err.Error())
	case errs.KindBadRequest:
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	case errs.KindConflict:
		return JsonError(c, fiber.StatusConflict, err.Error())
	case errs.KindUpstream:
		return JsonError(c, fiber.StatusBadGateway, err.Error())
	default:
		log.Printf("[ERROR] unhandled service error: %v", err)
		return JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
}
