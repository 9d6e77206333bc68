package controllers

import (
	"facility-desk-backend/models"
	apimodels "facility-desk-backend/models/api"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (uint, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (uint, error) {
	value := ctx.Params(key)
	if value == "" {
		return 0, errors.Errorf("не указан %s", key)
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Errorf("некорректный %s", key)
	}
	return uint(id), nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if userID, ok := ctx.Locals("userID").(uint); ok {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

// SendError ответ с кодом ошибки, ошибки инфраструктуры логируются
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, message string) error {
	kind := models.KindOf(err)
	status := StatusByKind(kind)
	if status >= fiber.StatusInternalServerError {
		logger.WithError(err).Error(message)
		return ctx.Status(status).JSON(apimodels.NewErrorWithCode(string(kind), message))
	}
	return ctx.Status(status).JSON(apimodels.NewErrorWithCode(string(kind), models.HumanMessage(err)))
}

func StatusByKind(kind models.ErrorKind) int {
	switch kind {
	case models.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case models.KindForbidden:
		return fiber.StatusForbidden
	case models.KindNotFound:
		return fiber.StatusNotFound
	case models.KindInvalidTransition,
		models.KindContractorUnavailable,
		models.KindConflict,
		models.KindAlreadyRated,
		models.KindAlreadyResolved:
		return fiber.StatusConflict
	case models.KindNotEligible:
		return fiber.StatusUnprocessableEntity
	case models.KindEmptyContent, models.KindOutOfRange:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusServiceUnavailable
	}
}
