package middleware

import (
	"facility-desk-backend/models"
	apimodels "facility-desk-backend/models/api"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// WithBodyLimit ограничение размера тела запроса для отдельной группы маршрутов
func WithBodyLimit(limit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentLength := c.Get(fiber.HeaderContentLength)
		if contentLength != "" && contentLength != "0" {
			size, err := strconv.ParseInt(contentLength, 10, 64)
			if err == nil && size > limit {
				return c.Status(fiber.StatusRequestEntityTooLarge).
					JSON(apimodels.NewErrorWithCode(string(models.KindOutOfRange), fmt.Sprintf("размер запроса превышает %d байт", limit)))
			}
		}
		return c.Next()
	}
}
