package controllers

import (
	"encoding/json"
	"facility-desk-backend/models"
	apimodels "facility-desk-backend/models/api"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestStatusByKind(t *testing.T) {
	t.Run("коды ответов", func(t *testing.T) {
		cases := map[models.ErrorKind]int{
			models.KindUnauthenticated:       fiber.StatusUnauthorized,
			models.KindForbidden:             fiber.StatusForbidden,
			models.KindNotFound:              fiber.StatusNotFound,
			models.KindInvalidTransition:     fiber.StatusConflict,
			models.KindContractorUnavailable: fiber.StatusConflict,
			models.KindConflict:              fiber.StatusConflict,
			models.KindAlreadyRated:          fiber.StatusConflict,
			models.KindAlreadyResolved:       fiber.StatusConflict,
			models.KindNotEligible:           fiber.StatusUnprocessableEntity,
			models.KindEmptyContent:          fiber.StatusBadRequest,
			models.KindOutOfRange:            fiber.StatusBadRequest,
			models.KindUnavailable:           fiber.StatusServiceUnavailable,
		}
		for kind, status := range cases {
			require.Equal(t, status, StatusByKind(kind), kind)
		}
	})
}

func TestSendError(t *testing.T) {
	c := &BaseAPIController{}
	app := fiber.New()
	app.Get("/workflow", func(ctx *fiber.Ctx) error {
		return c.SendError(ctx, c.GetLogger(ctx), models.NewError(models.KindInvalidTransition, "переход недоступен"), "ошибка смены статуса")
	})
	app.Get("/infra", func(ctx *fiber.Ctx) error {
		return c.SendError(ctx, c.GetLogger(ctx), errors.New("dial tcp: connection refused"), "ошибка смены статуса")
	})
	app.Get("/id/:id", func(ctx *fiber.Ctx) error {
		id, err := c.GetID(ctx)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return ctx.JSON(apimodels.NewResponse(id))
	})

	read := func(t *testing.T, path string) (int, apimodels.Response) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		result := apimodels.Response{}
		require.NoError(t, json.Unmarshal(body, &result))
		return resp.StatusCode, result
	}

	t.Run("ошибка процесса", func(t *testing.T) {
		status, body := read(t, "/workflow")
		require.Equal(t, fiber.StatusConflict, status)
		require.Equal(t, "fail", body.Status)
		require.Equal(t, "InvalidTransition", body.Code)
		require.Equal(t, "переход недоступен", body.Message)
	})
	t.Run("ошибка инфраструктуры без подробностей", func(t *testing.T) {
		status, body := read(t, "/infra")
		require.Equal(t, fiber.StatusServiceUnavailable, status)
		require.Equal(t, "Unavailable", body.Code)
		require.Equal(t, "ошибка смены статуса", body.Message)
	})
	t.Run("идентификатор из пути", func(t *testing.T) {
		status, body := read(t, "/id/42")
		require.Equal(t, fiber.StatusOK, status)
		require.EqualValues(t, 42, body.Data)

		status, _ = read(t, "/id/abc")
		require.Equal(t, fiber.StatusBadRequest, status)
		status, _ = read(t, "/id/0")
		require.Equal(t, fiber.StatusBadRequest, status)
	})
}
