package apiv1

import (
	"facility-desk-backend/controllers"
	"facility-desk-backend/lib/rbac"
	"facility-desk-backend/lib/users"
	"facility-desk-backend/middleware"
	apimodels "facility-desk-backend/models/api"
	userapimodels "facility-desk-backend/models/api/user"

	"github.com/gofiber/fiber/v2"
)

type userApiController struct {
	controllers.BaseAPIController
}

func InitUserApiRouters(app fiber.Router) {
	controller := userApiController{}
	app.Route("me", func(router fiber.Router) {
		router.Get("", controller.me)
		router.Get("permissions", controller.permissions)
	})
	app.Route("users", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Get(":id", controller.get)
		router.Put(":id/availability", controller.availability)
	})
}

// @Summary Текущий пользователь
// @Tags Пользователи
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=userapimodels.UserView}
// @Failure 401 {object} apimodels.Response
// @router /api/v1/me [get]
func (c *userApiController) me(ctx *fiber.Ctx) error {
	resp, err := users.Instance.Me(middleware.GetCaller(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Права текущего пользователя
// @Tags Пользователи
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=userapimodels.PermissionsView}
// @Failure 401 {object} apimodels.Response
// @router /api/v1/me/permissions [get]
func (c *userApiController) permissions(ctx *fiber.Ctx) error {
	caller := middleware.GetCaller(ctx)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(userapimodels.PermissionsView{
		Role:         caller.Role,
		Capabilities: rbac.Instance.GetPermissions(caller.Role),
	}))
}

// @Summary Создание пользователя
// @Tags Пользователи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 userapimodels.UserCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=apimodels.IDResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/users [post]
func (c *userApiController) create(ctx *fiber.Ctx) error {
	var payload userapimodels.UserCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := users.Instance.Create(middleware.GetCaller(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(apimodels.IDResponse{ID: id}))
}

// @Summary Справочник пользователей
// @Tags Пользователи
// @Description Для выбора подрядчика: role=CONTRACTOR, available_only=true
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 userapimodels.UserFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]userapimodels.UserView}
// @Failure 403 {object} apimodels.Response
// @router /api/v1/users/list [post]
func (c *userApiController) list(ctx *fiber.Ctx) error {
	var payload userapimodels.UserFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := users.Instance.List(middleware.GetCaller(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка пользователей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение пользователя
// @Tags Пользователи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "user ID"
// @Success 200 {object} apimodels.Response{data=userapimodels.UserView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/users/{id} [get]
func (c *userApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := users.Instance.GetByID(middleware.GetCaller(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Доступность подрядчика
// @Tags Пользователи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "user ID"
// @Param	body body	 userapimodels.AvailabilityData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/users/{id}/availability [put]
func (c *userApiController) availability(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload userapimodels.AvailabilityData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = users.Instance.SetAvailability(middleware.GetCaller(ctx), id, payload.IsAvailable); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения доступности")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
