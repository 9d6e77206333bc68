package apiv1

import (
	"facility-desk-backend/controllers"
	rolerequesthandler "facility-desk-backend/lib/role-request"
	"facility-desk-backend/middleware"
	apimodels "facility-desk-backend/models/api"
	rolerequestapimodels "facility-desk-backend/models/api/role-request"

	"github.com/gofiber/fiber/v2"
)

type roleRequestApiController struct {
	controllers.BaseAPIController
}

func InitRoleRequestApiRouters(app fiber.Router) {
	controller := roleRequestApiController{}
	app.Route("role_requests", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Get(":id", controller.get)
		router.Put(":id/resolve", controller.resolve)
	})
}

// @Summary Заявка на роль
// @Tags Заявки на роль
// @Description Жилец может запросить роль подрядчика или управляющего, подрядчик - управляющего
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 rolerequestapimodels.RoleRequestCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=apimodels.IDResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/role_requests [post]
func (c *roleRequestApiController) create(ctx *fiber.Ctx) error {
	var payload rolerequestapimodels.RoleRequestCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := rolerequesthandler.Instance.Create(middleware.GetCaller(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки на роль")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(apimodels.IDResponse{ID: id}))
}

// @Summary Список заявок на роль
// @Tags Заявки на роль
// @Description Администратор видит все заявки, остальные - свои
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 rolerequestapimodels.RoleRequestFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]rolerequestapimodels.RoleRequestView}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/role_requests/list [post]
func (c *roleRequestApiController) list(ctx *fiber.Ctx) error {
	var payload rolerequestapimodels.RoleRequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := rolerequesthandler.Instance.List(middleware.GetCaller(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок на роль")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение заявки на роль
// @Tags Заявки на роль
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "role request ID"
// @Success 200 {object} apimodels.Response{data=rolerequestapimodels.RoleRequestView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/role_requests/{id} [get]
func (c *roleRequestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := rolerequesthandler.Instance.GetByID(middleware.GetCaller(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки на роль")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Решение по заявке на роль
// @Tags Заявки на роль
// @Description При одобрении роль пользователя заменяется запрошенной
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "role request ID"
// @Param	body body	 rolerequestapimodels.ResolveData	true	"request body"
// @Success 200 {object} apimodels.Response{data=rolerequestapimodels.RoleRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/role_requests/{id}/resolve [put]
func (c *roleRequestApiController) resolve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload rolerequestapimodels.ResolveData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := rolerequesthandler.Instance.Resolve(middleware.GetCaller(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка рассмотрения заявки на роль")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
