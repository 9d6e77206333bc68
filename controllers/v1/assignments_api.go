package apiv1

import (
	"bytes"
	"facility-desk-backend/controllers"
	assignmenthandler "facility-desk-backend/lib/assignment"
	"facility-desk-backend/middleware"
	apimodels "facility-desk-backend/models/api"
	issueapimodels "facility-desk-backend/models/api/issue"

	"github.com/gofiber/fiber/v2"
)

type assignmentApiController struct {
	controllers.BaseAPIController
}

func InitAssignmentApiRouters(app fiber.Router) {
	controller := assignmentApiController{}
	app.Route("assignments", func(router fiber.Router) {
		router.Get("mine", controller.mine)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("status", controller.changeStatus)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("actual_cost", controller.actualCost)
			idRoute.Put("estimate", controller.estimate)
			idRoute.Put("warranty", controller.warranty)
			idRoute.Get("work_order", controller.workOrder)
		})
	})
}

// @Summary Мои назначения
// @Tags Назначения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   active_only        query    bool  				    	false         "только активные"
// @Param   page          		query    int  				    	false         "страница"
// @Param   limit          		query    int  				    	false         "записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]issueapimodels.AssignmentView}
// @Failure 403 {object} apimodels.Response
// @router /api/v1/assignments/mine [get]
func (c *assignmentApiController) mine(ctx *fiber.Ctx) error {
	filter := issueapimodels.AssignmentFilter{
		ActiveOnly: ctx.QueryBool("active_only"),
	}
	filter.Page = ctx.QueryInt("page")
	filter.Limit = ctx.QueryInt("limit")
	list, rowCount, err := assignmenthandler.Instance.ListMine(middleware.GetCaller(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка назначений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение назначения
// @Tags Назначения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "assignment ID"
// @Success 200 {object} apimodels.Response{data=issueapimodels.AssignmentView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/assignments/{id} [get]
func (c *assignmentApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assignmenthandler.Instance.GetByID(middleware.GetCaller(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Смена статуса работ
// @Tags Назначения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "assignment ID"
// @Param	body body	 issueapimodels.StatusChangeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=issueapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/assignments/{id}/status [put]
func (c *assignmentApiController) changeStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload issueapimodels.StatusChangeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assignmenthandler.Instance.UpdateStatus(ctx.UserContext(), middleware.GetCaller(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса работ")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отказ от назначения
// @Tags Назначения
// @Description Заявка возвращается в статус Received с указанной причиной
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "assignment ID"
// @Param	body body	 issueapimodels.RejectData	true	"request body"
// @Success 200 {object} apimodels.Response{data=issueapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/assignments/{id}/reject [put]
func (c *assignmentApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload issueapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assignmenthandler.Instance.Reject(ctx.UserContext(), middleware.GetCaller(ctx), id, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отказа от назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Фактическая стоимость работ
// @Tags Назначения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "assignment ID"
// @Param	body body	 issueapimodels.CostData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @router /api/v1/assignments/{id}/actual_cost [put]
func (c *assignmentApiController) actualCost(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload issueapimodels.CostData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = assignmenthandler.Instance.RecordActualCost(middleware.GetCaller(ctx), id, payload.Amount); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения стоимости работ")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смета и плановая дата
// @Tags Назначения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "assignment ID"
// @Param	body body	 issueapimodels.EstimateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @router /api/v1/assignments/{id}/estimate [put]
func (c *assignmentApiController) estimate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload issueapimodels.EstimateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = assignmenthandler.Instance.SetEstimate(middleware.GetCaller(ctx), id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения сметы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Гарантийный документ
// @Tags Назначения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "assignment ID"
// @Param	body body	 issueapimodels.WarrantyData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @router /api/v1/assignments/{id}/warranty [put]
func (c *assignmentApiController) warranty(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload issueapimodels.WarrantyData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = assignmenthandler.Instance.AttachWarranty(middleware.GetCaller(ctx), id, payload.WarrantyDocument); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения гарантийного документа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Наряд-заказ
// @Tags Назначения
// @Description Наряд-заказ в PDF
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "assignment ID"
// @Success 200
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/assignments/{id}/work_order [get]
func (c *assignmentApiController) workOrder(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	body, fileName, err := assignmenthandler.Instance.WorkOrder(middleware.GetCaller(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования наряд-заказа")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(bytes.NewReader(body), len(body))
}
