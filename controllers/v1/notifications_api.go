package apiv1

import (
	"facility-desk-backend/controllers"
	notificationhandler "facility-desk-backend/lib/notification"
	"facility-desk-backend/middleware"
	apimodels "facility-desk-backend/models/api"
	notificationapimodels "facility-desk-backend/models/api/notification"

	"github.com/gofiber/fiber/v2"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app fiber.Router) {
	controller := notificationApiController{}
	app.Route("notifications", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("unread_count", controller.unreadCount)
		router.Put("read_all", controller.readAll)
		router.Put(":id/read", controller.read)
	})
}

// @Summary Список уведомлений
// @Tags Уведомления
// @Description Новые сверху
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.NotificationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]notificationapimodels.NotificationView}
// @Failure 400 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/notifications/list [post]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	var payload notificationapimodels.NotificationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := notificationhandler.Instance.List(middleware.GetCaller(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Количество непрочитанных
// @Tags Уведомления
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=notificationapimodels.UnreadCountView}
// @Failure 503 {object} apimodels.Response
// @router /api/v1/notifications/unread_count [get]
func (c *notificationApiController) unreadCount(ctx *fiber.Ctx) error {
	count, err := notificationhandler.Instance.UnreadCount(middleware.GetCaller(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения количества уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(notificationapimodels.UnreadCountView{Count: count}))
}

// @Summary Отметить уведомление прочитанным
// @Tags Уведомления
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "notification ID"
// @Success 200 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/notifications/{id}/read [put]
func (c *notificationApiController) read(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = notificationhandler.Instance.MarkRead(middleware.GetCaller(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки уведомления")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отметить все прочитанными
// @Tags Уведомления
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/notifications/read_all [put]
func (c *notificationApiController) readAll(ctx *fiber.Ctx) error {
	if err := notificationhandler.Instance.MarkAllRead(middleware.GetCaller(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
