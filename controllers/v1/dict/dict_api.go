package dict

import (
	"facility-desk-backend/config"
	"facility-desk-backend/controllers"
	apimodels "facility-desk-backend/models/api"
	dictapimodels "facility-desk-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type dictApiController struct {
	controllers.BaseAPIController
}

func InitDictApiRouters(app fiber.Router) {
	controller := dictApiController{}
	app.Get("issue_statuses", controller.issueStatuses)
	app.Get("assignment_statuses", controller.assignmentStatuses)
	app.Get("categories", controller.categories)
	app.Get("roles", controller.roles)
	app.Get("client_settings", controller.clientSettings)
}

// @Summary Статусы заявок
// @Tags Справочники
// @Description Статусы заявок в порядке жизненного цикла
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @router /api/v1/dict/issue_statuses [get]
func (c *dictApiController) issueStatuses(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.GetIssueStatuses()))
}

// @Summary Статусы назначений
// @Tags Справочники
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @router /api/v1/dict/assignment_statuses [get]
func (c *dictApiController) assignmentStatuses(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.GetAssignmentStatuses()))
}

// @Summary Категории заявок
// @Tags Справочники
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @router /api/v1/dict/categories [get]
func (c *dictApiController) categories(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.GetCategories()))
}

// @Summary Роли
// @Tags Справочники
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @router /api/v1/dict/roles [get]
func (c *dictApiController) roles(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.GetRoles()))
}

// @Summary Настройки клиента
// @Tags Справочники
// @Success 200 {object} apimodels.Response{data=dictapimodels.ClientSettingsView}
// @router /api/v1/dict/client_settings [get]
func (c *dictApiController) clientSettings(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.ClientSettingsView{
		NotificationPollIntervalSec: config.Conf.Workflow.NotificationPollIntervalSec,
	}))
}
