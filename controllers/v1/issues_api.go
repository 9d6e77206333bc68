package apiv1

import (
	"facility-desk-backend/controllers"
	assignmenthandler "facility-desk-backend/lib/assignment"
	issuehandler "facility-desk-backend/lib/issue"
	issueflow "facility-desk-backend/lib/issue-flow"
	issuenoteshandler "facility-desk-backend/lib/issue-notes"
	ratinghandler "facility-desk-backend/lib/rating"
	"facility-desk-backend/middleware"
	"facility-desk-backend/models"
	apimodels "facility-desk-backend/models/api"
	issueapimodels "facility-desk-backend/models/api/issue"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

type issueApiController struct {
	controllers.BaseAPIController
}

func InitIssueApiRouters(app fiber.Router) {
	controller := issueApiController{}
	app.Route("issues", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Post("export", controller.export)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", controller.delete)
			idRoute.Put("status", controller.changeStatus)
			idRoute.Put("cancel", controller.cancel)
			idRoute.Get("transitions", controller.transitions)
			idRoute.Get("history", controller.history)
			idRoute.Post("assign", controller.assign)
			idRoute.Get("assignments", controller.assignments)
			idRoute.Post("notes", controller.addNote)
			idRoute.Get("notes", controller.listNotes)
			idRoute.Post("comments", controller.addComment)
			idRoute.Get("comments", controller.listComments)
			idRoute.Post("rating", controller.submitRating)
			idRoute.Get("rating", controller.getRating)
		})
	})
}

// @Summary Создание заявки
// @Tags Заявки
// @Description Создание заявки жильцом, заявка создается в статусе Received
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 issueapimodels.IssueCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=apimodels.IDResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/issues [post]
func (c *issueApiController) create(ctx *fiber.Ctx) error {
	var payload issueapimodels.IssueCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := issuehandler.Instance.Create(middleware.GetCaller(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(apimodels.IDResponse{ID: id}))
}

// @Summary Список заявок
// @Tags Заявки
// @Description Жилец видит свои заявки, подрядчик - заявки со своими назначениями, управляющий и администратор - все
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 issueapimodels.IssueFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]issueapimodels.IssueView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/issues/list [post]
func (c *issueApiController) list(ctx *fiber.Ctx) error {
	var payload issueapimodels.IssueFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := issuehandler.Instance.List(middleware.GetCaller(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Выгрузка реестра заявок
// @Tags Заявки
// @Description Выгрузка в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 issueapimodels.ExportFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/issues/export [post]
func (c *issueApiController) export(ctx *fiber.Ctx) error {
	var payload issueapimodels.ExportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := issuehandler.Instance.Export(middleware.GetCaller(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки реестра заявок")
	}
	fileName := fmt.Sprintf("issues-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Получение заявки
// @Tags Заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Success 200 {object} apimodels.Response{data=issueapimodels.IssueView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/issues/{id} [get]
func (c *issueApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := issuehandler.Instance.GetByID(middleware.GetCaller(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление заявки
// @Tags Заявки
// @Description Жилец может удалить свою заявку до первого назначения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Success 200 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @router /api/v1/issues/{id} [delete]
func (c *issueApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = issuehandler.Instance.Delete(ctx.UserContext(), middleware.GetCaller(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена статуса заявки
// @Tags Заявки
// @Description Переход по таблице статусов. Для Rejected обязателен комментарий (причина)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Param	body body	 issueapimodels.StatusChangeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=issueapimodels.IssueView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/issues/{id}/status [put]
func (c *issueApiController) changeStatus(ctx *fiber.Ctx) error {
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
	resp, err := issueflow.Instance.ChangeStatus(ctx.UserContext(), middleware.GetCaller(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отмена заявки
// @Tags Заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Param	body body	 issueapimodels.CancelData	true	"request body"
// @Success 200 {object} apimodels.Response{data=issueapimodels.IssueView}
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/issues/{id}/cancel [put]
func (c *issueApiController) cancel(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload issueapimodels.CancelData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := issueflow.Instance.Cancel(ctx.UserContext(), middleware.GetCaller(ctx), id, payload.Note)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отмены заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Доступные переходы
// @Tags Заявки
// @Description Статусы, в которые текущий пользователь может перевести заявку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Success 200 {object} apimodels.Response{data=[]issueapimodels.TransitionView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/issues/{id}/transitions [get]
func (c *issueApiController) transitions(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := issueflow.Instance.AllowedTransitions(middleware.GetCaller(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения доступных переходов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary История статусов
// @Tags Заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Success 200 {object} apimodels.Response{data=[]issueapimodels.StatusHistoryView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/issues/{id}/history [get]
func (c *issueApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := issuehandler.Instance.History(middleware.GetCaller(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Назначение подрядчика
// @Tags Заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Param	body body	 issueapimodels.AssignData	true	"request body"
// @Success 200 {object} apimodels.Response{data=issueapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/issues/{id}/assign [post]
func (c *issueApiController) assign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload issueapimodels.AssignData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assignmenthandler.Instance.AssignContractor(ctx.UserContext(), middleware.GetCaller(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка назначения подрядчика")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Назначения по заявке
// @Tags Заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Success 200 {object} apimodels.Response{data=[]issueapimodels.AssignmentView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/issues/{id}/assignments [get]
func (c *issueApiController) assignments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assignmenthandler.Instance.ListForIssue(middleware.GetCaller(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения назначений по заявке")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Добавление заметки
// @Tags Заявки. Заметки
// @Description Заметка управляющего, текст отправляется жильцу в уведомлении
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Param	body body	 issueapimodels.NoteData	true	"request body"
// @Success 200 {object} apimodels.Response{data=issueapimodels.NoteView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/issues/{id}/notes [post]
func (c *issueApiController) addNote(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload issueapimodels.NoteData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := issuenoteshandler.Instance.AddNote(middleware.GetCaller(ctx), id, payload.Body)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления заметки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список заметок
// @Tags Заявки. Заметки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Param   order          		query    string  				    	false         "asc|desc"
// @Success 200 {object} apimodels.Response{data=[]issueapimodels.NoteView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/issues/{id}/notes [get]
func (c *issueApiController) listNotes(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	desc := models.ParseSortOrder(ctx.Query("order")) == models.SortDesc
	resp, err := issuenoteshandler.Instance.ListNotes(middleware.GetCaller(ctx), id, desc)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заметок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Добавление комментария
// @Tags Заявки. Комментарии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Param	body body	 issueapimodels.NoteData	true	"request body"
// @Success 200 {object} apimodels.Response{data=issueapimodels.NoteView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/issues/{id}/comments [post]
func (c *issueApiController) addComment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload issueapimodels.NoteData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := issuenoteshandler.Instance.AddComment(middleware.GetCaller(ctx), id, payload.Body)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления комментария")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список комментариев
// @Tags Заявки. Комментарии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Param   order          		query    string  				    	false         "asc|desc"
// @Success 200 {object} apimodels.Response{data=[]issueapimodels.NoteView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/issues/{id}/comments [get]
func (c *issueApiController) listComments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	desc := models.ParseSortOrder(ctx.Query("order")) == models.SortDesc
	resp, err := issuenoteshandler.Instance.ListComments(middleware.GetCaller(ctx), id, desc)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения комментариев")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Оценка выполненной заявки
// @Tags Заявки. Оценка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Param	body body	 issueapimodels.RatingData	true	"request body"
// @Success 200 {object} apimodels.Response{data=issueapimodels.RatingView}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @router /api/v1/issues/{id}/rating [post]
func (c *issueApiController) submitRating(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload issueapimodels.RatingData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := ratinghandler.Instance.SubmitRating(middleware.GetCaller(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Оценка заявки
// @Tags Заявки. Оценка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "issue ID"
// @Success 200 {object} apimodels.Response{data=issueapimodels.RatingView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/issues/{id}/rating [get]
func (c *issueApiController) getRating(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := ratinghandler.Instance.Get(middleware.GetCaller(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
