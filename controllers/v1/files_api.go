package apiv1

import (
	"facility-desk-backend/controllers"
	filestorage "facility-desk-backend/lib/file-storage"
	"facility-desk-backend/middleware"
	"facility-desk-backend/models"
	apimodels "facility-desk-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// максимальный размер загружаемого файла
const maxFileSize = 20 * 1024 * 1024

type fileApiController struct {
	controllers.BaseAPIController
}

type FileRefView struct {
	Ref string `json:"ref"` // ссылка для полей images, warranty_document, cv_document
}

func InitFileApiRouters(app fiber.Router) {
	controller := fileApiController{}
	app.Route("files", func(router fiber.Router) {
		router.Use(middleware.WithBodyLimit(maxFileSize))
		router.Post(":kind", controller.upload)
	})
}

// @Summary Загрузка файла
// @Tags Файлы
// @Description kind: issue_image | warranty | cv
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   kind          		path    string  				    	true         "вид файла"
// @Param   file          		formData    file  				    	true         "файл"
// @Success 200 {object} apimodels.Response{data=FileRefView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 413 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/files/{kind} [post]
func (c *fileApiController) upload(ctx *fiber.Ctx) error {
	if filestorage.Instance == nil {
		return ctx.Status(fiber.StatusServiceUnavailable).
			JSON(apimodels.NewErrorWithCode(string(models.KindUnavailable), "файловое хранилище не настроено"))
	}
	kind := models.FileKind(ctx.Params("kind"))
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("Ошибка при получении файла")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()
	ref, err := filestorage.Instance.Upload(ctx.UserContext(), middleware.GetCaller(ctx), kind, file.Filename, buffer, file.Size, file.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки файла")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(FileRefView{Ref: ref}))
}
