package filestorage

import (
	"context"
	"facility-desk-backend/config"
	"facility-desk-backend/lib/rbac"
	"facility-desk-backend/models"
	s3client "facility-desk-backend/s3"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Upload возвращает ссылку на файл для полей заявки, назначения и заявки на роль
	Upload(ctx context.Context, caller models.Caller, kind models.FileKind, fileName string, reader io.Reader, size int64, contentType string) (string, error)
}

var Instance Provider

type objectStorage interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

func NewHandler() {
	if s3client.Client == nil {
		Instance = nil
		return
	}
	Instance = impl{
		storage:    s3client.Client,
		bucketName: config.Conf.S3.BucketName,
	}
}

type impl struct {
	storage    objectStorage
	bucketName string
}

func (i impl) Upload(ctx context.Context, caller models.Caller, kind models.FileKind, fileName string, reader io.Reader, size int64, contentType string) (string, error) {
	if err := rbac.Require(caller, models.CapFileUpload); err != nil {
		return "", err
	}
	if !kind.IsValid() {
		return "", models.NewErrorf(models.KindOutOfRange, "неизвестный вид файла: %v", kind)
	}
	if !kind.AllowedFor(caller.Role) {
		return "", models.ErrForbidden()
	}
	if size <= 0 {
		return "", models.NewError(models.KindEmptyContent, "файл пустой")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ref := objectKey(kind, fileName)
	logger := log.
		WithField("user_id", caller.UserID).
		WithField("file_ref", ref)
	_, err := i.storage.PutObject(ctx, i.bucketName, ref, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"uploaded-by": fmt.Sprint(caller.UserID),
		},
	})
	if err != nil {
		logger.WithError(err).Error("ошибка загрузки файла")
		return "", models.Unavailable(err, "ошибка загрузки файла")
	}
	logger.Info("файл загружен")
	return ref, nil
}

func objectKey(kind models.FileKind, fileName string) string {
	return fmt.Sprintf("%s/%s%s", kind, uuid.NewString(), strings.ToLower(filepath.Ext(fileName)))
}
