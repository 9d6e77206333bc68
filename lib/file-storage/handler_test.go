package filestorage

import (
	"context"
	"facility-desk-backend/models"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	keys        []string
	contentType string
	err         error
}

func (f *fakeStorage) PutObject(_ context.Context, _, objectName string, reader io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	if _, err := io.ReadAll(reader); err != nil {
		return minio.UploadInfo{}, err
	}
	f.keys = append(f.keys, objectName)
	f.contentType = opts.ContentType
	return minio.UploadInfo{Key: objectName}, nil
}

func TestUpload(t *testing.T) {
	tenant := models.Caller{UserID: 1, Role: models.TenantRole}
	contractor := models.Caller{UserID: 2, Role: models.ContractorRole}
	admin := models.Caller{UserID: 3, Role: models.AdminRole}

	t.Run("фото заявки", func(t *testing.T) {
		storage := &fakeStorage{}
		h := impl{storage: storage, bucketName: "facility-desk"}
		ref, err := h.Upload(context.Background(), tenant, models.FileKindIssueImage, "Leak.JPG", strings.NewReader("img"), 3, "image/jpeg")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(ref, "issue_image/"))
		require.True(t, strings.HasSuffix(ref, ".jpg"))
		require.Equal(t, []string{ref}, storage.keys)
		require.Equal(t, "image/jpeg", storage.contentType)
	})
	t.Run("ссылки уникальны", func(t *testing.T) {
		storage := &fakeStorage{}
		h := impl{storage: storage, bucketName: "facility-desk"}
		ref1, err := h.Upload(context.Background(), contractor, models.FileKindWarranty, "act.pdf", strings.NewReader("1"), 1, "")
		require.NoError(t, err)
		ref2, err := h.Upload(context.Background(), contractor, models.FileKindWarranty, "act.pdf", strings.NewReader("1"), 1, "")
		require.NoError(t, err)
		require.NotEqual(t, ref1, ref2)
		require.Equal(t, "application/octet-stream", storage.contentType)
	})
	t.Run("вид файла недоступен роли", func(t *testing.T) {
		h := impl{storage: &fakeStorage{}}
		_, err := h.Upload(context.Background(), tenant, models.FileKindWarranty, "act.pdf", strings.NewReader("1"), 1, "")
		require.True(t, models.IsKind(err, models.KindForbidden))
	})
	t.Run("администратор не загружает файлы", func(t *testing.T) {
		h := impl{storage: &fakeStorage{}}
		_, err := h.Upload(context.Background(), admin, models.FileKindCV, "cv.pdf", strings.NewReader("1"), 1, "")
		require.True(t, models.IsKind(err, models.KindForbidden))
	})
	t.Run("неизвестный вид", func(t *testing.T) {
		h := impl{storage: &fakeStorage{}}
		_, err := h.Upload(context.Background(), tenant, models.FileKind("video"), "a.mp4", strings.NewReader("1"), 1, "")
		require.True(t, models.IsKind(err, models.KindOutOfRange))
	})
	t.Run("пустой файл", func(t *testing.T) {
		h := impl{storage: &fakeStorage{}}
		_, err := h.Upload(context.Background(), tenant, models.FileKindCV, "cv.pdf", strings.NewReader(""), 0, "")
		require.True(t, models.IsKind(err, models.KindEmptyContent))
	})
	t.Run("хранилище недоступно", func(t *testing.T) {
		h := impl{storage: &fakeStorage{err: errors.New("connection refused")}}
		_, err := h.Upload(context.Background(), tenant, models.FileKindCV, "cv.pdf", strings.NewReader("1"), 1, "")
		require.True(t, models.IsKind(err, models.KindUnavailable))
	})
}
