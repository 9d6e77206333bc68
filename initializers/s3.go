package initializers

import (
	"context"
	"facility-desk-backend/config"
	s3client "facility-desk-backend/s3"

	log "github.com/sirupsen/logrus"
)

// InitS3 без настроенного хранилища загрузка файлов отключается
func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("хранилище файлов не настроено, отсутствует настройка S3_ENDPOINT")
		return
	}
	if err := s3client.Connect(ctx); err != nil {
		log.WithError(err).Error("ошибка инициализации клиента S3")
		return
	}
	log.Info("S3 клиент успешно инициализирован")
}
