package db

import (
	dbmodels "facility-desk-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func AutoMigrateDB(tx *gorm.DB) error {
	log.Info("Запуск миграций")
	if err := tx.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := tx.AutoMigrate(&dbmodels.Issue{}, &dbmodels.IssueImage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Issue")
	}
	if err := tx.AutoMigrate(&dbmodels.Assignment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Assignment")
	}
	if err := tx.AutoMigrate(&dbmodels.IssueStatusHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры IssueStatusHistory")
	}
	if err := tx.AutoMigrate(&dbmodels.Note{}, &dbmodels.Comment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Note/Comment")
	}
	if err := tx.AutoMigrate(&dbmodels.Rating{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Rating")
	}
	if err := tx.AutoMigrate(&dbmodels.RoleRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RoleRequest")
	}
	if err := tx.AutoMigrate(&dbmodels.Notification{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Notification")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
