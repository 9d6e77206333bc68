package db

import (
	"facility-desk-backend/config"
	usersstore "facility-desk-backend/lib/users/store"
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	addAdmin()
}

func addAdmin() {
	if config.Conf.Bootstrap.AdminEmail == "" {
		log.Warn("администратор не добавлен, отсутвует настройка ADMIN_EMAIL")
		return
	}
	userStore := usersstore.NewInstance(DB)
	existedRec, err := userStore.FindByEmail(config.Conf.Bootstrap.AdminEmail)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	if existedRec != nil {
		return
	}
	rec := dbmodels.User{
		Email:     config.Conf.Bootstrap.AdminEmail,
		FirstName: config.Conf.Bootstrap.AdminFirstName,
		LastName:  config.Conf.Bootstrap.AdminLastName,
		Role:      models.AdminRole,
		IsActive:  true,
	}
	_, err = userStore.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	log.WithField("email", rec.Email).Info("администратор добавлен")
}
