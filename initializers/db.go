package initializers

import (
	"facility-desk-backend/config"
	"facility-desk-backend/db"
	"time"

	log "github.com/sirupsen/logrus"
)

func InitDBConnection() {
	dbConf := config.Conf.Database
	attempts := max(dbConf.ConnectRetries, 1)
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = db.Connect(dbConf.Host, dbConf.Port, dbConf.Name, dbConf.User, dbConf.Password,
			*dbConf.DebugMode, *dbConf.MigrateOnStart)
		if err == nil {
			break
		}
		log.WithError(err).
			WithField("host", dbConf.Host).
			WithField("attempt", attempt).
			Warn("БД недоступна")
		if attempt < attempts {
			time.Sleep(time.Duration(dbConf.RetryDelaySec) * time.Second)
		}
	}
	if err != nil {
		panic(err.Error())
	}
	if dbConf.MaxOpenConns > 0 {
		sqlDB, err := db.DB.DB()
		if err != nil {
			panic(err.Error())
		}
		sqlDB.SetMaxOpenConns(dbConf.MaxOpenConns)
		sqlDB.SetMaxIdleConns(dbConf.MaxOpenConns / 2)
	}

	db.InitPreload()
}
