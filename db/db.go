package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// GormConfig общие настройки для сервиса и тестов
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gorm_logrus.New(),
		TranslateError: true,
		// связи между таблицами контролируются кодом, FK не создаем
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

func Connect(host string, port string, database string, user string, pass string, debugMode bool, migrate bool) error {
	if DB != nil {
		return nil
	}
	dbConnString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", host, port, user, database, pass)
	conn, err := gorm.Open(postgres.Open(dbConnString), GormConfig())
	if err != nil {
		return errors.Wrap(err, "Ошибка подключения к БД")
	}
	if debugMode {
		conn.Logger = logger.Default.LogMode(logger.Info)
		conn = conn.Debug()
	}
	if migrate {
		if err = AutoMigrateDB(conn); err != nil {
			return err
		}
	}
	// DB назначается только после успешных миграций, повторный вызов подключается заново
	DB = conn
	log.Info("Сервис успешно подключен к БД")
	return nil
}

func PingDB() error {
	db, err := DB.DB()
	if err != nil {
		return err
	}
	if err = db.Ping(); err != nil {
		return err
	}
	return nil
}
