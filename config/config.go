package config

import (
	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"facility-desk" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
		ConnectRetries int    `default:"5" env:"DB_CONNECT_RETRIES"`
		RetryDelaySec  int    `default:"2" env:"DB_RETRY_DELAY_SEC"`
		MaxOpenConns   int    `default:"20" env:"DB_MAX_OPEN_CONNS"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"facility-desk" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Workflow struct {
		// 0 - без ограничения
		ContractorConcurrencyLimit  int `default:"0" env:"WORKFLOW_CONTRACTOR_CONCURRENCY_LIMIT"`
		IssueLockWaitMs             int `default:"3000" env:"WORKFLOW_ISSUE_LOCK_WAIT_MS"`
		NotificationPollIntervalSec int `default:"30" env:"WORKFLOW_NOTIFICATION_POLL_INTERVAL_SEC"`
		// 0 - не удалять
		NotificationRetentionDays int `default:"90" env:"WORKFLOW_NOTIFICATION_RETENTION_DAYS"`
	}
	Bootstrap struct {
		AdminEmail     string `default:"" env:"ADMIN_EMAIL"`
		AdminFirstName string `default:"Администратор" env:"ADMIN_FIRST_NAME"`
		AdminLastName  string `default:"" env:"ADMIN_LAST_NAME"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	// .env не обязателен
	if err := godotenv.Load(); err != nil {
		log.Debug("файл .env не найден, используются переменные окружения")
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
