package initializers

import (
	"context"
	"facility-desk-backend/config"
	"facility-desk-backend/db"
	"facility-desk-backend/fiberlog"
	assignmenthandler "facility-desk-backend/lib/assignment"
	xlsexport "facility-desk-backend/lib/export/xls"
	filestorage "facility-desk-backend/lib/file-storage"
	"facility-desk-backend/lib/identity"
	issuehandler "facility-desk-backend/lib/issue"
	issueflow "facility-desk-backend/lib/issue-flow"
	issuenoteshandler "facility-desk-backend/lib/issue-notes"
	notificationhandler "facility-desk-backend/lib/notification"
	notificationcleanupworker "facility-desk-backend/lib/notification/cleanup-worker"
	notificationstore "facility-desk-backend/lib/notification/store"
	ratinghandler "facility-desk-backend/lib/rating"
	"facility-desk-backend/lib/rbac"
	rolerequesthandler "facility-desk-backend/lib/role-request"
	"facility-desk-backend/lib/users"
	connectionhub "facility-desk-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init(notificationstore.NewInstance(db.DB))
	// порядок важен: обработчики проверяют зависимости при создании
	notificationhandler.NewHandler()
	xlsexport.NewHandler()
	identity.NewHandler()
	rbac.NewHandler()
	users.NewHandler()
	issueflow.NewHandler()
	issuehandler.NewHandler()
	assignmenthandler.NewHandler()
	issuenoteshandler.NewHandler()
	ratinghandler.NewHandler()
	rolerequesthandler.NewHandler()
	filestorage.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача удаления прочитанных уведомлений старше срока хранения
	notificationcleanupworker.StartWorker(ctx)
}
