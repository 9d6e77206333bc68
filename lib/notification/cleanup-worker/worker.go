package notificationcleanupworker

import (
	"context"
	"facility-desk-backend/config"
	notificationhandler "facility-desk-backend/lib/notification"
	baseworker "facility-desk-backend/lib/utils/base-worker"
	"facility-desk-backend/lib/utils/helpers"
	"time"
)

const (
	firstDelay  = time.Minute
	runInterval = 6 * time.Hour
)

func StartWorker(ctx context.Context) {
	if config.Conf.Workflow.NotificationRetentionDays <= 0 {
		return
	}
	w := baseworker.NewInstance("notification-cleanup", firstDelay, runInterval)
	go w.Run(ctx, func(ctx context.Context) {
		if helpers.IsContextDone(ctx) {
			return
		}
		handle(w)
	})
}

func handle(w *baseworker.BaseImpl) {
	count, err := notificationhandler.Instance.Cleanup(config.Conf.Workflow.NotificationRetentionDays)
	if err != nil {
		w.GetLogger().WithError(err).Error("ошибка удаления старых уведомлений")
		return
	}
	if count > 0 {
		w.GetLogger().WithField("count", count).Info("удалены прочитанные уведомления")
	}
}
