package issueflow

import (
	"context"
	"facility-desk-backend/config"
	"facility-desk-backend/db"
	notificationhandler "facility-desk-backend/lib/notification"
	"facility-desk-backend/lib/utils/lock"
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"
	"time"

	"gorm.io/gorm"
)

// Execute выполняет fn под блокировкой заявки в одной транзакции.
// Уведомления публикуются в websocket после коммита
func Execute(ctx context.Context, issueID uint, fn func(tx *gorm.DB, notifier notificationhandler.Notifier) error) error {
	wait := time.Duration(config.Conf.Workflow.IssueLockWaitMs) * time.Millisecond
	var created []dbmodels.Notification
	locked, err := lock.WithDelay(ctx, lock.IssueKey(issueID), wait, func() error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			notifier := notificationhandler.NewNotifier(tx)
			if err := fn(tx, notifier); err != nil {
				return err
			}
			created = notifier.Created()
			return nil
		})
	})
	if err != nil {
		return models.Unavailable(err, "ошибка изменения заявки")
	}
	if !locked {
		return models.NewError(models.KindConflict, "заявка изменяется другим пользователем, повторите попытку")
	}
	notificationhandler.Instance.Publish(created)
	return nil
}
