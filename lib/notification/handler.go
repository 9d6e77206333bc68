package notificationhandler

import (
	"facility-desk-backend/db"
	notificationstore "facility-desk-backend/lib/notification/store"
	connectionhub "facility-desk-backend/lib/ws/hub/connection-hub"
	"facility-desk-backend/models"
	notificationapimodels "facility-desk-backend/models/api/notification"
	dbmodels "facility-desk-backend/models/db"
	wsmodels "facility-desk-backend/models/ws"
	"time"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List(caller models.Caller, filter notificationapimodels.NotificationFilter) (list []notificationapimodels.NotificationView, rowCount int64, err error)
	UnreadCount(caller models.Caller) (int64, error)
	MarkRead(caller models.Caller, notificationID uint) error
	MarkAllRead(caller models.Caller) error
	// Publish отправка в websocket без гарантии доставки
	Publish(list []dbmodels.Notification)
	// Cleanup удаление прочитанных уведомлений старше retentionDays
	Cleanup(retentionDays int) (int64, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: notificationstore.NewInstance(db.DB),
		hub:   connectionhub.Instance,
	}
}

type impl struct {
	store notificationstore.Provider
	hub   connectionhub.Provider
}

func (i impl) getLogger(userID uint) *log.Entry {
	return log.WithField("user_id", userID)
}

func (i impl) List(caller models.Caller, filter notificationapimodels.NotificationFilter) ([]notificationapimodels.NotificationView, int64, error) {
	page, limit := filter.GetPage()
	list, rowCount, err := i.store.List(caller.UserID, filter.UnreadOnly, page, limit)
	if err != nil {
		return nil, 0, models.Unavailable(err, "ошибка получения списка уведомлений")
	}
	result := make([]notificationapimodels.NotificationView, 0, len(list))
	for _, rec := range list {
		result = append(result, notificationapimodels.NotificationConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) UnreadCount(caller models.Caller) (int64, error) {
	count, err := i.store.UnreadCount(caller.UserID)
	if err != nil {
		return 0, models.Unavailable(err, "ошибка получения количества уведомлений")
	}
	return count, nil
}

func (i impl) MarkRead(caller models.Caller, notificationID uint) error {
	rec, err := i.store.GetByID(caller.UserID, notificationID)
	if err != nil {
		return models.Unavailable(err, "ошибка получения уведомления")
	}
	if rec == nil {
		return models.ErrNotFound("уведомление")
	}
	if rec.IsRead {
		return nil
	}
	if err = i.store.MarkRead(caller.UserID, notificationID); err != nil {
		return models.Unavailable(err, "ошибка отметки уведомления")
	}
	return nil
}

func (i impl) MarkAllRead(caller models.Caller) error {
	count, err := i.store.MarkAllRead(caller.UserID)
	if err != nil {
		return models.Unavailable(err, "ошибка отметки уведомлений")
	}
	i.getLogger(caller.UserID).WithField("count", count).Debug("уведомления прочитаны")
	return nil
}

func (i impl) Publish(list []dbmodels.Notification) {
	if i.hub == nil {
		return
	}
	for _, rec := range list {
		i.hub.SendMessage(wsmodels.NotificationConvert(rec))
	}
}

func (i impl) Cleanup(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	before := time.Now().AddDate(0, 0, -retentionDays)
	count, err := i.store.DeleteReadBefore(before)
	if err != nil {
		return 0, models.Unavailable(err, "ошибка удаления уведомлений")
	}
	return count, nil
}
