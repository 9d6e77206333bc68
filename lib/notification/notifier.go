package notificationhandler

import (
	notificationstore "facility-desk-backend/lib/notification/store"
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"

	"gorm.io/gorm"
)

// Ref объекты, к которым относится уведомление
type Ref struct {
	IssueID       *uint
	AssignmentID  *uint
	RoleRequestID *uint
}

// Notifier пишет уведомления в транзакции события
type Notifier interface {
	Notify(recipientID uint, data models.NotificationData, ref Ref) error
	// Created уведомления для публикации после коммита
	Created() []dbmodels.Notification
}

func NewNotifier(tx *gorm.DB) Notifier {
	return &notifier{
		store: notificationstore.NewInstance(tx),
	}
}

type notifier struct {
	store   notificationstore.Provider
	created []dbmodels.Notification
}

func (n *notifier) Notify(recipientID uint, data models.NotificationData, ref Ref) error {
	rec := dbmodels.Notification{
		RecipientID:   recipientID,
		Code:          data.Code,
		Title:         data.Title,
		Msg:           data.Msg,
		IssueID:       ref.IssueID,
		AssignmentID:  ref.AssignmentID,
		RoleRequestID: ref.RoleRequestID,
		OldStatus:     data.OldStatus,
		NewStatus:     data.NewStatus,
		ActorName:     data.ActorName,
	}
	rec, err := n.store.Create(rec)
	if err != nil {
		return models.Unavailable(err, "ошибка сохранения уведомления")
	}
	n.created = append(n.created, rec)
	return nil
}

func (n *notifier) Created() []dbmodels.Notification {
	return n.created
}
