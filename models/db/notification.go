package dbmodels

import (
	"facility-desk-backend/models"
	"time"
)

type Notification struct {
	AppendOnlyModel
	RecipientID   uint                    `gorm:"index:idx_notification_recipient"`
	Code          models.NotificationCode `gorm:"type:varchar(100)"`
	Title         string
	Msg           string
	IssueID       *uint
	AssignmentID  *uint
	RoleRequestID *uint
	OldStatus     models.IssueStatus `gorm:"type:varchar(50)"`
	NewStatus     models.IssueStatus `gorm:"type:varchar(50)"`
	ActorName     string             `gorm:"type:varchar(255)"`
	IsRead        bool               `gorm:"index:idx_notification_recipient"`
	ReadAt        *time.Time
}
