package dbmodels

import (
	"facility-desk-backend/models"
)

type IssueStatusHistory struct {
	AppendOnlyModel
	IssueID    uint               `gorm:"index"`
	FromStatus models.IssueStatus `gorm:"type:varchar(50)"`
	ToStatus   models.IssueStatus `gorm:"type:varchar(50)"`
	// nil - системный переход
	ActorID   *uint
	ActorName string          `gorm:"type:varchar(255)"`
	ActorRole models.UserRole `gorm:"type:varchar(50)"`
	Comment   string
}
