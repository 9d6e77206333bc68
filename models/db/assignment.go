package dbmodels

import (
	"facility-desk-backend/models"
	"time"
)

type Assignment struct {
	BaseModel
	// на одну заявку может быть только одно активное назначение
	IssueID          uint                    `gorm:"index:idx_assignment_issue;uniqueIndex:idx_assignment_active_issue,where:is_active = true"`
	Issue            *Issue                  `gorm:"foreignKey:IssueID"`
	ContractorID     uint                    `gorm:"index"`
	Contractor       *User                   `gorm:"foreignKey:ContractorID"`
	ManagerID        uint
	Manager          *User                   `gorm:"foreignKey:ManagerID"`
	Status           models.AssignmentStatus `gorm:"type:varchar(50)"`
	IsActive         bool
	EstimatedCost    *float64
	ActualCost       *float64
	PlannedDate      *time.Time
	RejectionReason  string
	WarrantyDocument string `gorm:"type:varchar(1024)"`
	CompletedAt      *time.Time
	RejectedAt       *time.Time
}
