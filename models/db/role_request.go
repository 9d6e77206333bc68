package dbmodels

import (
	"facility-desk-backend/models"
	"time"
)

type RoleRequest struct {
	BaseModel
	UserID        uint                     `gorm:"index;uniqueIndex:idx_role_request_pending_user,where:status = 'Pending'"`
	User          *User                    `gorm:"foreignKey:UserID"`
	CurrentRole   models.UserRole          `gorm:"type:varchar(50)"`
	RequestedRole models.UserRole          `gorm:"type:varchar(50)"`
	Motivation    string
	CvDocument    string                   `gorm:"type:varchar(1024)"`
	Status        models.RoleRequestStatus `gorm:"type:varchar(50);index"`
	AdminID       *uint
	AdminNotes    string
	ResolvedAt    *time.Time
}
