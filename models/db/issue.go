package dbmodels

import (
	"facility-desk-backend/models"

	"gorm.io/gorm"
)

type Issue struct {
	BaseModel
	TenantID    uint  `gorm:"index"`
	Tenant      *User `gorm:"foreignKey:TenantID"`
	Title       string `gorm:"type:varchar(255)"`
	Description string
	Category    models.IssueCategory `gorm:"type:varchar(50);index"`
	Location    string               `gorm:"type:varchar(255)"`
	Status      models.IssueStatus   `gorm:"type:varchar(50);index"`
	// счетчик изменений для оптимистичной блокировки
	Version int `gorm:"not null"`
	// текущее (не отклоненное) назначение, nil - можно назначать
	CurrentAssignmentID *uint
	CurrentAssignment   *Assignment  `gorm:"foreignKey:CurrentAssignmentID"`
	Images              []IssueImage `gorm:"foreignKey:IssueID"`
}

type IssueImage struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	IssueID uint   `gorm:"index"`
	Ref     string `gorm:"type:varchar(1024)"`
}

// ActiveContractorID подрядчик активного назначения
func (r Issue) ActiveContractorID() (uint, bool) {
	if r.CurrentAssignment == nil || !r.CurrentAssignment.IsActive {
		return 0, false
	}
	return r.CurrentAssignment.ContractorID, true
}

func (r *Issue) AfterDelete(tx *gorm.DB) (err error) {
	if r.ID == 0 {
		return nil
	}
	if err = tx.Where("issue_id = ?", r.ID).Delete(&IssueImage{}).Error; err != nil {
		return err
	}
	if err = tx.Where("issue_id = ?", r.ID).Delete(&Comment{}).Error; err != nil {
		return err
	}
	if err = tx.Where("issue_id = ?", r.ID).Delete(&Note{}).Error; err != nil {
		return err
	}
	return tx.Where("issue_id = ?", r.ID).Delete(&IssueStatusHistory{}).Error
}
