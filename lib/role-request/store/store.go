package rolerequeststore

import (
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.RoleRequest) (id uint, err error)
	GetByID(id uint) (*dbmodels.RoleRequest, error)
	FindPending(userID uint) (*dbmodels.RoleRequest, error)
	List(userID *uint, status models.RoleRequestStatus) (list []dbmodels.RoleRequest, err error)
	// Resolve false - заявка уже рассмотрена
	Resolve(id, adminID uint, decision models.RoleRequestStatus, adminNotes string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RoleRequest) (id uint, err error) {
	err = i.db.
		Omit("User").
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.RoleRequest, error) {
	rec := dbmodels.RoleRequest{}
	err := i.db.
		Where("id = ?", id).
		Preload("User").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindPending(userID uint) (*dbmodels.RoleRequest, error) {
	list := []dbmodels.RoleRequest{}
	err := i.db.
		Where("user_id = ?", userID).
		Where("status = ?", models.RoleRequestPending).
		Limit(1).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (i impl) List(userID *uint, status models.RoleRequestStatus) (list []dbmodels.RoleRequest, err error) {
	list = []dbmodels.RoleRequest{}
	tx := i.db.Model(&dbmodels.RoleRequest{})
	if userID != nil {
		tx = tx.Where("user_id = ?", *userID)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err = tx.
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Resolve(id, adminID uint, decision models.RoleRequestStatus, adminNotes string) (bool, error) {
	now := time.Now()
	result := i.db.
		Model(&dbmodels.RoleRequest{}).
		Where("id = ?", id).
		Where("status = ?", models.RoleRequestPending).
		Updates(map[string]interface{}{
			"status":      decision,
			"admin_id":    adminID,
			"admin_notes": adminNotes,
			"resolved_at": now,
			"updated_at":  now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
