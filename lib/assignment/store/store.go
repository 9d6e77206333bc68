package assignmentstore

import (
	dbmodels "facility-desk-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Assignment) (uint, error)
	GetByID(id uint) (*dbmodels.Assignment, error)
	Update(id uint, updMap map[string]interface{}) error
	GetActiveForIssue(issueID uint) (*dbmodels.Assignment, error)
	ListForIssue(issueID uint) (list []dbmodels.Assignment, err error)
	ListByContractor(contractorID uint, activeOnly bool, page, limit int) (list []dbmodels.Assignment, rowCount int64, err error)
	CountActiveByContractor(contractorID uint) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Assignment) (uint, error) {
	err := i.db.
		Omit("Issue", "Contractor", "Manager").
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.Assignment, error) {
	rec := dbmodels.Assignment{}
	err := i.db.
		Where("id = ?", id).
		Preload("Issue").
		Preload("Contractor").
		Preload("Manager").
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

func (i impl) Update(id uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.Assignment{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) GetActiveForIssue(issueID uint) (*dbmodels.Assignment, error) {
	rec := dbmodels.Assignment{}
	err := i.db.
		Where("issue_id = ?", issueID).
		Where("is_active = ?", true).
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

func (i impl) ListForIssue(issueID uint) (list []dbmodels.Assignment, err error) {
	list = []dbmodels.Assignment{}
	err = i.db.
		Where("issue_id = ?", issueID).
		Preload("Contractor").
		Preload("Manager").
		Order("id ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByContractor(contractorID uint, activeOnly bool, page, limit int) (list []dbmodels.Assignment, rowCount int64, err error) {
	list = []dbmodels.Assignment{}
	tx := i.db.Model(&dbmodels.Assignment{}).
		Where("contractor_id = ?", contractorID)
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	err = tx.
		Preload("Issue").
		Preload("Manager").
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) CountActiveByContractor(contractorID uint) (int64, error) {
	var count int64
	err := i.db.Model(&dbmodels.Assignment{}).
		Where("contractor_id = ?", contractorID).
		Where("is_active = ?", true).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
