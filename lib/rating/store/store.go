package ratingstore

import (
	dbmodels "facility-desk-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Rating) (id uint, err error)
	GetByIssue(issueID uint) (*dbmodels.Rating, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Rating) (id uint, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByIssue(issueID uint) (*dbmodels.Rating, error) {
	rec := dbmodels.Rating{}
	err := i.db.
		Where("issue_id = ?", issueID).
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
