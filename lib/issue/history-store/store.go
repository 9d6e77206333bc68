package issuehistorystore

import (
	dbmodels "facility-desk-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.IssueStatusHistory) (id uint, err error)
	List(issueID uint) (list []dbmodels.IssueStatusHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.IssueStatusHistory) (id uint, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) List(issueID uint) (list []dbmodels.IssueStatusHistory, err error) {
	list = []dbmodels.IssueStatusHistory{}
	err = i.db.
		Where("issue_id = ?", issueID).
		Order("id ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
