package notestore

import (
	dbmodels "facility-desk-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Note) (id uint, err error)
	GetByID(id uint) (*dbmodels.Note, error)
	List(issueID uint, desc bool) (list []dbmodels.Note, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Note) (id uint, err error) {
	err = i.db.
		Omit("Author").
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.Note, error) {
	list := []dbmodels.Note{}
	err := i.db.
		Where("id = ?", id).
		Preload("Author").
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

func (i impl) List(issueID uint, desc bool) (list []dbmodels.Note, err error) {
	list = []dbmodels.Note{}
	order := "id ASC"
	if desc {
		order = "id DESC"
	}
	err = i.db.
		Where("issue_id = ?", issueID).
		Preload("Author").
		Order(order).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
