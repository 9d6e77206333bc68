package usersstore

import (
	"facility-desk-backend/models"
	userapimodels "facility-desk-backend/models/api/user"
	dbmodels "facility-desk-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.User) (uint, error)
	Update(userID uint, updMap map[string]interface{}) error
	GetByID(userID uint) (rec *dbmodels.User, err error)
	FindByEmail(email string) (rec *dbmodels.User, err error)
	List(filter userapimodels.UserFilter) (list []dbmodels.User, err error)
	// LockForUpdate блокирует строку пользователя до конца транзакции
	LockForUpdate(userID uint) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (uint, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) Update(userID uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", userID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) GetByID(userID uint) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("id = ?", userID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) FindByEmail(email string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) List(filter userapimodels.UserFilter) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	tx := i.db.Model(dbmodels.User{}).
		Where("is_active = ?", true)
	if filter.Role != "" {
		tx = tx.Where("role = ?", filter.Role)
	}
	if filter.AvailableOnly {
		tx = tx.Where("role = ?", models.ContractorRole).
			Where("is_available = ?", true)
	}
	if filter.Search != "" {
		tx = tx.Where("LOWER(first_name || ' ' || last_name) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	err = tx.
		Order("last_name ASC").
		Order("id ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) LockForUpdate(userID uint) error {
	var id uint
	err := i.db.Model(&dbmodels.User{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", userID).
		Take(&id).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка блокировки пользователя")
	}
	return nil
}
