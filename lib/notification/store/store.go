package notificationstore

import (
	dbmodels "facility-desk-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Notification) (dbmodels.Notification, error)
	GetByID(recipientID, id uint) (*dbmodels.Notification, error)
	List(recipientID uint, unreadOnly bool, page, limit int) (list []dbmodels.Notification, rowCount int64, err error)
	ListUnread(recipientID uint, limit int) (list []dbmodels.Notification, err error)
	UnreadCount(recipientID uint) (int64, error)
	MarkRead(recipientID, id uint) error
	MarkAllRead(recipientID uint) (int64, error)
	DeleteReadBefore(before time.Time) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (dbmodels.Notification, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return rec, err
	}
	return rec, nil
}

func (i impl) GetByID(recipientID, id uint) (*dbmodels.Notification, error) {
	rec := dbmodels.Notification{}
	err := i.db.
		Where("id = ?", id).
		Where("recipient_id = ?", recipientID).
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

func (i impl) List(recipientID uint, unreadOnly bool, page, limit int) (list []dbmodels.Notification, rowCount int64, err error) {
	list = []dbmodels.Notification{}
	tx := i.db.Model(&dbmodels.Notification{}).
		Where("recipient_id = ?", recipientID)
	if unreadOnly {
		tx = tx.Where("is_read = ?", false)
	}
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("created_at DESC").
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

func (i impl) ListUnread(recipientID uint, limit int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	err = i.db.
		Where("recipient_id = ?", recipientID).
		Where("is_read = ?", false).
		Order("id ASC").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := i.db.Model(&dbmodels.Notification{}).
		Where("recipient_id = ?", recipientID).
		Where("is_read = ?", false).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) MarkRead(recipientID, id uint) error {
	return i.db.Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Where("recipient_id = ?", recipientID).
		Where("is_read = ?", false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).
		Error
}

func (i impl) MarkAllRead(recipientID uint) (int64, error) {
	result := i.db.Model(&dbmodels.Notification{}).
		Where("recipient_id = ?", recipientID).
		Where("is_read = ?", false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (i impl) DeleteReadBefore(before time.Time) (int64, error) {
	result := i.db.
		Where("is_read = ?", true).
		Where("created_at < ?", before).
		Delete(&dbmodels.Notification{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
