package issuestore

import (
	issueapimodels "facility-desk-backend/models/api/issue"
	dbmodels "facility-desk-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ListScope ограничение видимости списка заявок
type ListScope struct {
	TenantID     *uint // только заявки жильца
	ContractorID *uint // только заявки с назначением на подрядчика
}

type Provider interface {
	Create(rec dbmodels.Issue) (uint, error)
	GetByID(id uint) (*dbmodels.Issue, error)
	// UpdateVersioned обновление с проверкой версии, false - запись изменена другим запросом
	UpdateVersioned(id uint, version int, updMap map[string]interface{}) (bool, error)
	Delete(id uint) error
	List(scope ListScope, filter issueapimodels.IssueFilter) (list []dbmodels.Issue, rowCount int64, err error)
	ListForExport(filter issueapimodels.ExportFilter) (list []dbmodels.Issue, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Issue) (uint, error) {
	err := i.db.
		Omit("Tenant", "CurrentAssignment").
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.Issue, error) {
	rec := dbmodels.Issue{}
	err := i.db.
		Where("id = ?", id).
		Preload("Tenant").
		Preload("Images").
		Preload("CurrentAssignment").
		Preload("CurrentAssignment.Contractor").
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

func (i impl) UpdateVersioned(id uint, version int, updMap map[string]interface{}) (bool, error) {
	updMap["version"] = gorm.Expr("version + 1")
	result := i.db.
		Model(&dbmodels.Issue{}).
		Where("id = ?", id).
		Where("version = ?", version).
		Updates(updMap)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (i impl) Delete(id uint) error {
	rec := dbmodels.Issue{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) List(scope ListScope, filter issueapimodels.IssueFilter) (list []dbmodels.Issue, rowCount int64, err error) {
	list = []dbmodels.Issue{}
	tx := i.db.Model(&dbmodels.Issue{})
	if scope.TenantID != nil {
		tx = tx.Where("tenant_id = ?", *scope.TenantID)
	}
	if scope.ContractorID != nil {
		tx = tx.Where("id in (select issue_id from assignments where contractor_id = ?)", *scope.ContractorID)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("(LOWER(title) like ? OR LOWER(location) like ?)", search, search)
	}
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	_, limit := filter.GetPage()
	err = tx.
		Preload("Tenant").
		Preload("Images").
		Preload("CurrentAssignment").
		Preload("CurrentAssignment.Contractor").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(filter.GetOffset()).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListForExport(filter issueapimodels.ExportFilter) (list []dbmodels.Issue, err error) {
	list = []dbmodels.Issue{}
	tx := i.db.Model(&dbmodels.Issue{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.From != nil {
		tx = tx.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		tx = tx.Where("created_at <= ?", *filter.To)
	}
	err = tx.
		Preload("Tenant").
		Preload("CurrentAssignment").
		Preload("CurrentAssignment.Contractor").
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
