package issueapimodels

import (
	"facility-desk-backend/lib/utils/helpers"
	"facility-desk-backend/models"
	apimodels "facility-desk-backend/models/api"
	dbmodels "facility-desk-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type IssueCreateData struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Category    models.IssueCategory `json:"category"`
	Location    string               `json:"location"`
	Images      []string             `json:"images"` // ссылки на загруженные файлы
}

func (r IssueCreateData) Validate() error {
	if helpers.IsBlank(r.Title) {
		return errors.New("не указан заголовок заявки")
	}
	if !r.Category.IsValid() {
		return errors.New("указана некорректная категория заявки")
	}
	if helpers.IsBlank(r.Location) {
		return errors.New("не указано местоположение")
	}
	for _, ref := range r.Images {
		if helpers.IsBlank(ref) {
			return errors.New("указана пустая ссылка на изображение")
		}
	}
	return nil
}

type IssueFilter struct {
	apimodels.Pagination
	Status   models.IssueStatus   `json:"status"`   // фильтр по статусу
	Category models.IssueCategory `json:"category"` // фильтр по категории
	Search   string               `json:"search"`   // по заголовку/местоположению
}

func (r IssueFilter) Validate() error {
	if r.Status != "" && !r.Status.IsValid() {
		return errors.New("указан некорректный статус")
	}
	if r.Category != "" && !r.Category.IsValid() {
		return errors.New("указана некорректная категория")
	}
	return nil
}

type IssueView struct {
	ID                  uint                 `json:"id"`
	TenantID            uint                 `json:"tenant_id"`
	TenantName          string               `json:"tenant_name"`
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	Category            models.IssueCategory `json:"category"`
	CategoryName        string               `json:"category_name"`
	Location            string               `json:"location"`
	Status              models.IssueStatus   `json:"status"`
	StatusName          string               `json:"status_name"`
	StatusColor         string               `json:"status_color"`
	Images              []string             `json:"images"`
	CurrentAssignmentID *uint                `json:"current_assignment_id,omitempty"`
	ContractorID        *uint                `json:"contractor_id,omitempty"`
	ContractorName      string               `json:"contractor_name,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

func IssueConvert(rec dbmodels.Issue) IssueView {
	result := IssueView{
		ID:                  rec.ID,
		TenantID:            rec.TenantID,
		Title:               rec.Title,
		Description:         rec.Description,
		Category:            rec.Category,
		CategoryName:        rec.Category.ToHuman(),
		Location:            rec.Location,
		Status:              rec.Status,
		StatusName:          rec.Status.ToHuman(),
		StatusColor:         rec.Status.Color(),
		Images:              make([]string, 0, len(rec.Images)),
		CurrentAssignmentID: rec.CurrentAssignmentID,
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           rec.UpdatedAt,
	}
	if rec.Tenant != nil {
		result.TenantName = rec.Tenant.GetFullName()
	}
	for _, image := range rec.Images {
		result.Images = append(result.Images, image.Ref)
	}
	if rec.CurrentAssignment != nil {
		contractorID := rec.CurrentAssignment.ContractorID
		result.ContractorID = &contractorID
		if rec.CurrentAssignment.Contractor != nil {
			result.ContractorName = rec.CurrentAssignment.Contractor.GetFullName()
		}
	}
	return result
}

type ExportFilter struct {
	Status   models.IssueStatus   `json:"status"`
	Category models.IssueCategory `json:"category"`
	From     *time.Time           `json:"from"`
	To       *time.Time           `json:"to"`
}

func (r ExportFilter) Validate() error {
	if r.Status != "" && !r.Status.IsValid() {
		return errors.New("указан некорректный статус")
	}
	if r.Category != "" && !r.Category.IsValid() {
		return errors.New("указана некорректная категория")
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return errors.New("некорректный период выгрузки")
	}
	return nil
}
