package issueapimodels

import (
	"facility-desk-backend/models"
	apimodels "facility-desk-backend/models/api"
	dbmodels "facility-desk-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type AssignData struct {
	ContractorID  uint       `json:"contractor_id"`
	EstimatedCost *float64   `json:"estimated_cost"`
	PlannedDate   *time.Time `json:"planned_date"`
}

func (r AssignData) Validate() error {
	if r.ContractorID == 0 {
		return errors.New("не указан подрядчик")
	}
	return nil
}

type RejectData struct {
	Reason string `json:"reason"`
}

type CostData struct {
	Amount float64 `json:"amount"`
}

type EstimateData struct {
	EstimatedCost *float64   `json:"estimated_cost"`
	PlannedDate   *time.Time `json:"planned_date"`
}

func (r EstimateData) Validate() error {
	if r.EstimatedCost == nil && r.PlannedDate == nil {
		return errors.New("не указаны стоимость или плановая дата")
	}
	return nil
}

type WarrantyData struct {
	WarrantyDocument string `json:"warranty_document"`
}

type AssignmentFilter struct {
	apimodels.Pagination
	ActiveOnly bool `json:"active_only"`
}

type AssignmentView struct {
	ID               uint                    `json:"id"`
	IssueID          uint                    `json:"issue_id"`
	IssueTitle       string                  `json:"issue_title,omitempty"`
	IssueLocation    string                  `json:"issue_location,omitempty"`
	ContractorID     uint                    `json:"contractor_id"`
	ContractorName   string                  `json:"contractor_name,omitempty"`
	ManagerID        uint                    `json:"manager_id"`
	ManagerName      string                  `json:"manager_name,omitempty"`
	Status           models.AssignmentStatus `json:"status"`
	StatusName       string                  `json:"status_name"`
	IsActive         bool                    `json:"is_active"`
	EstimatedCost    *float64                `json:"estimated_cost,omitempty"`
	ActualCost       *float64                `json:"actual_cost,omitempty"`
	PlannedDate      *time.Time              `json:"planned_date,omitempty"`
	RejectionReason  string                  `json:"rejection_reason,omitempty"`
	WarrantyDocument string                  `json:"warranty_document,omitempty"`
	CompletedAt      *time.Time              `json:"completed_at,omitempty"`
	RejectedAt       *time.Time              `json:"rejected_at,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
}

func AssignmentConvert(rec dbmodels.Assignment) AssignmentView {
	result := AssignmentView{
		ID:               rec.ID,
		IssueID:          rec.IssueID,
		ContractorID:     rec.ContractorID,
		ManagerID:        rec.ManagerID,
		Status:           rec.Status,
		StatusName:       rec.Status.ToHuman(),
		IsActive:         rec.IsActive,
		EstimatedCost:    rec.EstimatedCost,
		ActualCost:       rec.ActualCost,
		PlannedDate:      rec.PlannedDate,
		RejectionReason:  rec.RejectionReason,
		WarrantyDocument: rec.WarrantyDocument,
		CompletedAt:      rec.CompletedAt,
		RejectedAt:       rec.RejectedAt,
		CreatedAt:        rec.CreatedAt,
	}
	if rec.Issue != nil {
		result.IssueTitle = rec.Issue.Title
		result.IssueLocation = rec.Issue.Location
	}
	if rec.Contractor != nil {
		result.ContractorName = rec.Contractor.GetFullName()
	}
	if rec.Manager != nil {
		result.ManagerName = rec.Manager.GetFullName()
	}
	return result
}
