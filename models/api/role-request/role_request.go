package rolerequestapimodels

import (
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type RoleRequestCreateData struct {
	RequestedRole models.UserRole `json:"requested_role"`
	Motivation    string          `json:"motivation"`
	CvDocument    string          `json:"cv_document"` // ссылка на загруженное резюме
}

func (r RoleRequestCreateData) Validate() error {
	if r.RequestedRole == "" {
		return errors.New("не указана запрашиваемая роль")
	}
	return nil
}

type ResolveData struct {
	Decision   models.RoleRequestStatus `json:"decision"` // Approved/Rejected
	AdminNotes string                   `json:"admin_notes"`
}

type RoleRequestFilter struct {
	Status models.RoleRequestStatus `json:"status"`
}

type RoleRequestView struct {
	ID            uint                     `json:"id"`
	UserID        uint                     `json:"user_id"`
	UserName      string                   `json:"user_name,omitempty"`
	CurrentRole   models.UserRole          `json:"current_role"`
	RequestedRole models.UserRole          `json:"requested_role"`
	Motivation    string                   `json:"motivation"`
	CvDocument    string                   `json:"cv_document,omitempty"`
	Status        models.RoleRequestStatus `json:"status"`
	StatusName    string                   `json:"status_name"`
	AdminID       *uint                    `json:"admin_id,omitempty"`
	AdminNotes    string                   `json:"admin_notes,omitempty"`
	ResolvedAt    *time.Time               `json:"resolved_at,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

func RoleRequestConvert(rec dbmodels.RoleRequest) RoleRequestView {
	result := RoleRequestView{
		ID:            rec.ID,
		UserID:        rec.UserID,
		CurrentRole:   rec.CurrentRole,
		RequestedRole: rec.RequestedRole,
		Motivation:    rec.Motivation,
		CvDocument:    rec.CvDocument,
		Status:        rec.Status,
		StatusName:    rec.Status.ToHuman(),
		AdminID:       rec.AdminID,
		AdminNotes:    rec.AdminNotes,
		ResolvedAt:    rec.ResolvedAt,
		CreatedAt:     rec.CreatedAt,
	}
	if rec.User != nil {
		result.UserName = rec.User.GetFullName()
	}
	return result
}
