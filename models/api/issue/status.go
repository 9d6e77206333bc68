package issueapimodels

import (
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"
	"time"

	"github.com/pkg/errors"
)

type StatusChangeData struct {
	Status           models.IssueStatus `json:"status"`
	Note             string             `json:"note"`              // комментарий к переходу, для Rejected - причина отказа
	WarrantyDocument string             `json:"warranty_document"` // ссылка на гарантийный документ при завершении
}

func (r StatusChangeData) Validate() error {
	if !r.Status.IsValid() {
		return errors.New("указан некорректный статус")
	}
	return nil
}

type CancelData struct {
	Note string `json:"note"`
}

type TransitionView struct {
	Status      models.IssueStatus `json:"status"`
	StatusName  string             `json:"status_name"`
	StatusColor string             `json:"status_color"`
	NeedNote    bool               `json:"need_note"` // обязателен комментарий
}

func TransitionConvert(status models.IssueStatus) TransitionView {
	return TransitionView{
		Status:      status,
		StatusName:  status.ToHuman(),
		StatusColor: status.Color(),
		NeedNote:    status == models.IssueRejected,
	}
}

type StatusHistoryView struct {
	ID         uint               `json:"id"`
	FromStatus models.IssueStatus `json:"from_status"`
	ToStatus   models.IssueStatus `json:"to_status"`
	ToName     string             `json:"to_name"`
	ActorID    *uint              `json:"actor_id,omitempty"`
	ActorName  string             `json:"actor_name"`
	ActorRole  models.UserRole    `json:"actor_role,omitempty"`
	Comment    string             `json:"comment,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

func StatusHistoryConvert(rec dbmodels.IssueStatusHistory) StatusHistoryView {
	return StatusHistoryView{
		ID:         rec.ID,
		FromStatus: rec.FromStatus,
		ToStatus:   rec.ToStatus,
		ToName:     rec.ToStatus.ToHuman(),
		ActorID:    rec.ActorID,
		ActorName:  rec.ActorName,
		ActorRole:  rec.ActorRole,
		Comment:    rec.Comment,
		CreatedAt:  rec.CreatedAt,
	}
}
