package notificationapimodels

import (
	"facility-desk-backend/models"
	apimodels "facility-desk-backend/models/api"
	dbmodels "facility-desk-backend/models/db"
	"time"
)

type NotificationFilter struct {
	apimodels.Pagination
	UnreadOnly bool `json:"unread_only"`
}

type NotificationView struct {
	ID            uint                    `json:"id"`
	Code          models.NotificationCode `json:"code"`
	Title         string                  `json:"title"`
	Msg           string                  `json:"msg"`
	IssueID       *uint                   `json:"issue_id,omitempty"`
	AssignmentID  *uint                   `json:"assignment_id,omitempty"`
	RoleRequestID *uint                   `json:"role_request_id,omitempty"`
	OldStatus     models.IssueStatus      `json:"old_status,omitempty"`
	NewStatus     models.IssueStatus      `json:"new_status,omitempty"`
	ActorName     string                  `json:"actor_name,omitempty"`
	IsRead        bool                    `json:"is_read"`
	ReadAt        *time.Time              `json:"read_at,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:            rec.ID,
		Code:          rec.Code,
		Title:         rec.Title,
		Msg:           rec.Msg,
		IssueID:       rec.IssueID,
		AssignmentID:  rec.AssignmentID,
		RoleRequestID: rec.RoleRequestID,
		OldStatus:     rec.OldStatus,
		NewStatus:     rec.NewStatus,
		ActorName:     rec.ActorName,
		IsRead:        rec.IsRead,
		ReadAt:        rec.ReadAt,
		CreatedAt:     rec.CreatedAt,
	}
}

type UnreadCountView struct {
	Count int64 `json:"count"`
}
