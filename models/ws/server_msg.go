package wsmodels

import dbmodels "facility-desk-backend/models/db"

type ServerMessage struct {
	ToUserID       uint   `json:"-"`
	NotificationID uint   `json:"notification_id"` // ИД уведомления, для отметки о прочтении
	Time           string `json:"time"`            // время события
	Code           string `json:"code"`            // код события
	Title          string `json:"title"`           // заголовок события
	Msg            string `json:"msg"`             // текст события
	IssueID        *uint  `json:"issue_id,omitempty"`
}

func NotificationConvert(rec dbmodels.Notification) ServerMessage {
	return ServerMessage{
		ToUserID:       rec.RecipientID,
		NotificationID: rec.ID,
		Time:           rec.CreatedAt.Format("02.01.2006 15:04:05"),
		Code:           string(rec.Code),
		Title:          rec.Title,
		Msg:            rec.Msg,
		IssueID:        rec.IssueID,
	}
}
