package dictapimodels

import "facility-desk-backend/models"

type DictView struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

func GetIssueStatuses() []DictView {
	result := make([]DictView, 0, len(models.IssueStatuses))
	for _, status := range models.IssueStatuses {
		result = append(result, DictView{
			Code:  string(status),
			Name:  status.ToHuman(),
			Color: status.Color(),
		})
	}
	return result
}

func GetAssignmentStatuses() []DictView {
	result := make([]DictView, 0, len(models.AssignmentStatuses))
	for _, status := range models.AssignmentStatuses {
		result = append(result, DictView{Code: string(status), Name: status.ToHuman()})
	}
	return result
}

func GetCategories() []DictView {
	result := make([]DictView, 0, len(models.IssueCategories))
	for _, category := range models.IssueCategories {
		result = append(result, DictView{Code: string(category), Name: category.ToHuman()})
	}
	return result
}

func GetRoles() []DictView {
	result := make([]DictView, 0, len(models.UserRoles))
	for _, role := range models.UserRoles {
		result = append(result, DictView{Code: string(role), Name: role.ToHuman()})
	}
	return result
}

type ClientSettingsView struct {
	NotificationPollIntervalSec int `json:"notification_poll_interval_sec"` // период опроса уведомлений без websocket
}
