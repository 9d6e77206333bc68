package issueflow

import (
	assignmentstore "facility-desk-backend/lib/assignment/store"
	"facility-desk-backend/lib/rbac"
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"
)

// CanView жилец видит свои заявки, подрядчик - заявки, на которые был назначен
func CanView(store assignmentstore.Provider, caller models.Caller, issue dbmodels.Issue) (bool, error) {
	if rbac.Can(caller.Role, models.CapIssueViewAll) {
		return true, nil
	}
	switch caller.Role {
	case models.TenantRole:
		return issue.TenantID == caller.UserID, nil
	case models.ContractorRole:
		if issue.CurrentAssignment != nil && issue.CurrentAssignment.ContractorID == caller.UserID {
			return true, nil
		}
		list, err := store.ListForIssue(issue.ID)
		if err != nil {
			return false, err
		}
		for _, rec := range list {
			if rec.ContractorID == caller.UserID {
				return true, nil
			}
		}
	}
	return false, nil
}
