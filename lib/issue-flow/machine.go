package issueflow

import (
	assignmentstore "facility-desk-backend/lib/assignment/store"
	issuehistorystore "facility-desk-backend/lib/issue/history-store"
	issuestore "facility-desk-backend/lib/issue/store"
	notificationhandler "facility-desk-backend/lib/notification"
	"facility-desk-backend/lib/rbac"
	"facility-desk-backend/lib/utils/helpers"
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Request struct {
	Target models.IssueStatus
	// комментарий к переходу, для Rejected - причина отказа
	Note             string
	WarrantyDocument string
	// созданное назначение, только для перехода в AssignedToContractor
	Assignment *dbmodels.Assignment
}

// Machine применяет переходы по таблице статусов
type Machine interface {
	Apply(caller models.Caller, issueID uint, req Request) (*dbmodels.Issue, error)
	Allowed(caller models.Caller, issue dbmodels.Issue) []models.IssueStatus
}

// NewMachine все изменения выполняются в транзакции tx
func NewMachine(tx *gorm.DB, notifier notificationhandler.Notifier) Machine {
	return machine{
		issueStore:      issuestore.NewInstance(tx),
		historyStore:    issuehistorystore.NewInstance(tx),
		assignmentStore: assignmentstore.NewInstance(tx),
		notifier:        notifier,
	}
}

type machine struct {
	issueStore      issuestore.Provider
	historyStore    issuehistorystore.Provider
	assignmentStore assignmentstore.Provider
	notifier        notificationhandler.Notifier
}

func (m machine) Apply(caller models.Caller, issueID uint, req Request) (*dbmodels.Issue, error) {
	logger := log.
		WithField("issue_id", issueID).
		WithField("user_id", caller.UserID).
		WithField("target", req.Target)
	issue, err := m.issueStore.GetByID(issueID)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка получения заявки")
	}
	if issue == nil {
		return nil, models.ErrNotFound("заявка")
	}
	transition, ok := models.FindTransition(issue.Status, req.Target)
	if !ok || transition.ViaAssignment != (req.Assignment != nil) {
		return nil, models.NewErrorf(models.KindInvalidTransition, "переход из статуса «%s» в «%s» недоступен",
			issue.Status.ToHuman(), req.Target.ToHuman())
	}
	if !canPerform(caller, *issue, transition) {
		return nil, models.ErrForbidden()
	}
	note := strings.TrimSpace(req.Note)
	if req.Target == models.IssueRejected && note == "" {
		return nil, models.NewError(models.KindEmptyContent, "не указана причина отказа")
	}

	now := time.Now()
	oldStatus := issue.Status
	finalStatus := req.Target
	updMap := map[string]interface{}{
		"status":     req.Target,
		"updated_at": now,
	}
	switch req.Target {
	case models.IssueAssignedToContractor:
		updMap["current_assignment_id"] = req.Assignment.ID
	case models.IssueRejected:
		// отказ сразу возвращает заявку в Received
		finalStatus = models.IssueReceived
		updMap["status"] = finalStatus
		updMap["current_assignment_id"] = nil
	}
	updated, err := m.issueStore.UpdateVersioned(issue.ID, issue.Version, updMap)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка обновления статуса заявки")
	}
	if !updated {
		return nil, models.NewError(models.KindConflict, "заявка была изменена другим пользователем")
	}

	assignment := req.Assignment
	if assignment == nil {
		assignment = issue.CurrentAssignment
	}
	if req.Assignment == nil && assignment != nil {
		if err = m.mirrorAssignment(*assignment, req, note, now); err != nil {
			return nil, err
		}
	}

	if err = m.addHistory(issue.ID, oldStatus, req.Target, &caller, note); err != nil {
		return nil, err
	}
	if req.Target == models.IssueRejected {
		if err = m.addHistory(issue.ID, models.IssueRejected, models.IssueReceived, nil, ""); err != nil {
			return nil, err
		}
	}
	if err = m.notify(caller, *issue, assignment, oldStatus, req.Target, note); err != nil {
		return nil, err
	}

	issue.Status = finalStatus
	issue.Version++
	issue.UpdatedAt = now
	switch req.Target {
	case models.IssueAssignedToContractor:
		issue.CurrentAssignmentID = &req.Assignment.ID
		issue.CurrentAssignment = req.Assignment
	case models.IssueRejected:
		issue.CurrentAssignmentID = nil
		issue.CurrentAssignment = nil
	}
	logger.WithField("status", finalStatus).Info("статус заявки изменен")
	return issue, nil
}

func (m machine) Allowed(caller models.Caller, issue dbmodels.Issue) []models.IssueStatus {
	result := []models.IssueStatus{}
	for _, transition := range issue.Status.Transitions() {
		if transition.ViaAssignment || transition.Actor == models.ActorSystem {
			continue
		}
		if canPerform(caller, issue, transition) {
			result = append(result, transition.To)
		}
	}
	return result
}

func (m machine) mirrorAssignment(assignment dbmodels.Assignment, req Request, note string, now time.Time) error {
	status, ok := req.Target.AssignmentStatus()
	if !ok {
		return nil
	}
	updMap := map[string]interface{}{
		"status": status,
	}
	switch status {
	case models.AssignmentCompleted:
		updMap["is_active"] = false
		updMap["completed_at"] = now
		if !helpers.IsBlank(req.WarrantyDocument) {
			updMap["warranty_document"] = strings.TrimSpace(req.WarrantyDocument)
		}
	case models.AssignmentRejected:
		updMap["is_active"] = false
		updMap["rejected_at"] = now
		updMap["rejection_reason"] = note
	}
	if err := m.assignmentStore.Update(assignment.ID, updMap); err != nil {
		return models.Unavailable(err, "ошибка обновления назначения")
	}
	return nil
}

// addHistory caller=nil системный переход
func (m machine) addHistory(issueID uint, from, to models.IssueStatus, caller *models.Caller, note string) error {
	rec := dbmodels.IssueStatusHistory{
		IssueID:    issueID,
		FromStatus: from,
		ToStatus:   to,
		ActorName:  models.SystemUser,
		Comment:    note,
	}
	if caller != nil {
		actorID := caller.UserID
		rec.ActorID = &actorID
		rec.ActorName = caller.DisplayName
		rec.ActorRole = caller.Role
	}
	if _, err := m.historyStore.Create(rec); err != nil {
		return models.Unavailable(err, "ошибка сохранения истории заявки")
	}
	return nil
}

func (m machine) notify(caller models.Caller, issue dbmodels.Issue, assignment *dbmodels.Assignment, oldStatus, target models.IssueStatus, note string) error {
	issueID := issue.ID
	ref := notificationhandler.Ref{IssueID: &issueID}
	if assignment != nil {
		assignmentID := assignment.ID
		ref.AssignmentID = &assignmentID
	}
	data := models.GetIssueStatusChanged(issue.Title, oldStatus, target, caller.DisplayName)
	if err := m.notifier.Notify(issue.TenantID, data, ref); err != nil {
		return err
	}
	switch target {
	case models.IssueRejected:
		data = models.GetIssueStatusChanged(issue.Title, models.IssueRejected, models.IssueReceived, models.SystemUser)
		if err := m.notifier.Notify(issue.TenantID, data, ref); err != nil {
			return err
		}
		if assignment != nil {
			data = models.GetAssignmentRejected(issue.Title, caller.DisplayName, note)
			if err := m.notifier.Notify(assignment.ManagerID, data, ref); err != nil {
				return err
			}
		}
	case models.IssueCompleted:
		if assignment != nil {
			data = models.GetWorkCompleted(issue.Title, caller.DisplayName)
			if err := m.notifier.Notify(assignment.ManagerID, data, ref); err != nil {
				return err
			}
		}
	}
	return nil
}

func canPerform(caller models.Caller, issue dbmodels.Issue, transition models.Transition) bool {
	switch transition.Actor {
	case models.ActorManager:
		capability := models.CapIssueCancel
		if transition.ViaAssignment {
			capability = models.CapAssignContractor
		}
		return rbac.Can(caller.Role, capability)
	case models.ActorContractor:
		if !rbac.Can(caller.Role, models.CapAssignmentWork) {
			return false
		}
		contractorID, ok := issue.ActiveContractorID()
		return ok && contractorID == caller.UserID
	}
	return false
}
