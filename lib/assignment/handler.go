package assignmenthandler

import (
	"context"
	"facility-desk-backend/config"
	"facility-desk-backend/db"
	assignmentstore "facility-desk-backend/lib/assignment/store"
	pdfexport "facility-desk-backend/lib/export/pdf"
	issueflow "facility-desk-backend/lib/issue-flow"
	issuestore "facility-desk-backend/lib/issue/store"
	notificationhandler "facility-desk-backend/lib/notification"
	"facility-desk-backend/lib/rbac"
	usersstore "facility-desk-backend/lib/users/store"
	"facility-desk-backend/lib/utils/helpers"
	initchecker "facility-desk-backend/lib/utils/init-checker"
	"facility-desk-backend/lib/utils/lock"
	"facility-desk-backend/models"
	issueapimodels "facility-desk-backend/models/api/issue"
	dbmodels "facility-desk-backend/models/db"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	AssignContractor(ctx context.Context, caller models.Caller, issueID uint, data issueapimodels.AssignData) (*issueapimodels.AssignmentView, error)
	UpdateStatus(ctx context.Context, caller models.Caller, assignmentID uint, data issueapimodels.StatusChangeData) (*issueapimodels.AssignmentView, error)
	Reject(ctx context.Context, caller models.Caller, assignmentID uint, reason string) (*issueapimodels.AssignmentView, error)
	RecordActualCost(caller models.Caller, assignmentID uint, amount float64) error
	SetEstimate(caller models.Caller, assignmentID uint, data issueapimodels.EstimateData) error
	AttachWarranty(caller models.Caller, assignmentID uint, ref string) error
	GetByID(caller models.Caller, assignmentID uint) (*issueapimodels.AssignmentView, error)
	ListForIssue(caller models.Caller, issueID uint) ([]issueapimodels.AssignmentView, error)
	ListMine(caller models.Caller, filter issueapimodels.AssignmentFilter) ([]issueapimodels.AssignmentView, int64, error)
	WorkOrder(caller models.Caller, assignmentID uint) (body []byte, fileName string, err error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"notificationhandler.Instance", notificationhandler.Instance,
	)
	Instance = impl{
		store:      assignmentstore.NewInstance(db.DB),
		issueStore: issuestore.NewInstance(db.DB),
		usersStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store      assignmentstore.Provider
	issueStore issuestore.Provider
	usersStore usersstore.Provider
}

func (i impl) getLogger(assignmentID uint) *log.Entry {
	return log.WithField("assignment_id", assignmentID)
}

func (i impl) AssignContractor(ctx context.Context, caller models.Caller, issueID uint, data issueapimodels.AssignData) (*issueapimodels.AssignmentView, error) {
	if err := rbac.Require(caller, models.CapAssignContractor); err != nil {
		return nil, err
	}
	if data.EstimatedCost != nil && *data.EstimatedCost <= 0 {
		return nil, models.NewError(models.KindOutOfRange, "предварительная стоимость должна быть больше нуля")
	}
	contractor, err := i.usersStore.GetByID(data.ContractorID)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка получения подрядчика")
	}
	if contractor == nil || contractor.Role != models.ContractorRole || !contractor.IsActive {
		return nil, models.ErrNotFound("подрядчик")
	}
	if !contractor.IsAvailable {
		return nil, models.NewError(models.KindContractorUnavailable, "подрядчик недоступен")
	}

	limit := config.Conf.Workflow.ContractorConcurrencyLimit
	var assignmentID uint
	assign := func() error {
		return issueflow.Execute(ctx, issueID, func(tx *gorm.DB, notifier notificationhandler.Notifier) error {
			store := assignmentstore.NewInstance(tx)
			issue, err := issuestore.NewInstance(tx).GetByID(issueID)
			if err != nil {
				return models.Unavailable(err, "ошибка получения заявки")
			}
			if issue == nil {
				return models.ErrNotFound("заявка")
			}
			if issue.Status != models.IssueReceived {
				return models.NewErrorf(models.KindInvalidTransition, "назначение недоступно в статусе «%s»", issue.Status.ToHuman())
			}
			active, err := store.GetActiveForIssue(issueID)
			if err != nil {
				return models.Unavailable(err, "ошибка получения назначений заявки")
			}
			if issue.CurrentAssignmentID != nil || active != nil {
				return models.NewError(models.KindConflict, "у заявки уже есть активное назначение")
			}
			if limit > 0 {
				// строка подрядчика сериализует подсчет между процессами
				if err := usersstore.NewInstance(tx).LockForUpdate(contractor.ID); err != nil {
					return models.Unavailable(err, "ошибка блокировки подрядчика")
				}
				count, err := store.CountActiveByContractor(contractor.ID)
				if err != nil {
					return models.Unavailable(err, "ошибка подсчета назначений подрядчика")
				}
				if count >= int64(limit) {
					return models.NewErrorf(models.KindContractorUnavailable, "у подрядчика максимальное количество активных заявок (%d)", limit)
				}
			}
			rec := dbmodels.Assignment{
				IssueID:       issueID,
				ContractorID:  contractor.ID,
				ManagerID:     caller.UserID,
				Status:        models.AssignmentAssigned,
				IsActive:      true,
				EstimatedCost: data.EstimatedCost,
				PlannedDate:   data.PlannedDate,
			}
			id, err := store.Create(rec)
			if err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return models.NewError(models.KindConflict, "у заявки уже есть активное назначение")
				}
				return models.Unavailable(err, "ошибка создания назначения")
			}
			rec.ID = id
			_, err = issueflow.NewMachine(tx, notifier).Apply(caller, issueID, issueflow.Request{
				Target:     models.IssueAssignedToContractor,
				Assignment: &rec,
			})
			if err != nil {
				return err
			}
			err = notifier.Notify(contractor.ID,
				models.GetAssignmentCreated(issue.Title, issue.Category, issue.Location, caller.DisplayName),
				notificationhandler.Ref{IssueID: &issue.ID, AssignmentID: &rec.ID})
			if err != nil {
				return err
			}
			assignmentID = id
			return nil
		})
	}
	if limit > 0 {
		// блокировка подрядчика держится до коммита транзакции
		wait := time.Duration(config.Conf.Workflow.IssueLockWaitMs) * time.Millisecond
		var locked bool
		locked, err = lock.WithDelay(ctx, lock.ContractorKey(contractor.ID), wait, assign)
		if err == nil && !locked {
			err = models.NewError(models.KindConflict, "подрядчик назначается на другую заявку, повторите попытку")
		}
	} else {
		err = assign()
	}
	if err != nil {
		return nil, err
	}
	i.getLogger(assignmentID).
		WithField("issue_id", issueID).
		WithField("contractor_id", contractor.ID).
		Info("подрядчик назначен на заявку")
	return i.getView(assignmentID)
}

func (i impl) UpdateStatus(ctx context.Context, caller models.Caller, assignmentID uint, data issueapimodels.StatusChangeData) (*issueapimodels.AssignmentView, error) {
	rec, err := i.getOwn(caller, assignmentID)
	if err != nil {
		return nil, err
	}
	err = issueflow.Execute(ctx, rec.IssueID, func(tx *gorm.DB, notifier notificationhandler.Notifier) error {
		current, err := assignmentstore.NewInstance(tx).GetByID(assignmentID)
		if err != nil {
			return models.Unavailable(err, "ошибка получения назначения")
		}
		if current == nil || !current.IsActive {
			return models.NewError(models.KindInvalidTransition, "назначение уже закрыто")
		}
		_, err = issueflow.NewMachine(tx, notifier).Apply(caller, rec.IssueID, issueflow.Request{
			Target:           data.Status,
			Note:             data.Note,
			WarrantyDocument: data.WarrantyDocument,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return i.getView(assignmentID)
}

func (i impl) Reject(ctx context.Context, caller models.Caller, assignmentID uint, reason string) (*issueapimodels.AssignmentView, error) {
	if helpers.IsBlank(reason) {
		return nil, models.NewError(models.KindEmptyContent, "не указана причина отказа")
	}
	return i.UpdateStatus(ctx, caller, assignmentID, issueapimodels.StatusChangeData{
		Status: models.IssueRejected,
		Note:   reason,
	})
}

func (i impl) RecordActualCost(caller models.Caller, assignmentID uint, amount float64) error {
	rec, err := i.getOwn(caller, assignmentID)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return models.NewError(models.KindOutOfRange, "стоимость должна быть больше нуля")
	}
	if rec.Status != models.AssignmentCompleted {
		return models.NewError(models.KindNotEligible, "фактическая стоимость указывается после завершения работ")
	}
	if err = i.store.Update(assignmentID, map[string]interface{}{"actual_cost": amount}); err != nil {
		return models.Unavailable(err, "ошибка сохранения стоимости")
	}
	i.getLogger(assignmentID).WithField("amount", amount).Info("указана фактическая стоимость")
	return nil
}

func (i impl) SetEstimate(caller models.Caller, assignmentID uint, data issueapimodels.EstimateData) error {
	rec, err := i.getOwn(caller, assignmentID)
	if err != nil {
		return err
	}
	if data.EstimatedCost != nil && *data.EstimatedCost <= 0 {
		return models.NewError(models.KindOutOfRange, "предварительная стоимость должна быть больше нуля")
	}
	if !rec.IsActive {
		return models.NewError(models.KindNotEligible, "назначение уже закрыто")
	}
	updMap := map[string]interface{}{}
	if data.EstimatedCost != nil {
		updMap["estimated_cost"] = *data.EstimatedCost
	}
	if data.PlannedDate != nil {
		updMap["planned_date"] = *data.PlannedDate
	}
	if err = i.store.Update(assignmentID, updMap); err != nil {
		return models.Unavailable(err, "ошибка сохранения оценки")
	}
	return nil
}

func (i impl) AttachWarranty(caller models.Caller, assignmentID uint, ref string) error {
	rec, err := i.getOwn(caller, assignmentID)
	if err != nil {
		return err
	}
	if helpers.IsBlank(ref) {
		return models.NewError(models.KindEmptyContent, "не указан гарантийный документ")
	}
	if rec.Status != models.AssignmentCompleted {
		return models.NewError(models.KindNotEligible, "гарантийный документ прикладывается после завершения работ")
	}
	err = i.store.Update(assignmentID, map[string]interface{}{"warranty_document": strings.TrimSpace(ref)})
	if err != nil {
		return models.Unavailable(err, "ошибка сохранения гарантийного документа")
	}
	return nil
}

func (i impl) GetByID(caller models.Caller, assignmentID uint) (*issueapimodels.AssignmentView, error) {
	rec, err := i.getVisible(caller, assignmentID)
	if err != nil {
		return nil, err
	}
	result := issueapimodels.AssignmentConvert(*rec)
	return &result, nil
}

func (i impl) ListForIssue(caller models.Caller, issueID uint) ([]issueapimodels.AssignmentView, error) {
	issue, err := i.issueStore.GetByID(issueID)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка получения заявки")
	}
	if issue == nil {
		return nil, models.ErrNotFound("заявка")
	}
	visible, err := issueflow.CanView(i.store, caller, *issue)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка проверки доступа к заявке")
	}
	if !visible {
		return nil, models.ErrForbidden()
	}
	list, err := i.store.ListForIssue(issueID)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка получения назначений заявки")
	}
	result := make([]issueapimodels.AssignmentView, 0, len(list))
	for _, rec := range list {
		// подрядчик видит только свои назначения
		if caller.Role == models.ContractorRole && rec.ContractorID != caller.UserID {
			continue
		}
		result = append(result, issueapimodels.AssignmentConvert(rec))
	}
	return result, nil
}

func (i impl) ListMine(caller models.Caller, filter issueapimodels.AssignmentFilter) ([]issueapimodels.AssignmentView, int64, error) {
	if err := rbac.Require(caller, models.CapAssignmentWork); err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	list, rowCount, err := i.store.ListByContractor(caller.UserID, filter.ActiveOnly, page, limit)
	if err != nil {
		return nil, 0, models.Unavailable(err, "ошибка получения списка назначений")
	}
	result := make([]issueapimodels.AssignmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, issueapimodels.AssignmentConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) WorkOrder(caller models.Caller, assignmentID uint) ([]byte, string, error) {
	rec, err := i.getVisible(caller, assignmentID)
	if err != nil {
		return nil, "", err
	}
	if caller.Role == models.TenantRole {
		return nil, "", models.ErrForbidden()
	}
	if rec.Issue == nil {
		return nil, "", models.ErrNotFound("заявка")
	}
	body, err := pdfexport.GenerateWorkOrder(*rec, *rec.Issue)
	if err != nil {
		i.getLogger(assignmentID).WithError(err).Error("ошибка формирования наряда")
		return nil, "", models.Unavailable(err, "ошибка формирования наряда")
	}
	return body, fmt.Sprintf("work_order_%d.pdf", assignmentID), nil
}

// getOwn назначение подрядчика, от имени которого выполняется операция
func (i impl) getOwn(caller models.Caller, assignmentID uint) (*dbmodels.Assignment, error) {
	rec, err := i.store.GetByID(assignmentID)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка получения назначения")
	}
	if rec == nil {
		return nil, models.ErrNotFound("назначение")
	}
	if !rbac.Can(caller.Role, models.CapAssignmentWork) || rec.ContractorID != caller.UserID {
		return nil, models.ErrForbidden()
	}
	return rec, nil
}

func (i impl) getVisible(caller models.Caller, assignmentID uint) (*dbmodels.Assignment, error) {
	rec, err := i.store.GetByID(assignmentID)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка получения назначения")
	}
	if rec == nil {
		return nil, models.ErrNotFound("назначение")
	}
	switch {
	case rbac.Can(caller.Role, models.CapIssueViewAll):
	case caller.Role == models.ContractorRole && rec.ContractorID == caller.UserID:
	case caller.Role == models.TenantRole && rec.Issue != nil && rec.Issue.TenantID == caller.UserID:
	default:
		return nil, models.ErrForbidden()
	}
	return rec, nil
}

func (i impl) getView(assignmentID uint) (*issueapimodels.AssignmentView, error) {
	rec, err := i.store.GetByID(assignmentID)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка получения назначения")
	}
	if rec == nil {
		return nil, models.ErrNotFound("назначение")
	}
	result := issueapimodels.AssignmentConvert(*rec)
	return &result, nil
}
