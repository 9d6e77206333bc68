package issueflow

import (
	"context"
	"facility-desk-backend/db"
	assignmentstore "facility-desk-backend/lib/assignment/store"
	issuestore "facility-desk-backend/lib/issue/store"
	notificationhandler "facility-desk-backend/lib/notification"
	initchecker "facility-desk-backend/lib/utils/init-checker"
	"facility-desk-backend/models"
	issueapimodels "facility-desk-backend/models/api/issue"

	"gorm.io/gorm"
)

type Provider interface {
	ChangeStatus(ctx context.Context, caller models.Caller, issueID uint, data issueapimodels.StatusChangeData) (*issueapimodels.IssueView, error)
	Cancel(ctx context.Context, caller models.Caller, issueID uint, note string) (*issueapimodels.IssueView, error)
	AllowedTransitions(caller models.Caller, issueID uint) ([]issueapimodels.TransitionView, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"notificationhandler.Instance", notificationhandler.Instance,
	)
	Instance = impl{
		issueStore:      issuestore.NewInstance(db.DB),
		assignmentStore: assignmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	issueStore      issuestore.Provider
	assignmentStore assignmentstore.Provider
}

func (i impl) ChangeStatus(ctx context.Context, caller models.Caller, issueID uint, data issueapimodels.StatusChangeData) (*issueapimodels.IssueView, error) {
	err := Execute(ctx, issueID, func(tx *gorm.DB, notifier notificationhandler.Notifier) error {
		_, err := NewMachine(tx, notifier).Apply(caller, issueID, Request{
			Target:           data.Status,
			Note:             data.Note,
			WarrantyDocument: data.WarrantyDocument,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return i.getView(issueID)
}

func (i impl) Cancel(ctx context.Context, caller models.Caller, issueID uint, note string) (*issueapimodels.IssueView, error) {
	return i.ChangeStatus(ctx, caller, issueID, issueapimodels.StatusChangeData{
		Status: models.IssueCancelled,
		Note:   note,
	})
}

func (i impl) AllowedTransitions(caller models.Caller, issueID uint) ([]issueapimodels.TransitionView, error) {
	issue, err := i.issueStore.GetByID(issueID)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка получения заявки")
	}
	if issue == nil {
		return nil, models.ErrNotFound("заявка")
	}
	visible, err := CanView(i.assignmentStore, caller, *issue)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка проверки доступа к заявке")
	}
	if !visible {
		return nil, models.ErrForbidden()
	}
	statuses := machine{}.Allowed(caller, *issue)
	result := make([]issueapimodels.TransitionView, 0, len(statuses))
	for _, status := range statuses {
		result = append(result, issueapimodels.TransitionConvert(status))
	}
	return result, nil
}

func (i impl) getView(issueID uint) (*issueapimodels.IssueView, error) {
	issue, err := i.issueStore.GetByID(issueID)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка получения заявки")
	}
	if issue == nil {
		return nil, models.ErrNotFound("заявка")
	}
	result := issueapimodels.IssueConvert(*issue)
	return &result, nil
}
