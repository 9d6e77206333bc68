package issuehandler

import (
	"bytes"
	"context"
	"facility-desk-backend/db"
	assignmentstore "facility-desk-backend/lib/assignment/store"
	xlsexport "facility-desk-backend/lib/export/xls"
	issueflow "facility-desk-backend/lib/issue-flow"
	issuehistorystore "facility-desk-backend/lib/issue/history-store"
	issuestore "facility-desk-backend/lib/issue/store"
	notificationhandler "facility-desk-backend/lib/notification"
	"facility-desk-backend/lib/rbac"
	"facility-desk-backend/lib/utils/helpers"
	initchecker "facility-desk-backend/lib/utils/init-checker"
	"facility-desk-backend/models"
	issueapimodels "facility-desk-backend/models/api/issue"
	dbmodels "facility-desk-backend/models/db"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(caller models.Caller, data issueapimodels.IssueCreateData) (uint, error)
	GetByID(caller models.Caller, issueID uint) (*issueapimodels.IssueView, error)
	List(caller models.Caller, filter issueapimodels.IssueFilter) ([]issueapimodels.IssueView, int64, error)
	Delete(ctx context.Context, caller models.Caller, issueID uint) error
	History(caller models.Caller, issueID uint) ([]issueapimodels.StatusHistoryView, error)
	Export(caller models.Caller, filter issueapimodels.ExportFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"xlsexport.Instance", xlsexport.Instance,
		"notificationhandler.Instance", notificationhandler.Instance,
	)
	Instance = impl{
		store:           issuestore.NewInstance(db.DB),
		historyStore:    issuehistorystore.NewInstance(db.DB),
		assignmentStore: assignmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store           issuestore.Provider
	historyStore    issuehistorystore.Provider
	assignmentStore assignmentstore.Provider
}

func (i impl) getLogger(issueID uint) *log.Entry {
	return log.WithField("issue_id", issueID)
}

func (i impl) Create(caller models.Caller, data issueapimodels.IssueCreateData) (uint, error) {
	if err := rbac.Require(caller, models.CapIssueCreate); err != nil {
		return 0, err
	}
	if !data.Category.IsValid() {
		return 0, models.NewErrorf(models.KindOutOfRange, "категория «%s» не входит в справочник", data.Category)
	}
	if helpers.IsBlank(data.Title) || helpers.IsBlank(data.Location) {
		return 0, models.NewError(models.KindEmptyContent, "не указаны заголовок или местоположение заявки")
	}
	rec := dbmodels.Issue{
		TenantID:    caller.UserID,
		Title:       strings.TrimSpace(data.Title),
		Description: data.Description,
		Category:    data.Category,
		Location:    strings.TrimSpace(data.Location),
		Status:      models.IssueReceived,
		Version:     1,
		Images:      make([]dbmodels.IssueImage, 0, len(data.Images)),
	}
	for _, ref := range data.Images {
		rec.Images = append(rec.Images, dbmodels.IssueImage{Ref: ref})
	}
	var id uint
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = issuestore.NewInstance(tx).Create(rec)
		if err != nil {
			return err
		}
		actorID := caller.UserID
		_, err = issuehistorystore.NewInstance(tx).Create(dbmodels.IssueStatusHistory{
			IssueID:   id,
			ToStatus:  models.IssueReceived,
			ActorID:   &actorID,
			ActorName: caller.DisplayName,
			ActorRole: caller.Role,
		})
		return err
	})
	if err != nil {
		log.WithField("user_id", caller.UserID).WithError(err).Error("ошибка создания заявки")
		return 0, models.Unavailable(err, "ошибка создания заявки")
	}
	i.getLogger(id).Info("заявка создана")
	return id, nil
}

func (i impl) GetByID(caller models.Caller, issueID uint) (*issueapimodels.IssueView, error) {
	issue, err := i.getVisible(caller, issueID)
	if err != nil {
		return nil, err
	}
	result := issueapimodels.IssueConvert(*issue)
	return &result, nil
}

func (i impl) List(caller models.Caller, filter issueapimodels.IssueFilter) ([]issueapimodels.IssueView, int64, error) {
	scope := issuestore.ListScope{}
	if !rbac.Can(caller.Role, models.CapIssueViewAll) {
		userID := caller.UserID
		switch caller.Role {
		case models.TenantRole:
			scope.TenantID = &userID
		case models.ContractorRole:
			scope.ContractorID = &userID
		default:
			return nil, 0, models.ErrForbidden()
		}
	}
	list, rowCount, err := i.store.List(scope, filter)
	if err != nil {
		log.WithField("user_id", caller.UserID).WithError(err).Error("ошибка получения списка заявок")
		return nil, 0, models.Unavailable(err, "ошибка получения списка заявок")
	}
	result := make([]issueapimodels.IssueView, 0, len(list))
	for _, rec := range list {
		result = append(result, issueapimodels.IssueConvert(rec))
	}
	return result, rowCount, nil
}

// Delete жилец может удалить только свою заявку, пока по ней не было назначений
func (i impl) Delete(ctx context.Context, caller models.Caller, issueID uint) error {
	err := issueflow.Execute(ctx, issueID, func(tx *gorm.DB, _ notificationhandler.Notifier) error {
		store := issuestore.NewInstance(tx)
		issue, err := store.GetByID(issueID)
		if err != nil {
			return err
		}
		if issue == nil {
			return models.ErrNotFound("заявка")
		}
		if caller.Role != models.TenantRole || issue.TenantID != caller.UserID {
			return models.ErrForbidden()
		}
		if issue.Status != models.IssueReceived {
			return models.NewError(models.KindNotEligible, "удалить можно только заявку в статусе «Получена»")
		}
		list, err := assignmentstore.NewInstance(tx).ListForIssue(issueID)
		if err != nil {
			return err
		}
		if len(list) != 0 {
			return models.NewError(models.KindNotEligible, "по заявке уже были назначения")
		}
		return store.Delete(issueID)
	})
	if err != nil {
		if models.IsKind(err, models.KindUnavailable) {
			i.getLogger(issueID).WithError(err).Error("ошибка удаления заявки")
		}
		return err
	}
	i.getLogger(issueID).Info("заявка удалена")
	return nil
}

func (i impl) History(caller models.Caller, issueID uint) ([]issueapimodels.StatusHistoryView, error) {
	if _, err := i.getVisible(caller, issueID); err != nil {
		return nil, err
	}
	list, err := i.historyStore.List(issueID)
	if err != nil {
		i.getLogger(issueID).WithError(err).Error("ошибка получения истории заявки")
		return nil, models.Unavailable(err, "ошибка получения истории заявки")
	}
	result := make([]issueapimodels.StatusHistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, issueapimodels.StatusHistoryConvert(rec))
	}
	return result, nil
}

func (i impl) Export(caller models.Caller, filter issueapimodels.ExportFilter) (*bytes.Buffer, error) {
	if err := rbac.Require(caller, models.CapIssueExport); err != nil {
		return nil, err
	}
	list, err := i.store.ListForExport(filter)
	if err != nil {
		log.WithError(err).Error("ошибка получения заявок для выгрузки")
		return nil, models.Unavailable(err, "ошибка получения заявок для выгрузки")
	}
	buf, err := xlsexport.Instance.ExportIssueList(list)
	if err != nil {
		log.WithError(err).Error("ошибка формирования реестра заявок")
		return nil, models.Unavailable(err, "ошибка формирования реестра заявок")
	}
	return buf, nil
}

func (i impl) getVisible(caller models.Caller, issueID uint) (*dbmodels.Issue, error) {
	issue, err := i.store.GetByID(issueID)
	if err != nil {
		i.getLogger(issueID).WithError(err).Error("ошибка получения заявки")
		return nil, models.Unavailable(err, "ошибка получения заявки")
	}
	if issue == nil {
		return nil, models.ErrNotFound("заявка")
	}
	visible, err := issueflow.CanView(i.assignmentStore, caller, *issue)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка проверки доступа к заявке")
	}
	if !visible {
		return nil, models.ErrForbidden()
	}
	return issue, nil
}
