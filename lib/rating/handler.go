package ratinghandler

import (
	"facility-desk-backend/db"
	assignmentstore "facility-desk-backend/lib/assignment/store"
	issueflow "facility-desk-backend/lib/issue-flow"
	issuestore "facility-desk-backend/lib/issue/store"
	ratingstore "facility-desk-backend/lib/rating/store"
	"facility-desk-backend/lib/rbac"
	"facility-desk-backend/models"
	issueapimodels "facility-desk-backend/models/api/issue"
	dbmodels "facility-desk-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	SubmitRating(caller models.Caller, issueID uint, data issueapimodels.RatingData) (*issueapimodels.RatingView, error)
	Get(caller models.Caller, issueID uint) (*issueapimodels.RatingView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           ratingstore.NewInstance(db.DB),
		issueStore:      issuestore.NewInstance(db.DB),
		assignmentStore: assignmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store           ratingstore.Provider
	issueStore      issuestore.Provider
	assignmentStore assignmentstore.Provider
}

func (i impl) getLogger(issueID uint) *log.Entry {
	return log.WithField("issue_id", issueID)
}

func (i impl) SubmitRating(caller models.Caller, issueID uint, data issueapimodels.RatingData) (*issueapimodels.RatingView, error) {
	issue, err := i.getIssue(issueID)
	if err != nil {
		return nil, err
	}
	if !rbac.Can(caller.Role, models.CapRatingSubmit) || issue.TenantID != caller.UserID {
		return nil, models.NewError(models.KindNotEligible, "оценить заявку может только ее автор")
	}
	if issue.Status != models.IssueCompleted {
		return nil, models.NewError(models.KindNotEligible, "оценить можно только выполненную заявку")
	}
	if data.Score < 1 || data.Score > 5 {
		return nil, models.NewError(models.KindOutOfRange, "оценка должна быть от 1 до 5")
	}
	existed, err := i.store.GetByIssue(issueID)
	if err != nil {
		i.getLogger(issueID).WithError(err).Error("ошибка получения оценки")
		return nil, models.Unavailable(err, "ошибка получения оценки")
	}
	if existed != nil {
		return nil, models.NewError(models.KindAlreadyRated, "заявка уже оценена")
	}
	_, err = i.store.Create(dbmodels.Rating{
		IssueID:  issueID,
		TenantID: caller.UserID,
		Score:    data.Score,
		Comment:  strings.TrimSpace(data.Comment),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewError(models.KindAlreadyRated, "заявка уже оценена")
		}
		i.getLogger(issueID).WithError(err).Error("ошибка сохранения оценки")
		return nil, models.Unavailable(err, "ошибка сохранения оценки")
	}
	i.getLogger(issueID).Infof("заявка оценена: %v", data.Score)
	return i.Get(caller, issueID)
}

func (i impl) Get(caller models.Caller, issueID uint) (*issueapimodels.RatingView, error) {
	issue, err := i.getIssue(issueID)
	if err != nil {
		return nil, err
	}
	visible, err := issueflow.CanView(i.assignmentStore, caller, *issue)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка проверки доступа к заявке")
	}
	if !visible {
		return nil, models.ErrForbidden()
	}
	rec, err := i.store.GetByIssue(issueID)
	if err != nil {
		i.getLogger(issueID).WithError(err).Error("ошибка получения оценки")
		return nil, models.Unavailable(err, "ошибка получения оценки")
	}
	if rec == nil {
		return nil, models.ErrNotFound("оценка")
	}
	result := issueapimodels.RatingConvert(*rec)
	return &result, nil
}

func (i impl) getIssue(issueID uint) (*dbmodels.Issue, error) {
	issue, err := i.issueStore.GetByID(issueID)
	if err != nil {
		i.getLogger(issueID).WithError(err).Error("ошибка получения заявки")
		return nil, models.Unavailable(err, "ошибка получения заявки")
	}
	if issue == nil {
		return nil, models.ErrNotFound("заявка")
	}
	return issue, nil
}
