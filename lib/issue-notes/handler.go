package issuenoteshandler

import (
	"facility-desk-backend/db"
	commentstore "facility-desk-backend/lib/issue-notes/comment-store"
	notestore "facility-desk-backend/lib/issue-notes/note-store"
	issuestore "facility-desk-backend/lib/issue/store"
	notificationhandler "facility-desk-backend/lib/notification"
	"facility-desk-backend/lib/rbac"
	initchecker "facility-desk-backend/lib/utils/init-checker"
	"facility-desk-backend/lib/utils/helpers"
	"facility-desk-backend/models"
	issueapimodels "facility-desk-backend/models/api/issue"
	dbmodels "facility-desk-backend/models/db"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	AddNote(caller models.Caller, issueID uint, body string) (*issueapimodels.NoteView, error)
	ListNotes(caller models.Caller, issueID uint, desc bool) ([]issueapimodels.NoteView, error)
	AddComment(caller models.Caller, issueID uint, body string) (*issueapimodels.NoteView, error)
	ListComments(caller models.Caller, issueID uint, desc bool) ([]issueapimodels.NoteView, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"notificationhandler.Instance", notificationhandler.Instance,
	)
	Instance = impl{
		issueStore:   issuestore.NewInstance(db.DB),
		noteStore:    notestore.NewInstance(db.DB),
		commentStore: commentstore.NewInstance(db.DB),
	}
}

type impl struct {
	issueStore   issuestore.Provider
	noteStore    notestore.Provider
	commentStore commentstore.Provider
}

func (i impl) getLogger(issueID uint) *log.Entry {
	return log.WithField("issue_id", issueID)
}

func (i impl) AddNote(caller models.Caller, issueID uint, body string) (*issueapimodels.NoteView, error) {
	if err := rbac.Require(caller, models.CapNoteWrite); err != nil {
		return nil, err
	}
	issue, err := i.getIssue(issueID)
	if err != nil {
		return nil, err
	}
	if helpers.IsBlank(body) {
		return nil, models.NewError(models.KindEmptyContent, "текст заметки не может быть пустым")
	}
	body = strings.TrimSpace(body)

	var noteID uint
	var created []dbmodels.Notification
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		noteID, err = notestore.NewInstance(tx).Create(dbmodels.Note{
			IssueID:  issueID,
			AuthorID: caller.UserID,
			Body:     body,
		})
		if err != nil {
			return err
		}
		notifier := notificationhandler.NewNotifier(tx)
		ref := notificationhandler.Ref{IssueID: &issueID}
		// жилец получает текст заметки целиком
		err = notifier.Notify(issue.TenantID, models.GetIssueNoteAdded(issue.Title, body, caller.DisplayName), ref)
		if err != nil {
			return err
		}
		created = notifier.Created()
		return nil
	})
	if err != nil {
		i.getLogger(issueID).WithError(err).Error("ошибка добавления заметки")
		return nil, models.Unavailable(err, "ошибка добавления заметки")
	}
	notificationhandler.Instance.Publish(created)

	rec, err := i.noteStore.GetByID(noteID)
	if err != nil || rec == nil {
		return nil, models.Unavailable(err, "ошибка получения заметки")
	}
	result := issueapimodels.NoteConvert(*rec)
	return &result, nil
}

func (i impl) ListNotes(caller models.Caller, issueID uint, desc bool) ([]issueapimodels.NoteView, error) {
	if err := rbac.Require(caller, models.CapNoteRead); err != nil {
		return nil, err
	}
	if _, err := i.getIssue(issueID); err != nil {
		return nil, err
	}
	list, err := i.noteStore.List(issueID, desc)
	if err != nil {
		i.getLogger(issueID).WithError(err).Error("ошибка получения заметок")
		return nil, models.Unavailable(err, "ошибка получения заметок")
	}
	result := make([]issueapimodels.NoteView, 0, len(list))
	for _, rec := range list {
		result = append(result, issueapimodels.NoteConvert(rec))
	}
	return result, nil
}

func (i impl) AddComment(caller models.Caller, issueID uint, body string) (*issueapimodels.NoteView, error) {
	if err := rbac.Require(caller, models.CapCommentWrite); err != nil {
		return nil, err
	}
	issue, err := i.getIssue(issueID)
	if err != nil {
		return nil, err
	}
	if issue.TenantID != caller.UserID {
		return nil, models.ErrForbidden()
	}
	if helpers.IsBlank(body) {
		return nil, models.NewError(models.KindEmptyContent, "текст комментария не может быть пустым")
	}
	id, err := i.commentStore.Create(dbmodels.Comment{
		IssueID:  issueID,
		AuthorID: caller.UserID,
		Body:     strings.TrimSpace(body),
	})
	if err != nil {
		i.getLogger(issueID).WithError(err).Error("ошибка добавления комментария")
		return nil, models.Unavailable(err, "ошибка добавления комментария")
	}
	rec, err := i.commentStore.GetByID(id)
	if err != nil || rec == nil {
		return nil, models.Unavailable(err, "ошибка получения комментария")
	}
	result := issueapimodels.CommentConvert(*rec)
	return &result, nil
}

func (i impl) ListComments(caller models.Caller, issueID uint, desc bool) ([]issueapimodels.NoteView, error) {
	issue, err := i.getIssue(issueID)
	if err != nil {
		return nil, err
	}
	if !canReadComments(caller, *issue) {
		return nil, models.ErrForbidden()
	}
	list, err := i.commentStore.List(issueID, desc)
	if err != nil {
		i.getLogger(issueID).WithError(err).Error("ошибка получения комментариев")
		return nil, models.Unavailable(err, "ошибка получения комментариев")
	}
	result := make([]issueapimodels.NoteView, 0, len(list))
	for _, rec := range list {
		result = append(result, issueapimodels.CommentConvert(rec))
	}
	return result, nil
}

func canReadComments(caller models.Caller, issue dbmodels.Issue) bool {
	if rbac.Can(caller.Role, models.CapCommentReadAll) {
		return true
	}
	switch caller.Role {
	case models.TenantRole:
		return issue.TenantID == caller.UserID
	case models.ContractorRole:
		return issue.CurrentAssignment != nil && issue.CurrentAssignment.ContractorID == caller.UserID
	}
	return false
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
