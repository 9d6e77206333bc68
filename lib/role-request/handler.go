package rolerequesthandler

import (
	"facility-desk-backend/db"
	assignmentstore "facility-desk-backend/lib/assignment/store"
	notificationhandler "facility-desk-backend/lib/notification"
	"facility-desk-backend/lib/rbac"
	rolerequeststore "facility-desk-backend/lib/role-request/store"
	"facility-desk-backend/lib/smtp"
	usersstore "facility-desk-backend/lib/users/store"
	"facility-desk-backend/lib/utils/helpers"
	initchecker "facility-desk-backend/lib/utils/init-checker"
	"facility-desk-backend/models"
	rolerequestapimodels "facility-desk-backend/models/api/role-request"
	dbmodels "facility-desk-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(caller models.Caller, data rolerequestapimodels.RoleRequestCreateData) (uint, error)
	Resolve(caller models.Caller, requestID uint, data rolerequestapimodels.ResolveData) (*rolerequestapimodels.RoleRequestView, error)
	GetByID(caller models.Caller, requestID uint) (*rolerequestapimodels.RoleRequestView, error)
	List(caller models.Caller, filter rolerequestapimodels.RoleRequestFilter) ([]rolerequestapimodels.RoleRequestView, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"notificationhandler.Instance", notificationhandler.Instance,
	)
	Instance = impl{
		store: rolerequeststore.NewInstance(db.DB),
	}
}

type impl struct {
	store rolerequeststore.Provider
}

func (i impl) getLogger(requestID uint) *log.Entry {
	return log.WithField("role_request_id", requestID)
}

func (i impl) Create(caller models.Caller, data rolerequestapimodels.RoleRequestCreateData) (uint, error) {
	if err := rbac.Require(caller, models.CapRoleRequestSubmit); err != nil {
		return 0, err
	}
	if !caller.Role.CanRequestPromotion() || !data.RequestedRole.IsPromotable() || data.RequestedRole == caller.Role {
		return 0, models.NewError(models.KindForbidden, "запрошенная роль недоступна")
	}
	if helpers.IsBlank(data.Motivation) {
		return 0, models.NewError(models.KindEmptyContent, "не указана мотивация")
	}
	logger := log.WithField("user_id", caller.UserID)
	var id uint
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := rolerequeststore.NewInstance(tx)
		pending, err := store.FindPending(caller.UserID)
		if err != nil {
			return err
		}
		if pending != nil {
			return models.NewError(models.KindConflict, "у вас уже есть заявка на рассмотрении")
		}
		id, err = store.Create(dbmodels.RoleRequest{
			UserID:        caller.UserID,
			CurrentRole:   caller.Role,
			RequestedRole: data.RequestedRole,
			Motivation:    strings.TrimSpace(data.Motivation),
			CvDocument:    strings.TrimSpace(data.CvDocument),
			Status:        models.RoleRequestPending,
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewError(models.KindConflict, "у вас уже есть заявка на рассмотрении")
		}
		return err
	})
	if err != nil {
		if models.KindOf(err) == models.KindUnavailable {
			logger.WithError(err).Error("ошибка создания заявки на роль")
		}
		return 0, models.Unavailable(err, "ошибка создания заявки на роль")
	}
	i.getLogger(id).Info("заявка на роль создана")
	return id, nil
}

func (i impl) Resolve(caller models.Caller, requestID uint, data rolerequestapimodels.ResolveData) (*rolerequestapimodels.RoleRequestView, error) {
	if err := rbac.Require(caller, models.CapRoleRequestResolve); err != nil {
		return nil, err
	}
	if !data.Decision.IsDecision() {
		return nil, models.NewError(models.KindOutOfRange, "решение должно быть Approved или Rejected")
	}
	logger := i.getLogger(requestID)
	adminNotes := strings.TrimSpace(data.AdminNotes)
	var rec *dbmodels.RoleRequest
	var created []dbmodels.Notification
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := rolerequeststore.NewInstance(tx)
		var err error
		rec, err = store.GetByID(requestID)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.ErrNotFound("заявка на роль")
		}
		resolved, err := store.Resolve(requestID, caller.UserID, data.Decision, adminNotes)
		if err != nil {
			return err
		}
		if !resolved {
			return models.NewError(models.KindAlreadyResolved, "заявка на роль уже рассмотрена")
		}
		if data.Decision == models.RoleRequestApproved {
			// после смены роли подрядчик не сможет вести свои заявки
			active, err := assignmentstore.NewInstance(tx).CountActiveByContractor(rec.UserID)
			if err != nil {
				return err
			}
			if active > 0 {
				return models.NewErrorf(models.KindNotEligible, "у пользователя есть активные назначения (%d), смена роли невозможна", active)
			}
			// роль заменяется целиком, прежняя не сохраняется
			err = usersstore.NewInstance(tx).Update(rec.UserID, map[string]interface{}{
				"role": rec.RequestedRole,
			})
			if err != nil {
				return err
			}
		}
		notifier := notificationhandler.NewNotifier(tx)
		ref := notificationhandler.Ref{RoleRequestID: &requestID}
		err = notifier.Notify(rec.UserID, models.GetRoleRequestResolved(rec.RequestedRole, data.Decision, adminNotes, caller.DisplayName), ref)
		if err != nil {
			return err
		}
		created = notifier.Created()
		return nil
	})
	if err != nil {
		if models.KindOf(err) == models.KindUnavailable {
			logger.WithError(err).Error("ошибка рассмотрения заявки на роль")
		}
		return nil, models.Unavailable(err, "ошибка рассмотрения заявки на роль")
	}
	logger.Infof("заявка на роль рассмотрена: %v", data.Decision)
	notificationhandler.Instance.Publish(created)
	i.sendDecisionEmail(rec, created)

	updated, err := i.store.GetByID(requestID)
	if err != nil || updated == nil {
		return nil, models.Unavailable(err, "ошибка получения заявки на роль")
	}
	result := rolerequestapimodels.RoleRequestConvert(*updated)
	return &result, nil
}

func (i impl) sendDecisionEmail(rec *dbmodels.RoleRequest, created []dbmodels.Notification) {
	if smtp.Instance == nil || rec.User == nil || rec.User.Email == "" || len(created) == 0 {
		return
	}
	go func(email string, notification dbmodels.Notification) {
		if err := smtp.Instance.SendEMail(email, notification.Title, notification.Msg); err != nil {
			i.getLogger(rec.ID).WithError(err).Warn("письмо о решении по заявке на роль не отправлено")
		}
	}(rec.User.Email, created[0])
}

func (i impl) GetByID(caller models.Caller, requestID uint) (*rolerequestapimodels.RoleRequestView, error) {
	rec, err := i.store.GetByID(requestID)
	if err != nil {
		i.getLogger(requestID).WithError(err).Error("ошибка получения заявки на роль")
		return nil, models.Unavailable(err, "ошибка получения заявки на роль")
	}
	if rec == nil {
		return nil, models.ErrNotFound("заявка на роль")
	}
	if rec.UserID != caller.UserID && !rbac.Can(caller.Role, models.CapRoleRequestResolve) {
		return nil, models.ErrForbidden()
	}
	result := rolerequestapimodels.RoleRequestConvert(*rec)
	return &result, nil
}

func (i impl) List(caller models.Caller, filter rolerequestapimodels.RoleRequestFilter) ([]rolerequestapimodels.RoleRequestView, error) {
	var userID *uint
	if !rbac.Can(caller.Role, models.CapRoleRequestResolve) {
		id := caller.UserID
		userID = &id
	}
	list, err := i.store.List(userID, filter.Status)
	if err != nil {
		log.WithField("user_id", caller.UserID).WithError(err).Error("ошибка получения списка заявок на роль")
		return nil, models.Unavailable(err, "ошибка получения списка заявок на роль")
	}
	result := make([]rolerequestapimodels.RoleRequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, rolerequestapimodels.RoleRequestConvert(rec))
	}
	return result, nil
}
