package users

import (
	"facility-desk-backend/db"
	"facility-desk-backend/lib/rbac"
	assignmentstore "facility-desk-backend/lib/assignment/store"
	usersstore "facility-desk-backend/lib/users/store"
	"facility-desk-backend/models"
	userapimodels "facility-desk-backend/models/api/user"
	dbmodels "facility-desk-backend/models/db"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(caller models.Caller, data userapimodels.UserCreateData) (uint, error)
	GetByID(caller models.Caller, userID uint) (*userapimodels.UserView, error)
	Me(caller models.Caller) (*userapimodels.UserView, error)
	List(caller models.Caller, filter userapimodels.UserFilter) ([]userapimodels.UserView, error)
	SetAvailability(caller models.Caller, userID uint, isAvailable bool) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           usersstore.NewInstance(db.DB),
		assignmentStore: assignmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store           usersstore.Provider
	assignmentStore assignmentstore.Provider
}

func (i impl) getLogger(userID uint) *log.Entry {
	return log.WithField("user_id", userID)
}

func (i impl) Create(caller models.Caller, data userapimodels.UserCreateData) (uint, error) {
	if err := rbac.Require(caller, models.CapUserManage); err != nil {
		return 0, err
	}
	existed, err := i.store.FindByEmail(data.Email)
	if err != nil {
		return 0, models.Unavailable(err, "ошибка поиска пользователя")
	}
	if existed != nil {
		return 0, models.NewError(models.KindConflict, "пользователь с таким email уже существует")
	}
	rec := dbmodels.User{
		Email:     strings.ToLower(strings.TrimSpace(data.Email)),
		FirstName: strings.TrimSpace(data.FirstName),
		LastName:  strings.TrimSpace(data.LastName),
		Phone:     data.Phone,
		Role:      data.Role,
		IsActive:  true,
		// подрядчик доступен сразу после создания
		IsAvailable: data.Role == models.ContractorRole,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return 0, models.Unavailable(err, "ошибка создания пользователя")
	}
	i.getLogger(id).WithField("role", rec.Role).Info("пользователь создан")
	return id, nil
}

func (i impl) GetByID(caller models.Caller, userID uint) (*userapimodels.UserView, error) {
	if caller.UserID != userID && !rbac.Can(caller.Role, models.CapUserDirectory) {
		return nil, models.ErrForbidden()
	}
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка получения пользователя")
	}
	if rec == nil {
		return nil, models.ErrNotFound("пользователь")
	}
	result := userapimodels.UserConvert(*rec)
	if rec.Role == models.ContractorRole {
		count, err := i.assignmentStore.CountActiveByContractor(rec.ID)
		if err != nil {
			return nil, models.Unavailable(err, "ошибка подсчета назначений подрядчика")
		}
		result.ActiveAssignments = &count
	}
	return &result, nil
}

func (i impl) Me(caller models.Caller) (*userapimodels.UserView, error) {
	return i.GetByID(caller, caller.UserID)
}

func (i impl) List(caller models.Caller, filter userapimodels.UserFilter) ([]userapimodels.UserView, error) {
	if err := rbac.Require(caller, models.CapUserDirectory); err != nil {
		return nil, err
	}
	list, err := i.store.List(filter)
	if err != nil {
		return nil, models.Unavailable(err, "ошибка получения списка пользователей")
	}
	result := make([]userapimodels.UserView, 0, len(list))
	for _, rec := range list {
		view := userapimodels.UserConvert(rec)
		if rec.Role == models.ContractorRole {
			count, err := i.assignmentStore.CountActiveByContractor(rec.ID)
			if err != nil {
				return nil, models.Unavailable(err, "ошибка подсчета назначений подрядчика")
			}
			view.ActiveAssignments = &count
		}
		result = append(result, view)
	}
	return result, nil
}

func (i impl) SetAvailability(caller models.Caller, userID uint, isAvailable bool) error {
	if err := rbac.Require(caller, models.CapContractorAvailability); err != nil {
		return err
	}
	// подрядчик меняет только свою доступность
	if caller.Role == models.ContractorRole && caller.UserID != userID {
		return models.ErrForbidden()
	}
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return models.Unavailable(err, "ошибка получения пользователя")
	}
	if rec == nil || rec.Role != models.ContractorRole {
		return models.ErrNotFound("подрядчик")
	}
	err = i.store.Update(userID, map[string]interface{}{"is_available": isAvailable})
	if err != nil {
		return models.Unavailable(err, "ошибка обновления доступности")
	}
	i.getLogger(userID).WithField("is_available", isAvailable).Info("доступность подрядчика изменена")
	return nil
}
