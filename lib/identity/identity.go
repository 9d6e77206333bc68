package identity

import (
	"facility-desk-backend/db"
	authutils "facility-desk-backend/lib/utils/auth-utils"
	usersstore "facility-desk-backend/lib/users/store"
	"facility-desk-backend/models"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Resolve пользователь по claims проверенного токена, роль берется из справочника
	Resolve(claims jwt.MapClaims) (models.Caller, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) Resolve(claims jwt.MapClaims) (models.Caller, error) {
	userID, err := authutils.SubjectID(claims)
	if err != nil {
		return models.Caller{}, models.NewError(models.KindUnauthenticated, "некорректный токен")
	}
	rec, err := i.store.GetByID(userID)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("ошибка получения пользователя")
		return models.Caller{}, models.Unavailable(err, "ошибка получения пользователя")
	}
	if rec == nil || !rec.IsActive {
		return models.Caller{}, models.NewError(models.KindUnauthenticated, "пользователь не найден или заблокирован")
	}
	if !rec.Role.IsValid() {
		return models.Caller{}, models.NewError(models.KindUnauthenticated, "у пользователя некорректная роль")
	}
	return rec.ToCaller(), nil
}
