package userapimodels

import (
	"facility-desk-backend/lib/utils/helpers"
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"
	"net/mail"

	"github.com/pkg/errors"
)

type UserCreateData struct {
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Phone     string          `json:"phone"`
	Role      models.UserRole `json:"role"`
}

func (r UserCreateData) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("указан некорректный email")
	}
	if helpers.IsBlank(r.FirstName) {
		return errors.New("не указано имя")
	}
	if !r.Role.IsValid() {
		return errors.New("указана некорректная роль")
	}
	return nil
}

type UserFilter struct {
	Role          models.UserRole `json:"role"`
	AvailableOnly bool            `json:"available_only"`
	Search        string          `json:"search"`
}

type AvailabilityData struct {
	IsAvailable bool `json:"is_available"`
}

type UserView struct {
	ID          uint            `json:"id"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	FullName    string          `json:"full_name"`
	Phone       string          `json:"phone,omitempty"`
	Role        models.UserRole `json:"role"`
	RoleName    string          `json:"role_name"`
	IsActive    bool            `json:"is_active"`
	IsAvailable bool            `json:"is_available"`
	// заполняется для подрядчиков
	ActiveAssignments *int64 `json:"active_assignments,omitempty"`
}

func UserConvert(rec dbmodels.User) UserView {
	return UserView{
		ID:          rec.ID,
		Email:       rec.Email,
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		FullName:    rec.GetFullName(),
		Phone:       rec.Phone,
		Role:        rec.Role,
		RoleName:    rec.Role.ToHuman(),
		IsActive:    rec.IsActive,
		IsAvailable: rec.IsAvailable,
	}
}

type PermissionsView struct {
	Role         models.UserRole     `json:"role"`
	Capabilities []models.Capability `json:"capabilities"`
}
