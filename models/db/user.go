package dbmodels

import (
	"facility-desk-backend/models"
	"fmt"
	"strings"
)

type User struct {
	BaseModel
	Email     string `gorm:"type:varchar(255);uniqueIndex"`
	FirstName string `gorm:"type:varchar(150)"`
	LastName  string `gorm:"type:varchar(150)"`
	Phone     string `gorm:"type:varchar(20)"`
	Role      models.UserRole `gorm:"type:varchar(50);index"`
	IsActive  bool
	// признак доступности подрядчика, поддерживается внешней системой
	IsAvailable bool
}

func (r User) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", r.FirstName, r.LastName))
}

func (r User) ToCaller() models.Caller {
	name := r.GetFullName()
	if name == "" {
		name = r.Email
	}
	return models.Caller{
		UserID:      r.ID,
		Role:        r.Role,
		DisplayName: name,
	}
}
