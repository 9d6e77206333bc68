package models

type UserRole string

const (
	TenantRole     UserRole = "TENANT"
	ContractorRole UserRole = "CONTRACTOR"
	ManagerRole    UserRole = "MANAGER"
	AdminRole      UserRole = "ADMIN"
)

var UserRoles = []UserRole{TenantRole, ContractorRole, ManagerRole, AdminRole}

var roleHumanName = map[UserRole]string{
	TenantRole:     "Жилец",
	ContractorRole: "Подрядчик",
	ManagerRole:    "Управляющий",
	AdminRole:      "Администратор",
}

func (r UserRole) IsValid() bool {
	_, ok := roleHumanName[r]
	return ok
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

// IsPromotable роль, на которую можно подать заявку
func (r UserRole) IsPromotable() bool {
	return r == ContractorRole || r == ManagerRole
}

// CanRequestPromotion роль, с которой можно подать заявку
func (r UserRole) CanRequestPromotion() bool {
	return r == TenantRole || r == ContractorRole
}

const SystemUser = "Система"

// Caller пользователь, от имени которого выполняется операция
type Caller struct {
	UserID      uint
	Role        UserRole
	DisplayName string
}

type RoleRequestStatus string

const (
	RoleRequestPending  RoleRequestStatus = "Pending"
	RoleRequestApproved RoleRequestStatus = "Approved"
	RoleRequestRejected RoleRequestStatus = "Rejected"
)

var roleRequestStatusHumanName = map[RoleRequestStatus]string{
	RoleRequestPending:  "На рассмотрении",
	RoleRequestApproved: "Одобрена",
	RoleRequestRejected: "Отклонена",
}

func (s RoleRequestStatus) ToHuman() string {
	if human, exist := roleRequestStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsDecision решение администратора
func (s RoleRequestStatus) IsDecision() bool {
	return s == RoleRequestApproved || s == RoleRequestRejected
}
