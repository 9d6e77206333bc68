package testdb

import (
	"testing"

	"facility-desk-backend/config"
	"facility-desk-backend/db"
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Users пользователи, создаваемые в каждой тестовой БД
type Users struct {
	Tenant      dbmodels.User
	OtherTenant dbmodels.User
	Contractor  dbmodels.User
	Contractor2 dbmodels.User
	Manager     dbmodels.User
	Admin       dbmodels.User
}

// New in-memory sqlite со схемой сервиса, подменяет db.DB
func New(t *testing.T) (*gorm.DB, Users) {
	t.Helper()
	InitConfig()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.GormConfig())
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// у каждого соединения своя in-memory БД
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrateDB(gdb))
	db.DB = gdb
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	users := Users{
		Tenant:      addUser(t, gdb, "tenant@test.ru", "Иван", "Жильцов", models.TenantRole),
		OtherTenant: addUser(t, gdb, "tenant2@test.ru", "Петр", "Соседов", models.TenantRole),
		Contractor:  addUser(t, gdb, "contractor@test.ru", "Сергей", "Мастеров", models.ContractorRole),
		Contractor2: addUser(t, gdb, "contractor2@test.ru", "Олег", "Слесарев", models.ContractorRole),
		Manager:     addUser(t, gdb, "manager@test.ru", "Анна", "Управляева", models.ManagerRole),
		Admin:       addUser(t, gdb, "admin@test.ru", "Мария", "Админова", models.AdminRole),
	}
	return gdb, users
}

// InitConfig конфигурация для тестов
func InitConfig() {
	if config.Conf != nil {
		return
	}
	conf := new(config.Configuration)
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.JWTExpireInSec = 3600
	conf.Workflow.IssueLockWaitMs = 3000
	conf.Workflow.NotificationPollIntervalSec = 30
	config.Conf = conf
}

func addUser(t *testing.T, gdb *gorm.DB, email, firstName, lastName string, role models.UserRole) dbmodels.User {
	rec := dbmodels.User{
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		Role:        role,
		IsActive:    true,
		IsAvailable: true,
	}
	require.NoError(t, gdb.Create(&rec).Error)
	return rec
}

// AddIssue заявка в статусе Received
func AddIssue(t *testing.T, gdb *gorm.DB, tenantID uint, title string) dbmodels.Issue {
	t.Helper()
	rec := dbmodels.Issue{
		TenantID:    tenantID,
		Title:       title,
		Description: "описание",
		Category:    models.CategoryWater,
		Location:    "кв. 12",
		Status:      models.IssueReceived,
		Version:     1,
	}
	require.NoError(t, gdb.Omit("Tenant", "CurrentAssignment").Create(&rec).Error)
	return rec
}

// CountNotifications уведомления пользователя с кодом
func CountNotifications(t *testing.T, gdb *gorm.DB, recipientID uint, code models.NotificationCode) int64 {
	t.Helper()
	var count int64
	err := gdb.Model(&dbmodels.Notification{}).
		Where("recipient_id = ?", recipientID).
		Where("code = ?", code).
		Count(&count).
		Error
	require.NoError(t, err)
	return count
}
