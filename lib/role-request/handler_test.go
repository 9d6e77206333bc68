package rolerequesthandler

import (
	notificationhandler "facility-desk-backend/lib/notification"
	rolerequeststore "facility-desk-backend/lib/role-request/store"
	"facility-desk-backend/lib/utils/testdb"
	"facility-desk-backend/models"
	rolerequestapimodels "facility-desk-backend/models/api/role-request"
	dbmodels "facility-desk-backend/models/db"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, testdb.Users) {
	gdb, users := testdb.New(t)
	notificationhandler.NewHandler()
	NewHandler()
	return gdb, users
}

func getRole(t *testing.T, gdb *gorm.DB, userID uint) models.UserRole {
	rec := dbmodels.User{}
	require.NoError(t, gdb.First(&rec, userID).Error)
	return rec.Role
}

func TestCreate(t *testing.T) {
	t.Run("заявка жильца", func(t *testing.T) {
		gdb, users := setup(t)
		id, err := Instance.Create(users.Tenant.ToCaller(), rolerequestapimodels.RoleRequestCreateData{
			RequestedRole: models.ContractorRole,
			Motivation:    " сантехник, 10 лет опыта ",
			CvDocument:    "cv/1.pdf",
		})
		require.NoError(t, err)
		view, err := Instance.GetByID(users.Tenant.ToCaller(), id)
		require.NoError(t, err)
		require.Equal(t, models.RoleRequestPending, view.Status)
		require.Equal(t, models.TenantRole, view.CurrentRole)
		require.Equal(t, "сантехник, 10 лет опыта", view.Motivation)

		_, err = Instance.Create(users.Tenant.ToCaller(), rolerequestapimodels.RoleRequestCreateData{
			RequestedRole: models.ManagerRole,
			Motivation:    "вторая",
		})
		require.True(t, models.IsKind(err, models.KindConflict))

		_, err = Instance.GetByID(users.OtherTenant.ToCaller(), id)
		require.True(t, models.IsKind(err, models.KindForbidden))
		_, err = Instance.GetByID(users.Admin.ToCaller(), id)
		require.NoError(t, err)

		var count int64
		require.NoError(t, gdb.Model(&dbmodels.RoleRequest{}).Count(&count).Error)
		require.EqualValues(t, 1, count)
	})
	t.Run("одна заявка на рассмотрении", func(t *testing.T) {
		gdb, users := setup(t)
		store := rolerequeststore.NewInstance(gdb)
		rec := dbmodels.RoleRequest{
			UserID:        users.Tenant.ID,
			CurrentRole:   models.TenantRole,
			RequestedRole: models.ContractorRole,
			Motivation:    "опыт",
			Status:        models.RoleRequestPending,
		}
		_, err := store.Create(rec)
		require.NoError(t, err)
		// уникальный индекс по рассматриваемым заявкам
		_, err = store.Create(rec)
		require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
		rec.Status = models.RoleRequestRejected
		_, err = store.Create(rec)
		require.NoError(t, err)

		errs := make([]error, 3)
		wg := sync.WaitGroup{}
		for n := range errs {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				_, errs[n] = Instance.Create(users.Contractor.ToCaller(), rolerequestapimodels.RoleRequestCreateData{
					RequestedRole: models.ManagerRole,
					Motivation:    "руковожу бригадой",
				})
			}(n)
		}
		wg.Wait()
		success := 0
		for _, err := range errs {
			if err == nil {
				success++
				continue
			}
			require.True(t, models.IsKind(err, models.KindConflict), err.Error())
		}
		require.Equal(t, 1, success)
	})
	t.Run("недоступные роли", func(t *testing.T) {
		_, users := setup(t)
		cases := []struct {
			caller dbmodels.User
			role   models.UserRole
			kind   models.ErrorKind
		}{
			{users.Tenant, models.AdminRole, models.KindForbidden},
			{users.Tenant, models.TenantRole, models.KindForbidden},
			{users.Contractor, models.ContractorRole, models.KindForbidden},
			{users.Manager, models.ContractorRole, models.KindForbidden},
			{users.Admin, models.ManagerRole, models.KindForbidden},
		}
		for _, c := range cases {
			_, err := Instance.Create(c.caller.ToCaller(), rolerequestapimodels.RoleRequestCreateData{
				RequestedRole: c.role,
				Motivation:    "хочу",
			})
			require.True(t, models.IsKind(err, c.kind), c.role)
		}
		_, err := Instance.Create(users.Contractor.ToCaller(), rolerequestapimodels.RoleRequestCreateData{
			RequestedRole: models.ManagerRole,
			Motivation:    "   ",
		})
		require.True(t, models.IsKind(err, models.KindEmptyContent))
	})
}

func TestResolve(t *testing.T) {
	create := func(t *testing.T, user dbmodels.User, role models.UserRole) uint {
		id, err := Instance.Create(user.ToCaller(), rolerequestapimodels.RoleRequestCreateData{
			RequestedRole: role,
			Motivation:    "опыт работы",
		})
		require.NoError(t, err)
		return id
	}
	t.Run("одобрение меняет роль", func(t *testing.T) {
		gdb, users := setup(t)
		id := create(t, users.Tenant, models.ContractorRole)

		_, err := Instance.Resolve(users.Manager.ToCaller(), id, rolerequestapimodels.ResolveData{Decision: models.RoleRequestApproved})
		require.True(t, models.IsKind(err, models.KindForbidden))
		_, err = Instance.Resolve(users.Admin.ToCaller(), id, rolerequestapimodels.ResolveData{Decision: models.RoleRequestPending})
		require.True(t, models.IsKind(err, models.KindOutOfRange))
		_, err = Instance.Resolve(users.Admin.ToCaller(), 100500, rolerequestapimodels.ResolveData{Decision: models.RoleRequestApproved})
		require.True(t, models.IsKind(err, models.KindNotFound))

		view, err := Instance.Resolve(users.Admin.ToCaller(), id, rolerequestapimodels.ResolveData{
			Decision:   models.RoleRequestApproved,
			AdminNotes: "добро пожаловать",
		})
		require.NoError(t, err)
		require.Equal(t, models.RoleRequestApproved, view.Status)
		require.NotNil(t, view.AdminID)
		require.Equal(t, users.Admin.ID, *view.AdminID)
		require.NotNil(t, view.ResolvedAt)
		require.Equal(t, models.ContractorRole, getRole(t, gdb, users.Tenant.ID))
		require.EqualValues(t, 1, testdb.CountNotifications(t, gdb, users.Tenant.ID, models.NotifyRoleRequestResolved))

		_, err = Instance.Resolve(users.Admin.ToCaller(), id, rolerequestapimodels.ResolveData{Decision: models.RoleRequestRejected})
		require.True(t, models.IsKind(err, models.KindAlreadyResolved))
	})
	t.Run("подрядчик с активным назначением", func(t *testing.T) {
		gdb, users := setup(t)
		id := create(t, users.Contractor, models.ManagerRole)
		issue := testdb.AddIssue(t, gdb, users.Tenant.ID, "Дует из окна")
		assignment := dbmodels.Assignment{
			IssueID:      issue.ID,
			ContractorID: users.Contractor.ID,
			ManagerID:    users.Manager.ID,
			Status:       models.AssignmentInProgress,
			IsActive:     true,
		}
		require.NoError(t, gdb.Omit("Issue", "Contractor", "Manager").Create(&assignment).Error)

		_, err := Instance.Resolve(users.Admin.ToCaller(), id, rolerequestapimodels.ResolveData{Decision: models.RoleRequestApproved})
		require.True(t, models.IsKind(err, models.KindNotEligible))
		require.Equal(t, models.ContractorRole, getRole(t, gdb, users.Contractor.ID))
		view, err := Instance.GetByID(users.Admin.ToCaller(), id)
		require.NoError(t, err)
		require.Equal(t, models.RoleRequestPending, view.Status)
		require.EqualValues(t, 0, testdb.CountNotifications(t, gdb, users.Contractor.ID, models.NotifyRoleRequestResolved))

		require.NoError(t, gdb.Model(&dbmodels.Assignment{}).Where("id = ?", assignment.ID).Update("is_active", false).Error)
		_, err = Instance.Resolve(users.Admin.ToCaller(), id, rolerequestapimodels.ResolveData{Decision: models.RoleRequestApproved})
		require.NoError(t, err)
		require.Equal(t, models.ManagerRole, getRole(t, gdb, users.Contractor.ID))
	})
	t.Run("отказ не меняет роль", func(t *testing.T) {
		gdb, users := setup(t)
		id := create(t, users.Contractor, models.ManagerRole)
		view, err := Instance.Resolve(users.Admin.ToCaller(), id, rolerequestapimodels.ResolveData{Decision: models.RoleRequestRejected})
		require.NoError(t, err)
		require.Equal(t, models.RoleRequestRejected, view.Status)
		require.Equal(t, models.ContractorRole, getRole(t, gdb, users.Contractor.ID))

		// после решения можно подать новую заявку
		create(t, users.Contractor, models.ManagerRole)
	})
	t.Run("одновременное рассмотрение", func(t *testing.T) {
		gdb, users := setup(t)
		id := create(t, users.Tenant, models.ManagerRole)
		decisions := []models.RoleRequestStatus{models.RoleRequestApproved, models.RoleRequestRejected, models.RoleRequestApproved}
		errs := make([]error, len(decisions))
		wg := sync.WaitGroup{}
		for n, decision := range decisions {
			wg.Add(1)
			go func(n int, decision models.RoleRequestStatus) {
				defer wg.Done()
				_, errs[n] = Instance.Resolve(users.Admin.ToCaller(), id, rolerequestapimodels.ResolveData{Decision: decision})
			}(n, decision)
		}
		wg.Wait()
		success := 0
		for _, err := range errs {
			if err == nil {
				success++
				continue
			}
			require.True(t, models.IsKind(err, models.KindAlreadyResolved), err.Error())
		}
		require.Equal(t, 1, success)
		require.EqualValues(t, 1, testdb.CountNotifications(t, gdb, users.Tenant.ID, models.NotifyRoleRequestResolved))
	})
	t.Run("список заявок", func(t *testing.T) {
		_, users := setup(t)
		create(t, users.Tenant, models.ContractorRole)
		create(t, users.Contractor, models.ManagerRole)

		list, err := Instance.List(users.Admin.ToCaller(), rolerequestapimodels.RoleRequestFilter{})
		require.NoError(t, err)
		require.Len(t, list, 2)
		list, err = Instance.List(users.Tenant.ToCaller(), rolerequestapimodels.RoleRequestFilter{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, users.Tenant.ID, list[0].UserID)
		list, err = Instance.List(users.Admin.ToCaller(), rolerequestapimodels.RoleRequestFilter{Status: models.RoleRequestApproved})
		require.NoError(t, err)
		require.Empty(t, list)
	})
}
