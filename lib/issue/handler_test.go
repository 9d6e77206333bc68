package issuehandler

import (
	"context"
	assignmentstore "facility-desk-backend/lib/assignment/store"
	xlsexport "facility-desk-backend/lib/export/xls"
	issueflow "facility-desk-backend/lib/issue-flow"
	issuehistorystore "facility-desk-backend/lib/issue/history-store"
	issuestore "facility-desk-backend/lib/issue/store"
	notificationhandler "facility-desk-backend/lib/notification"
	"facility-desk-backend/lib/utils/testdb"
	"facility-desk-backend/models"
	issueapimodels "facility-desk-backend/models/api/issue"
	dbmodels "facility-desk-backend/models/db"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, testdb.Users) {
	gdb, users := testdb.New(t)
	notificationhandler.NewHandler()
	xlsexport.NewHandler()
	issueflow.NewHandler()
	NewHandler()
	return gdb, users
}

func newIssue(t *testing.T, tenant dbmodels.User, title string) uint {
	id, err := Instance.Create(tenant.ToCaller(), issueapimodels.IssueCreateData{
		Title:    title,
		Category: models.CategoryElectrical,
		Location: " подъезд 2 ",
		Images:   []string{"issue_image/a.jpg", "issue_image/b.jpg"},
	})
	require.NoError(t, err)
	return id
}

func assign(t *testing.T, gdb *gorm.DB, issueID uint, users testdb.Users) {
	rec := dbmodels.Assignment{
		IssueID:      issueID,
		ContractorID: users.Contractor.ID,
		ManagerID:    users.Manager.ID,
		Status:       models.AssignmentAssigned,
		IsActive:     true,
	}
	require.NoError(t, gdb.Omit("Issue", "Contractor", "Manager").Create(&rec).Error)
	require.NoError(t, gdb.Model(&dbmodels.Issue{}).Where("id = ?", issueID).Updates(map[string]interface{}{
		"status":                models.IssueAssignedToContractor,
		"current_assignment_id": rec.ID,
	}).Error)
}

func TestCreate(t *testing.T) {
	gdb, users := setup(t)
	id := newIssue(t, users.Tenant, "  Не горит свет  ")

	view, err := Instance.GetByID(users.Tenant.ToCaller(), id)
	require.NoError(t, err)
	require.Equal(t, "Не горит свет", view.Title)
	require.Equal(t, "подъезд 2", view.Location)
	require.Equal(t, models.IssueReceived, view.Status)
	require.Equal(t, []string{"issue_image/a.jpg", "issue_image/b.jpg"}, view.Images)
	require.Equal(t, users.Tenant.GetFullName(), view.TenantName)

	history, err := Instance.History(users.Tenant.ToCaller(), id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, models.IssueReceived, history[0].ToStatus)

	_, err = Instance.Create(users.Manager.ToCaller(), issueapimodels.IssueCreateData{Title: "x", Category: models.CategoryOther, Location: "y"})
	require.True(t, models.IsKind(err, models.KindForbidden))

	_, err = Instance.Create(users.Tenant.ToCaller(), issueapimodels.IssueCreateData{Title: "x", Category: "Плесень", Location: "y"})
	require.True(t, models.IsKind(err, models.KindOutOfRange))
	_, err = Instance.Create(users.Tenant.ToCaller(), issueapimodels.IssueCreateData{Title: " ", Category: models.CategoryOther, Location: "y"})
	require.True(t, models.IsKind(err, models.KindEmptyContent))

	var count int64
	require.NoError(t, gdb.Model(&dbmodels.Issue{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestVisibility(t *testing.T) {
	gdb, users := setup(t)
	own := newIssue(t, users.Tenant, "Своя")
	newIssue(t, users.OtherTenant, "Соседская")
	assigned := newIssue(t, users.OtherTenant, "Назначенная")
	assign(t, gdb, assigned, users)

	_, err := Instance.GetByID(users.OtherTenant.ToCaller(), own)
	require.True(t, models.IsKind(err, models.KindForbidden))
	_, err = Instance.GetByID(users.Contractor.ToCaller(), own)
	require.True(t, models.IsKind(err, models.KindForbidden))
	_, err = Instance.GetByID(users.Manager.ToCaller(), 100500)
	require.True(t, models.IsKind(err, models.KindNotFound))
	_, err = Instance.History(users.Contractor2.ToCaller(), assigned)
	require.True(t, models.IsKind(err, models.KindForbidden))

	view, err := Instance.GetByID(users.Contractor.ToCaller(), assigned)
	require.NoError(t, err)
	require.NotNil(t, view.ContractorID)
	require.Equal(t, users.Contractor.ID, *view.ContractorID)

	list, rowCount, err := Instance.List(users.Tenant.ToCaller(), issueapimodels.IssueFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 1, rowCount)
	require.Equal(t, own, list[0].ID)

	list, _, err = Instance.List(users.Contractor.ToCaller(), issueapimodels.IssueFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, assigned, list[0].ID)

	list, rowCount, err = Instance.List(users.Manager.ToCaller(), issueapimodels.IssueFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 3, rowCount)
	// новые сверху
	require.Equal(t, assigned, list[0].ID)

	_, rowCount, err = Instance.List(users.Admin.ToCaller(), issueapimodels.IssueFilter{Status: models.IssueAssignedToContractor})
	require.NoError(t, err)
	require.EqualValues(t, 1, rowCount)
	_, rowCount, err = Instance.List(users.Manager.ToCaller(), issueapimodels.IssueFilter{Search: "седск"})
	require.NoError(t, err)
	require.EqualValues(t, 1, rowCount)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	gdb, users := setup(t)
	id := newIssue(t, users.Tenant, "Удаляемая")
	_, err := Instance.GetByID(users.Tenant.ToCaller(), id)
	require.NoError(t, err)

	require.True(t, models.IsKind(Instance.Delete(ctx, users.OtherTenant.ToCaller(), id), models.KindForbidden))
	require.True(t, models.IsKind(Instance.Delete(ctx, users.Manager.ToCaller(), id), models.KindForbidden))
	require.True(t, models.IsKind(Instance.Delete(ctx, users.Tenant.ToCaller(), 100500), models.KindNotFound))

	require.NoError(t, Instance.Delete(ctx, users.Tenant.ToCaller(), id))
	_, err = Instance.GetByID(users.Tenant.ToCaller(), id)
	require.True(t, models.IsKind(err, models.KindNotFound))
	var count int64
	require.NoError(t, gdb.Model(&dbmodels.IssueImage{}).Where("issue_id = ?", id).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, gdb.Model(&dbmodels.IssueStatusHistory{}).Where("issue_id = ?", id).Count(&count).Error)
	require.Zero(t, count)

	assigned := newIssue(t, users.Tenant, "С назначением")
	assign(t, gdb, assigned, users)
	require.True(t, models.IsKind(Instance.Delete(ctx, users.Tenant.ToCaller(), assigned), models.KindNotEligible))

	// после отказа заявка снова Received, но назначения уже были
	require.NoError(t, gdb.Model(&dbmodels.Issue{}).Where("id = ?", assigned).Updates(map[string]interface{}{
		"status":                models.IssueReceived,
		"current_assignment_id": nil,
	}).Error)
	require.True(t, models.IsKind(Instance.Delete(ctx, users.Tenant.ToCaller(), assigned), models.KindNotEligible))
}

func TestExport(t *testing.T) {
	_, users := setup(t)
	newIssue(t, users.Tenant, "Первая")
	newIssue(t, users.OtherTenant, "Вторая")

	_, err := Instance.Export(users.Tenant.ToCaller(), issueapimodels.ExportFilter{})
	require.True(t, models.IsKind(err, models.KindForbidden))

	buf, err := Instance.Export(users.Manager.ToCaller(), issueapimodels.ExportFilter{})
	require.NoError(t, err)
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	value, err := f.GetCellValue("Заявки", "C2")
	require.NoError(t, err)
	require.Equal(t, "Первая", value)
	value, err = f.GetCellValue("Заявки", "C3")
	require.NoError(t, err)
	require.Equal(t, "Вторая", value)
}

func TestStorageUnavailable(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{})
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT \* FROM "issues"`).WillReturnError(errors.New("connection refused"))

	handler := impl{
		store:           issuestore.NewInstance(gdb),
		historyStore:    issuehistorystore.NewInstance(gdb),
		assignmentStore: assignmentstore.NewInstance(gdb),
	}
	_, err = handler.GetByID(models.Caller{UserID: 1, Role: models.ManagerRole}, 1)
	require.True(t, models.IsKind(err, models.KindUnavailable))
	require.Equal(t, "ошибка получения заявки", models.HumanMessage(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
