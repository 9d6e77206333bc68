package assignmenthandler

import (
	"context"
	"facility-desk-backend/config"
	issueflow "facility-desk-backend/lib/issue-flow"
	notificationhandler "facility-desk-backend/lib/notification"
	"facility-desk-backend/lib/utils/testdb"
	"facility-desk-backend/models"
	issueapimodels "facility-desk-backend/models/api/issue"
	dbmodels "facility-desk-backend/models/db"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, testdb.Users) {
	gdb, users := testdb.New(t)
	notificationhandler.NewHandler()
	issueflow.NewHandler()
	NewHandler()
	return gdb, users
}

func getIssue(t *testing.T, gdb *gorm.DB, id uint) dbmodels.Issue {
	rec := dbmodels.Issue{}
	require.NoError(t, gdb.First(&rec, id).Error)
	return rec
}

func getAssignment(t *testing.T, gdb *gorm.DB, id uint) dbmodels.Assignment {
	rec := dbmodels.Assignment{}
	require.NoError(t, gdb.First(&rec, id).Error)
	return rec
}

func countHistory(t *testing.T, gdb *gorm.DB, issueID uint) int64 {
	var count int64
	require.NoError(t, gdb.Model(&dbmodels.IssueStatusHistory{}).Where("issue_id = ?", issueID).Count(&count).Error)
	return count
}

func TestAssignContractor(t *testing.T) {
	ctx := context.Background()
	t.Run("назначение подрядчика", func(t *testing.T) {
		gdb, users := setup(t)
		issue := testdb.AddIssue(t, gdb, users.Tenant.ID, "Течет кран")
		cost := 2500.0
		view, err := Instance.AssignContractor(ctx, users.Manager.ToCaller(), issue.ID, issueapimodels.AssignData{
			ContractorID:  users.Contractor.ID,
			EstimatedCost: &cost,
		})
		require.NoError(t, err)
		require.Equal(t, models.AssignmentAssigned, view.Status)
		require.True(t, view.IsActive)
		require.Equal(t, users.Manager.ID, view.ManagerID)

		updated := getIssue(t, gdb, issue.ID)
		require.Equal(t, models.IssueAssignedToContractor, updated.Status)
		require.NotNil(t, updated.CurrentAssignmentID)
		require.Equal(t, view.ID, *updated.CurrentAssignmentID)
		require.Equal(t, 2, updated.Version)
		require.EqualValues(t, 1, countHistory(t, gdb, issue.ID))
		require.EqualValues(t, 1, testdb.CountNotifications(t, gdb, users.Contractor.ID, models.NotifyAssignmentCreated))
		require.EqualValues(t, 1, testdb.CountNotifications(t, gdb, users.Tenant.ID, models.NotifyIssueStatusChanged))
	})
	t.Run("ошибки назначения", func(t *testing.T) {
		gdb, users := setup(t)
		issue := testdb.AddIssue(t, gdb, users.Tenant.ID, "Не работает лифт")

		_, err := Instance.AssignContractor(ctx, users.Tenant.ToCaller(), issue.ID, issueapimodels.AssignData{ContractorID: users.Contractor.ID})
		require.True(t, models.IsKind(err, models.KindForbidden))

		_, err = Instance.AssignContractor(ctx, users.Manager.ToCaller(), issue.ID, issueapimodels.AssignData{ContractorID: users.Tenant.ID})
		require.True(t, models.IsKind(err, models.KindNotFound))

		_, err = Instance.AssignContractor(ctx, users.Manager.ToCaller(), 100500, issueapimodels.AssignData{ContractorID: users.Contractor.ID})
		require.True(t, models.IsKind(err, models.KindNotFound))

		zero := 0.0
		_, err = Instance.AssignContractor(ctx, users.Manager.ToCaller(), issue.ID, issueapimodels.AssignData{ContractorID: users.Contractor.ID, EstimatedCost: &zero})
		require.True(t, models.IsKind(err, models.KindOutOfRange))

		require.NoError(t, gdb.Model(&dbmodels.User{}).Where("id = ?", users.Contractor2.ID).Update("is_available", false).Error)
		_, err = Instance.AssignContractor(ctx, users.Manager.ToCaller(), issue.ID, issueapimodels.AssignData{ContractorID: users.Contractor2.ID})
		require.True(t, models.IsKind(err, models.KindContractorUnavailable))

		_, err = Instance.AssignContractor(ctx, users.Manager.ToCaller(), issue.ID, issueapimodels.AssignData{ContractorID: users.Contractor.ID})
		require.NoError(t, err)
		_, err = Instance.AssignContractor(ctx, users.Manager.ToCaller(), issue.ID, issueapimodels.AssignData{ContractorID: users.Contractor.ID})
		require.True(t, models.IsKind(err, models.KindInvalidTransition))
		require.Equal(t, models.IssueAssignedToContractor, getIssue(t, gdb, issue.ID).Status)
	})
	t.Run("ограничение активных заявок подрядчика", func(t *testing.T) {
		gdb, users := setup(t)
		prev := config.Conf.Workflow.ContractorConcurrencyLimit
		config.Conf.Workflow.ContractorConcurrencyLimit = 1
		t.Cleanup(func() {
			config.Conf.Workflow.ContractorConcurrencyLimit = prev
		})
		first := testdb.AddIssue(t, gdb, users.Tenant.ID, "Первая")
		second := testdb.AddIssue(t, gdb, users.Tenant.ID, "Вторая")
		_, err := Instance.AssignContractor(ctx, users.Manager.ToCaller(), first.ID, issueapimodels.AssignData{ContractorID: users.Contractor.ID})
		require.NoError(t, err)
		_, err = Instance.AssignContractor(ctx, users.Manager.ToCaller(), second.ID, issueapimodels.AssignData{ContractorID: users.Contractor.ID})
		require.True(t, models.IsKind(err, models.KindContractorUnavailable))
		require.Equal(t, models.IssueReceived, getIssue(t, gdb, second.ID).Status)
	})
	t.Run("одновременное назначение подрядчика на разные заявки", func(t *testing.T) {
		gdb, users := setup(t)
		prev := config.Conf.Workflow.ContractorConcurrencyLimit
		config.Conf.Workflow.ContractorConcurrencyLimit = 1
		t.Cleanup(func() {
			config.Conf.Workflow.ContractorConcurrencyLimit = prev
		})
		issues := []dbmodels.Issue{
			testdb.AddIssue(t, gdb, users.Tenant.ID, "Нет света в подъезде"),
			testdb.AddIssue(t, gdb, users.Tenant.ID, "Не закрывается дверь"),
			testdb.AddIssue(t, gdb, users.Tenant.ID, "Сломан домофон"),
		}
		errs := make([]error, len(issues))
		wg := sync.WaitGroup{}
		for n, issue := range issues {
			wg.Add(1)
			go func(n int, issueID uint) {
				defer wg.Done()
				_, errs[n] = Instance.AssignContractor(ctx, users.Manager.ToCaller(), issueID, issueapimodels.AssignData{ContractorID: users.Contractor.ID})
			}(n, issue.ID)
		}
		wg.Wait()
		success := 0
		for _, err := range errs {
			if err == nil {
				success++
				continue
			}
			kind := models.KindOf(err)
			require.True(t, kind == models.KindContractorUnavailable || kind == models.KindConflict, err.Error())
		}
		require.Equal(t, 1, success)
		var count int64
		require.NoError(t, gdb.Model(&dbmodels.Assignment{}).
			Where("contractor_id = ? AND is_active = ?", users.Contractor.ID, true).
			Count(&count).Error)
		require.EqualValues(t, 1, count)
	})
	t.Run("одновременное назначение", func(t *testing.T) {
		gdb, users := setup(t)
		issue := testdb.AddIssue(t, gdb, users.Tenant.ID, "Протечка крыши")
		contractors := []uint{users.Contractor.ID, users.Contractor2.ID}
		errs := make([]error, len(contractors))
		wg := sync.WaitGroup{}
		for n, contractorID := range contractors {
			wg.Add(1)
			go func(n int, contractorID uint) {
				defer wg.Done()
				_, errs[n] = Instance.AssignContractor(ctx, users.Manager.ToCaller(), issue.ID, issueapimodels.AssignData{ContractorID: contractorID})
			}(n, contractorID)
		}
		wg.Wait()
		success := 0
		for _, err := range errs {
			if err == nil {
				success++
				continue
			}
			kind := models.KindOf(err)
			require.True(t, kind == models.KindInvalidTransition || kind == models.KindConflict, err.Error())
		}
		require.Equal(t, 1, success)
		var count int64
		require.NoError(t, gdb.Model(&dbmodels.Assignment{}).Where("issue_id = ?", issue.ID).Count(&count).Error)
		require.EqualValues(t, 1, count)
	})
}

func TestAssignmentWork(t *testing.T) {
	ctx := context.Background()
	assign := func(t *testing.T, gdb *gorm.DB, users testdb.Users) (dbmodels.Issue, *issueapimodels.AssignmentView) {
		issue := testdb.AddIssue(t, gdb, users.Tenant.ID, "Нет отопления")
		view, err := Instance.AssignContractor(ctx, users.Manager.ToCaller(), issue.ID, issueapimodels.AssignData{ContractorID: users.Contractor.ID})
		require.NoError(t, err)
		return issue, view
	}
	t.Run("работы выполнены", func(t *testing.T) {
		gdb, users := setup(t)
		issue, assignment := assign(t, gdb, users)
		contractor := users.Contractor.ToCaller()

		view, err := Instance.UpdateStatus(ctx, contractor, assignment.ID, issueapimodels.StatusChangeData{Status: models.IssueOnSite})
		require.NoError(t, err)
		require.Equal(t, models.AssignmentInProgress, view.Status)

		_, err = Instance.UpdateStatus(ctx, contractor, assignment.ID, issueapimodels.StatusChangeData{Status: models.IssueAwaitingParts})
		require.NoError(t, err)
		_, err = Instance.UpdateStatus(ctx, contractor, assignment.ID, issueapimodels.StatusChangeData{Status: models.IssueCompleted})
		require.True(t, models.IsKind(err, models.KindInvalidTransition))
		_, err = Instance.UpdateStatus(ctx, contractor, assignment.ID, issueapimodels.StatusChangeData{Status: models.IssueRepairInProgress})
		require.NoError(t, err)

		err = Instance.RecordActualCost(contractor, assignment.ID, 1000)
		require.True(t, models.IsKind(err, models.KindNotEligible))

		view, err = Instance.UpdateStatus(ctx, contractor, assignment.ID, issueapimodels.StatusChangeData{
			Status:           models.IssueCompleted,
			WarrantyDocument: "warranty/doc.pdf",
		})
		require.NoError(t, err)
		require.Equal(t, models.AssignmentCompleted, view.Status)
		require.False(t, view.IsActive)
		require.NotNil(t, view.CompletedAt)
		require.Equal(t, "warranty/doc.pdf", view.WarrantyDocument)
		require.Equal(t, models.IssueCompleted, getIssue(t, gdb, issue.ID).Status)

		// закрытое назначение не меняется
		_, err = Instance.UpdateStatus(ctx, contractor, assignment.ID, issueapimodels.StatusChangeData{Status: models.IssueRepairInProgress})
		require.True(t, models.IsKind(err, models.KindInvalidTransition))

		require.True(t, models.IsKind(Instance.RecordActualCost(contractor, assignment.ID, 0), models.KindOutOfRange))
		require.NoError(t, Instance.RecordActualCost(contractor, assignment.ID, 1850.5))
		rec := getAssignment(t, gdb, assignment.ID)
		require.NotNil(t, rec.ActualCost)
		require.Equal(t, 1850.5, *rec.ActualCost)

		require.EqualValues(t, 5, countHistory(t, gdb, issue.ID))
		require.EqualValues(t, 5, testdb.CountNotifications(t, gdb, users.Tenant.ID, models.NotifyIssueStatusChanged))
		require.EqualValues(t, 1, testdb.CountNotifications(t, gdb, users.Manager.ID, models.NotifyWorkCompleted))
	})
	t.Run("отказ подрядчика", func(t *testing.T) {
		gdb, users := setup(t)
		issue, assignment := assign(t, gdb, users)
		contractor := users.Contractor.ToCaller()

		_, err := Instance.UpdateStatus(ctx, contractor, assignment.ID, issueapimodels.StatusChangeData{Status: models.IssueOnSite})
		require.NoError(t, err)
		require.Equal(t, models.IssueOnSite, getIssue(t, gdb, issue.ID).Status)

		_, err = Instance.Reject(ctx, contractor, assignment.ID, "  ")
		require.True(t, models.IsKind(err, models.KindEmptyContent))

		view, err := Instance.Reject(ctx, contractor, assignment.ID, "нет нужных запчастей")
		require.NoError(t, err)
		require.Equal(t, models.AssignmentRejected, view.Status)
		require.False(t, view.IsActive)
		require.Equal(t, "нет нужных запчастей", view.RejectionReason)
		require.NotNil(t, view.RejectedAt)

		updated := getIssue(t, gdb, issue.ID)
		require.Equal(t, models.IssueReceived, updated.Status)
		require.Nil(t, updated.CurrentAssignmentID)
		// назначение, выезд, отказ и системный возврат в Received
		require.EqualValues(t, 4, countHistory(t, gdb, issue.ID))
		require.EqualValues(t, 1, testdb.CountNotifications(t, gdb, users.Manager.ID, models.NotifyAssignmentRejected))
		var notice dbmodels.Notification
		require.NoError(t, gdb.Where("recipient_id = ? AND code = ?", users.Manager.ID, models.NotifyAssignmentRejected).First(&notice).Error)
		require.Contains(t, notice.Msg, "нет нужных запчастей")

		second, err := Instance.AssignContractor(ctx, users.Manager.ToCaller(), issue.ID, issueapimodels.AssignData{ContractorID: users.Contractor2.ID})
		require.NoError(t, err)
		require.NotEqual(t, assignment.ID, second.ID)

		list, err := Instance.ListForIssue(users.Manager.ToCaller(), issue.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		// отказавшийся подрядчик видит только свое назначение
		list, err = Instance.ListForIssue(contractor, issue.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, assignment.ID, list[0].ID)
	})
	t.Run("чужое назначение", func(t *testing.T) {
		gdb, users := setup(t)
		_, assignment := assign(t, gdb, users)

		_, err := Instance.UpdateStatus(ctx, users.Contractor2.ToCaller(), assignment.ID, issueapimodels.StatusChangeData{Status: models.IssueOnSite})
		require.True(t, models.IsKind(err, models.KindForbidden))
		_, err = Instance.UpdateStatus(ctx, users.Manager.ToCaller(), assignment.ID, issueapimodels.StatusChangeData{Status: models.IssueOnSite})
		require.True(t, models.IsKind(err, models.KindForbidden))
		_, err = Instance.GetByID(users.Contractor2.ToCaller(), assignment.ID)
		require.True(t, models.IsKind(err, models.KindForbidden))
		_, err = Instance.GetByID(users.OtherTenant.ToCaller(), assignment.ID)
		require.True(t, models.IsKind(err, models.KindForbidden))
		_, err = Instance.GetByID(users.Contractor.ToCaller(), 100500)
		require.True(t, models.IsKind(err, models.KindNotFound))

		view, err := Instance.GetByID(users.Tenant.ToCaller(), assignment.ID)
		require.NoError(t, err)
		require.Equal(t, assignment.ID, view.ID)
	})
	t.Run("смета и гарантия", func(t *testing.T) {
		gdb, users := setup(t)
		_, assignment := assign(t, gdb, users)
		contractor := users.Contractor.ToCaller()

		negative := -1.0
		err := Instance.SetEstimate(contractor, assignment.ID, issueapimodels.EstimateData{EstimatedCost: &negative})
		require.True(t, models.IsKind(err, models.KindOutOfRange))
		cost := 3000.0
		require.NoError(t, Instance.SetEstimate(contractor, assignment.ID, issueapimodels.EstimateData{EstimatedCost: &cost}))
		rec := getAssignment(t, gdb, assignment.ID)
		require.NotNil(t, rec.EstimatedCost)
		require.Equal(t, cost, *rec.EstimatedCost)

		err = Instance.AttachWarranty(contractor, assignment.ID, "warranty/a.pdf")
		require.True(t, models.IsKind(err, models.KindNotEligible))
		err = Instance.AttachWarranty(contractor, assignment.ID, "")
		require.True(t, models.IsKind(err, models.KindEmptyContent))
	})
	t.Run("мои назначения", func(t *testing.T) {
		gdb, users := setup(t)
		assign(t, gdb, users)
		_, second := assign(t, gdb, users)
		_, err := Instance.Reject(ctx, users.Contractor.ToCaller(), second.ID, "занят")
		require.NoError(t, err)

		filter := issueapimodels.AssignmentFilter{}
		list, rowCount, err := Instance.ListMine(users.Contractor.ToCaller(), filter)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.EqualValues(t, 2, rowCount)

		filter.ActiveOnly = true
		list, rowCount, err = Instance.ListMine(users.Contractor.ToCaller(), filter)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.EqualValues(t, 1, rowCount)

		_, _, err = Instance.ListMine(users.Manager.ToCaller(), filter)
		require.True(t, models.IsKind(err, models.KindForbidden))
	})
	t.Run("наряд-заказ", func(t *testing.T) {
		gdb, users := setup(t)
		_, assignment := assign(t, gdb, users)

		_, _, err := Instance.WorkOrder(users.Tenant.ToCaller(), assignment.ID)
		require.True(t, models.IsKind(err, models.KindForbidden))

		body, fileName, err := Instance.WorkOrder(users.Manager.ToCaller(), assignment.ID)
		require.NoError(t, err)
		require.NotEmpty(t, body)
		require.Contains(t, fileName, ".pdf")
	})
}
