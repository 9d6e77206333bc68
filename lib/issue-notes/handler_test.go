package issuenoteshandler

import (
	notificationhandler "facility-desk-backend/lib/notification"
	"facility-desk-backend/lib/utils/testdb"
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"
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

func TestNotes(t *testing.T) {
	t.Run("заметка управляющего", func(t *testing.T) {
		gdb, users := setup(t)
		issue := testdb.AddIssue(t, gdb, users.Tenant.ID, "Течет батарея")
		manager := users.Manager.ToCaller()

		view, err := Instance.AddNote(manager, issue.ID, "  мастер придет завтра ")
		require.NoError(t, err)
		require.Equal(t, "мастер придет завтра", view.Body)
		require.Equal(t, users.Manager.GetFullName(), view.AuthorName)
		_, err = Instance.AddNote(manager, issue.ID, "вторая")
		require.NoError(t, err)

		// жилец получает текст заметки
		list := []dbmodels.Notification{}
		require.NoError(t, gdb.Where("recipient_id = ?", users.Tenant.ID).Order("id").Find(&list).Error)
		require.Len(t, list, 2)
		require.Equal(t, models.NotifyIssueNoteAdded, list[0].Code)
		require.Contains(t, list[0].Msg, "мастер придет завтра")

		notes, err := Instance.ListNotes(manager, issue.ID, false)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		require.Equal(t, "мастер придет завтра", notes[0].Body)
		notes, err = Instance.ListNotes(users.Admin.ToCaller(), issue.ID, true)
		require.NoError(t, err)
		require.Equal(t, "вторая", notes[0].Body)
	})
	t.Run("ошибки заметок", func(t *testing.T) {
		gdb, users := setup(t)
		issue := testdb.AddIssue(t, gdb, users.Tenant.ID, "Сломан замок")

		_, err := Instance.AddNote(users.Tenant.ToCaller(), issue.ID, "текст")
		require.True(t, models.IsKind(err, models.KindForbidden))
		_, err = Instance.AddNote(users.Manager.ToCaller(), 100500, "текст")
		require.True(t, models.IsKind(err, models.KindNotFound))
		_, err = Instance.AddNote(users.Manager.ToCaller(), issue.ID, " \n ")
		require.True(t, models.IsKind(err, models.KindEmptyContent))
		_, err = Instance.ListNotes(users.Tenant.ToCaller(), issue.ID, false)
		require.True(t, models.IsKind(err, models.KindForbidden))
		_, err = Instance.ListNotes(users.Contractor.ToCaller(), issue.ID, false)
		require.True(t, models.IsKind(err, models.KindForbidden))
	})
}

func TestComments(t *testing.T) {
	t.Run("комментарий жильца", func(t *testing.T) {
		gdb, users := setup(t)
		issue := testdb.AddIssue(t, gdb, users.Tenant.ID, "Нет воды")
		tenant := users.Tenant.ToCaller()

		_, err := Instance.AddComment(tenant, issue.ID, "первый")
		require.NoError(t, err)
		_, err = Instance.AddComment(tenant, issue.ID, "второй")
		require.NoError(t, err)

		list, err := Instance.ListComments(tenant, issue.ID, true)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "второй", list[0].Body)

		list, err = Instance.ListComments(users.Manager.ToCaller(), issue.ID, false)
		require.NoError(t, err)
		require.Equal(t, "первый", list[0].Body)
	})
	t.Run("доступ к комментариям", func(t *testing.T) {
		gdb, users := setup(t)
		issue := testdb.AddIssue(t, gdb, users.Tenant.ID, "Скрипит дверь")

		_, err := Instance.AddComment(users.OtherTenant.ToCaller(), issue.ID, "чужая")
		require.True(t, models.IsKind(err, models.KindForbidden))
		_, err = Instance.AddComment(users.Manager.ToCaller(), issue.ID, "управляющий")
		require.True(t, models.IsKind(err, models.KindForbidden))
		_, err = Instance.AddComment(users.Tenant.ToCaller(), issue.ID, "")
		require.True(t, models.IsKind(err, models.KindEmptyContent))
		_, err = Instance.AddComment(users.Tenant.ToCaller(), 100500, "текст")
		require.True(t, models.IsKind(err, models.KindNotFound))

		_, err = Instance.ListComments(users.OtherTenant.ToCaller(), issue.ID, false)
		require.True(t, models.IsKind(err, models.KindForbidden))
		_, err = Instance.ListComments(users.Admin.ToCaller(), issue.ID, false)
		require.True(t, models.IsKind(err, models.KindForbidden))
		// подрядчик без назначения комментарии не видит
		_, err = Instance.ListComments(users.Contractor.ToCaller(), issue.ID, false)
		require.True(t, models.IsKind(err, models.KindForbidden))

		assignment := dbmodels.Assignment{
			IssueID:      issue.ID,
			ContractorID: users.Contractor.ID,
			ManagerID:    users.Manager.ID,
			Status:       models.AssignmentAssigned,
			IsActive:     true,
		}
		require.NoError(t, gdb.Omit("Issue", "Contractor", "Manager").Create(&assignment).Error)
		require.NoError(t, gdb.Model(&dbmodels.Issue{}).Where("id = ?", issue.ID).Updates(map[string]interface{}{
			"status":                models.IssueAssignedToContractor,
			"current_assignment_id": assignment.ID,
		}).Error)
		list, err := Instance.ListComments(users.Contractor.ToCaller(), issue.ID, false)
		require.NoError(t, err)
		require.Empty(t, list)
	})
}
