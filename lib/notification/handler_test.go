package notificationhandler

import (
	"facility-desk-backend/lib/utils/testdb"
	"facility-desk-backend/models"
	notificationapimodels "facility-desk-backend/models/api/notification"
	dbmodels "facility-desk-backend/models/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func addNotifications(t *testing.T, gdb *gorm.DB, recipientID uint, count int) []dbmodels.Notification {
	notifier := NewNotifier(gdb)
	for n := 0; n < count; n++ {
		data := models.GetIssueStatusChanged("Заявка", models.IssueReceived, models.IssueCancelled, "Управляющий")
		require.NoError(t, notifier.Notify(recipientID, data, Ref{}))
	}
	return notifier.Created()
}

func TestNotifications(t *testing.T) {
	t.Run("список новых сверху", func(t *testing.T) {
		gdb, users := testdb.New(t)
		NewHandler()
		created := addNotifications(t, gdb, users.Tenant.ID, 3)
		addNotifications(t, gdb, users.OtherTenant.ID, 1)

		list, rowCount, err := Instance.List(users.Tenant.ToCaller(), notificationapimodels.NotificationFilter{})
		require.NoError(t, err)
		require.EqualValues(t, 3, rowCount)
		require.Len(t, list, 3)
		require.Equal(t, created[2].ID, list[0].ID)
		require.Equal(t, created[0].ID, list[2].ID)
		require.Equal(t, models.NotifyIssueStatusChanged, list[0].Code)
		require.Equal(t, models.IssueCancelled, list[0].NewStatus)
	})
	t.Run("отметка прочитанными", func(t *testing.T) {
		gdb, users := testdb.New(t)
		NewHandler()
		created := addNotifications(t, gdb, users.Tenant.ID, 3)
		tenant := users.Tenant.ToCaller()

		require.NoError(t, Instance.MarkRead(tenant, created[0].ID))
		// повторная отметка не ошибка
		require.NoError(t, Instance.MarkRead(tenant, created[0].ID))
		err := Instance.MarkRead(users.OtherTenant.ToCaller(), created[1].ID)
		require.True(t, models.IsKind(err, models.KindNotFound))

		count, err := Instance.UnreadCount(tenant)
		require.NoError(t, err)
		require.EqualValues(t, 2, count)

		list, rowCount, err := Instance.List(tenant, notificationapimodels.NotificationFilter{UnreadOnly: true})
		require.NoError(t, err)
		require.EqualValues(t, 2, rowCount)
		require.Len(t, list, 2)
		require.False(t, list[0].IsRead)

		require.NoError(t, Instance.MarkAllRead(tenant))
		count, err = Instance.UnreadCount(tenant)
		require.NoError(t, err)
		require.Zero(t, count)
		require.NoError(t, Instance.MarkAllRead(tenant))
	})
	t.Run("удаление старых прочитанных", func(t *testing.T) {
		gdb, users := testdb.New(t)
		NewHandler()
		created := addNotifications(t, gdb, users.Tenant.ID, 3)
		old := time.Now().AddDate(0, 0, -40)
		require.NoError(t, gdb.Model(&dbmodels.Notification{}).
			Where("id in ?", []uint{created[0].ID, created[1].ID}).
			Update("created_at", old).Error)
		require.NoError(t, Instance.MarkRead(users.Tenant.ToCaller(), created[0].ID))

		count, err := Instance.Cleanup(0)
		require.NoError(t, err)
		require.Zero(t, count)

		count, err = Instance.Cleanup(30)
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
		require.EqualValues(t, 2, testdb.CountNotifications(t, gdb, users.Tenant.ID, models.NotifyIssueStatusChanged))
	})
	t.Run("публикация без хаба", func(t *testing.T) {
		gdb, users := testdb.New(t)
		NewHandler()
		created := addNotifications(t, gdb, users.Tenant.ID, 1)
		require.NotPanics(t, func() {
			Instance.Publish(created)
		})
	})
}
