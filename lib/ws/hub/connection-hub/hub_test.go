package connectionhub

import (
	notificationstore "facility-desk-backend/lib/notification/store"
	"facility-desk-backend/lib/utils/testdb"
	"facility-desk-backend/models"
	dbmodels "facility-desk-backend/models/db"
	wsmodels "facility-desk-backend/models/ws"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []wsmodels.ServerMessage
	closed   bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := v.(wsmodels.ServerMessage); ok {
		f.messages = append(f.messages, msg)
	}
	return nil
}

func (f *fakeConn) WriteControl(_ int, _ []byte, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() []wsmodels.ServerMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]wsmodels.ServerMessage, len(f.messages))
	copy(result, f.messages)
	return result
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestHub(t *testing.T) {
	t.Run("сообщение подключенному пользователю", func(t *testing.T) {
		hub := NewHub(nil)
		conn := &fakeConn{}
		hub.AddClient(1, conn)
		require.True(t, hub.IsConnected(1))

		hub.SendMessage(wsmodels.ServerMessage{ToUserID: 1, NotificationID: 10, Code: "IssueStatusChanged"})
		hub.SendMessage(wsmodels.ServerMessage{ToUserID: 2, NotificationID: 11})
		require.Eventually(t, func() bool {
			return len(conn.received()) == 1
		}, time.Second, 10*time.Millisecond)
		require.EqualValues(t, 10, conn.received()[0].NotificationID)
	})
	t.Run("новое подключение заменяет старое", func(t *testing.T) {
		hub := NewHub(nil)
		oldConn := &fakeConn{}
		newConn := &fakeConn{}
		hub.AddClient(1, oldConn)
		hub.AddClient(1, newConn)
		require.Eventually(t, oldConn.isClosed, time.Second, 10*time.Millisecond)

		// отключение старого соединения не удаляет новое
		hub.DeleteClient(1, oldConn)
		require.True(t, hub.IsConnected(1))
		hub.DeleteClient(1, newConn)
		require.False(t, hub.IsConnected(1))
	})
	t.Run("при подключении отправляются непрочитанные", func(t *testing.T) {
		gdb, users := testdb.New(t)
		notifications := notificationstore.NewInstance(gdb)
		for _, code := range []models.NotificationCode{models.NotifyIssueStatusChanged, models.NotifyIssueNoteAdded} {
			_, err := notifications.Create(dbmodels.Notification{RecipientID: users.Tenant.ID, Code: code, Title: "t", Msg: "m"})
			require.NoError(t, err)
		}
		read, err := notifications.Create(dbmodels.Notification{RecipientID: users.Tenant.ID, Code: models.NotifyWorkCompleted})
		require.NoError(t, err)
		require.NoError(t, notifications.MarkRead(users.Tenant.ID, read.ID))

		hub := NewHub(notifications)
		conn := &fakeConn{}
		hub.AddClient(users.Tenant.ID, conn)
		require.Eventually(t, func() bool {
			return len(conn.received()) == 2
		}, time.Second, 10*time.Millisecond)
		received := conn.received()
		require.Equal(t, string(models.NotifyIssueStatusChanged), received[0].Code)
		require.Equal(t, string(models.NotifyIssueNoteAdded), received[1].Code)

		// повтор не меняет статус прочтения
		count, err := notifications.UnreadCount(users.Tenant.ID)
		require.NoError(t, err)
		require.EqualValues(t, 2, count)
	})
	t.Run("переполнение очереди сессии", func(t *testing.T) {
		sess := &clientSession{sendCh: make(chan any, 1)}
		require.True(t, sess.push(wsmodels.ServerMessage{NotificationID: 1}))
		require.False(t, sess.push(wsmodels.ServerMessage{NotificationID: 2}))
	})
}
