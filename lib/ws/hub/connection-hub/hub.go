package connectionhub

import (
	"sync"

	notificationstore "facility-desk-backend/lib/notification/store"
	wsmodels "facility-desk-backend/models/ws"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	AddClient(userID uint, conn Conn)
	DeleteClient(userID uint, conn Conn)
	SendMessage(msg wsmodels.ServerMessage)
	IsConnected(userID uint) bool
}

var Instance Provider

// сколько непрочитанных уведомлений отправляется при подключении
const replayLimit = 100

func Init(store notificationstore.Provider) {
	Instance = NewHub(store)
}

func NewHub(store notificationstore.Provider) Provider {
	return &impl{
		clients: map[uint]*clientSession{},
		store:   store,
	}
}

type impl struct {
	mu      sync.Mutex
	clients map[uint]*clientSession //map[userID]
	store   notificationstore.Provider
}

func (i *impl) DeleteClient(userID uint, conn Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[userID]
	// сессия могла быть заменена новым подключением
	if !ok || sess.conn != conn {
		return
	}
	delete(i.clients, userID)
	sess.stop()
	close(sess.sendCh)
}

func (i *impl) AddClient(userID uint, conn Conn) {
	i.mu.Lock()
	oldSess, ok := i.clients[userID]
	if ok {
		oldSess.stop()
	}
	i.clients[userID] = newSession(conn)
	i.mu.Unlock()
	go i.sendUnread(userID)
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[msg.ToUserID]
	if !ok {
		return
	}
	if !sess.push(msg) {
		log.WithField("user_id", msg.ToUserID).Warn("очередь сообщений переполнена, уведомление будет получено при опросе")
	}
}

func (i *impl) IsConnected(userID uint) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.clients[userID]
	return ok
}

// sendUnread повтор непрочитанных, статус прочтения не меняется
func (i *impl) sendUnread(userID uint) {
	if i.store == nil {
		return
	}
	logger := log.WithField("user_id", userID)
	list, err := i.store.ListUnread(userID, replayLimit)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка непрочитанных уведомлений")
		return
	}
	for _, item := range list {
		if !i.IsConnected(userID) {
			return
		}
		i.SendMessage(wsmodels.NotificationConvert(item))
	}
}
