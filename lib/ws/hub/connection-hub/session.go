package connectionhub

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Conn websocket соединение клиента
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

type clientSession struct {
	conn Conn

	// исходящие сообщения, буферизованы
	sendCh chan any
	stop   func()
}

func newSession(conn Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &clientSession{
		stop:   cancelFn,
		conn:   conn,
		sendCh: make(chan any, 32),
	}
	go sess.startSend(ctx)
	return sess
}

func (s *clientSession) startSend(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.close()
			return
		case msg, opened := <-s.sendCh:
			if !opened {
				return
			}
			if err := s.conn.WriteJSON(msg); err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
			}
		}
	}
}

// push не блокирует отправителя, при переполнении сообщение отбрасывается
func (s *clientSession) push(msg any) bool {
	select {
	case s.sendCh <- msg:
		return true
	default:
		return false
	}
}

func (s *clientSession) close() {
	if s.conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Millisecond))
	if err != nil {
		log.WithError(err).Debug("ошибка закрытия соединения")
	}
}
