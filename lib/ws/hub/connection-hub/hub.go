package connectionhub

import (
	"sync"
	"time"

	wsmodels "smarthire-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	AddClient(userID string, conn *websocket.Conn)
	DeleteClient(userID string)
	// DeleteConn removes the client only while conn is still its connection.
	DeleteConn(userID string, conn *websocket.Conn)
	SendMessage(msg wsmodels.ServerMessage)
	Broadcast(msg wsmodels.ServerMessage)
	SendClose(userID string)
	IsConnected(userID string) bool
	// WatchCandidates pushes candidate_changed to every client on each
	// change reported by subscribe.
	WatchCandidates(subscribe func(onChange func(id string)) (func(), error)) (func(), error)
}

var Instance Provider

func Init() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return &impl{
		clients: map[string]*clientSession{},
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]*clientSession // map[userID]
}

func (i *impl) DeleteClient(userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[userID]
	if !ok {
		return
	}
	delete(i.clients, userID)
	sess.stop()
	close(sess.sendCh)
}

func (i *impl) DeleteConn(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[userID]
	if !ok || sess.conn != conn {
		return
	}
	delete(i.clients, userID)
	sess.stop()
	close(sess.sendCh)
}

func (i *impl) AddClient(userID string, conn *websocket.Conn) {
	i.addSession(userID, newSession(conn))
}

func (i *impl) addSession(userID string, sess *clientSession) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if oldSess, ok := i.clients[userID]; ok {
		oldSess.stop()
		close(oldSess.sendCh)
	}
	i.clients[userID] = sess
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if sess, ok := i.clients[msg.ToUserID]; ok {
		if !sess.offer(msg) {
			log.WithField("user_id", msg.ToUserID).Warn("ws buffer is full, message dropped")
		}
	}
}

func (i *impl) Broadcast(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for userID, sess := range i.clients {
		if !sess.offer(msg) {
			log.WithField("user_id", userID).Warn("ws buffer is full, message dropped")
		}
	}
}

func (i *impl) SendClose(userID string) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if sess, ok := i.clients[userID]; ok {
		sess.stop()
	}
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[userID]
	if !ok || sess.conn == nil || sess.conn.Conn == nil {
		return false
	}
	return true
}

func (i *impl) WatchCandidates(subscribe func(onChange func(id string)) (func(), error)) (func(), error) {
	return subscribe(func(id string) {
		i.Broadcast(wsmodels.ServerMessage{
			Time: time.Now().UTC().Format(time.RFC3339),
			Code: wsmodels.CandidateChangedCode,
			Msg:  id,
		})
	})
}
