package connectionhub

import (
	"context"
	"sync"
	"testing"
	"time"

	candidatestore "smarthire-backend/lib/applicant/store"
	dbmodels "smarthire-backend/models/db"
	wsmodels "smarthire-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	msgs []wsmodels.ServerMessage
}

func (r *recorder) write(msg any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg.(wsmodels.ServerMessage))
	return nil
}

func (r *recorder) received() []wsmodels.ServerMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]wsmodels.ServerMessage{}, r.msgs...)
}

func TestHub(t *testing.T) {
	t.Run(`direct message reaches only its user`, func(t *testing.T) {
		hub := NewInstance().(*impl)
		first, second := &recorder{}, &recorder{}
		hub.addSession("u1", startSession(nil, first.write))
		hub.addSession("u2", startSession(nil, second.write))

		hub.SendMessage(wsmodels.ServerMessage{ToUserID: "u1", Code: "hello"})
		require.Eventually(t, func() bool { return len(first.received()) == 1 }, time.Second, time.Millisecond)
		require.Empty(t, second.received())
		require.False(t, hub.IsConnected("u1"))

		hub.DeleteClient("u1")
		hub.DeleteClient("u1")
		hub.SendMessage(wsmodels.ServerMessage{ToUserID: "u1", Code: "hello"})
	})
	t.Run(`closing an old connection keeps the new one`, func(t *testing.T) {
		hub := NewInstance().(*impl)
		oldConn, newConn := &websocket.Conn{}, &websocket.Conn{}
		first, second := &recorder{}, &recorder{}
		hub.addSession("u1", startSession(oldConn, first.write))
		hub.addSession("u1", startSession(newConn, second.write))

		hub.DeleteConn("u1", oldConn)
		hub.SendMessage(wsmodels.ServerMessage{ToUserID: "u1", Code: "hello"})
		require.Eventually(t, func() bool { return len(second.received()) == 1 }, time.Second, time.Millisecond)
		require.Empty(t, first.received())

		hub.DeleteConn("u1", newConn)
		_, ok := hub.clients["u1"]
		require.False(t, ok)
	})
	t.Run(`candidate changes are broadcast`, func(t *testing.T) {
		hub := NewInstance().(*impl)
		first, second := &recorder{}, &recorder{}
		hub.addSession("u1", startSession(nil, first.write))
		hub.addSession("u2", startSession(nil, second.write))

		store := candidatestore.NewMemoryInstance()
		unsubscribe, err := hub.WatchCandidates(store.Subscribe)
		require.NoError(t, err)
		defer unsubscribe()

		id, err := store.Create(context.Background(), dbmodels.Candidate{FullName: "Ali Khan"})
		require.NoError(t, err)

		for _, rec := range []*recorder{first, second} {
			require.Eventually(t, func() bool { return len(rec.received()) == 1 }, time.Second, time.Millisecond)
			msg := rec.received()[0]
			require.Equal(t, wsmodels.CandidateChangedCode, msg.Code)
			require.Equal(t, id, msg.Msg)
		}
	})
}
