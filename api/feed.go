package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"glyph-recents/recent"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type feedMessage struct {
	Type  string         `json:"type"`
	Items []recent.Glyph `json:"items"`
	Page  int            `json:"page"`
}

// feed fans store snapshots out to connected grids. A client that falls
// behind loses frames; the next one it receives is complete.
type feed struct {
	mu      sync.Mutex
	clients map[uuid.UUID]chan []byte
	logger  *zap.Logger
}

func newFeed(logger *zap.Logger) *feed {
	return &feed{clients: make(map[uuid.UUID]chan []byte), logger: logger}
}

func (f *feed) add() (uuid.UUID, chan []byte) {
	id := uuid.New()
	ch := make(chan []byte, 16)
	f.mu.Lock()
	f.clients[id] = ch
	f.mu.Unlock()
	return id, ch
}

// remove unregisters id and closes its channel so the pump exits.
func (f *feed) remove(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.clients[id]; ok {
		delete(f.clients, id)
		close(ch)
	}
}

func (f *feed) broadcast(snap recent.Snapshot) {
	data, err := json.Marshal(feedMessage{Type: "recents", Items: snap.Items, Page: snap.Page})
	if err != nil {
		f.logger.Error("encode feed message", zap.Error(err))
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for id, ch := range f.clients {
		select {
		case ch <- data:
		default:
			f.logger.Debug("feed client behind, dropping frame", zap.String("client", id.String()))
		}
	}
}

func (h *handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("feed upgrade failed", zap.Error(err))
		return
	}

	// gorilla/websocket forbids concurrent writes.
	var writeMu sync.Mutex
	write := func(data []byte) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteMessage(websocket.TextMessage, data)
	}

	id, out := h.feed.add()
	pumpDone := make(chan struct{})
	defer func() {
		h.feed.remove(id)
		conn.Close()
		<-pumpDone
		h.logger.Debug("feed client left", zap.String("client", id.String()))
	}()

	snap := h.store.Snapshot()
	initial, _ := json.Marshal(feedMessage{Type: "recents", Items: snap.Items, Page: snap.Page})
	if err := write(initial); err != nil {
		close(pumpDone)
		return
	}

	// Pump store updates to the client until remove closes out.
	go func() {
		defer close(pumpDone)
		for data := range out {
			if err := write(data); err != nil {
				// Unblocks the read loop below; broadcast never waits on out.
				conn.Close()
				return
			}
		}
	}()

	// Clients only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
