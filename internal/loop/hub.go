package loop

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Player is a connected session registered with a Hub.
type Player struct {
	ID       string
	Username string
	Joined   time.Time
}

// Hub tracks the games running in one process so a shutdown can reach all
// of them. Each game is independent; the hub shares no game state.
type Hub struct {
	mu       sync.RWMutex
	players  map[string]Player
	shutdown chan struct{}
	once     sync.Once
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		players:  make(map[string]Player),
		shutdown: make(chan struct{}),
	}
}

// Register adds a player and returns its handle.
func (h *Hub) Register(username string) Player {
	p := Player{
		ID:       uuid.NewString(),
		Username: username,
		Joined:   time.Now(),
	}
	h.mu.Lock()
	h.players[p.ID] = p
	h.mu.Unlock()
	return p
}

// Unregister removes a player. Unknown ids are ignored.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	delete(h.players, id)
	h.mu.Unlock()
}

// Count returns the number of connected players.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.players)
}

// Players returns the connected players in no particular order.
func (h *Hub) Players() []Player {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Player, 0, len(h.players))
	for _, p := range h.players {
		out = append(out, p)
	}
	return out
}

// ShutdownCh is closed when Shutdown is called. Pass it as Options.Shutdown.
func (h *Hub) ShutdownCh() <-chan struct{} {
	return h.shutdown
}

// Shutdown notifies every game and waits until all players have left, or
// until timeout. It reports whether everyone left in time.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.once.Do(func() { close(h.shutdown) })

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}
