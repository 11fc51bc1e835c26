package match

import (
	"sync"
	"time"

	"coinflip-arena/internal/ledger"
	"coinflip-arena/internal/room"
)

var (
	slowTiming = Timing{StartDelay: time.Hour, TickInterval: time.Hour, FlipDelay: time.Hour}
	fastTiming = Timing{StartDelay: 10 * time.Millisecond, TickInterval: 5 * time.Millisecond, FlipDelay: 10 * time.Millisecond}
)

// recorder captures every notification for assertions.
type recorder struct {
	mu          sync.Mutex
	events      []string
	countdowns  []int
	results     []Result
	disconnects []string
	resultCh    chan Result
}

func newRecorder() *recorder {
	return &recorder{resultCh: make(chan Result, 4)}
}

func (r *recorder) record(name string) {
	r.mu.Lock()
	r.events = append(r.events, name)
	r.mu.Unlock()
}

func (r *recorder) RoomCreated(string, room.View) { r.record("roomCreated") }
func (r *recorder) RoomUpdated(room.View)         { r.record("roomUpdated") }
func (r *recorder) RoomsUpdated([]room.View)      { r.record("roomsUpdated") }
func (r *recorder) GameStarted(room.View)         { r.record("gameStarted") }
func (r *recorder) CoinFlipBegun(room.View)       { r.record("coinFlipBegun") }

func (r *recorder) Countdown(_ room.View, value int) {
	r.mu.Lock()
	r.events = append(r.events, "countdown")
	r.countdowns = append(r.countdowns, value)
	r.mu.Unlock()
}

func (r *recorder) GameResult(_ room.View, res Result) {
	r.mu.Lock()
	r.events = append(r.events, "gameResult")
	r.results = append(r.results, res)
	r.mu.Unlock()
	r.resultCh <- res
}

func (r *recorder) PlayerDisconnected(_ room.View, participantID string) {
	r.mu.Lock()
	r.events = append(r.events, "playerDisconnected")
	r.disconnects = append(r.disconnects, participantID)
	r.mu.Unlock()
}

func (r *recorder) eventNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) count(name string) int {
	n := 0
	for _, e := range r.eventNames() {
		if e == name {
			n++
		}
	}
	return n
}

func newTestCoordinator(cfg Config) (*Coordinator, *recorder) {
	c := NewCoordinator(ledger.New(), room.NewDirectory(), cfg)
	rec := newRecorder()
	c.SetNotifier(rec)
	return c, rec
}
