// Package match runs the wagering lifecycle: room creation, opponent
// matchmaking, side-swap negotiation, the timed countdown/flip progression,
// settlement, and disconnect/timeout recovery.
//
// A single coordinator mutex serializes every mutation of the ledger and
// the room directory. Timer callbacks and the janitor re-enter through the
// same lock and re-check room existence before acting, so a stale timer
// for a removed room is always a no-op.
package match

import (
	"math/rand"
	"sync"
	"time"

	"coinflip-arena/internal/ledger"
	"coinflip-arena/internal/room"
)

const (
	countdownFrom = 5

	// Commission withheld from the pot before payout, in basis points.
	commissionBasisPoints = 300

	defaultStartingBalance = 10000
	defaultIdleRoomTTL     = 10 * time.Minute
)

// Timing drives the timed phases of an in-progress room. Tests compress it.
type Timing struct {
	StartDelay   time.Duration
	TickInterval time.Duration
	FlipDelay    time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		StartDelay:   5 * time.Second,
		TickInterval: time.Second,
		FlipDelay:    3 * time.Second,
	}
}

type Config struct {
	StartingBalance int64
	IdleRoomTTL     time.Duration
	Timing          Timing
}

type Coordinator struct {
	mu       sync.Mutex
	ledger   *ledger.Ledger
	rooms    *room.Directory
	notifier Notifier

	startingBalance int64
	idleRoomTTL     time.Duration
	timing          Timing

	timers map[string]map[timerPhase]*time.Timer
	rng    *rand.Rand
	flip   func() room.Side
}

func NewCoordinator(led *ledger.Ledger, rooms *room.Directory, cfg Config) *Coordinator {
	if cfg.StartingBalance <= 0 {
		cfg.StartingBalance = defaultStartingBalance
	}
	if cfg.IdleRoomTTL <= 0 {
		cfg.IdleRoomTTL = defaultIdleRoomTTL
	}
	if cfg.Timing == (Timing{}) {
		cfg.Timing = DefaultTiming()
	}
	c := &Coordinator{
		ledger:          led,
		rooms:           rooms,
		notifier:        nopNotifier{},
		startingBalance: cfg.StartingBalance,
		idleRoomTTL:     cfg.IdleRoomTTL,
		timing:          cfg.Timing,
		timers:          map[string]map[timerPhase]*time.Timer{},
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	c.flip = c.randomSide
	return c
}

// SetNotifier binds the outbound fan-out; call before serving traffic.
func (c *Coordinator) SetNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n == nil {
		n = nopNotifier{}
	}
	c.notifier = n
}

func (c *Coordinator) randomSide() room.Side {
	if c.rng.Intn(2) == 0 {
		return room.SideHeads
	}
	return room.SideTails
}

func (c *Coordinator) roomViewsLocked() []room.View {
	list := c.rooms.List()
	out := make([]room.View, 0, len(list))
	for _, r := range list {
		out = append(out, r.View())
	}
	return out
}

func (c *Coordinator) broadcastRoomsLocked() {
	c.notifier.RoomsUpdated(c.roomViewsLocked())
}
