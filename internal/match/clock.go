package match

import (
	"time"

	"github.com/rs/zerolog/log"

	"coinflip-arena/internal/room"
)

// Timed phases of a room. At most one pending timer per room per phase;
// scheduling a phase again supersedes the prior timer.
type timerPhase string

const (
	phaseStart timerPhase = "start"
	phaseTick  timerPhase = "tick"
	phaseFlip  timerPhase = "flip"
)

// scheduleLocked arms a one-shot timer for the room. Caller holds c.mu.
// The callback receives the room ID and is responsible for re-acquiring
// the lock and re-checking that the room still exists.
func (c *Coordinator) scheduleLocked(roomID string, phase timerPhase, d time.Duration, fn func(roomID string)) {
	byPhase := c.timers[roomID]
	if byPhase == nil {
		byPhase = map[timerPhase]*time.Timer{}
		c.timers[roomID] = byPhase
	}
	if old := byPhase[phase]; old != nil {
		old.Stop()
	}
	byPhase[phase] = time.AfterFunc(d, func() { fn(roomID) })
}

// clearTimerLocked drops the bookkeeping entry for a fired timer.
func (c *Coordinator) clearTimerLocked(roomID string, phase timerPhase) {
	byPhase := c.timers[roomID]
	if byPhase == nil {
		return
	}
	delete(byPhase, phase)
	if len(byPhase) == 0 {
		delete(c.timers, roomID)
	}
}

// cancelTimersLocked stops every pending timer for the room so nothing can
// fire against it after removal. A callback already waiting on the lock
// will still run, but its existence re-check turns it into a no-op.
func (c *Coordinator) cancelTimersLocked(roomID string) {
	for _, t := range c.timers[roomID] {
		t.Stop()
	}
	delete(c.timers, roomID)
}

// startRoom fires when the join-to-start delay elapses.
func (c *Coordinator) startRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearTimerLocked(roomID, phaseStart)

	r, ok := c.rooms.Get(roomID)
	if !ok || r.Status != room.StatusStarting {
		return
	}
	r.Status = room.StatusInProgress
	log.Info().Str("room_id", roomID).Int64("stake", r.Stake).Msg("game_started")
	c.notifier.GameStarted(r.View())
	c.scheduleLocked(roomID, phaseTick, c.timing.TickInterval, func(id string) {
		c.tick(id, countdownFrom)
	})
}

// tick emits one countdown value and arms the next tick, or hands the room
// over to the flip delay after the final tick.
func (c *Coordinator) tick(roomID string, value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearTimerLocked(roomID, phaseTick)

	r, ok := c.rooms.Get(roomID)
	if !ok || r.Status != room.StatusInProgress {
		return
	}
	c.notifier.Countdown(r.View(), value)
	if value > 0 {
		next := value - 1
		c.scheduleLocked(roomID, phaseTick, c.timing.TickInterval, func(id string) {
			c.tick(id, next)
		})
		return
	}
	c.notifier.CoinFlipBegun(r.View())
	c.scheduleLocked(roomID, phaseFlip, c.timing.FlipDelay, c.resolveRoom)
}
