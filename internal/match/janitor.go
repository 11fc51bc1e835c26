package match

import (
	"context"
	"expvar"
	"time"

	"github.com/rs/zerolog/log"

	"coinflip-arena/internal/room"
)

var roomsSweptTotal = expvar.NewInt("rooms_swept_total")

// StartJanitor runs the periodic idle-room sweep until ctx is cancelled.
func (c *Coordinator) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				c.sweepIdleRooms(now)
			}
		}
	}()
}

// sweepIdleRooms reclaims rooms still waiting past the idle threshold,
// refunding the sole occupant exactly as the disconnect-while-waiting
// path does.
func (c *Coordinator) sweepIdleRooms(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	swept := 0
	for _, r := range c.rooms.List() {
		if r.Status != room.StatusWaiting || now.Sub(r.CreatedAt) <= c.idleRoomTTL {
			continue
		}
		creator := r.Seats[0].ParticipantID
		_ = c.ledger.Credit(creator, r.Stake)
		_ = c.ledger.AssignRoom(creator, "")
		c.cancelTimersLocked(r.ID)
		c.rooms.Remove(r.ID)
		roomsSweptTotal.Add(1)
		swept++
		log.Info().Str("room_id", r.ID).Str("participant_id", creator).Int64("stake", r.Stake).Msg("room_swept")
	}
	if swept > 0 {
		c.broadcastRoomsLocked()
	}
}
