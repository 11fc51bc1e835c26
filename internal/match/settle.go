package match

import (
	"expvar"

	"github.com/rs/zerolog/log"

	"coinflip-arena/internal/room"
)

var matchesResolvedTotal = expvar.NewInt("matches_resolved_total")

// payoutFor computes the winner's credit: the doubled stake net of
// commission, floored. 300bp on stake=100 yields 194.
func payoutFor(stake int64) int64 {
	return stake * 2 * (10000 - commissionBasisPoints) / 10000
}

// resolveRoom draws the coin, pays the winner, and tears the room down.
// The room is removed from the directory before any crediting, so a
// re-entrant timer for the same room takes the not-found no-op path and
// settlement can never run twice.
func (c *Coordinator) resolveRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.rooms.Get(roomID)
	if !ok {
		return
	}
	c.rooms.Remove(roomID)
	c.cancelTimersLocked(roomID)

	draw := c.flip()
	payout := payoutFor(r.Stake)

	var winnerID *string
	if seat := r.SeatOn(draw); seat != nil {
		if err := c.ledger.Credit(seat.ParticipantID, payout); err == nil {
			id := seat.ParticipantID
			winnerID = &id
		}
		// An unknown winner is a silent no-credit, not a fault.
	}
	for _, seat := range r.Seats {
		_ = c.ledger.AssignRoom(seat.ParticipantID, "")
		if seat.Disconnected {
			// The connection is long gone; the record was only kept
			// alive so the payout above could land.
			c.ledger.Remove(seat.ParticipantID)
		}
	}
	r.Status = room.StatusResolved
	matchesResolvedTotal.Add(1)

	winner := ""
	if winnerID != nil {
		winner = *winnerID
	}
	log.Info().
		Str("room_id", roomID).
		Str("draw", string(draw)).
		Str("winner_id", winner).
		Int64("payout", payout).
		Msg("match_resolved")

	c.notifier.GameResult(r.View(), Result{Draw: draw, WinnerID: winnerID, PayoutAmount: payout})
	c.broadcastRoomsLocked()
}
