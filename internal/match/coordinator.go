package match

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"coinflip-arena/internal/ledger"
	"coinflip-arena/internal/room"
)

// Register creates a participant record for a fresh connection and returns
// a copy of it.
func (c *Coordinator) Register(name string) ledger.Participant {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name == "" {
		name = fmt.Sprintf("Player-%d", c.rng.Intn(1000))
	}
	p := c.ledger.Register(newParticipantID(), name, c.startingBalance)
	log.Debug().Str("participant_id", p.ID).Str("name", p.Name).Msg("participant_registered")
	return *p
}

// CreateRoom escrows the stake and opens a waiting room with the creator
// seated on a uniformly random side.
func (c *Coordinator) CreateRoom(participantID string, stake int64, displayName string) (room.View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.ledger.Get(participantID)
	if !ok {
		return room.View{}, ErrParticipantUnknown
	}
	if stake <= 0 {
		return room.View{}, ErrInvalidStake
	}
	if displayName == "" {
		displayName = p.Name
	}
	if err := c.ledger.Debit(participantID, stake); err != nil {
		return room.View{}, err
	}
	r := c.rooms.Create(stake, room.Seat{
		ParticipantID: participantID,
		Name:          displayName,
		Side:          c.randomSide(),
	})
	_ = c.ledger.AssignRoom(participantID, r.ID)

	log.Info().Str("room_id", r.ID).Str("participant_id", participantID).Int64("stake", stake).Msg("room_created")
	view := r.View()
	c.notifier.RoomCreated(participantID, view)
	c.broadcastRoomsLocked()
	return view, nil
}

// JoinRoom seats a second participant on the complementary side, escrows
// their stake, and arms the delayed game start.
func (c *Coordinator) JoinRoom(participantID, roomID, displayName string) (room.View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.ledger.Get(participantID)
	if !ok {
		return room.View{}, ErrParticipantUnknown
	}
	r, ok := c.rooms.Get(roomID)
	if !ok {
		return room.View{}, ErrRoomNotFound
	}
	if r.Status != room.StatusWaiting || len(r.Seats) >= 2 {
		return room.View{}, ErrRoomNotJoinable
	}
	if displayName == "" {
		displayName = p.Name
	}
	if err := c.ledger.Debit(participantID, r.Stake); err != nil {
		return room.View{}, err
	}
	r.Seats = append(r.Seats, room.Seat{
		ParticipantID: participantID,
		Name:          displayName,
		Side:          r.Seats[0].Side.Other(),
	})
	r.Status = room.StatusStarting
	_ = c.ledger.AssignRoom(participantID, r.ID)

	log.Info().Str("room_id", r.ID).Str("participant_id", participantID).Msg("room_joined")
	view := r.View()
	c.notifier.RoomUpdated(view)
	c.broadcastRoomsLocked()
	c.scheduleLocked(r.ID, phaseStart, c.timing.StartDelay, c.startRoom)
	return view, nil
}

// SwapSides flips every seat's side while the room is still negotiating.
// Anything other than a two-seat `starting` room is a silent no-op.
func (c *Coordinator) SwapSides(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.rooms.Get(roomID)
	if !ok || r.Status != room.StatusStarting {
		return
	}
	for i := range r.Seats {
		r.Seats[i].Side = r.Seats[i].Side.Other()
	}
	c.notifier.RoomUpdated(r.View())
}

// Disconnect handles a closed connection. A waiting room is refunded and
// torn down; a started room keeps running with the seat marked
// disconnected, and the participant's ledger record survives until
// settlement so an eventual payout still lands.
func (c *Coordinator) Disconnect(participantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.ledger.Get(participantID)
	if !ok {
		return
	}
	if p.RoomID != "" {
		if r, ok := c.rooms.Get(p.RoomID); ok {
			if r.Status == room.StatusWaiting {
				_ = c.ledger.Credit(participantID, r.Stake)
				c.cancelTimersLocked(r.ID)
				c.rooms.Remove(r.ID)
				log.Info().Str("room_id", r.ID).Str("participant_id", participantID).Msg("room_refunded_on_disconnect")
				c.notifier.PlayerDisconnected(r.View(), participantID)
				c.broadcastRoomsLocked()
			} else {
				if seat := r.SeatOf(participantID); seat != nil {
					seat.Disconnected = true
				}
				log.Info().Str("room_id", r.ID).Str("participant_id", participantID).Msg("participant_disconnected_in_match")
				c.notifier.PlayerDisconnected(r.View(), participantID)
				c.broadcastRoomsLocked()
				return
			}
		}
	}
	c.ledger.Remove(participantID)
}

// Rooms returns a snapshot of every open room in insertion order.
func (c *Coordinator) Rooms() []room.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomViewsLocked()
}

// WaitingRooms returns the joinable subset for lobby display.
func (c *Coordinator) WaitingRooms() []room.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []room.View{}
	for _, r := range c.rooms.List() {
		if r.Status == room.StatusWaiting {
			out = append(out, r.View())
		}
	}
	return out
}

// Participant returns a copy of a participant's public record.
func (c *Coordinator) Participant(id string) (ledger.Participant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.ledger.Get(id)
	if !ok {
		return ledger.Participant{}, false
	}
	return *p, true
}

// IsInsufficientFunds reports whether err is the stake-exceeds-balance case.
func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ledger.ErrInsufficientFunds)
}
