// Package room owns the Room entity and the in-memory directory of open
// rooms. Like the ledger, it is serialized by the match coordinator and
// performs no locking of its own.
package room

import "time"

type Side string

const (
	SideHeads Side = "heads"
	SideTails Side = "tails"
)

// Other returns the complementary side.
func (s Side) Other() Side {
	if s == SideHeads {
		return SideTails
	}
	return SideHeads
}

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusStarting   Status = "starting"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// Seat is a participant's slot within a room, carrying the side they bet on.
type Seat struct {
	ParticipantID string
	Name          string
	Side          Side
	Disconnected  bool
}

type Room struct {
	ID        string
	Stake     int64
	Seats     []Seat
	Status    Status
	CreatedAt time.Time
}

func (r *Room) SeatOf(participantID string) *Seat {
	for i := range r.Seats {
		if r.Seats[i].ParticipantID == participantID {
			return &r.Seats[i]
		}
	}
	return nil
}

// SeatOn returns the seat betting on the given side, or nil.
func (r *Room) SeatOn(side Side) *Seat {
	for i := range r.Seats {
		if r.Seats[i].Side == side {
			return &r.Seats[i]
		}
	}
	return nil
}

// View is the wire-facing snapshot of a room. Views are deep copies, safe
// to marshal after the coordinator lock is released.
type View struct {
	ID        string     `json:"id"`
	Stake     int64      `json:"stake"`
	Players   []SeatView `json:"players"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

type SeatView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Side         Side   `json:"side"`
	Disconnected bool   `json:"disconnected,omitempty"`
}

func (r *Room) View() View {
	players := make([]SeatView, 0, len(r.Seats))
	for _, s := range r.Seats {
		players = append(players, SeatView{
			ID:           s.ParticipantID,
			Name:         s.Name,
			Side:         s.Side,
			Disconnected: s.Disconnected,
		})
	}
	return View{
		ID:        r.ID,
		Stake:     r.Stake,
		Players:   players,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}
