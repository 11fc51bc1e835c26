package match

import "coinflip-arena/internal/room"

// Result is the terminal outcome of a room.
type Result struct {
	Draw         room.Side `json:"draw"`
	WinnerID     *string   `json:"winnerId"`
	PayoutAmount int64     `json:"payoutAmount"`
}

// Notifier fans resulting state out to connected participants. Calls are
// made while the coordinator lock is held; implementations must not block
// and must not call back into the coordinator.
type Notifier interface {
	RoomCreated(participantID string, r room.View)
	RoomUpdated(r room.View)
	RoomsUpdated(rooms []room.View)
	GameStarted(r room.View)
	Countdown(r room.View, value int)
	CoinFlipBegun(r room.View)
	GameResult(r room.View, res Result)
	PlayerDisconnected(r room.View, participantID string)
}

type nopNotifier struct{}

func (nopNotifier) RoomCreated(string, room.View)        {}
func (nopNotifier) RoomUpdated(room.View)                {}
func (nopNotifier) RoomsUpdated([]room.View)             {}
func (nopNotifier) GameStarted(room.View)                {}
func (nopNotifier) Countdown(room.View, int)             {}
func (nopNotifier) CoinFlipBegun(room.View)              {}
func (nopNotifier) GameResult(room.View, Result)         {}
func (nopNotifier) PlayerDisconnected(room.View, string) {}
