package ws

import (
	"coinflip-arena/internal/match"
	"coinflip-arena/internal/room"
)

// Inbound participant intents.

type CreateRoomMessage struct {
	Type        string `json:"type"`
	Stake       int64  `json:"stake"`
	DisplayName string `json:"displayName,omitempty"`
}

type JoinRoomMessage struct {
	Type        string `json:"type"`
	RoomID      string `json:"roomId"`
	DisplayName string `json:"displayName,omitempty"`
}

type SwapSidesMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

// Outbound notifications.

type ConnectedMessage struct {
	Type          string `json:"type"`
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
	Balance       int64  `json:"balance"`
}

type RoomMessage struct {
	Type string    `json:"type"`
	Room room.View `json:"room"`
}

type RoomsUpdatedMessage struct {
	Type  string      `json:"type"`
	Rooms []room.View `json:"rooms"`
}

type CountdownMessage struct {
	Type      string `json:"type"`
	Countdown int    `json:"countdown"`
}

type CoinFlipBegunMessage struct {
	Type string `json:"type"`
}

type GameResultMessage struct {
	Type         string    `json:"type"`
	Draw         room.Side `json:"draw"`
	WinnerID     *string   `json:"winnerId"`
	PayoutAmount int64     `json:"payoutAmount"`
}

type PlayerDisconnectedMessage struct {
	Type          string `json:"type"`
	ParticipantID string `json:"participantId"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

var _ match.Notifier = (*Server)(nil)
