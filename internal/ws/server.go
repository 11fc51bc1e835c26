// Package ws is the session gateway: it upgrades connections, registers a
// participant per socket, translates inbound intents into coordinator
// calls, and fans coordinator notifications back out.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"coinflip-arena/internal/match"
	"coinflip-arena/internal/room"
)

type Client struct {
	conn          *websocket.Conn
	send          chan []byte
	participantID string
}

type Server struct {
	coord    *match.Coordinator
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*Client
}

func NewServer(coord *match.Coordinator) *Server {
	return &Server{
		coord:    coord,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:  map[string]*Client{},
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	p := s.coord.Register("")
	client := &Client{conn: conn, send: make(chan []byte, 32), participantID: p.ID}

	s.mu.Lock()
	s.clients[p.ID] = client
	s.mu.Unlock()

	go s.writeLoop(client)
	s.sendMessage(client, ConnectedMessage{
		Type:          "connected",
		ParticipantID: p.ID,
		Name:          p.Name,
		Balance:       p.Balance,
	})
	s.readLoop(client)
}

func (s *Server) readLoop(c *Client) {
	defer s.unregister(c)

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &base); err != nil {
			continue
		}
		switch base.Type {
		case "createRoom":
			var m CreateRoomMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				continue
			}
			if _, err := s.coord.CreateRoom(c.participantID, m.Stake, m.DisplayName); err != nil {
				s.sendError(c, err)
			}
		case "joinRoom":
			var m JoinRoomMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				continue
			}
			if _, err := s.coord.JoinRoom(c.participantID, m.RoomID, m.DisplayName); err != nil {
				s.sendError(c, err)
			}
		case "swapSides":
			var m SwapSidesMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				continue
			}
			s.coord.SwapSides(m.RoomID)
		}
	}
}

func (s *Server) writeLoop(c *Client) {
	for msg := range c.send {
		_ = c.conn.WriteMessage(websocket.TextMessage, msg)
	}
	_ = c.conn.Close()
}

// unregister drops the client before touching the coordinator: the
// disconnect path notifies back into this server, so holding s.mu across
// the coordinator call would deadlock.
func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	if s.clients[c.participantID] == c {
		delete(s.clients, c.participantID)
	}
	s.mu.Unlock()

	s.coord.Disconnect(c.participantID)
	safeClose(c.send)
	_ = c.conn.Close()
}

func (s *Server) sendError(c *Client, err error) {
	s.sendMessage(c, ErrorMessage{Type: "error", Message: err.Error()})
}

func (s *Server) sendMessage(c *Client, v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("marshal outbound message failed")
		return
	}
	trySend(c.send, msg)
}

func (s *Server) sendTo(participantID string, v any) {
	s.mu.Lock()
	c := s.clients[participantID]
	s.mu.Unlock()
	if c != nil {
		s.sendMessage(c, v)
	}
}

// sendSeats delivers to every seat of the room that still has a live
// connection; disconnected seats are simply absent from the client map.
func (s *Server) sendSeats(r room.View, v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range r.Players {
		if c := s.clients[p.ID]; c != nil {
			trySend(c.send, msg)
		}
	}
}

func (s *Server) broadcast(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		trySend(c.send, msg)
	}
}

// trySend never blocks the coordinator: a full send buffer drops the
// message for that client rather than stalling every room.
func trySend(ch chan []byte, msg []byte) {
	defer func() { _ = recover() }()
	select {
	case ch <- msg:
	default:
	}
}

func safeClose(ch chan []byte) {
	defer func() { _ = recover() }()
	close(ch)
}

// match.Notifier implementation.

func (s *Server) RoomCreated(participantID string, r room.View) {
	s.sendTo(participantID, RoomMessage{Type: "roomCreated", Room: r})
}

func (s *Server) RoomUpdated(r room.View) {
	s.sendSeats(r, RoomMessage{Type: "roomUpdated", Room: r})
}

func (s *Server) RoomsUpdated(rooms []room.View) {
	s.broadcast(RoomsUpdatedMessage{Type: "roomsUpdated", Rooms: rooms})
}

func (s *Server) GameStarted(r room.View) {
	s.sendSeats(r, RoomMessage{Type: "gameStarted", Room: r})
}

func (s *Server) Countdown(r room.View, value int) {
	s.sendSeats(r, CountdownMessage{Type: "countdown", Countdown: value})
}

func (s *Server) CoinFlipBegun(r room.View) {
	s.sendSeats(r, CoinFlipBegunMessage{Type: "coinFlipBegun"})
}

func (s *Server) GameResult(r room.View, res match.Result) {
	s.sendSeats(r, GameResultMessage{
		Type:         "gameResult",
		Draw:         res.Draw,
		WinnerID:     res.WinnerID,
		PayoutAmount: res.PayoutAmount,
	})
}

func (s *Server) PlayerDisconnected(r room.View, participantID string) {
	s.sendSeats(r, PlayerDisconnectedMessage{Type: "playerDisconnected", ParticipantID: participantID})
}
