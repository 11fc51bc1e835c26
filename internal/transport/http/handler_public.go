package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"coinflip-arena/internal/match"
)

// RoomsHandler lists rooms still accepting an opponent, for lobby display.
func RoomsHandler(coord *match.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"rooms": coord.WaitingRooms()})
	}
}

// PlayerHandler serves a participant's public record.
func PlayerHandler(coord *match.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "participant_id")
		if id == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		p, ok := coord.Participant(id)
		if !ok {
			WriteHTTPError(w, http.StatusNotFound, "player_not_found")
			return
		}
		var roomID any
		if p.RoomID != "" {
			roomID = p.RoomID
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      p.ID,
			"name":    p.Name,
			"balance": p.Balance,
			"roomId":  roomID,
		})
	}
}

func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}
