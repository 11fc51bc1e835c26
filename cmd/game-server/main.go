package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"coinflip-arena/internal/config"
	"coinflip-arena/internal/ledger"
	"coinflip-arena/internal/logging"
	"coinflip-arena/internal/match"
	"coinflip-arena/internal/room"
	httptransport "coinflip-arena/internal/transport/http"
	"coinflip-arena/internal/ws"
)

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("load server config failed")
	}

	led := ledger.New()
	rooms := room.NewDirectory()
	coord := match.NewCoordinator(led, rooms, match.Config{
		StartingBalance: cfg.StartingBalance,
		IdleRoomTTL:     cfg.IdleRoomTTL,
	})
	gateway := ws.NewServer(coord)
	coord.SetNotifier(gateway)
	coord.StartJanitor(context.Background(), cfg.RoomSweepInterval)

	r := httptransport.NewRouter(coord, gateway, cfg)
	httptransport.LogRoutes(r)

	// No ReadTimeout: it would cut long-lived websocket sessions.
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
