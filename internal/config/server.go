package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	StaticDir string `env:"STATIC_DIR" envDefault:"public"`

	StartingBalance int64 `env:"STARTING_BALANCE" envDefault:"10000"`

	RoomSweepInterval time.Duration `env:"ROOM_SWEEP_INTERVAL" envDefault:"5m"`
	IdleRoomTTL       time.Duration `env:"IDLE_ROOM_TTL" envDefault:"10m"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
