package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Auth struct {
		JWTSecret       string `env:"JWT_SECRET" envDefault:"supersecretkey"`
		TokenTTLMinutes int    `env:"TOKEN_TTL_MINUTES" envDefault:"3000"`
	}

	Timers struct {
		// Round timer shown in the chat screen.
		RoundSeconds int `env:"ROUND_SECONDS" envDefault:"120"`
		// Extended turn-based ghosting watch.
		GhostingSeconds int `env:"GHOSTING_SECONDS" envDefault:"18000"`
		// Background sweep that stamps expired unrated rounds.
		SweepIntervalSeconds int `env:"SWEEP_INTERVAL_SECONDS" envDefault:"5"`
	}

	SeedDemoData bool `env:"SEED_DEMO_DATA" envDefault:"true"`
}

func Load() *Config {
	// .env is optional; production environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
