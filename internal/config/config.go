// internal/config/config.go
//
// Typed server configuration read from the environment. main loads a `.env`
// file first (godotenv), so either source works in development.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFile enables a rotating JSON log file in addition to the console.
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"50"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`

	DBPath string `env:"DB_PATH" envDefault:"./data/app.db"`

	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"wordscramble_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	// AppEnv "production" turns on Secure/SameSite=None cookies.
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	DailySalt string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	Language  string `env:"GAME_LANGUAGE" envDefault:"en"`

	// Games idle for longer than GameTTL are dropped; the sweep runs every GameSweepEvery.
	GameTTL        time.Duration `env:"GAME_TTL" envDefault:"2h"`
	GameSweepEvery time.Duration `env:"GAME_SWEEP_EVERY" envDefault:"5m"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Production reports whether the server runs in production mode.
func (c Config) Production() bool { return c.AppEnv == "production" }
