package server

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/janpfeifer/MathMatch/internal/game"
)

// Config holds server configuration. Environment variables provide the defaults,
// command-line flags override them.
type Config struct {
	Addr   string `env:"MATHMATCH_ADDR"`                     // Empty picks a free port on localhost
	WebDir string `env:"MATHMATCH_WEB_DIR" envDefault:"web"` // Static files, including app.wasm

	ResolveDelay    time.Duration `env:"MATHMATCH_RESOLVE_DELAY"     envDefault:"500ms"`
	WrongFlashDelay time.Duration `env:"MATHMATCH_WRONG_FLASH_DELAY" envDefault:"500ms"`
	CompletionDelay time.Duration `env:"MATHMATCH_COMPLETION_DELAY"  envDefault:"1s"`
	TickInterval    time.Duration `env:"MATHMATCH_TICK_INTERVAL"     envDefault:"1s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Address to listen on (default: auto-port on localhost)")
	fs.StringVar(&cfg.WebDir, "web", cfg.WebDir, "Directory with the static web files")
	fs.DurationVar(&cfg.ResolveDelay, "resolve-delay", cfg.ResolveDelay, "Delay before two selected cards are compared")
	fs.DurationVar(&cfg.WrongFlashDelay, "wrong-flash-delay", cfg.WrongFlashDelay, "How long mismatched cards flash")
	fs.DurationVar(&cfg.CompletionDelay, "completion-delay", cfg.CompletionDelay, "Delay before the completion dialog")
	fs.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "Period of the timer display updates")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.TickInterval <= 0 {
		return Config{}, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}
	return cfg, nil
}

// GameConfig returns the controller configuration of a new session.
func (c Config) GameConfig() game.Config {
	return game.Config{
		ResolveDelay:    c.ResolveDelay,
		WrongFlashDelay: c.WrongFlashDelay,
		CompletionDelay: c.CompletionDelay,
		TickInterval:    c.TickInterval,
	}
}

// DefaultConfig returns the configuration used when no environment or flags are given.
func DefaultConfig() Config {
	gc := game.DefaultConfig()
	return Config{
		WebDir:          "web",
		ResolveDelay:    gc.ResolveDelay,
		WrongFlashDelay: gc.WrongFlashDelay,
		CompletionDelay: gc.CompletionDelay,
		TickInterval:    gc.TickInterval,
	}
}
