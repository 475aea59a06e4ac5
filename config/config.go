package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// Config validation errors.
var (
	ErrGridTooSmall = errors.New("grid is too small")
	ErrBadPlayers   = errors.New("players must be 1 or 2")
	ErrBadInterval  = errors.New("tick and poll intervals must be positive")
	ErrBadBlockSize = errors.New("blocksize must be positive")
)

const (
	minWidth  = 4
	minHeight = 1
)

// ThemeConfig holds the glyphs and colours used to draw the board.
type ThemeConfig struct {
	Snake       string `json:"snake"`
	Apple       string `json:"apple"`
	Empty       string `json:"empty"`
	Snake1Color string `json:"snake1_color"`
	Snake2Color string `json:"snake2_color"`
	AppleColor  string `json:"apple_color"`
}

// AppConfig holds the structure of the configuration
type AppConfig struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Players     int         `json:"players"`
	TickMs      int         `json:"tick_ms"`
	PollMs      int         `json:"poll_ms"`
	Seed        uint64      `json:"seed"` // 0 means seeded from the clock
	LogPath     string      `json:"log_path"`
	LogLevel    string      `json:"log_level"`
	SnapshotDir string      `json:"snapshot_dir"` // empty disables the end-of-match image
	Blocksize   int         `json:"blocksize"`
	Theme       ThemeConfig `json:"theme"`
}

var (
	instance *AppConfig
	loadErr  error
	once     sync.Once
)

// DefaultTheme is the classic look: solid blocks for snakes, @@ for the apple.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		Snake:       "██",
		Apple:       "@@",
		Empty:       "  ",
		Snake1Color: "green",
		Snake2Color: "blue",
		AppleColor:  "red",
	}
}

// Default returns the configuration written to disk when none exists.
func Default() *AppConfig {
	return &AppConfig{
		Width:     20,
		Height:    10,
		Players:   2,
		TickMs:    150,
		PollMs:    50,
		LogPath:   "snake.log",
		LogLevel:  "info",
		Blocksize: 20,
		Theme:     DefaultTheme(),
	}
}

// LoadConfig initializes and returns the process-wide AppConfig.
// A missing file is created with the defaults.
func LoadConfig(filePath string) (*AppConfig, error) {
	once.Do(func() {
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			instance = Default()
			loadErr = saveConfig(filePath, instance)
			return
		}
		instance, loadErr = Read(filePath)
	})
	return instance, loadErr
}

// Read loads and validates the file without touching the singleton.
// Keys missing from the file keep their default values.
func Read(filePath string) (*AppConfig, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return cfg, nil
}

// saveConfig saves the current settings to the file
func saveConfig(filePath string, cfg *AppConfig) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

// Validate checks the values the game cannot run without.
func (c *AppConfig) Validate() error {
	if c.Width < minWidth || c.Height < minHeight {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrGridTooSmall, c.Width, c.Height, minWidth, minHeight)
	}
	if c.Players != 1 && c.Players != 2 {
		return fmt.Errorf("%w: got %d", ErrBadPlayers, c.Players)
	}
	if c.TickMs <= 0 || c.PollMs <= 0 {
		return ErrBadInterval
	}
	if c.Blocksize <= 0 {
		return ErrBadBlockSize
	}
	return nil
}

// TickInterval is the simulation step.
func (c *AppConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

// PollTimeout bounds each input poll.
func (c *AppConfig) PollTimeout() time.Duration {
	return time.Duration(c.PollMs) * time.Millisecond
}
