package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hoshinonyaruko/snake-duel/config"
	"github.com/hoshinonyaruko/snake-duel/loop"
	"github.com/hoshinonyaruko/snake-duel/snake"
	"github.com/hoshinonyaruko/snake-duel/snapshot"
	"github.com/hoshinonyaruko/snake-duel/structs"
	"github.com/hoshinonyaruko/snake-duel/terminal"
	"github.com/hoshinonyaruko/snake-duel/theme"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultConfigPath = "./config.json"

func main() {
	// .env 可选
	_ = godotenv.Load()

	configPath := os.Getenv("SNAKE_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	// Initialize the configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		os.Exit(1)
	}
	code := run(cfg, configPath)
	logFile.Close()
	os.Exit(code)
}

// setupLogger 终端用来画图，日志写到文件
func setupLogger(cfg *config.AppConfig) (*os.File, error) {
	if err := ensureFolderExists(filepath.Dir(cfg.LogPath)); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()

	levelName := os.Getenv("LOG_LEVEL")
	if levelName == "" {
		levelName = cfg.LogLevel
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return f, nil
}

func run(cfg *config.AppConfig, configPath string) int {
	store := theme.NewStore(theme.FromConfig(cfg.Theme))
	// 检测并热更新主题
	if stop, err := store.Watch(configPath); err != nil {
		log.Warn().Err(err).Str("path", configPath).Msg("theme hot reload disabled")
	} else {
		defer stop()
	}

	term, err := terminal.Open(store)
	if err != nil {
		log.Error().Err(err).Msg("acquire terminal")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	// panic 时也要恢复终端
	defer term.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	placer := snake.NewRandomPlacer(seed)

	mode := structs.TwoPlayer
	if cfg.Players == 1 {
		mode = structs.SinglePlayer
	}

	state := snake.NewGameState(cfg.Width, cfg.Height, mode, placer)
	log.Info().
		Str("match", state.ID).
		Str("mode", mode.String()).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Uint64("seed", seed).
		Msg("starting")

	final := loop.New(state, placer, term, term, loop.Config{
		TickInterval: cfg.TickInterval(),
		PollTimeout:  cfg.PollTimeout(),
	}).Run()

	// 先恢复终端再打印结果
	term.Close()
	fmt.Println(snake.Summary(final))

	if cfg.SnapshotDir != "" {
		path, err := snapshot.Save(final, store.Current(), cfg.Blocksize, cfg.SnapshotDir)
		if err != nil {
			log.Error().Err(err).Msg("snapshot")
		} else {
			log.Info().Str("path", path).Msg("snapshot saved")
		}
	}
	return 0
}

// ensureFolderExists 检查并创建必需的文件夹
func ensureFolderExists(folder string) error {
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		// 文件夹不存在，尝试创建它
		return os.MkdirAll(folder, 0755)
	}
	return nil
}
