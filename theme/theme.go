// Package theme keeps the board glyphs and colours in memory and reloads them when the config file changes.
package theme

import (
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/hoshinonyaruko/snake-duel/config"
	"github.com/rs/zerolog/log"
)

// cellWidth 每个格子画两个字符
const cellWidth = 2

// Theme is a resolved, ready-to-draw ThemeConfig.
type Theme struct {
	Snake       string
	Apple       string
	Empty       string
	SnakeColors [2]tcell.Color
	AppleColor  tcell.Color
}

// FromConfig resolves colour names and replaces glyphs that are not exactly two characters.
func FromConfig(c config.ThemeConfig) Theme {
	def := config.DefaultTheme()
	return Theme{
		Snake:       glyph(c.Snake, def.Snake),
		Apple:       glyph(c.Apple, def.Apple),
		Empty:       glyph(c.Empty, def.Empty),
		SnakeColors: [2]tcell.Color{tcell.GetColor(c.Snake1Color), tcell.GetColor(c.Snake2Color)},
		AppleColor:  tcell.GetColor(c.AppleColor),
	}
}

func glyph(s, fallback string) string {
	if utf8.RuneCountInString(s) != cellWidth {
		log.Warn().Str("glyph", s).Str("fallback", fallback).Msg("glyph must be two characters")
		return fallback
	}
	return s
}

// SnakeColor returns the colour for a 1-based player number.
func (t Theme) SnakeColor(player int) tcell.Color {
	if player == 2 {
		return t.SnakeColors[1]
	}
	return t.SnakeColors[0]
}

// Store holds the current theme for concurrent readers.
type Store struct {
	mu      sync.RWMutex
	current Theme
}

func NewStore(t Theme) *Store {
	return &Store{current: t}
}

func (s *Store) Current() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Set(t Theme) {
	s.mu.Lock()
	s.current = t
	s.mu.Unlock()
}

// Watch reloads the theme section of configPath on every write. The returned
// function stops the watcher.
func (s *Store) Watch(configPath string) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	target := filepath.Clean(configPath)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
					s.reload(target)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("theme watcher")
			}
		}
	}()

	// 监听目录，编辑器保存时常常是替换文件
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, err
	}
	return watcher.Close, nil
}

func (s *Store) reload(path string) {
	cfg, err := config.Read(path)
	if err != nil {
		// 写了一半的文件，等下一次事件
		log.Debug().Err(err).Str("path", path).Msg("theme reload skipped")
		return
	}
	s.Set(FromConfig(cfg.Theme))
	log.Info().Str("path", path).Msg("theme reloaded")
}
