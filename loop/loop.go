// Package loop runs the fixed-tick game loop: fast bounded input polling, slower simulation ticks.
package loop

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hoshinonyaruko/snake-duel/input"
	"github.com/hoshinonyaruko/snake-duel/snake"
	"github.com/hoshinonyaruko/snake-duel/structs"
	"github.com/rs/zerolog/log"
)

// Default intervals, matching the classic terminal game.
const (
	DefaultTickInterval = 150 * time.Millisecond
	DefaultPollTimeout  = 50 * time.Millisecond
)

// EventSource yields at most one event, blocking no longer than timeout.
type EventSource interface {
	Poll(timeout time.Duration) (tcell.Event, bool)
}

// Renderer draws the full state.
type Renderer interface {
	Render(state *structs.GameState)
}

// Config controls loop timing.
type Config struct {
	TickInterval time.Duration
	PollTimeout  time.Duration
	Now          func() time.Time // defaults to time.Now
}

// Loop owns the game state for the duration of a match.
type Loop struct {
	state    *structs.GameState
	placer   snake.ApplePlacer
	events   EventSource
	renderer Renderer
	cfg      Config
}

// New wires a loop. Zero durations fall back to the defaults.
func New(state *structs.GameState, placer snake.ApplePlacer, events EventSource, renderer Renderer, cfg Config) *Loop {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefaultPollTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Loop{
		state:    state,
		placer:   placer,
		events:   events,
		renderer: renderer,
		cfg:      cfg,
	}
}

// Run blocks until the terminal flag is set and returns the final state.
func (l *Loop) Run() *structs.GameState {
	log.Info().
		Str("match", l.state.ID).
		Stringer("mode", l.state.Mode).
		Int("width", l.state.Width).
		Int("height", l.state.Height).
		Dur("tick", l.cfg.TickInterval).
		Msg("match started")

	l.renderer.Render(l.state)
	lastTick := l.cfg.Now()

	for !l.state.Over {
		if ev, ok := l.events.Poll(l.cfg.PollTimeout); ok {
			l.dispatch(ev)
		}
		if l.state.Over {
			break
		}

		if l.cfg.Now().Sub(lastTick) >= l.cfg.TickInterval {
			snake.Tick(l.state, l.placer)
			l.renderer.Render(l.state)
			lastTick = l.cfg.Now()
		}
	}
	return l.state
}

func (l *Loop) dispatch(ev tcell.Event) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}
	in := input.Handle(l.state, key)
	if in.Kind == input.IntentQuit {
		log.Info().Str("match", l.state.ID).Int("ticks", l.state.Ticks).Msg("match quit")
	}
}
