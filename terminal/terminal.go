// Package terminal owns the raw-mode screen: it pumps key events and draws the board.
package terminal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hoshinonyaruko/snake-duel/structs"
	"github.com/hoshinonyaruko/snake-duel/theme"
)

// Terminal is acquired once at startup and must be closed on every exit path.
type Terminal struct {
	screen    tcell.Screen
	theme     *theme.Store
	events    chan tcell.Event
	quit      chan struct{}
	closeOnce sync.Once
}

// Open puts the controlling terminal into raw mode.
func Open(th *theme.Store) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return New(screen, th)
}

// New initialises screen and starts forwarding its events.
func New(screen tcell.Screen, th *theme.Store) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("enter terminal mode: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen: screen,
		theme:  th,
		events: make(chan tcell.Event, 16),
		quit:   make(chan struct{}),
	}
	go screen.ChannelEvents(t.events, t.quit)
	return t, nil
}

// Poll waits up to timeout for one event.
func (t *Terminal) Poll(timeout time.Duration) (tcell.Event, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-t.events:
		if !ok {
			return nil, false
		}
		if _, resized := ev.(*tcell.EventResize); resized {
			t.screen.Sync()
		}
		return ev, true
	case <-timer.C:
		return nil, false
	}
}

// Render clears the screen and draws the bordered board, two characters per cell.
func (t *Terminal) Render(state *structs.GameState) {
	th := t.theme.Current()
	s := t.screen
	s.Clear()

	border := tcell.StyleDefault
	right := state.Width*2 + 1
	bottom := state.Height + 1

	s.SetContent(0, 0, '+', nil, border)
	s.SetContent(right, 0, '+', nil, border)
	s.SetContent(0, bottom, '+', nil, border)
	s.SetContent(right, bottom, '+', nil, border)
	for x := 1; x < right; x++ {
		s.SetContent(x, 0, '-', nil, border)
		s.SetContent(x, bottom, '-', nil, border)
	}
	for y := 1; y < bottom; y++ {
		s.SetContent(0, y, '|', nil, border)
		s.SetContent(right, y, '|', nil, border)
	}

	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			t.drawCell(structs.Position{X: x, Y: y}, th.Empty, tcell.StyleDefault)
		}
	}
	if state.Apple != nil {
		t.drawCell(*state.Apple, th.Apple, tcell.StyleDefault.Foreground(th.AppleColor))
	}
	for i := range state.Snakes {
		sn := &state.Snakes[i]
		style := tcell.StyleDefault.Foreground(th.SnakeColor(sn.Player))
		for _, p := range sn.Positions {
			t.drawCell(p, th.Snake, style)
		}
	}

	s.Show()
}

func (t *Terminal) drawCell(p structs.Position, glyph string, style tcell.Style) {
	x := 1 + p.X*2
	i := 0
	for _, r := range glyph {
		t.screen.SetContent(x+i, p.Y+1, r, nil, style)
		i++
	}
}

// Close restores the terminal. Safe to call more than once.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		close(t.quit)
		t.screen.Fini()
	})
}
