// Package input turns key events into per-player intents and applies them to the game state.
package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hoshinonyaruko/snake-duel/structs"
)

// IntentKind 按键对应的操作
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentTurn
	IntentQuit
)

// Intent is what a key press asks for. Player is the 1-based player number.
type Intent struct {
	Kind      IntentKind
	Player    int
	Direction structs.Direction
}

var arrowKeys = map[tcell.Key]structs.Direction{
	tcell.KeyUp:    structs.Up,
	tcell.KeyDown:  structs.Down,
	tcell.KeyLeft:  structs.Left,
	tcell.KeyRight: structs.Right,
}

var wasdKeys = map[rune]structs.Direction{
	'w': structs.Up,
	's': structs.Down,
	'a': structs.Left,
	'd': structs.Right,
}

// Map 方向键给玩家1，wasd只在双人模式给玩家2，q退出
func Map(ev *tcell.EventKey, mode structs.Mode) Intent {
	if dir, ok := arrowKeys[ev.Key()]; ok {
		return Intent{Kind: IntentTurn, Player: 1, Direction: dir}
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return Intent{Kind: IntentQuit}
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return Intent{Kind: IntentQuit}
		}
		if dir, ok := wasdKeys[ev.Rune()]; ok && mode == structs.TwoPlayer {
			return Intent{Kind: IntentTurn, Player: 2, Direction: dir}
		}
	}
	return Intent{}
}

// Apply mutates state according to in and reports whether anything changed.
// A turn that reverses the direction in effect since the last tick is dropped.
func Apply(state *structs.GameState, in Intent) bool {
	if state.Over {
		return false
	}

	switch in.Kind {
	case IntentQuit:
		state.Over = true
		if state.Mode == structs.TwoPlayer {
			state.Outcome = structs.OutcomeUndetermined
		}
		return true
	case IntentTurn:
		if in.Player < 1 || in.Player > len(state.Snakes) {
			return false
		}
		s := &state.Snakes[in.Player-1]
		if structs.IsOpposite(s.Direction, in.Direction) {
			return false
		}
		// 一个tick内多次按键，最后一次生效
		s.Pending = in.Direction
		return true
	}
	return false
}

// Handle maps a key event and applies it in one step.
func Handle(state *structs.GameState, ev *tcell.EventKey) Intent {
	in := Map(ev, state.Mode)
	Apply(state, in)
	return in
}
