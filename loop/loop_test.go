package loop

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hoshinonyaruko/snake-duel/snake"
	"github.com/hoshinonyaruko/snake-duel/structs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

// scripted returns events keyed by 1-based poll number; every poll costs the full timeout.
type scripted struct {
	clock  *fakeClock
	events map[int]tcell.Event
	polls  int
}

func (s *scripted) Poll(timeout time.Duration) (tcell.Event, bool) {
	s.polls++
	s.clock.now = s.clock.now.Add(timeout)
	if s.polls > 10000 {
		return tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true
	}
	ev, ok := s.events[s.polls]
	return ev, ok
}

type recorder struct {
	heads [][]structs.Position
}

func (r *recorder) Render(state *structs.GameState) {
	heads := make([]structs.Position, 0, len(state.Snakes))
	for i := range state.Snakes {
		heads = append(heads, state.Snakes[i].Head())
	}
	r.heads = append(r.heads, heads)
}

var cornerApple = snake.PlacerFunc(func(free []structs.Position) structs.Position {
	return free[0]
})

func run(t *testing.T, mode structs.Mode, events map[int]tcell.Event) (*structs.GameState, *recorder, *scripted) {
	t.Helper()

	clock := &fakeClock{now: time.Unix(0, 0)}
	src := &scripted{clock: clock, events: events}
	rec := &recorder{}
	state := snake.NewGameState(20, 10, mode, cornerApple)
	require.Equal(t, structs.Position{X: 0, Y: 0}, *state.Apple)

	l := New(state, cornerApple, src, rec, Config{
		TickInterval: 150 * time.Millisecond,
		PollTimeout:  50 * time.Millisecond,
		Now:          clock.Now,
	})
	return l.Run(), rec, src
}

func keyEv(k tcell.Key) tcell.Event {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeEv(r rune) tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestLoopTicksAtFixedRate(t *testing.T) {
	state, rec, src := run(t, structs.SinglePlayer, map[int]tcell.Event{7: runeEv('q')})

	assert.True(t, state.Over)
	assert.Equal(t, structs.OutcomeNone, state.Outcome)
	assert.Equal(t, 7, src.polls)
	assert.Equal(t, 2, state.Ticks)
	require.Len(t, rec.heads, 3)
	assert.Equal(t, structs.Position{X: 10, Y: 5}, rec.heads[0][0])
	assert.Equal(t, structs.Position{X: 11, Y: 5}, rec.heads[1][0])
	assert.Equal(t, structs.Position{X: 12, Y: 5}, rec.heads[2][0])
}

func TestLoopAppliesLastLegalKeyAtTick(t *testing.T) {
	state, rec, _ := run(t, structs.SinglePlayer, map[int]tcell.Event{
		1: keyEv(tcell.KeyUp),
		2: keyEv(tcell.KeyLeft), // reversal of Right, dropped
		4: runeEv('q'),
	})

	assert.Equal(t, 1, state.Ticks)
	assert.Equal(t, structs.Up, state.Snakes[0].Direction)
	assert.Equal(t, structs.Position{X: 10, Y: 4}, rec.heads[1][0])
}

func TestLoopEndsOnCrash(t *testing.T) {
	state, rec, _ := run(t, structs.SinglePlayer, nil)

	assert.True(t, state.Over)
	assert.Equal(t, structs.DeathWall, state.Snakes[0].Death)
	assert.Equal(t, 10, state.Ticks)
	assert.Len(t, rec.heads, 11)
	assert.Equal(t, structs.Position{X: 19, Y: 5}, state.Snakes[0].Head())
}

func TestLoopDuelQuitIsUndetermined(t *testing.T) {
	state, _, _ := run(t, structs.TwoPlayer, map[int]tcell.Event{
		1: tcell.NewEventResize(80, 24),
		2: runeEv('w'),
		3: runeEv('q'),
	})

	assert.True(t, state.Over)
	assert.Equal(t, structs.OutcomeUndetermined, state.Outcome)
	assert.Equal(t, structs.Up, state.Snakes[1].Pending)
	assert.Equal(t, 0, state.Ticks)
}

func TestLoopDuelEndsWithWinner(t *testing.T) {
	// 玩家2向左先撞墙：(8,5)走8步到x=0，第9步撞上自己
	state, _, _ := run(t, structs.TwoPlayer, nil)

	assert.True(t, state.Over)
	assert.Equal(t, structs.DeathSelf, state.Snakes[1].Death)
	assert.Equal(t, structs.OutcomePlayer1Wins, state.Outcome)
	assert.Equal(t, 9, state.Ticks)
}

func TestNewAppliesDefaults(t *testing.T) {
	l := New(&structs.GameState{}, cornerApple, nil, nil, Config{})

	assert.Equal(t, DefaultTickInterval, l.cfg.TickInterval)
	assert.Equal(t, DefaultPollTimeout, l.cfg.PollTimeout)
	assert.NotNil(t, l.cfg.Now)
}
