package snake

import (
	"github.com/hoshinonyaruko/snake-duel/structs"
	"golang.org/x/exp/rand"
)

// ApplePlacer picks the next apple cell out of the free cells. free is never empty.
type ApplePlacer interface {
	Place(free []structs.Position) structs.Position
}

// PlacerFunc adapts a plain function to ApplePlacer.
type PlacerFunc func(free []structs.Position) structs.Position

func (f PlacerFunc) Place(free []structs.Position) structs.Position {
	return f(free)
}

// RandomPlacer chooses uniformly among free cells.
type RandomPlacer struct {
	rng *rand.Rand
}

// NewRandomPlacer returns a placer whose sequence is fixed by seed.
func NewRandomPlacer(seed uint64) *RandomPlacer {
	return &RandomPlacer{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomPlacer) Place(free []structs.Position) structs.Position {
	return free[r.rng.Intn(len(free))]
}

// GenerateApple 在两条蛇都没有占据的格子里放一个新苹果，地图满了返回nil
func GenerateApple(state *structs.GameState, placer ApplePlacer) *structs.Position {
	bodies := make([][]structs.Position, 0, len(state.Snakes))
	for i := range state.Snakes {
		bodies = append(bodies, state.Snakes[i].Positions)
	}
	free := occupancyOf(state.Width, state.Height, bodies...).Free()
	if len(free) == 0 {
		return nil
	}
	p := placer.Place(free)
	return &p
}
