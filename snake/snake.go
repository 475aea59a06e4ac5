// 关于的蛇的更新
package snake

import (
	"github.com/google/uuid"
	"github.com/hoshinonyaruko/snake-duel/structs"
	"github.com/rs/zerolog/log"
)

// NewGameState 创建一局新游戏：玩家1在地图中心向右，玩家2在左边两格向左
func NewGameState(width, height int, mode structs.Mode, placer ApplePlacer) *structs.GameState {
	cx, cy := width/2, height/2
	snakes := []structs.Snake{{
		Positions: []structs.Position{{X: cx, Y: cy}},
		Player:    1,
		Direction: structs.Right,
		Pending:   structs.Right,
	}}
	if mode == structs.TwoPlayer {
		snakes = append(snakes, structs.Snake{
			Positions: []structs.Position{{X: cx - 2, Y: cy}},
			Player:    2,
			Direction: structs.Left,
			Pending:   structs.Left,
		})
	}

	state := &structs.GameState{
		ID:     uuid.NewString(),
		Width:  width,
		Height: height,
		Mode:   mode,
		Snakes: snakes,
	}
	state.Apple = GenerateApple(state, placer)
	return state
}

// NextHead shifts head one cell in dir. Decreasing coordinates saturate at 0,
// increasing ones are left unbounded for the wall check.
func NextHead(head structs.Position, dir structs.Direction) structs.Position {
	switch dir {
	case structs.Up:
		head.Y = saturatingDec(head.Y)
	case structs.Down:
		head.Y++
	case structs.Left:
		head.X = saturatingDec(head.X)
	case structs.Right:
		head.X++
	}
	return head
}

func saturatingDec(v int) int {
	if v == 0 {
		return 0
	}
	return v - 1
}

// Tick advances the game by one step. It is a no-op once the game is over.
func Tick(state *structs.GameState, placer ApplePlacer) {
	if state.Over {
		return
	}
	state.Ticks++

	// 待定方向在这个tick生效
	for i := range state.Snakes {
		state.Snakes[i].Direction = state.Snakes[i].Pending
	}

	// 碰撞检测用移动之前的占位
	bodies := make([]*Occupancy, len(state.Snakes))
	for i := range state.Snakes {
		bodies[i] = occupancyOf(state.Width, state.Height, state.Snakes[i].Positions)
	}

	heads := make([]structs.Position, len(state.Snakes))
	crashed := false
	for i := range state.Snakes {
		s := &state.Snakes[i]
		heads[i] = NextHead(s.Head(), s.Direction)
		s.Death = checkCollision(state, i, heads[i], bodies)
		if s.Death != structs.DeathNone {
			crashed = true
		}
	}

	if crashed {
		state.Over = true
		state.Outcome = resolveOutcome(state)
		logMatchOver(state)
		return
	}

	// 两条蛇用同一个tick前的苹果位置，吃到后只重新生成一次
	eaten := false
	for i := range state.Snakes {
		s := &state.Snakes[i]
		grow := state.Apple != nil && heads[i] == *state.Apple
		s.Positions = advance(s.Positions, heads[i], grow)
		if grow {
			eaten = true
			log.Debug().Str("match", state.ID).Int("player", s.Player).Int("length", s.Len()).Msg("apple eaten")
		}
	}
	if eaten {
		state.Apple = GenerateApple(state, placer)
	}
}

// checkCollision 判断第i条蛇的新蛇头是否致命
func checkCollision(state *structs.GameState, i int, head structs.Position, bodies []*Occupancy) structs.DeathCause {
	if head.X >= state.Width || head.Y >= state.Height {
		return structs.DeathWall
	}
	if bodies[i].Has(head) {
		return structs.DeathSelf
	}
	// 单人模式只有一条蛇，这里自然跳过
	for j := range bodies {
		if j != i && bodies[j].Has(head) {
			return structs.DeathOpponent
		}
	}
	return structs.DeathNone
}

// resolveOutcome 只有一条蛇撞了，另一位玩家赢；都撞了比长度
func resolveOutcome(state *structs.GameState) structs.Outcome {
	if state.Mode != structs.TwoPlayer || len(state.Snakes) < 2 {
		return structs.OutcomeNone
	}
	a, b := &state.Snakes[0], &state.Snakes[1]
	aDead := a.Death != structs.DeathNone
	bDead := b.Death != structs.DeathNone

	switch {
	case aDead && !bDead:
		return structs.OutcomePlayer2Wins
	case bDead && !aDead:
		return structs.OutcomePlayer1Wins
	case a.Len() > b.Len():
		return structs.OutcomePlayer1Wins
	case b.Len() > a.Len():
		return structs.OutcomePlayer2Wins
	default:
		return structs.OutcomeTie
	}
}

// advance 把新蛇头放到最前面，没吃到苹果就去掉尾巴
func advance(body []structs.Position, head structs.Position, grow bool) []structs.Position {
	keep := len(body)
	if !grow {
		keep--
	}
	next := make([]structs.Position, 0, keep+1)
	next = append(next, head)
	return append(next, body[:keep]...)
}

func logMatchOver(state *structs.GameState) {
	causes := make([]string, len(state.Snakes))
	for i := range state.Snakes {
		causes[i] = state.Snakes[i].Death.String()
	}
	log.Info().
		Str("match", state.ID).
		Int("ticks", state.Ticks).
		Stringer("outcome", state.Outcome).
		Ints("lengths", state.Lengths()).
		Strs("deaths", causes).
		Msg("match over")
}

// Summary 游戏结束后打印的文字
func Summary(state *structs.GameState) string {
	if state.Mode == structs.TwoPlayer {
		return "Game Over!\n" + state.Outcome.Message()
	}
	return "Game Over!"
}
