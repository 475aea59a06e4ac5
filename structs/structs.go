package structs

// Direction 蛇的移动方向。
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

// 反方向查表
var opposites = [...]Direction{
	Up:    Down,
	Down:  Up,
	Left:  Right,
	Right: Left,
}

func (d Direction) String() string {
	if d < Up || d > Right {
		return "unknown"
	}
	return directionNames[d]
}

// Opposite returns the 180° reversal of d.
func (d Direction) Opposite() Direction {
	return opposites[d]
}

// IsOpposite reports whether a and b point in exactly opposite directions.
func IsOpposite(a, b Direction) bool {
	return a.Opposite() == b
}

// Position 描述游戏地图上的一个坐标位置。
type Position struct {
	X int `json:"x"` // X坐标
	Y int `json:"y"` // Y坐标
}

// Mode 单人或双人
type Mode int

const (
	SinglePlayer Mode = iota + 1
	TwoPlayer
)

func (m Mode) String() string {
	if m == SinglePlayer {
		return "single"
	}
	return "duel"
}

// Outcome 双人模式的比赛结果，只在结束的那一个tick写入一次。
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomePlayer1Wins
	OutcomePlayer2Wins
	OutcomeTie
	OutcomeUndetermined
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlayer1Wins:
		return "player1"
	case OutcomePlayer2Wins:
		return "player2"
	case OutcomeTie:
		return "tie"
	case OutcomeUndetermined:
		return "undetermined"
	default:
		return "none"
	}
}

// Message is the human readable line printed after "Game Over!".
func (o Outcome) Message() string {
	switch o {
	case OutcomePlayer1Wins:
		return "Player 1 wins!"
	case OutcomePlayer2Wins:
		return "Player 2 wins!"
	case OutcomeTie:
		return "It's a tie!"
	case OutcomeUndetermined:
		return "No winner: the game was quit."
	default:
		return ""
	}
}

// DeathCause 蛇的死因
type DeathCause int

const (
	DeathNone DeathCause = iota
	DeathWall
	DeathSelf
	DeathOpponent
)

func (c DeathCause) String() string {
	switch c {
	case DeathWall:
		return "wall-collision"
	case DeathSelf:
		return "self-collision"
	case DeathOpponent:
		return "snake-collision"
	default:
		return ""
	}
}

// Snake 描述一条贪食蛇的信息。
type Snake struct {
	Positions []Position `json:"positions"` // 蛇身上的每个格子的位置，第一个是蛇头
	Player    int        `json:"player"`    // 玩家编号 1 或 2
	Direction Direction  `json:"direction"` // 上一个tick起生效的方向
	Pending   Direction  `json:"pending"`   // 下一个tick生效的方向
	Death     DeathCause `json:"death"`
}

// Head returns the first cell of the body.
func (s *Snake) Head() Position {
	return s.Positions[0]
}

// Len returns the number of occupied cells.
func (s *Snake) Len() int {
	return len(s.Positions)
}

// Contains reports whether p is one of the snake's cells.
func (s *Snake) Contains(p Position) bool {
	for _, c := range s.Positions {
		if c == p {
			return true
		}
	}
	return false
}

// GameState 描述一局游戏的全部状态。
type GameState struct {
	ID      string    `json:"id"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Mode    Mode      `json:"mode"`
	Snakes  []Snake   `json:"snakes"`
	Apple   *Position `json:"apple"` // 地图没有空位时为nil
	Over    bool      `json:"over"`
	Outcome Outcome   `json:"outcome"`
	Ticks   int       `json:"ticks"`
}

// InBounds reports whether p lies inside [0,Width)×[0,Height).
func (g *GameState) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height
}

// Occupied reports whether any snake covers p.
func (g *GameState) Occupied(p Position) bool {
	for i := range g.Snakes {
		if g.Snakes[i].Contains(p) {
			return true
		}
	}
	return false
}

// Lengths returns each snake's length in player order.
func (g *GameState) Lengths() []int {
	out := make([]int, len(g.Snakes))
	for i := range g.Snakes {
		out[i] = g.Snakes[i].Len()
	}
	return out
}
