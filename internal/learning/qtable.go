package learning

import (
	"fmt"

	"github.com/mitchelldurbincs/NebulaDominion/internal/common"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// State is a relative offset from an agent to whatever it tracks
type State struct {
	DX, DY int
}

func (s State) String() string { return fmt.Sprintf("(%d,%d)", s.DX, s.DY) }

// Action is one of the five grid moves shared by both controllers
type Action int

const (
	Stay Action = iota
	Up
	Down
	Left
	Right
)

const NumActions = 5

var AllActions = [NumActions]Action{Stay, Up, Down, Left, Right}

var actionOffsets = [NumActions]core.Coordinate{
	Stay:  {X: 0, Y: 0},
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
}

// Offset is the grid delta of the action
func (a Action) Offset() core.Coordinate { return actionOffsets[a] }

func (a Action) String() string {
	switch a {
	case Stay:
		return "stay"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Values is one row of a Q-table
type Values [NumActions]float64

// QTable is a sparse tabular action-value function. Unseen states read as
// all zeros and are materialised on first access.
type QTable struct {
	rows map[State]*Values
}

func NewQTable() *QTable {
	return &QTable{rows: make(map[State]*Values)}
}

func (t *QTable) row(s State) *Values {
	r, ok := t.rows[s]
	if !ok {
		r = &Values{}
		t.rows[s] = r
	}
	return r
}

// Values returns a copy of the action values for s
func (t *QTable) Values(s State) Values { return *t.row(s) }

func (t *QTable) Get(s State, a Action) float64 { return t.row(s)[a] }

// Max is the best action value for s
func (t *QTable) Max(s State) float64 {
	r := t.row(s)
	return common.MaxFloat(r[:])
}

// Best is the first action with the highest value for s
func (t *QTable) Best(s State) Action {
	r := t.row(s)
	return Action(common.ArgMax(r[:]))
}

// Update applies one Q-learning step and returns the new value:
// Q[s,a] += alpha * (reward + gamma * max Q[next] - Q[s,a])
func (t *QTable) Update(s State, a Action, reward float64, next State, alpha, gamma float64) float64 {
	target := reward + gamma*t.Max(next)
	r := t.row(s)
	r[a] += alpha * (target - r[a])
	return r[a]
}

// Len is the number of materialised states
func (t *QTable) Len() int { return len(t.rows) }

// Snapshot copies the whole table
func (t *QTable) Snapshot() map[State]Values {
	out := make(map[State]Values, len(t.rows))
	for s, r := range t.rows {
		out[s] = *r
	}
	return out
}
