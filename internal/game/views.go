package game

import (
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// UnitView is a read-only copy of a unit for presentation
type UnitView struct {
	ID              core.EntityID `json:"id"`
	Class           string        `json:"class"`
	Owner           core.Faction  `json:"owner"`
	X               int           `json:"x"`
	Y               int           `json:"y"`
	Health          int           `json:"health"`
	MaxHealth       int           `json:"max_health"`
	AttackPower     int           `json:"attack_power"`
	Defense         int           `json:"defense"`
	MovementRange   int           `json:"movement_range"`
	AttackRange     int           `json:"attack_range"`
	Abilities       []string      `json:"abilities"`
	HasMoved        bool          `json:"has_moved"`
	HasAttacked     bool          `json:"has_attacked"`
	QuickStrikeUsed bool          `json:"quick_strike_used"`
	Scouting        bool          `json:"scouting"`
}

func newUnitView(u *core.Unit) UnitView {
	abilities := make([]string, len(u.Abilities))
	for i, a := range u.Abilities {
		abilities[i] = a.String()
	}
	return UnitView{
		ID:              u.ID,
		Class:           u.Class.String(),
		Owner:           u.Owner,
		X:               u.Pos.X,
		Y:               u.Pos.Y,
		Health:          u.Health,
		MaxHealth:       u.MaxHealth,
		AttackPower:     u.AttackPower,
		Defense:         u.Defense,
		MovementRange:   u.MovementRange,
		AttackRange:     u.AttackRange,
		Abilities:       abilities,
		HasMoved:        u.HasMoved,
		HasAttacked:     u.HasAttacked,
		QuickStrikeUsed: u.QuickStrikeUsed,
		Scouting:        u.Scouting,
	}
}

// EntityView is a read-only copy of a terrain entity. Owner is set for
// captured resource nodes, Value for resource nodes and Damage for hazards.
type EntityView struct {
	ID     core.EntityID `json:"id"`
	Kind   string        `json:"kind"`
	X      int           `json:"x"`
	Y      int           `json:"y"`
	Owner  string        `json:"owner,omitempty"`
	Value  int           `json:"value,omitempty"`
	Damage int           `json:"damage,omitempty"`
}

// Snapshot is every engine query answered at one instant
type Snapshot struct {
	GameID    string               `json:"game_id"`
	Turn      int                  `json:"turn"`
	Faction   core.Faction         `json:"faction"`
	Phase     string               `json:"phase"`
	GameOver  bool                 `json:"game_over"`
	Winner    string               `json:"winner,omitempty"`
	Resources map[core.Faction]int `json:"resources"`
	Units     []UnitView           `json:"units"`
	Entities  []EntityView         `json:"entities"`
	Selected  *UnitView            `json:"selected,omitempty"`
	Reachable []core.Coordinate    `json:"reachable,omitempty"`
}
