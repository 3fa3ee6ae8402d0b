package core

// Faction identifies a side of the match
type Faction string

const (
	FactionNone   Faction = ""
	FactionPlayer Faction = "player"
	FactionAI     Faction = "ai"
)

// Opponent returns the other side. FactionNone has no opponent.
func (f Faction) Opponent() Faction {
	switch f {
	case FactionPlayer:
		return FactionAI
	case FactionAI:
		return FactionPlayer
	default:
		return FactionNone
	}
}

// Label is the display name used for the winner banner
func (f Faction) Label() string {
	switch f {
	case FactionPlayer:
		return "Player"
	case FactionAI:
		return "AI"
	default:
		return "None"
	}
}

// ParseFaction accepts the lower-case faction names used in scenario files
func ParseFaction(s string) (Faction, bool) {
	switch Faction(s) {
	case FactionPlayer, FactionAI:
		return Faction(s), true
	}
	return FactionNone, false
}

// EntityID is the board-assigned handle for anything placed on the grid.
// Zero is never assigned.
type EntityID int

const NoEntity EntityID = 0

type EntityKind int

const (
	KindNone EntityKind = iota
	KindUnit
	KindObstacle
	KindLiveObstacle
	KindHazard
	KindResource
)

func (k EntityKind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindObstacle:
		return "obstacle"
	case KindLiveObstacle:
		return "live_obstacle"
	case KindHazard:
		return "hazard"
	case KindResource:
		return "resource"
	default:
		return "none"
	}
}

// Blocking reports whether an entity of this kind occupies its cell
// exclusively. Hazards and resource nodes sit underneath occupants.
func (k EntityKind) Blocking() bool {
	return k == KindUnit || k == KindObstacle || k == KindLiveObstacle
}

// Entity is implemented by everything the board can hold
type Entity interface {
	EntityID() EntityID
	Kind() EntityKind
	Position() Coordinate
}

// Obstacle is a static wall
type Obstacle struct {
	ID   EntityID
	Pos  Coordinate
	Type string
}

func NewObstacle() *Obstacle { return &Obstacle{Type: "wall"} }

func (o *Obstacle) EntityID() EntityID   { return o.ID }
func (o *Obstacle) Kind() EntityKind     { return KindObstacle }
func (o *Obstacle) Position() Coordinate { return o.Pos }

// Hazard damages the first unit that moves onto it, then stays armed
type Hazard struct {
	ID     EntityID
	Pos    Coordinate
	Type   string
	Damage int
}

func NewHazard(damage int) *Hazard { return &Hazard{Type: "mine", Damage: damage} }

func (h *Hazard) EntityID() EntityID   { return h.ID }
func (h *Hazard) Kind() EntityKind     { return KindHazard }
func (h *Hazard) Position() Coordinate { return h.Pos }

// ResourceNode yields Value per turn to its owner once captured
type ResourceNode struct {
	ID    EntityID
	Pos   Coordinate
	Value int
	Owner Faction
}

func NewResourceNode(value int) *ResourceNode { return &ResourceNode{Value: value} }

func (r *ResourceNode) EntityID() EntityID   { return r.ID }
func (r *ResourceNode) Kind() EntityKind     { return KindResource }
func (r *ResourceNode) Position() Coordinate { return r.Pos }

// LiveObstacle is a wall moved each round by its own learning agent
type LiveObstacle struct {
	ID  EntityID
	Pos Coordinate
}

func NewLiveObstacle() *LiveObstacle { return &LiveObstacle{} }

func (l *LiveObstacle) EntityID() EntityID   { return l.ID }
func (l *LiveObstacle) Kind() EntityKind     { return KindLiveObstacle }
func (l *LiveObstacle) Position() Coordinate { return l.Pos }
