package core

// MoveOutcome describes the side effects of landing on a cell
type MoveOutcome struct {
	UnitID       EntityID
	From, To     Coordinate
	HazardDamage int
	Destroyed    bool
	Captured     *ResourceNode
}

// ComputeReachable returns every passable cell within the unit's movement
// range (Manhattan, ignoring walls in between) and caches it as the
// reachable set. Cells come back in x-major scan order.
func (b *Board) ComputeReachable(id EntityID) []Coordinate {
	b.clearReachable()
	u := b.Unit(id)
	if u == nil {
		return nil
	}
	r := u.MovementRange
	var cells []Coordinate
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if abs(dx)+abs(dy) > r {
				continue
			}
			c := Coordinate{X: u.Pos.X + dx, Y: u.Pos.Y + dy}
			if b.IsPassable(c) {
				cells = append(cells, c)
			}
		}
	}
	b.reachFor = id
	b.reach = make(map[Coordinate]struct{}, len(cells))
	for _, c := range cells {
		b.reach[c] = struct{}{}
	}
	return cells
}

// ReachableFor is the unit the cached reachable set belongs to
func (b *Board) ReachableFor() EntityID { return b.reachFor }

// IsReachable checks c against the cached reachable set
func (b *Board) IsReachable(c Coordinate) bool {
	_, ok := b.reach[c]
	return ok
}

// Reachable returns the cached reachable set in row-major order
func (b *Board) Reachable() []Coordinate {
	if len(b.reach) == 0 {
		return nil
	}
	out := make([]Coordinate, 0, len(b.reach))
	for i := range b.T {
		c := cellAt(i, b.W)
		if _, ok := b.reach[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// ClearReachable drops the cached reachable set
func (b *Board) ClearReachable() { b.clearReachable() }

func (b *Board) clearReachable() {
	b.reachFor = NoEntity
	b.reach = nil
}

// Move relocates a unit onto a passable cell, then resolves the hazard or
// resource node underneath. Range and has-moved checks belong to the caller.
func (b *Board) Move(id EntityID, to Coordinate) (MoveOutcome, error) {
	u := b.Unit(id)
	if u == nil {
		return MoveOutcome{}, WrapEntityError(id, "move", ErrUnknownEntity)
	}
	if !b.InBounds(to.X, to.Y) {
		return MoveOutcome{}, WrapEntityError(id, "move", ErrOutOfBounds)
	}
	if !b.IsPassable(to) {
		return MoveOutcome{}, WrapEntityError(id, "move", ErrCellOccupied)
	}

	out := MoveOutcome{UnitID: id, From: u.Pos, To: to}
	b.GetCell(u.Pos).Occupant = NoEntity
	b.GetCell(to).Occupant = id
	u.Pos = to
	u.HasMoved = true
	b.clearReachable()

	if h := b.HazardAt(to); h != nil {
		out.HazardDamage = u.TakeDamage(h.Damage)
		if u.IsDead() {
			out.Destroyed = true
			b.RemoveDead()
			return out, nil
		}
	}
	if r := b.ResourceAt(to); r != nil && r.Owner == FactionNone {
		r.Owner = u.Owner
		out.Captured = r
	}
	return out, nil
}

// MoveLiveObstacle relocates a live obstacle. Staying put is always allowed.
func (b *Board) MoveLiveObstacle(id EntityID, to Coordinate) error {
	l := b.LiveObstacle(id)
	if l == nil {
		return WrapEntityError(id, "move obstacle", ErrUnknownEntity)
	}
	if to == l.Pos {
		return nil
	}
	if !b.IsPassable(to) {
		return WrapEntityError(id, "move obstacle", ErrCellOccupied)
	}
	b.GetCell(l.Pos).Occupant = NoEntity
	b.GetCell(to).Occupant = id
	l.Pos = to
	b.clearReachable()
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
