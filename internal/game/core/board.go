package core

// Cell holds at most one blocking occupant (unit, obstacle or live obstacle)
// and at most one marker (hazard or resource node) underneath it.
type Cell struct {
	Occupant EntityID
	Marker   EntityID
}

func (c *Cell) IsEmpty() bool { return c.Occupant == NoEntity && c.Marker == NoEntity }

// Board owns every entity on the grid. Other components refer to entities
// by EntityID and go through Board methods to mutate them.
type Board struct {
	W, H int
	T    []Cell // length = W*H (row-major)

	nextID EntityID
	kinds  map[EntityID]EntityKind

	units         []*Unit
	obstacles     []*Obstacle
	hazards       []*Hazard
	resources     []*ResourceNode
	liveObstacles []*LiveObstacle

	reachFor EntityID
	reach    map[Coordinate]struct{}
}

func NewBoard(w, h int) *Board {
	return &Board{
		W:     w,
		H:     h,
		T:     make([]Cell, w*h),
		kinds: make(map[EntityID]EntityKind),
	}
}

func (b *Board) Idx(x, y int) int      { return y*b.W + x }
func (b *Board) XY(idx int) (int, int) { return idx % b.W, idx / b.W }

// InBounds checks if coordinates are within board boundaries
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// GetCell safely returns a cell pointer if coordinates are valid, nil otherwise
func (b *Board) GetCell(c Coordinate) *Cell {
	if !b.InBounds(c.X, c.Y) {
		return nil
	}
	return &b.T[b.Idx(c.X, c.Y)]
}

// IsPassable is true for in-bounds cells without a blocking occupant.
// Hazards and resource nodes do not block.
func (b *Board) IsPassable(c Coordinate) bool {
	cell := b.GetCell(c)
	return cell != nil && cell.Occupant == NoEntity
}

// Place puts a new entity at c and assigns its ID. Blocking entities need a
// cell with no occupant and no hazard; markers need a completely empty cell.
// Hazards only fire on Move, so nothing may be set down on one even though
// units may move onto it.
func (b *Board) Place(e Entity, c Coordinate) error {
	cell := b.GetCell(c)
	if cell == nil {
		return ErrOutOfBounds
	}
	kind := e.Kind()
	if kind.Blocking() {
		if cell.Occupant != NoEntity || b.kinds[cell.Marker] == KindHazard {
			return ErrCellOccupied
		}
	} else if !cell.IsEmpty() {
		return ErrCellOccupied
	}

	b.nextID++
	id := b.nextID
	switch v := e.(type) {
	case *Unit:
		v.ID, v.Pos = id, c
		b.units = append(b.units, v)
	case *Obstacle:
		v.ID, v.Pos = id, c
		b.obstacles = append(b.obstacles, v)
	case *LiveObstacle:
		v.ID, v.Pos = id, c
		b.liveObstacles = append(b.liveObstacles, v)
	case *Hazard:
		v.ID, v.Pos = id, c
		b.hazards = append(b.hazards, v)
	case *ResourceNode:
		v.ID, v.Pos = id, c
		b.resources = append(b.resources, v)
	default:
		b.nextID--
		return ErrUnknownEntity
	}
	b.kinds[id] = kind
	if kind.Blocking() {
		cell.Occupant = id
	} else {
		cell.Marker = id
	}
	b.clearReachable()
	return nil
}

// KindOf reports what an id refers to, KindNone when it is not on the board
func (b *Board) KindOf(id EntityID) EntityKind { return b.kinds[id] }

// Unit returns the live unit with the given id, or nil
func (b *Board) Unit(id EntityID) *Unit {
	if b.kinds[id] != KindUnit {
		return nil
	}
	for _, u := range b.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// UnitAt returns the unit occupying c, or nil
func (b *Board) UnitAt(c Coordinate) *Unit {
	cell := b.GetCell(c)
	if cell == nil || b.kinds[cell.Occupant] != KindUnit {
		return nil
	}
	return b.Unit(cell.Occupant)
}

// OccupantAt returns the blocking occupant of c and its kind
func (b *Board) OccupantAt(c Coordinate) (EntityID, EntityKind) {
	cell := b.GetCell(c)
	if cell == nil {
		return NoEntity, KindNone
	}
	return cell.Occupant, b.kinds[cell.Occupant]
}

func (b *Board) HazardAt(c Coordinate) *Hazard {
	cell := b.GetCell(c)
	if cell == nil || b.kinds[cell.Marker] != KindHazard {
		return nil
	}
	for _, h := range b.hazards {
		if h.ID == cell.Marker {
			return h
		}
	}
	return nil
}

func (b *Board) ResourceAt(c Coordinate) *ResourceNode {
	cell := b.GetCell(c)
	if cell == nil || b.kinds[cell.Marker] != KindResource {
		return nil
	}
	for _, r := range b.resources {
		if r.ID == cell.Marker {
			return r
		}
	}
	return nil
}

func (b *Board) LiveObstacle(id EntityID) *LiveObstacle {
	for _, l := range b.liveObstacles {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Units returns all live units in placement order
func (b *Board) Units() []*Unit { return append([]*Unit(nil), b.units...) }

// UnitsOf returns the live units owned by f in placement order
func (b *Board) UnitsOf(f Faction) []*Unit {
	var out []*Unit
	for _, u := range b.units {
		if u.Owner == f {
			out = append(out, u)
		}
	}
	return out
}

func (b *Board) Obstacles() []*Obstacle { return append([]*Obstacle(nil), b.obstacles...) }
func (b *Board) Hazards() []*Hazard     { return append([]*Hazard(nil), b.hazards...) }

func (b *Board) Resources() []*ResourceNode {
	return append([]*ResourceNode(nil), b.resources...)
}

func (b *Board) LiveObstacles() []*LiveObstacle {
	return append([]*LiveObstacle(nil), b.liveObstacles...)
}

// ResourcesOwnedBy returns the nodes captured by f
func (b *Board) ResourcesOwnedBy(f Faction) []*ResourceNode {
	var out []*ResourceNode
	for _, r := range b.resources {
		if r.Owner == f {
			out = append(out, r)
		}
	}
	return out
}

// UnitsWithin returns live units within Manhattan distance r of c
func (b *Board) UnitsWithin(c Coordinate, r int) []*Unit {
	var out []*Unit
	for _, u := range b.units {
		if u.Pos.Within(c, r) {
			out = append(out, u)
		}
	}
	return out
}

// RemoveDead takes every unit at or below zero health off the board and
// returns the removed units.
func (b *Board) RemoveDead() []*Unit {
	var removed []*Unit
	alive := b.units[:0]
	for _, u := range b.units {
		if !u.IsDead() {
			alive = append(alive, u)
			continue
		}
		removed = append(removed, u)
		if cell := b.GetCell(u.Pos); cell != nil && cell.Occupant == u.ID {
			cell.Occupant = NoEntity
		}
		delete(b.kinds, u.ID)
		if b.reachFor == u.ID {
			b.clearReachable()
		}
	}
	for i := len(alive); i < len(b.units); i++ {
		b.units[i] = nil
	}
	b.units = alive
	return removed
}
