// Package scenario loads starting layouts for a game from YAML.
package scenario

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// DefaultName is the embedded scenario used when none is configured
const DefaultName = "default"

//go:embed data/*.yaml
var dataFS embed.FS

var ErrUnknownScenario = errors.New("unknown scenario")

// Position is a cell in scenario files
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (p Position) Coordinate() core.Coordinate {
	return core.NewCoordinate(p.X, p.Y)
}

// UnitPlacement puts one unit of a class on the board at start
type UnitPlacement struct {
	Class string `yaml:"class"`
	Owner string `yaml:"owner"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
}

// Terrain is a fixed map layout. Scenarios without one get generated terrain.
type Terrain struct {
	Obstacles     []Position `yaml:"obstacles"`
	Hazards       []Position `yaml:"hazards"`
	Resources     []Position `yaml:"resources"`
	LiveObstacles []Position `yaml:"live_obstacles"`
}

// Scenario describes the starting state of a game
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Width       int             `yaml:"width"`
	Height      int             `yaml:"height"`
	PlayerBase  *Position       `yaml:"player_base"`
	AIBase      *Position       `yaml:"ai_base"`
	Units       []UnitPlacement `yaml:"units"`
	Terrain     *Terrain        `yaml:"terrain"`
}

// Parse decodes a scenario document
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	return &s, nil
}

// Load reads a scenario from a file on disk
func Load(filePath string) (*Scenario, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", filePath, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", filePath, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	}
	return s, nil
}

// Named returns one of the embedded scenarios
func Named(name string) (*Scenario, error) {
	data, err := dataFS.ReadFile("data/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	return Parse(data)
}

// Default returns the embedded default scenario
func Default() (*Scenario, error) {
	return Named(DefaultName)
}

// Resolve treats ref as an embedded scenario name first, then as a path.
// An empty ref selects the default.
func Resolve(ref string) (*Scenario, error) {
	if ref == "" {
		return Default()
	}
	if s, err := Named(ref); err == nil {
		return s, nil
	}
	return Load(ref)
}

// Builtin lists the embedded scenario names
func Builtin() []string {
	entries, err := dataFS.ReadDir("data")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Size returns the scenario's board size, falling back to the given one
func (s *Scenario) Size(w, h int) (int, int) {
	if s.Width > 0 {
		w = s.Width
	}
	if s.Height > 0 {
		h = s.Height
	}
	return w, h
}

// Bases returns the player and AI base cells on a w x h board. Bases not set
// in the file sit in opposite corners.
func (s *Scenario) Bases(w, h int) (core.Coordinate, core.Coordinate) {
	player := core.NewCoordinate(0, 0)
	ai := core.NewCoordinate(w-1, h-1)
	if s.PlayerBase != nil {
		player = s.PlayerBase.Coordinate()
	}
	if s.AIBase != nil {
		ai = s.AIBase.Coordinate()
	}
	return player, ai
}

// HasTerrain reports whether the scenario fixes the map layout
func (s *Scenario) HasTerrain() bool {
	return s.Terrain != nil
}

// Validate checks the scenario against a w x h board without touching one.
// A size set in the file takes precedence.
func (s *Scenario) Validate(w, h int) error {
	return s.validateOn(s.Size(w, h))
}

func (s *Scenario) validateOn(w, h int) error {
	if w < 2 || h < 2 {
		return fmt.Errorf("scenario %q: board %dx%d is too small", s.Name, w, h)
	}
	inBounds := func(p Position) bool {
		return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
	}

	player, ai := s.Bases(w, h)
	for _, base := range []core.Coordinate{player, ai} {
		if !base.InBounds(w, h) {
			return fmt.Errorf("scenario %q: base %s out of bounds", s.Name, base)
		}
	}
	if player == ai {
		return fmt.Errorf("scenario %q: both bases at %s", s.Name, player)
	}

	if len(s.Units) == 0 {
		return fmt.Errorf("scenario %q: no units", s.Name)
	}
	blocking := make(map[Position]string)
	claim := func(p Position, what string) error {
		if !inBounds(p) {
			return fmt.Errorf("scenario %q: %s at (%d,%d) out of bounds", s.Name, what, p.X, p.Y)
		}
		if other, taken := blocking[p]; taken {
			return fmt.Errorf("scenario %q: %s at (%d,%d) overlaps %s", s.Name, what, p.X, p.Y, other)
		}
		blocking[p] = what
		return nil
	}

	for i, u := range s.Units {
		if _, err := core.ParseUnitClass(u.Class); err != nil {
			return fmt.Errorf("scenario %q: unit %d: %w", s.Name, i, err)
		}
		if f, ok := core.ParseFaction(u.Owner); !ok || f == core.FactionNone {
			return fmt.Errorf("scenario %q: unit %d: unknown owner %q", s.Name, i, u.Owner)
		}
		if err := claim(Position{u.X, u.Y}, "unit "+u.Class); err != nil {
			return err
		}
	}

	if s.Terrain == nil {
		return nil
	}
	for _, p := range s.Terrain.Obstacles {
		if err := claim(p, "obstacle"); err != nil {
			return err
		}
	}
	for _, p := range s.Terrain.LiveObstacles {
		if err := claim(p, "live obstacle"); err != nil {
			return err
		}
	}
	// markers need a cell of their own
	for _, p := range s.Terrain.Hazards {
		if err := claim(p, "hazard"); err != nil {
			return err
		}
	}
	for _, p := range s.Terrain.Resources {
		if err := claim(p, "resource node"); err != nil {
			return err
		}
	}
	return nil
}

// Apply places the scenario's units and fixed terrain on b. Units come back
// in file order.
func (s *Scenario) Apply(b *core.Board, hazardDamage, resourceValue int) ([]*core.Unit, error) {
	if err := s.validateOn(b.W, b.H); err != nil {
		return nil, err
	}

	units := make([]*core.Unit, 0, len(s.Units))
	for i, p := range s.Units {
		class, _ := core.ParseUnitClass(p.Class)
		owner, _ := core.ParseFaction(p.Owner)
		u := core.NewUnit(class, owner)
		if err := b.Place(u, core.NewCoordinate(p.X, p.Y)); err != nil {
			return nil, fmt.Errorf("scenario %q: unit %d: %w", s.Name, i, err)
		}
		units = append(units, u)
	}

	if s.Terrain == nil {
		return units, nil
	}
	place := func(e core.Entity, p Position) error {
		if err := b.Place(e, p.Coordinate()); err != nil {
			return fmt.Errorf("scenario %q: %s: %w", s.Name, e.Kind(), err)
		}
		return nil
	}
	for _, p := range s.Terrain.Obstacles {
		if err := place(core.NewObstacle(), p); err != nil {
			return nil, err
		}
	}
	for _, p := range s.Terrain.Hazards {
		if err := place(core.NewHazard(hazardDamage), p); err != nil {
			return nil, err
		}
	}
	for _, p := range s.Terrain.Resources {
		if err := place(core.NewResourceNode(resourceValue), p); err != nil {
			return nil, err
		}
	}
	for _, p := range s.Terrain.LiveObstacles {
		if err := place(core.NewLiveObstacle(), p); err != nil {
			return nil, err
		}
	}
	return units, nil
}
