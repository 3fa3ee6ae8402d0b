package game

import (
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// PlayRandomPlayerTurn drives every idle player unit once through the public
// command surface and ends the turn. Each unit attacks an enemy in range
// when it can, otherwise moves to a reachable cell: the one closest to the
// AI base with probability greedy, a random one otherwise.
// This is a helper intended for demos, testing, or simple baseline agents.
// Returns the number of accepted commands, the end turn included.
func PlayRandomPlayerTurn(g *Engine, rng *rand.Rand, greedy float64) int {
	accepted := 0
	target := g.winCondition.Base(core.FactionAI)

	for _, u := range g.Idle() {
		if g.IsGameOver() || !g.Select(u.X, u.Y) {
			continue
		}

		if targets := g.Targets(); len(targets) > 0 && g.Act(targets[0].X, targets[0].Y) {
			enemy := targets[0]
			accepted++
			log.Debug().
				Int("unit_id", int(u.ID)).
				Int("target_x", enemy.X).Int("target_y", enemy.Y).
				Msg("Baseline policy attacked")
			continue
		}

		cells := g.Reachable()
		if len(cells) == 0 {
			continue
		}
		dest := cells[rng.Intn(len(cells))]
		if rng.Float64() < greedy {
			for _, c := range cells {
				if c.DistanceTo(target) < dest.DistanceTo(target) {
					dest = c
				}
			}
		}
		if g.Act(dest.X, dest.Y) {
			accepted++
			log.Debug().
				Int("unit_id", int(u.ID)).
				Int("from_x", u.X).Int("from_y", u.Y).
				Int("to_x", dest.X).Int("to_y", dest.Y).
				Msg("Baseline policy moved")
		}
	}

	if g.EndTurn() {
		accepted++
	}
	return accepted
}
