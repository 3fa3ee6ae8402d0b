package game

import (
	"strings"

	"github.com/mitchelldurbincs/NebulaDominion/internal/common"
	"github.com/mitchelldurbincs/NebulaDominion/internal/game/core"
)

// Map symbols. Units use their class glyph, upper case for the player and
// lower case for the AI.
const (
	EmptySymbol        = '.'
	BaseSymbol         = '+'
	ReachableSymbol    = '*'
	ObstacleSymbol     = '#'
	LiveObstacleSymbol = '@'
	HazardSymbol       = '^'
	ResourceSymbol     = '$'
)

// Render draws the board as text with a coordinate header, a legend and a
// status line. colored adds ANSI faction colors.
func (e *Engine) Render(colored bool) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := e.gs.Board
	var sb strings.Builder
	sb.Grow((b.W*3+4)*(b.H+4) + 128)

	sb.WriteString("   ")
	for x := 0; x < b.W; x++ {
		sb.WriteString(common.IntToStringFixedWidth(x, 2))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')

	for y := 0; y < b.H; y++ {
		sb.WriteString(common.IntToStringFixedWidth(y, 2))
		sb.WriteByte(' ')
		for x := 0; x < b.W; x++ {
			symbol, color := e.cellDisplay(core.NewCoordinate(x, y))
			sb.WriteByte(' ')
			if colored && color != "" {
				sb.WriteString(common.Colorize(color, string(symbol)))
			} else {
				sb.WriteByte(symbol)
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("\n#=wall @=live obstacle ^=hazard $=resource +=base *=reachable C/M/D/R=units (ai lower case)\n")

	sb.WriteString("Turn ")
	sb.WriteString(common.IntToStringFixedWidth(e.gs.Turn, 1))
	sb.WriteString(" | ")
	sb.WriteString(e.gs.Current.Label())
	sb.WriteString(" | resources P:")
	sb.WriteString(common.IntToStringFixedWidth(e.gs.Resources(core.FactionPlayer), 1))
	sb.WriteString(" A:")
	sb.WriteString(common.IntToStringFixedWidth(e.gs.Resources(core.FactionAI), 1))
	if e.gameOver {
		sb.WriteString(" | winner: ")
		sb.WriteString(e.winner.Label())
	}
	sb.WriteByte('\n')
	return sb.String()
}

// cellDisplay picks the symbol and color of one cell. Occupants hide the
// marker underneath them.
func (e *Engine) cellDisplay(c core.Coordinate) (byte, string) {
	b := e.gs.Board
	if u := b.UnitAt(c); u != nil {
		g := u.Class.Glyph()
		if u.Owner == core.FactionAI {
			g = g - 'A' + 'a'
		}
		return g, common.FactionColor(u.Owner)
	}
	switch _, kind := b.OccupantAt(c); kind {
	case core.KindObstacle:
		return ObstacleSymbol, common.ColorGray
	case core.KindLiveObstacle:
		return LiveObstacleSymbol, common.ColorPurple
	}
	if b.HazardAt(c) != nil {
		return HazardSymbol, common.ColorYellow
	}
	if r := b.ResourceAt(c); r != nil {
		if r.Owner == core.FactionNone {
			return ResourceSymbol, common.ColorGreen
		}
		return ResourceSymbol, common.FactionColor(r.Owner)
	}
	if e.gs.Selected != core.NoEntity && b.ReachableFor() == e.gs.Selected && b.IsReachable(c) {
		return ReachableSymbol, common.ColorCyan
	}
	if c == e.winCondition.Base(core.FactionPlayer) || c == e.winCondition.Base(core.FactionAI) {
		return BaseSymbol, common.ColorGray
	}
	return EmptySymbol, ""
}
