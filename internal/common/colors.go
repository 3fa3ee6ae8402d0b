package common

import "github.com/mitchelldurbincs/NebulaDominion/internal/game/core"

// ANSI color codes for terminal rendering
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

var factionColors = map[core.Faction]string{
	core.FactionPlayer: ColorBlue,
	core.FactionAI:     ColorRed,
}

// FactionColor returns the terminal color for a faction, gray for none
func FactionColor(f core.Faction) string {
	if c, ok := factionColors[f]; ok {
		return c
	}
	return ColorGray
}

// Colorize wraps s in color and a reset
func Colorize(color, s string) string {
	return color + s + ColorReset
}
