package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseSetup - Board generation and unit placement
	PhaseSetup GamePhase = iota

	// PhasePlayerTurn - The player faction issues commands
	PhasePlayerTurn

	// PhaseAITurn - The learner drives the AI faction
	PhaseAITurn

	// PhaseEnded - A unit reached the opposing base
	PhaseEnded
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhasePlayerTurn:
		return "PlayerTurn"
	case PhaseAITurn:
		return "AITurn"
	case PhaseEnded:
		return "Ended"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded
}

// IsTurn reports whether a faction is acting in this phase
func (p GamePhase) IsTurn() bool {
	return p == PhasePlayerTurn || p == PhaseAITurn
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseSetup:
		return []GamePhase{PhasePlayerTurn}
	case PhasePlayerTurn:
		return []GamePhase{PhaseAITurn, PhaseEnded}
	case PhaseAITurn:
		return []GamePhase{PhasePlayerTurn, PhaseEnded}
	case PhaseEnded:
		return []GamePhase{PhaseSetup}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	for _, p := range []GamePhase{PhaseSetup, PhasePlayerTurn, PhaseAITurn, PhaseEnded} {
		if p.String() == s {
			return p, nil
		}
	}
	return PhaseSetup, fmt.Errorf("unknown game phase %q", s)
}
