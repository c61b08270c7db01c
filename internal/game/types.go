package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

// Side identifies one of the two combatants.
type Side int

const (
	SidePlayer Side = iota
	SideOpponent
)

func (s Side) String() string {
	if s == SideOpponent {
		return "Opponent"
	}
	return "Player"
}

// Other returns the opposing side.
func (s Side) Other() Side {
	return 1 - s
}

// Valid reports whether s names one of the two combatants.
func (s Side) Valid() bool {
	return s == SidePlayer || s == SideOpponent
}

// Phase is a battle state machine state.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseInitialize
	PhaseTurnStart
	PhasePlayerTurn
	PhaseOpponentTurn
	PhaseTurnEnd
	PhaseBattleEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialize:
		return "Initialize"
	case PhaseTurnStart:
		return "Turn Start"
	case PhasePlayerTurn:
		return "Player Turn"
	case PhaseOpponentTurn:
		return "Opponent Turn"
	case PhaseTurnEnd:
		return "Turn End"
	case PhaseBattleEnd:
		return "Battle End"
	default:
		return "None"
	}
}

// turnPhase returns the in-turn phase for the given side.
func turnPhase(s Side) Phase {
	if s == SideOpponent {
		return PhaseOpponentTurn
	}
	return PhasePlayerTurn
}

type CardType int

const (
	CardTypeDiplomacy CardType = iota
	CardTypeHostility
	CardTypeManipulate
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeDiplomacy:
		return "Diplomacy"
	case CardTypeHostility:
		return "Hostility"
	case CardTypeManipulate:
		return "Manipulate"
	default:
		return "Unknown"
	}
}

// Target selects which combatant an effect applies to, relative to the
// side that played the card.
type Target int

const (
	TargetSelf Target = iota
	TargetOpponent
	TargetAll
	TargetRandom
)

func (t Target) String() string {
	switch t {
	case TargetSelf:
		return "Self"
	case TargetOpponent:
		return "Opponent"
	case TargetAll:
		return "All"
	case TargetRandom:
		return "Random"
	default:
		return "Unknown"
	}
}

// DurationPolicy governs how a status effect decays at its holder's turn end.
type DurationPolicy int

const (
	DecreasePerTurn DurationPolicy = iota
	RemoveEndOfTurn
	Permanent
)

func (d DurationPolicy) String() string {
	switch d {
	case DecreasePerTurn:
		return "DecreasePerTurn"
	case RemoveEndOfTurn:
		return "RemoveEndOfTurn"
	case Permanent:
		return "Permanent"
	default:
		return "Unknown"
	}
}

// StatusType names a status effect. The first eight are debuffs.
type StatusType int

const (
	StatusWeakened StatusType = iota
	StatusVulnerable
	StatusFrail
	StatusEntangled
	StatusExposed
	StatusScandal
	StatusConfused
	StatusSilenced
	StatusStrength
	StatusDexterity
	StatusFocus
	StatusEnergized
	StatusPlated
	StatusRegeneration
	StatusIntangible
	StatusThorns
	StatusBlock
	StatusRitual
	StatusMomentum
	StatusEcho

	statusTypeCount
)

var statusNames = [statusTypeCount]string{
	"Weakened", "Vulnerable", "Frail", "Entangled", "Exposed", "Scandal",
	"Confused", "Silenced", "Strength", "Dexterity", "Focus", "Energized",
	"Plated", "Regeneration", "Intangible", "Thorns", "Block", "Ritual",
	"Momentum", "Echo",
}

func (st StatusType) String() string {
	if st < 0 || st >= statusTypeCount {
		return "Unknown"
	}
	return statusNames[st]
}

// IsDebuff reports whether the status is harmful to its holder.
func (st StatusType) IsDebuff() bool {
	return st >= StatusWeakened && st <= StatusSilenced
}

// ParseStatusType resolves a status name, case-insensitively.
func ParseStatusType(name string) (StatusType, error) {
	for i, n := range statusNames {
		if strings.EqualFold(n, name) {
			return StatusType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown status effect %q", name)
}

// --- Card types ---

// Cost is a card's Action Point cost. All means "spend every remaining AP".
type Cost struct {
	Amount int
	All    bool
}

func (c Cost) String() string {
	if c.All {
		return "X"
	}
	return fmt.Sprintf("%d", c.Amount)
}

// Card is an immutable card definition.
type Card struct {
	Name        string
	Type        CardType
	Cost        Cost
	Description string
	Effects     []Effect
}

// CardInstance is one physical copy of a card inside a battle.
type CardInstance struct {
	ID    int
	Card  *Card
	Owner Side
}

func (ci *CardInstance) String() string {
	if ci == nil || ci.Card == nil {
		return "<nil>"
	}
	return ci.Card.Name
}

// --- Zone types ---

type ZoneType int

const (
	ZoneDeck ZoneType = iota
	ZoneHand
	ZoneDiscard
	ZoneExhaust
)

func (z ZoneType) String() string {
	switch z {
	case ZoneDeck:
		return "Deck"
	case ZoneHand:
		return "Hand"
	case ZoneDiscard:
		return "Discard"
	case ZoneExhaust:
		return "Exhaust"
	default:
		return "Unknown"
	}
}

// --- Action types ---

type ActionType int

const (
	ActionPlayCard ActionType = iota
	ActionEndTurn
)

func (a ActionType) String() string {
	switch a {
	case ActionPlayCard:
		return "Play Card"
	case ActionEndTurn:
		return "End Turn"
	default:
		return "Unknown"
	}
}

// Action is one legal command for the active side.
type Action struct {
	Type      ActionType
	Side      Side
	HandIndex int           // ActionPlayCard only
	Card      *CardInstance // ActionPlayCard only
	Cost      int           // effective AP cost at the time the action was offered
	Desc      string
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}
