package game

import "fmt"

// Effect is one declarative step of a card. The set of variants is closed:
// Damage, ResourceChange, CardManipulation and StatusApplication.
type Effect interface {
	EffectTarget() Target
	String() string
	isEffect()
}

// DamageKind selects how a Damage effect computes its base amount.
type DamageKind int

const (
	DamageFixed            DamageKind = iota
	DamageRandom                      // uniform in [Min, Max]
	DamageEqualToComposure            // attacker's current Composure
)

func (k DamageKind) String() string {
	switch k {
	case DamageFixed:
		return "Fixed"
	case DamageRandom:
		return "Random"
	case DamageEqualToComposure:
		return "EqualToComposure"
	default:
		return "Unknown"
	}
}

// Damage reduces the target's Resolve.
type Damage struct {
	Target Target
	Kind   DamageKind
	Amount int
	Min    int
	Max    int
}

func (e Damage) EffectTarget() Target { return e.Target }
func (Damage) isEffect()              {}

func (e Damage) String() string {
	switch e.Kind {
	case DamageRandom:
		return fmt.Sprintf("Deal %d-%d damage (%s)", e.Min, e.Max, e.Target)
	case DamageEqualToComposure:
		return fmt.Sprintf("Deal damage equal to Composure (%s)", e.Target)
	default:
		return fmt.Sprintf("Deal %d damage (%s)", e.Amount, e.Target)
	}
}

// ResourceKind selects which resource a ResourceChange touches.
type ResourceKind int

const (
	ResourceHealResolve ResourceKind = iota
	ResourceGainComposure
	ResourceLoseComposure
	ResourceConsumeAllComposure
	ResourceComposureEqualToHostility
	ResourceGainHostility
	ResourceReduceHostility
	ResourceGainActionPoints
	ResourceGainActionPointsNextTurn
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceHealResolve:
		return "HealResolve"
	case ResourceGainComposure:
		return "GainComposure"
	case ResourceLoseComposure:
		return "LoseComposure"
	case ResourceConsumeAllComposure:
		return "ConsumeAllComposure"
	case ResourceComposureEqualToHostility:
		return "ComposureEqualToHostility"
	case ResourceGainHostility:
		return "GainHostility"
	case ResourceReduceHostility:
		return "ReduceHostility"
	case ResourceGainActionPoints:
		return "GainActionPoints"
	case ResourceGainActionPointsNextTurn:
		return "GainActionPointsNextTurn"
	default:
		return "Unknown"
	}
}

// ResourceChange adjusts Resolve, Composure, Hostility or Action Points.
type ResourceChange struct {
	Target Target
	Kind   ResourceKind
	Amount int
}

func (e ResourceChange) EffectTarget() Target { return e.Target }
func (ResourceChange) isEffect()              {}

func (e ResourceChange) String() string {
	switch e.Kind {
	case ResourceConsumeAllComposure, ResourceComposureEqualToHostility:
		return fmt.Sprintf("%s (%s)", e.Kind, e.Target)
	default:
		return fmt.Sprintf("%s %d (%s)", e.Kind, e.Amount, e.Target)
	}
}

// ManipulationKind selects a CardManipulation operation.
type ManipulationKind int

const (
	ManipulateDraw ManipulationKind = iota
	ManipulateDiscard
	ManipulateExhaustSelf
)

func (k ManipulationKind) String() string {
	switch k {
	case ManipulateDraw:
		return "Draw"
	case ManipulateDiscard:
		return "Discard"
	case ManipulateExhaustSelf:
		return "ExhaustSelf"
	default:
		return "Unknown"
	}
}

// CardManipulation moves cards between zones.
type CardManipulation struct {
	Target Target
	Kind   ManipulationKind
	Amount int
}

func (e CardManipulation) EffectTarget() Target { return e.Target }
func (CardManipulation) isEffect()              {}

func (e CardManipulation) String() string {
	if e.Kind == ManipulateExhaustSelf {
		return "Exhaust this card"
	}
	return fmt.Sprintf("%s %d (%s)", e.Kind, e.Amount, e.Target)
}

// StatusApplication adds stacks of a status effect.
type StatusApplication struct {
	Target   Target
	Status   StatusType
	Stacks   int
	Duration DurationPolicy
}

func (e StatusApplication) EffectTarget() Target { return e.Target }
func (StatusApplication) isEffect()              {}

func (e StatusApplication) String() string {
	return fmt.Sprintf("Apply %d %s [%s] (%s)", e.Stacks, e.Status, e.Duration, e.Target)
}
