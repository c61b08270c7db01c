package game

// StatusEffect is one active status record. At most one record exists per
// type and Stacks is always positive.
type StatusEffect struct {
	Type     StatusType
	Stacks   int
	Duration DurationPolicy
}

// StatusTrigger records a turn-boundary trigger that fired.
type StatusTrigger struct {
	Status StatusType
	Amount int // damage dealt, Resolve healed or Composure gained
}

// DamageTaken is the result of composing incoming damage with the
// defender's statuses.
type DamageTaken struct {
	Amount     int
	Thorns     int  // damage to reflect onto the attacker
	Intangible bool // an Intangible stack was consumed
}

// StatusEngine holds the active status effects of one combatant. Records
// keep application order so triggers fire deterministically.
type StatusEngine struct {
	effects []*StatusEffect
}

func NewStatusEngine() *StatusEngine {
	return &StatusEngine{}
}

// Apply adds stacks to an existing record, keeping its duration policy, or
// creates a new record. Non-positive stacks are ignored.
func (e *StatusEngine) Apply(t StatusType, stacks int, duration DurationPolicy) {
	if stacks <= 0 {
		return
	}
	if existing := e.find(t); existing != nil {
		existing.Stacks += stacks
		return
	}
	e.effects = append(e.effects, &StatusEffect{Type: t, Stacks: stacks, Duration: duration})
}

// Remove deletes the record for t. Returns false if it was absent.
func (e *StatusEngine) Remove(t StatusType) bool {
	for i, se := range e.effects {
		if se.Type == t {
			e.effects = append(e.effects[:i], e.effects[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveStacks takes n stacks off t, deleting the record when it reaches
// zero. Returns true if the record was deleted.
func (e *StatusEngine) RemoveStacks(t StatusType, n int) bool {
	se := e.find(t)
	if se == nil || n <= 0 {
		return false
	}
	se.Stacks -= n
	if se.Stacks <= 0 {
		e.Remove(t)
		return true
	}
	return false
}

// Clear removes every status.
func (e *StatusEngine) Clear() {
	e.effects = nil
}

// Stacks returns the stack count of t, or 0 when absent.
func (e *StatusEngine) Stacks(t StatusType) int {
	if se := e.find(t); se != nil {
		return se.Stacks
	}
	return 0
}

func (e *StatusEngine) Has(t StatusType) bool {
	return e.find(t) != nil
}

// Effects returns a copy of the active records in application order.
func (e *StatusEngine) Effects() []StatusEffect {
	out := make([]StatusEffect, 0, len(e.effects))
	for _, se := range e.effects {
		out = append(out, *se)
	}
	return out
}

func (e *StatusEngine) Debuffs() []StatusEffect {
	var out []StatusEffect
	for _, se := range e.effects {
		if se.Type.IsDebuff() {
			out = append(out, *se)
		}
	}
	return out
}

func (e *StatusEngine) Buffs() []StatusEffect {
	var out []StatusEffect
	for _, se := range e.effects {
		if !se.Type.IsDebuff() {
			out = append(out, *se)
		}
	}
	return out
}

func (e *StatusEngine) find(t StatusType) *StatusEffect {
	for _, se := range e.effects {
		if se.Type == t {
			return se
		}
	}
	return nil
}

// --- Turn boundaries ---

// TurnStart fires turn-start triggers (Ritual) against the holder's stats.
func (e *StatusEngine) TurnStart(owner *CombatantStats) []StatusTrigger {
	var fired []StatusTrigger
	for _, se := range e.effects {
		if se.Type == StatusRitual {
			owner.GainComposure(se.Stacks)
			fired = append(fired, StatusTrigger{Status: se.Type, Amount: se.Stacks})
		}
	}
	return fired
}

// TurnEnd fires turn-end triggers (Scandal, Regeneration) and then decays
// every record by its duration policy. Returns the triggers that fired and
// the statuses that expired.
func (e *StatusEngine) TurnEnd(owner *CombatantStats) ([]StatusTrigger, []StatusType) {
	var fired []StatusTrigger
	for _, se := range e.effects {
		switch se.Type {
		case StatusScandal:
			fired = append(fired, StatusTrigger{Status: se.Type, Amount: owner.DamageResolve(se.Stacks, 0)})
		case StatusRegeneration:
			fired = append(fired, StatusTrigger{Status: se.Type, Amount: owner.RestoreResolve(se.Stacks)})
		}
	}
	return fired, e.Decay()
}

// Decay applies one turn-end tick of duration policies and returns the
// statuses that were removed.
func (e *StatusEngine) Decay() []StatusType {
	var expired []StatusType
	kept := e.effects[:0]
	for _, se := range e.effects {
		switch se.Duration {
		case RemoveEndOfTurn:
			expired = append(expired, se.Type)
			continue
		case DecreasePerTurn:
			se.Stacks--
			if se.Stacks <= 0 {
				expired = append(expired, se.Type)
				continue
			}
		}
		kept = append(kept, se)
	}
	for i := len(kept); i < len(e.effects); i++ {
		e.effects[i] = nil
	}
	e.effects = kept
	return expired
}

// --- Modifier composition ---

// ModifyDamageDealt applies the attacker's Strength and Weakened, then
// doubles for Exposed and consumes it.
func (e *StatusEngine) ModifyDamageDealt(base int) int {
	dmg := base + e.Stacks(StatusStrength) - e.Stacks(StatusWeakened)
	if e.Has(StatusExposed) {
		dmg *= 2
		e.Remove(StatusExposed)
	}
	return max(0, dmg)
}

// ModifyDamageTaken applies the defender's Vulnerable, Plated and
// Intangible, and reports Thorns for reflection.
func (e *StatusEngine) ModifyDamageTaken(base int) DamageTaken {
	dmg := float64(base)
	if e.Has(StatusVulnerable) {
		dmg *= 1.5
	}
	dmg -= float64(e.Stacks(StatusPlated))

	var res DamageTaken
	if e.Has(StatusIntangible) {
		dmg = 1
		e.RemoveStacks(StatusIntangible, 1)
		res.Intangible = true
	}
	res.Amount = roundHalfEven(dmg)
	res.Thorns = e.Stacks(StatusThorns)
	return res
}

// ModifyComposureGained applies Dexterity then Frail.
func (e *StatusEngine) ModifyComposureGained(base int) int {
	c := float64(base + e.Stacks(StatusDexterity))
	if e.Has(StatusFrail) {
		c *= 0.75
	}
	return roundHalfEven(c)
}

// ModifyCardCost applies Focus and Entangled, floored at 0.
func (e *StatusEngine) ModifyCardCost(base int) int {
	cost := base - e.Stacks(StatusFocus)
	if e.Has(StatusEntangled) {
		cost++
	}
	return max(0, cost)
}
