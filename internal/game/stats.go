package game

import "math"

// HostilityStep is the extra incoming-damage multiplier per Hostility stack.
const HostilityStep = 0.5

// CombatantStats holds one combatant's numeric resources. All mutators clamp,
// so no sequence of calls can drive a counter negative or Resolve above max.
type CombatantStats struct {
	Resolve            int
	MaxResolve         int
	Composure          int
	Hostility          int
	ActionPoints       int
	MaxActionPoints    int
	BankedActionPoints int // granted next turn, folded in by RefreshActionPoints
}

// NewCombatantStats creates stats at full Resolve and full Action Points.
func NewCombatantStats(maxResolve, maxActionPoints int) *CombatantStats {
	if maxResolve < 1 {
		maxResolve = 1
	}
	if maxActionPoints < 0 {
		maxActionPoints = 0
	}
	return &CombatantStats{
		Resolve:         maxResolve,
		MaxResolve:      maxResolve,
		ActionPoints:    maxActionPoints,
		MaxActionPoints: maxActionPoints,
	}
}

// Clone returns an independent copy.
func (s *CombatantStats) Clone() *CombatantStats {
	c := *s
	return &c
}

// DamageResolve deals base+attackerComposure damage, capped at current
// Resolve. Returns the damage actually dealt.
func (s *CombatantStats) DamageResolve(base, attackerComposure int) int {
	total := base + attackerComposure
	if total <= 0 {
		return 0
	}
	actual := min(total, s.Resolve)
	s.Resolve -= actual
	return actual
}

// HostilityMultiplier returns 1 + Hostility*0.5.
func (s *CombatantStats) HostilityMultiplier() float64 {
	return 1 + float64(s.Hostility)*HostilityStep
}

// DamageResolveWithHostilityMultiplier deals base damage scaled by this
// combatant's own Hostility, rounded half-to-even and capped at Resolve.
func (s *CombatantStats) DamageResolveWithHostilityMultiplier(base int) int {
	if base <= 0 {
		return 0
	}
	scaled := roundHalfEven(float64(base) * s.HostilityMultiplier())
	actual := min(scaled, s.Resolve)
	s.Resolve -= actual
	return actual
}

// RestoreResolve heals up to MaxResolve and returns the amount healed.
func (s *CombatantStats) RestoreResolve(amount int) int {
	if amount <= 0 {
		return 0
	}
	healed := min(amount, s.MaxResolve-s.Resolve)
	s.Resolve += healed
	return healed
}

// ResolvePercentage returns current Resolve as a fraction of max.
func (s *CombatantStats) ResolvePercentage() float64 {
	if s.MaxResolve == 0 {
		return 0
	}
	return float64(s.Resolve) / float64(s.MaxResolve)
}

func (s *CombatantStats) GainComposure(amount int) {
	if amount > 0 {
		s.Composure += amount
	}
}

func (s *CombatantStats) LoseComposure(amount int) {
	if amount > 0 {
		s.Composure = max(0, s.Composure-amount)
	}
}

// ConsumeAllComposure zeroes Composure and returns how much was consumed.
func (s *CombatantStats) ConsumeAllComposure() int {
	consumed := s.Composure
	s.Composure = 0
	return consumed
}

// SetComposure overwrites Composure, floored at 0.
func (s *CombatantStats) SetComposure(value int) {
	s.Composure = max(0, value)
}

func (s *CombatantStats) GainHostility(amount int) {
	if amount > 0 {
		s.Hostility += amount
	}
}

func (s *CombatantStats) ReduceHostility(amount int) {
	if amount > 0 {
		s.Hostility = max(0, s.Hostility-amount)
	}
}

// SpendActionPoints deducts cost if affordable. Nothing changes on failure.
func (s *CombatantStats) SpendActionPoints(cost int) bool {
	if cost < 0 || cost > s.ActionPoints {
		return false
	}
	s.ActionPoints -= cost
	return true
}

// GainActionPoints adds AP for the current turn.
func (s *CombatantStats) GainActionPoints(amount int) {
	if amount > 0 {
		s.ActionPoints += amount
	}
}

// GainActionPointsNextTurn banks AP for the next RefreshActionPoints.
func (s *CombatantStats) GainActionPointsNextTurn(amount int) {
	if amount > 0 {
		s.BankedActionPoints += amount
	}
}

// RefreshActionPoints resets AP to max plus any banked amount, then clears
// the bank.
func (s *CombatantStats) RefreshActionPoints() {
	s.ActionPoints = s.MaxActionPoints + s.BankedActionPoints
	s.BankedActionPoints = 0
}

// Defeated reports whether Resolve has reached zero.
func (s *CombatantStats) Defeated() bool {
	return s.Resolve <= 0
}

// roundHalfEven rounds to the nearest int, ties to even, floored at 0.
func roundHalfEven(x float64) int {
	r := int(math.RoundToEven(x))
	if r < 0 {
		return 0
	}
	return r
}
