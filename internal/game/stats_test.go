package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDamageResolveFormula(t *testing.T) {
	cases := []struct {
		name      string
		resolve   int
		base      int
		composure int
		want      int
	}{
		{"plain", 20, 10, 0, 10},
		{"composure bonus", 20, 5, 3, 8},
		{"capped at resolve", 6, 10, 2, 6},
		{"zero", 20, 0, 0, 0},
		{"already broken", 0, 5, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewCombatantStats(20, 3)
			s.Resolve = tc.resolve
			got := s.DamageResolve(tc.base, tc.composure)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, max(0, tc.resolve-(tc.base+tc.composure)), s.Resolve)
			assert.Equal(t, tc.resolve-s.Resolve, got)
		})
	}
}

func TestHostilityMultiplier(t *testing.T) {
	s := NewCombatantStats(40, 3)
	s.GainHostility(3)
	assert.InDelta(t, 2.5, s.HostilityMultiplier(), 1e-9)
	assert.Equal(t, 25, s.DamageResolveWithHostilityMultiplier(10))
	assert.Equal(t, 15, s.Resolve)

	// Capped at current Resolve.
	assert.Equal(t, 15, s.DamageResolveWithHostilityMultiplier(10))
	assert.Equal(t, 0, s.Resolve)
	assert.True(t, s.Defeated())
}

func TestHostilityRoundsHalfToEven(t *testing.T) {
	s := NewCombatantStats(40, 3)
	s.GainHostility(1)
	// 5 × 1.5 = 7.5 → 8, 3 × 1.5 = 4.5 → 4
	assert.Equal(t, 8, s.DamageResolveWithHostilityMultiplier(5))
	assert.Equal(t, 4, s.DamageResolveWithHostilityMultiplier(3))
}

func TestRestoreResolveCapped(t *testing.T) {
	s := NewCombatantStats(20, 3)
	s.DamageResolve(5, 0)
	assert.Equal(t, 3, s.RestoreResolve(3))
	assert.Equal(t, 2, s.RestoreResolve(10))
	assert.Equal(t, 20, s.Resolve)
	assert.Equal(t, 0, s.RestoreResolve(-4))
	assert.InDelta(t, 1.0, s.ResolvePercentage(), 1e-9)
}

func TestComposureAndHostilityFloors(t *testing.T) {
	s := NewCombatantStats(20, 3)
	s.GainComposure(4)
	s.LoseComposure(10)
	assert.Equal(t, 0, s.Composure)

	s.GainComposure(6)
	assert.Equal(t, 6, s.ConsumeAllComposure())
	assert.Equal(t, 0, s.Composure)

	s.GainHostility(2)
	s.ReduceHostility(5)
	assert.Equal(t, 0, s.Hostility)

	s.SetComposure(-3)
	assert.Equal(t, 0, s.Composure)
}

func TestActionPoints(t *testing.T) {
	s := NewCombatantStats(20, 3)
	require.True(t, s.SpendActionPoints(2))
	assert.Equal(t, 1, s.ActionPoints)

	// Failure leaves AP untouched.
	assert.False(t, s.SpendActionPoints(2))
	assert.Equal(t, 1, s.ActionPoints)

	s.GainActionPoints(2)
	assert.Equal(t, 3, s.ActionPoints)

	s.GainActionPointsNextTurn(2)
	assert.Equal(t, 3, s.ActionPoints, "banked AP is not usable this turn")

	s.RefreshActionPoints()
	assert.Equal(t, 5, s.ActionPoints)
	assert.Equal(t, 0, s.BankedActionPoints)

	// Banked AP is folded in exactly once.
	s.RefreshActionPoints()
	assert.Equal(t, 3, s.ActionPoints)
}
