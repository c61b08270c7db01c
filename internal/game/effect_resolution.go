package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/parley/internal/log"
)

// resolveCard applies every effect of card, in declaration order, on behalf
// of caster. Each effect sees the state left by the previous one.
func (b *Battle) resolveCard(caster Side, card *CardInstance) {
	for i, eff := range card.Card.Effects {
		if eff == nil {
			b.skipEffect(caster, card, fmt.Sprintf("effect %d is empty", i))
			continue
		}
		b.resolveEffect(caster, card, eff)
	}
}

func (b *Battle) resolveEffect(caster Side, card *CardInstance, eff Effect) {
	sides, ok := b.selectTargets(caster, eff.EffectTarget())
	if !ok {
		b.skipEffect(caster, card, fmt.Sprintf("unknown target %d", eff.EffectTarget()))
		return
	}

	switch e := eff.(type) {
	case Damage:
		b.resolveDamage(caster, sides, card, e)
	case ResourceChange:
		for _, s := range sides {
			b.resolveResourceChange(caster, s, card, e)
		}
	case CardManipulation:
		b.resolveCardManipulation(caster, sides, card, e)
	case StatusApplication:
		for _, s := range sides {
			b.resolveStatusApplication(caster, s, card, e)
		}
	default:
		b.skipEffect(caster, card, fmt.Sprintf("unknown effect %T", eff))
	}
}

// selectTargets maps a target selector to concrete sides. Random picks one
// side uniformly, once per effect.
func (b *Battle) selectTargets(caster Side, t Target) ([]Side, bool) {
	switch t {
	case TargetSelf:
		return []Side{caster}, true
	case TargetOpponent:
		return []Side{caster.Other()}, true
	case TargetAll:
		return []Side{caster, caster.Other()}, true
	case TargetRandom:
		return []Side{Side(b.rng.Intn(2))}, true
	default:
		return nil, false
	}
}

func (b *Battle) skipEffect(caster Side, card *CardInstance, reason string) {
	b.diag.Warn("effect skipped", zap.Stringer("side", caster), zap.String("card", card.Card.Name), zap.String("reason", reason))
	b.emit(log.NewEffectSkippedEvent(b.Turn, b.Phase.String(), int(caster), card.Card.Name, reason))
}

// resolveDamage runs the damage pipeline: base amount by kind, attacker
// status modifiers (once per effect, so a one-shot Exposed doubles every
// target), defender status modifiers, then the attacker's Composure bonus or
// the defender's Hostility multiplier, then Thorns reflection.
func (b *Battle) resolveDamage(attacker Side, defenders []Side, card *CardInstance, e Damage) {
	atk := b.Combatants[attacker]

	var base int
	bonus := atk.Stats.Composure
	switch e.Kind {
	case DamageFixed:
		base = e.Amount
	case DamageRandom:
		lo, hi := e.Min, e.Max
		if hi < lo {
			lo, hi = hi, lo
		}
		span := hi - lo + 1
		if span <= 0 {
			b.skipEffect(attacker, card, fmt.Sprintf("random damage range %d-%d is too wide", lo, hi))
			return
		}
		base = lo + b.rng.Intn(span)
	case DamageEqualToComposure:
		base = atk.Stats.Composure
		bonus = 0
	default:
		b.skipEffect(attacker, card, fmt.Sprintf("unknown damage kind %d", e.Kind))
		return
	}

	b.track(func() {
		dealt := atk.Status.ModifyDamageDealt(base)
		for _, defender := range defenders {
			def := b.Combatants[defender]
			taken := def.Status.ModifyDamageTaken(dealt)
			var actual int
			switch {
			case taken.Intangible:
				actual = def.Stats.DamageResolve(taken.Amount, 0)
			case def.Stats.Hostility > 0:
				actual = def.Stats.DamageResolveWithHostilityMultiplier(taken.Amount + bonus)
			default:
				actual = def.Stats.DamageResolve(taken.Amount, bonus)
			}
			b.diag.Debug("damage",
				zap.Stringer("attacker", attacker), zap.Stringer("defender", defender),
				zap.Int("base", base), zap.Int("bonus", bonus), zap.Int("dealt", dealt),
				zap.Int("taken", taken.Amount), zap.Int("actual", actual))
			if taken.Thorns > 0 && attacker != defender {
				atk.Stats.DamageResolve(taken.Thorns, 0)
			}
		}
	})
}

func (b *Battle) resolveResourceChange(caster, target Side, card *CardInstance, e ResourceChange) {
	c := b.Combatants[target]
	var apply func()
	switch e.Kind {
	case ResourceHealResolve:
		apply = func() { c.Stats.RestoreResolve(e.Amount) }
	case ResourceGainComposure:
		apply = func() { c.Stats.GainComposure(c.Status.ModifyComposureGained(e.Amount)) }
	case ResourceLoseComposure:
		apply = func() { c.Stats.LoseComposure(e.Amount) }
	case ResourceConsumeAllComposure:
		apply = func() { c.Stats.ConsumeAllComposure() }
	case ResourceComposureEqualToHostility:
		apply = func() { c.Stats.SetComposure(c.Stats.Hostility) }
	case ResourceGainHostility:
		apply = func() { c.Stats.GainHostility(e.Amount) }
	case ResourceReduceHostility:
		apply = func() { c.Stats.ReduceHostility(e.Amount) }
	case ResourceGainActionPoints:
		apply = func() { c.Stats.GainActionPoints(e.Amount) }
	case ResourceGainActionPointsNextTurn:
		apply = func() { c.Stats.GainActionPointsNextTurn(e.Amount) }
	default:
		b.skipEffect(caster, card, fmt.Sprintf("unknown resource kind %d", e.Kind))
		return
	}
	b.track(apply)
}

func (b *Battle) resolveCardManipulation(caster Side, targets []Side, card *CardInstance, e CardManipulation) {
	switch e.Kind {
	case ManipulateDraw:
		for _, s := range targets {
			b.draw(s, e.Amount)
		}
	case ManipulateDiscard:
		for _, s := range targets {
			b.discardRandom(s, e.Amount)
		}
	case ManipulateExhaustSelf:
		owner := b.Combatants[card.Owner]
		if owner.Zones.ExhaustCard(card) {
			b.emit(log.NewCardExhaustedEvent(b.Turn, b.Phase.String(), int(card.Owner), card.Card.Name))
		}
	default:
		b.skipEffect(caster, card, fmt.Sprintf("unknown card manipulation %d", e.Kind))
	}
}

func (b *Battle) discardRandom(side Side, n int) {
	z := b.Combatants[side].Zones
	for i := 0; i < n; i++ {
		card := z.RandomHandCard()
		if card == nil {
			return
		}
		z.DiscardCard(card)
		b.emit(log.NewCardDiscardedEvent(b.Turn, b.Phase.String(), int(side), card.Card.Name, "effect"))
	}
}

func (b *Battle) resolveStatusApplication(caster, target Side, card *CardInstance, e StatusApplication) {
	if e.Status < 0 || e.Status >= statusTypeCount {
		b.skipEffect(caster, card, fmt.Sprintf("unknown status %d", e.Status))
		return
	}
	if e.Duration < DecreasePerTurn || e.Duration > Permanent {
		b.skipEffect(caster, card, fmt.Sprintf("unknown duration policy %d", e.Duration))
		return
	}
	if e.Stacks <= 0 {
		return
	}
	b.Combatants[target].Status.Apply(e.Status, e.Stacks, e.Duration)
	b.emit(log.NewStatusAppliedEvent(b.Turn, b.Phase.String(), int(target), e.Status.String(), e.Stacks))
}
