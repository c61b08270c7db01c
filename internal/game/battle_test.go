package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/parley/internal/log"
)

func TestStartDealsHandsAndOpensFirstTurn(t *testing.T) {
	b, logger := startedBattle(t, makePaddedDeck(nil, 20), makePaddedDeck(nil, 20))

	assert.Equal(t, 1, b.Turn)
	assert.Equal(t, PhasePlayerTurn, b.Phase)
	assert.Equal(t, SidePlayer, b.Active)
	assert.Len(t, b.Combatant(SidePlayer).Zones.Hand, 6, "starting hand plus the turn draw")
	assert.Len(t, b.Combatant(SideOpponent).Zones.Hand, 5)

	require.NotEmpty(t, logger.Events())
	assert.Equal(t, log.EventBattleStarted, logger.Events()[0].Type)
	started := logger.EventsOfType(log.EventTurnStarted)
	require.Len(t, started, 1)
	assert.Equal(t, 1, started[0].Turn)
	assert.Equal(t, int(SidePlayer), started[0].Player)
	assert.Len(t, logger.EventsOfType(log.EventCardDrawn), 11)
	assert.Empty(t, logger.EventsOfType(log.EventDeckShuffled), "NoShuffle skips the initial shuffle")

	assert.ErrorIs(t, b.Start(), ErrAlreadyStarted)
}

func TestFirstSideOpponent(t *testing.T) {
	b, _ := startedBattle(t, makePaddedDeck(nil, 20), makePaddedDeck(nil, 20), func(c *BattleConfig) {
		c.FirstSide = SideOpponent
	})
	assert.Equal(t, PhaseOpponentTurn, b.Phase)
	assert.Equal(t, SideOpponent, b.Active)
}

func TestFixedDamageScenario(t *testing.T) {
	strike := fixedDamageCard("Strike", 1, 10)
	b, logger := startedBattle(t, makePaddedDeck([]*Card{strike}, 20), makePaddedDeck(nil, 20))
	logger.Reset()

	require.NoError(t, b.RequestPlayCard(SidePlayer, handIndex(t, b, SidePlayer, "Strike")))

	assert.Equal(t, 10, b.Combatant(SideOpponent).Stats.Resolve)
	assert.Equal(t, 0, b.Combatant(SidePlayer).Stats.Composure)

	changes := logger.EventsOfType(log.EventResolveChanged)
	require.Len(t, changes, 1)
	assert.Equal(t, int(SideOpponent), changes[0].Player)
	assert.Equal(t, 20, changes[0].Old)
	assert.Equal(t, 10, changes[0].New)

	played := logger.EventsOfType(log.EventCardPlayed)
	require.Len(t, played, 1)
	assert.Equal(t, "Strike", played[0].Card)

	ap := logger.EventsOfType(log.EventActionPointsChanged)
	require.Len(t, ap, 1)
	assert.Equal(t, 3, ap[0].Old)
	assert.Equal(t, 2, ap[0].New)

	// The played card lands in the discard pile.
	require.Len(t, b.Combatant(SidePlayer).Zones.Discard, 1)
	assert.Equal(t, "Strike", b.Combatant(SidePlayer).Zones.Discard[0].Card.Name)
}

func TestDamageEqualToComposureScenario(t *testing.T) {
	focus := effectCard("Focus Up", 1, ResourceChange{Target: TargetSelf, Kind: ResourceGainComposure, Amount: 4})
	blessing := effectCard("Blessing", 1, Damage{Target: TargetOpponent, Kind: DamageEqualToComposure})
	b, _ := startedBattle(t, makePaddedDeck([]*Card{focus, blessing}, 20), makePaddedDeck(nil, 20))

	require.NoError(t, b.RequestPlayCard(SidePlayer, handIndex(t, b, SidePlayer, "Focus Up")))
	assert.Equal(t, 4, b.Combatant(SidePlayer).Stats.Composure)

	require.NoError(t, b.RequestPlayCard(SidePlayer, handIndex(t, b, SidePlayer, "Blessing")))
	assert.Equal(t, 16, b.Combatant(SideOpponent).Stats.Resolve, "no separate Composure bonus")
}

func TestTurnDrawReclaimsDiscard(t *testing.T) {
	// Five cards, four drawn at start and one on turn 1: deck is empty.
	b, logger := startedBattle(t, makePaddedDeck(nil, 5), makePaddedDeck(nil, 20), func(c *BattleConfig) {
		c.StartingHandSize = 4
	})
	a := b.Combatant(SidePlayer)
	require.Empty(t, a.Zones.Deck)
	require.Len(t, a.Zones.Hand, 5)

	require.NoError(t, b.RequestEndTurn(SidePlayer))
	require.Len(t, a.Zones.Discard, 5)
	require.Empty(t, a.Zones.Hand)

	logger.Reset()
	require.NoError(t, b.RequestEndTurn(SideOpponent))

	// Turn 3: the draw reclaims and shuffles the five discards first.
	assert.Equal(t, 3, b.Turn)
	assert.Len(t, a.Zones.Hand, 1)
	assert.Len(t, a.Zones.Deck, 4)
	assert.Empty(t, a.Zones.Discard)
	shuffles := logger.EventsOfType(log.EventDeckShuffled)
	require.Len(t, shuffles, 1)
	assert.Equal(t, int(SidePlayer), shuffles[0].Player)
}

func TestVictoryCheckedAtTurnEnd(t *testing.T) {
	finisher := fixedDamageCard("Finisher", 1, 25)
	b, logger := startedBattle(t, makePaddedDeck([]*Card{finisher}, 20), makePaddedDeck(nil, 20))

	require.NoError(t, b.RequestPlayCard(SidePlayer, handIndex(t, b, SidePlayer, "Finisher")))
	assert.Equal(t, 0, b.Combatant(SideOpponent).Stats.Resolve)
	assert.False(t, b.Over(), "defeat is only checked at TurnEnd")
	assert.Equal(t, PhasePlayerTurn, b.Phase)

	require.NoError(t, b.RequestEndTurn(SidePlayer))
	require.True(t, b.Over())
	require.NotNil(t, b.Result)
	assert.True(t, b.Result.Victory)
	assert.True(t, b.Result.Decided)
	assert.Equal(t, SidePlayer, b.Result.Winner)
	assert.Equal(t, 1, b.Result.Turns)
	assert.Equal(t, 20, b.Result.FinalResolve)

	ended := logger.EventsOfType(log.EventBattleEnded)
	require.Len(t, ended, 1)
	assert.True(t, ended[0].Victory)
	assert.Equal(t, log.EventBattleEnded, logger.LastEvent().Type)

	assert.ErrorIs(t, b.RequestEndTurn(SideOpponent), ErrBattleOver)
	assert.ErrorIs(t, b.RequestPlayCard(SidePlayer, 0), ErrBattleOver)
}

func TestDefeatWhenPlayerBroken(t *testing.T) {
	finisher := fixedDamageCard("Finisher", 1, 30)
	b, _ := startedBattle(t, makePaddedDeck(nil, 20), makePaddedDeck([]*Card{finisher}, 20))

	require.NoError(t, b.RequestEndTurn(SidePlayer))
	require.NoError(t, b.RequestPlayCard(SideOpponent, handIndex(t, b, SideOpponent, "Finisher")))
	require.NoError(t, b.RequestEndTurn(SideOpponent))

	require.True(t, b.Over())
	assert.False(t, b.Result.Victory)
	assert.Equal(t, SideOpponent, b.Result.Winner)
	assert.Equal(t, 0, b.Result.FinalResolve)
}

func TestRejectedCommandsDoNotMutate(t *testing.T) {
	pricey := fixedDamageCard("Pricey", 5, 10)
	gag := &Card{Name: "Gag Order", Type: CardTypeManipulate, Cost: Cost{Amount: 0},
		Effects: []Effect{CardManipulation{Target: TargetOpponent, Kind: ManipulateDraw, Amount: 1}}}
	b, logger := startedBattle(t, makePaddedDeck([]*Card{pricey, gag}, 20), makePaddedDeck(nil, 20))
	a := b.Combatant(SidePlayer)
	a.Status.Apply(StatusSilenced, 1, DecreasePerTurn)

	before := *a.Stats
	handBefore := append([]*CardInstance(nil), a.Zones.Hand...)
	oppBefore := *b.Combatant(SideOpponent).Stats

	cases := []struct {
		name string
		run  func() error
		want error
	}{
		{"wrong side", func() error { return b.RequestPlayCard(SideOpponent, 0) }, ErrNotYourTurn},
		{"wrong side end turn", func() error { return b.RequestEndTurn(SideOpponent) }, ErrNotYourTurn},
		{"bad index", func() error { return b.RequestPlayCard(SidePlayer, 99) }, ErrInvalidHandIndex},
		{"negative index", func() error { return b.RequestPlayCard(SidePlayer, -1) }, ErrInvalidHandIndex},
		{"unaffordable", func() error { return b.RequestPlayCard(SidePlayer, handIndex(t, b, SidePlayer, "Pricey")) }, ErrInsufficientActionPoints},
		{"silenced", func() error { return b.RequestPlayCard(SidePlayer, handIndex(t, b, SidePlayer, "Gag Order")) }, ErrSilenced},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger.Reset()
			err := tc.run()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)

			assert.Equal(t, before, *a.Stats)
			assert.Equal(t, oppBefore, *b.Combatant(SideOpponent).Stats)
			assert.Equal(t, handBefore, a.Zones.Hand)
			assert.Equal(t, PhasePlayerTurn, b.Phase)

			require.Len(t, logger.Events(), 1)
			assert.Equal(t, log.EventCommandRejected, logger.Events()[0].Type)
		})
	}
}

func TestCommandsBeforeStart(t *testing.T) {
	b, _ := newTestBattle(t, makePaddedDeck(nil, 10), makePaddedDeck(nil, 10))
	assert.ErrorIs(t, b.RequestEndTurn(SidePlayer), ErrNotStarted)
	assert.ErrorIs(t, b.RequestPlayCard(SidePlayer, 0), ErrNotStarted)
	assert.Nil(t, b.LegalActions(SidePlayer))
}

func TestTurnStartRefreshesBankedActionPoints(t *testing.T) {
	deal := effectCard("Deal", 1, ResourceChange{Target: TargetSelf, Kind: ResourceGainActionPointsNextTurn, Amount: 2})
	b, logger := startedBattle(t, makePaddedDeck([]*Card{deal}, 20), makePaddedDeck(nil, 20))
	a := b.Combatant(SidePlayer)

	require.NoError(t, b.RequestPlayCard(SidePlayer, handIndex(t, b, SidePlayer, "Deal")))
	assert.Equal(t, 2, a.Stats.ActionPoints)
	assert.Equal(t, 2, a.Stats.BankedActionPoints)

	require.NoError(t, b.RequestEndTurn(SidePlayer))
	require.NoError(t, b.RequestEndTurn(SideOpponent))
	assert.Equal(t, 5, a.Stats.ActionPoints)
	assert.Equal(t, 0, a.Stats.BankedActionPoints)

	last := logger.EventsOfType(log.EventActionPointsChanged)
	require.NotEmpty(t, last)
	assert.Equal(t, 5, last[len(last)-1].New)

	require.NoError(t, b.RequestEndTurn(SidePlayer))
	require.NoError(t, b.RequestEndTurn(SideOpponent))
	assert.Equal(t, 3, a.Stats.ActionPoints, "banked AP applies once")
}

func TestTurnEndDiscardsHandAndDecaysActingSideOnly(t *testing.T) {
	b, logger := startedBattle(t, makePaddedDeck(nil, 20), makePaddedDeck(nil, 20))
	a, o := b.Combatant(SidePlayer), b.Combatant(SideOpponent)
	a.Status.Apply(StatusVulnerable, 1, DecreasePerTurn)
	o.Status.Apply(StatusVulnerable, 1, DecreasePerTurn)
	logger.Reset()

	require.NoError(t, b.RequestEndTurn(SidePlayer))

	assert.Empty(t, a.Zones.Hand)
	assert.Len(t, a.Zones.Discard, 6)
	assert.False(t, a.Status.Has(StatusVulnerable))
	assert.True(t, o.Status.Has(StatusVulnerable))

	expired := logger.EventsOfType(log.EventStatusEffectExpired)
	require.Len(t, expired, 1)
	assert.Equal(t, "Vulnerable", expired[0].Status)
	assert.Len(t, logger.EventsOfType(log.EventCardDiscarded), 6)

	ended := logger.EventsOfType(log.EventTurnEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, 1, ended[0].Turn)
	assert.Equal(t, int(SidePlayer), ended[0].Player)

	assert.Equal(t, 2, b.Turn)
	assert.Equal(t, PhaseOpponentTurn, b.Phase)
}

func TestRitualAndScandalTriggers(t *testing.T) {
	b, _ := startedBattle(t, makePaddedDeck(nil, 20), makePaddedDeck(nil, 20))
	a := b.Combatant(SidePlayer)
	a.Status.Apply(StatusRitual, 2, Permanent)
	a.Status.Apply(StatusScandal, 3, DecreasePerTurn)

	require.NoError(t, b.RequestEndTurn(SidePlayer))
	assert.Equal(t, 17, a.Stats.Resolve)
	assert.Equal(t, 0, a.Stats.Composure, "Ritual fires at the holder's turn start")

	require.NoError(t, b.RequestEndTurn(SideOpponent))
	assert.Equal(t, 2, a.Stats.Composure)
}

func TestEnergizedDrawsExtra(t *testing.T) {
	b, _ := startedBattle(t, makePaddedDeck(nil, 30), makePaddedDeck(nil, 30))
	a := b.Combatant(SidePlayer)
	a.Status.Apply(StatusEnergized, 3, DecreasePerTurn)

	require.NoError(t, b.RequestEndTurn(SidePlayer))
	require.NoError(t, b.RequestEndTurn(SideOpponent))
	assert.Len(t, a.Zones.Hand, 3, "one per-turn draw plus two Energized")
}

func TestTurnLimitEndsUndecided(t *testing.T) {
	b, logger := startedBattle(t, makePaddedDeck(nil, 30), makePaddedDeck(nil, 30), func(c *BattleConfig) {
		c.MaxTurns = 3
	})
	for !b.Over() {
		require.NoError(t, b.RequestEndTurn(b.Active))
	}
	assert.Equal(t, 3, b.Result.Turns)
	assert.False(t, b.Result.Decided)
	assert.False(t, b.Result.Victory)
	assert.Contains(t, b.Result.Reason, "turn limit")
	assert.Len(t, logger.EventsOfType(log.EventBattleEnded), 1)
}

func TestLegalActions(t *testing.T) {
	cheap := fixedDamageCard("Cheap", 1, 1)
	pricey := fixedDamageCard("Pricey", 4, 1)
	b, _ := startedBattle(t, makePaddedDeck([]*Card{cheap, pricey}, 20), makePaddedDeck(nil, 20))

	actions := b.LegalActions(SidePlayer)
	require.Len(t, actions, 2)
	assert.Equal(t, ActionPlayCard, actions[0].Type)
	assert.Equal(t, "Cheap", actions[0].Card.Card.Name)
	assert.Equal(t, 1, actions[0].Cost)
	assert.Equal(t, ActionEndTurn, actions[1].Type)

	assert.Empty(t, b.LegalActions(SideOpponent))

	b.Combatant(SidePlayer).Status.Apply(StatusFocus, 1, Permanent)
	actions = b.LegalActions(SidePlayer)
	require.Len(t, actions, 3)
	assert.Equal(t, "Pricey", actions[1].Card.Card.Name)
	assert.Equal(t, 3, actions[1].Cost)
}

func TestAllRemainingCost(t *testing.T) {
	stealer := &Card{Name: "Stealer", Type: CardTypeHostility, Cost: Cost{All: true},
		Effects: []Effect{Damage{Target: TargetOpponent, Kind: DamageFixed, Amount: 7}}}
	b, _ := startedBattle(t, makePaddedDeck([]*Card{stealer}, 20), makePaddedDeck(nil, 20))
	a := b.Combatant(SidePlayer)
	a.Status.Apply(StatusEntangled, 1, DecreasePerTurn)

	require.NoError(t, b.RequestPlayCard(SidePlayer, handIndex(t, b, SidePlayer, "Stealer")))
	assert.Equal(t, 0, a.Stats.ActionPoints)
	assert.Equal(t, 13, b.Combatant(SideOpponent).Stats.Resolve)
}

func TestRunScriptedBattleToVictory(t *testing.T) {
	strike := fixedDamageCard("Strike", 1, 6)
	deck := make([]*Card, 20)
	for i := range deck {
		deck[i] = strike
	}
	p0 := NewScriptedController(t, "A").AddPlay("Strike").AddPlay("Strike").AddPlay("Strike").AddPlay("Strike")
	p1 := NewScriptedController(t, "B")

	cfg := BattleConfig{
		Player:   CombatantConfig{Name: "A", Origin: testOrigin(), Deck: deck},
		Opponent: CombatantConfig{Name: "B", Origin: testOrigin(), Deck: makePaddedDeck(nil, 20)},
	}
	result, logger := runBattleToCompletion(t, cfg, p0, p1)

	assert.True(t, result.Victory)
	assert.Equal(t, 3, result.Turns)
	assert.Len(t, logger.EventsOfType(log.EventCardPlayed), 4)

	// Both controllers saw every event.
	assert.Equal(t, len(logger.Events()), len(p0.events))
	assert.Equal(t, len(logger.Events()), len(p1.events))
	assert.Equal(t, log.EventBattleEnded, p1.events[len(p1.events)-1].Type)
}

func TestSameSeedSameLog(t *testing.T) {
	run := func() []string {
		deck := []*Card{AllOrNothing(), WildAccusation(), Heckle(), Sermon(), Blessing(), LeakedMemo()}
		var full []*Card
		for i := 0; i < 4; i++ {
			full = append(full, deck...)
		}
		logger := log.NewMemoryLogger()
		b := NewBattle(BattleConfig{
			Player:   CombatantConfig{Name: "A", Origin: OriginActor, Deck: full},
			Opponent: CombatantConfig{Name: "B", Origin: OriginNepoBaby, Deck: full},
			Seed:     1234,
			MaxTurns: 30,
			Logger:   logger,
		})
		require.NoError(t, b.Start())
		for !b.Over() {
			actions := b.LegalActions(b.Active)
			require.NoError(t, b.Apply(actions[0]))
		}
		var lines []string
		for _, ev := range logger.Events() {
			if ev.Type == log.EventBattleStarted {
				continue // carries the random session id
			}
			lines = append(lines, log.FormatEvent(ev))
		}
		return lines
	}
	assert.Equal(t, run(), run())
}

func TestSubscribeReceivesEventsAfterCommand(t *testing.T) {
	b, logger := newTestBattle(t, makePaddedDeck(nil, 20), makePaddedDeck(nil, 20))
	var got []log.GameEvent
	b.Subscribe(func(ev log.GameEvent) { got = append(got, ev) })

	require.NoError(t, b.Start())
	assert.Len(t, got, len(logger.Events()))
	assert.Equal(t, log.EventBattleStarted, got[0].Type)
}

func TestAutoControllersFinishBattle(t *testing.T) {
	deck := make([]*Card, 15)
	for i := range deck {
		if i%3 == 0 {
			deck[i] = LookupCard("Scene Stealer")
		} else {
			deck[i] = LookupCard("Heckle")
		}
	}
	b := NewBattle(BattleConfig{
		Player:   CombatantConfig{Name: "A", Origin: OriginActor, Deck: deck},
		Opponent: CombatantConfig{Name: "B", Origin: OriginFaithLeader, Deck: deck},
		Seed:     7,
	})
	result, err := b.Run(context.Background(), &AutoController{}, &AutoController{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, b.Over())
	assert.True(t, result.Decided, "damage-only decks must produce a winner before the turn limit")
}
