package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/parley/internal/log"
)

const (
	DefaultStartingHandSize = 5
	DefaultCardsPerTurn     = 1
	DefaultMaxTurns         = 200
)

// Command rejections. A rejected command never mutates the battle.
var (
	ErrBattleOver               = errors.New("battle is over")
	ErrNotStarted               = errors.New("battle has not started")
	ErrAlreadyStarted           = errors.New("battle already started")
	ErrNotInTurn                = errors.New("no turn is in progress")
	ErrNotYourTurn              = errors.New("not this side's turn")
	ErrInvalidHandIndex         = errors.New("hand index out of range")
	ErrInsufficientActionPoints = errors.New("not enough action points")
	ErrSilenced                 = errors.New("silenced: cannot play Manipulate cards")
)

// CombatantConfig describes one side at battle start.
type CombatantConfig struct {
	Name   string
	Origin Origin
	Deck   []*Card
}

// BattleConfig holds configuration for creating a new battle.
type BattleConfig struct {
	Player   CombatantConfig
	Opponent CombatantConfig

	StartingHandSize int  // cards drawn by each side at Initialize (default 5)
	CardsPerTurn     int  // cards drawn at each TurnStart (default 1)
	MaxHandSize      int  // hand limit (default 10)
	FirstSide        Side // side that takes turn 1
	MaxTurns         int  // end without a victor after this many turns (default 200)

	Seed      int64 // RNG seed (0 for random)
	NoShuffle bool  // skip the initial shuffle (for deterministic tests)

	Logger      log.EventLogger
	Diagnostics *zap.Logger
}

// Combatant bundles everything the battle owns for one side.
type Combatant struct {
	Side   Side
	Name   string
	Origin Origin
	Stats  *CombatantStats
	Zones  *CardZones
	Status *StatusEngine
}

// BattleResult is produced once, when the battle reaches BattleEnd. The
// snapshot fields describe the player side.
type BattleResult struct {
	Victory        bool
	Winner         Side
	Decided        bool // false when the turn limit ended the battle
	Turns          int
	FinalResolve   int
	FinalComposure int
	FinalHostility int
	Reason         string
}

// Listener receives every battle event after the command that produced it
// completes.
type Listener func(log.GameEvent)

// Battle is one battle session: two combatants, the turn counter and the
// state machine. It is not safe for concurrent use; callers serialize
// commands.
type Battle struct {
	ID         string
	Combatants [2]*Combatant
	Turn       int
	Phase      Phase
	Active     Side
	Result     *BattleResult
	Logger     log.EventLogger

	startingHand int
	cardsPerTurn int
	maxTurns     int
	noShuffle    bool
	rng          *rand.Rand
	diag         *zap.Logger
	listeners    []Listener
	queue        []log.GameEvent
	nextCardID   int
}

// NewBattle builds a battle from cfg. Nothing happens until Start.
func NewBattle(cfg BattleConfig) *Battle {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	diag := cfg.Diagnostics
	if diag == nil {
		diag = zap.NewNop()
	}

	b := &Battle{
		ID:           uuid.NewString(),
		Phase:        PhaseNone,
		Active:       cfg.FirstSide.Other(),
		Logger:       logger,
		startingHand: orDefault(cfg.StartingHandSize, DefaultStartingHandSize),
		cardsPerTurn: cfg.CardsPerTurn,
		maxTurns:     orDefault(cfg.MaxTurns, DefaultMaxTurns),
		noShuffle:    cfg.NoShuffle,
		rng:          rand.New(rand.NewSource(seed)),
	}
	if b.cardsPerTurn == 0 {
		b.cardsPerTurn = DefaultCardsPerTurn
	} else if b.cardsPerTurn < 0 {
		b.cardsPerTurn = 0
	}
	b.diag = diag.With(zap.String("battle", b.ID))

	for side, cc := range [2]CombatantConfig{cfg.Player, cfg.Opponent} {
		s := Side(side)
		var deck []*CardInstance
		for _, card := range cc.Deck {
			b.nextCardID++
			deck = append(deck, &CardInstance{ID: b.nextCardID, Card: card, Owner: s})
		}
		name := cc.Name
		if name == "" {
			name = s.String()
		}
		b.Combatants[s] = &Combatant{
			Side:   s,
			Name:   name,
			Origin: cc.Origin,
			Stats:  NewCombatantStats(cc.Origin.MaxResolve, cc.Origin.MaxActionPoints),
			Zones:  NewCardZones(deck, cfg.MaxHandSize, b.rng),
			Status: NewStatusEngine(),
		}
	}
	return b
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Subscribe registers a listener for all subsequent events.
func (b *Battle) Subscribe(fn Listener) {
	b.listeners = append(b.listeners, fn)
}

// Combatant returns the given side.
func (b *Battle) Combatant(s Side) *Combatant {
	return b.Combatants[s]
}

// Over reports whether the battle has reached BattleEnd.
func (b *Battle) Over() bool {
	return b.Phase == PhaseBattleEnd
}

// Start runs Initialize and the first TurnStart.
func (b *Battle) Start() error {
	if b.Phase != PhaseNone {
		return ErrAlreadyStarted
	}
	b.Phase = PhaseInitialize
	p, o := b.Combatants[SidePlayer], b.Combatants[SideOpponent]
	b.emit(log.NewBattleStartedEvent(b.ID, p.Name, o.Name))
	b.diag.Info("battle started",
		zap.String("player", p.Name), zap.String("opponent", o.Name),
		zap.Int("player_deck", len(p.Zones.Deck)), zap.Int("opponent_deck", len(o.Zones.Deck)))

	for _, c := range b.Combatants {
		if !b.noShuffle {
			c.Zones.ShuffleDeck()
			b.emit(log.NewShuffleEvent(b.Turn, b.Phase.String(), int(c.Side)))
		}
	}
	for _, c := range b.Combatants {
		b.draw(c.Side, b.startingHand)
	}

	b.beginTurn()
	b.flush()
	return nil
}

// RequestPlayCard plays the card at handIndex in side's hand: pays its cost,
// moves it to the discard pile and resolves its effects in order.
func (b *Battle) RequestPlayCard(side Side, handIndex int) error {
	if err := b.checkTurn(side); err != nil {
		return b.reject(side, err)
	}
	c := b.Combatants[side]
	if handIndex < 0 || handIndex >= len(c.Zones.Hand) {
		return b.reject(side, fmt.Errorf("%w: %d (hand has %d)", ErrInvalidHandIndex, handIndex, len(c.Zones.Hand)))
	}
	card := c.Zones.Hand[handIndex]
	if card.Card.Type == CardTypeManipulate && c.Status.Has(StatusSilenced) {
		return b.reject(side, ErrSilenced)
	}
	cost := b.EffectiveCost(side, card)
	if cost > c.Stats.ActionPoints {
		return b.reject(side, fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientActionPoints, card.Card.Name, cost, c.Stats.ActionPoints))
	}

	b.emit(log.NewCardPlayedEvent(b.Turn, b.Phase.String(), int(side), card.Card.Name, cost))
	b.track(func() { c.Stats.SpendActionPoints(cost) })
	c.Zones.Play(card)
	b.diag.Debug("card played", zap.Stringer("side", side), zap.String("card", card.Card.Name), zap.Int("cost", cost))

	b.resolveCard(side, card)
	b.flush()
	return nil
}

// RequestEndTurn ends side's turn: TurnEnd processing, the victory check,
// and (unless the battle ended) the next TurnStart.
func (b *Battle) RequestEndTurn(side Side) error {
	if err := b.checkTurn(side); err != nil {
		return b.reject(side, err)
	}
	b.endTurn()
	b.flush()
	return nil
}

// EffectiveCost returns what card would cost side right now.
func (b *Battle) EffectiveCost(side Side, card *CardInstance) int {
	c := b.Combatants[side]
	if card.Card.Cost.All {
		return c.Stats.ActionPoints
	}
	return c.Status.ModifyCardCost(card.Card.Cost.Amount)
}

// CanPlay reports whether side could play card right now.
func (b *Battle) CanPlay(side Side, card *CardInstance) bool {
	c := b.Combatants[side]
	if card.Card.Type == CardTypeManipulate && c.Status.Has(StatusSilenced) {
		return false
	}
	return b.EffectiveCost(side, card) <= c.Stats.ActionPoints
}

// LegalActions lists every command side may issue now. It is empty when
// it is not side's turn.
func (b *Battle) LegalActions(side Side) []Action {
	if b.checkTurn(side) != nil {
		return nil
	}
	var actions []Action
	for i, card := range b.Combatants[side].Zones.Hand {
		if !b.CanPlay(side, card) {
			continue
		}
		cost := b.EffectiveCost(side, card)
		actions = append(actions, Action{
			Type:      ActionPlayCard,
			Side:      side,
			HandIndex: i,
			Card:      card,
			Cost:      cost,
			Desc:      fmt.Sprintf("Play %s (%d AP)", card.Card.Name, cost),
		})
	}
	actions = append(actions, Action{Type: ActionEndTurn, Side: side, Desc: "End Turn"})
	return actions
}

// Apply issues the command described by a.
func (b *Battle) Apply(a Action) error {
	switch a.Type {
	case ActionPlayCard:
		return b.RequestPlayCard(a.Side, a.HandIndex)
	case ActionEndTurn:
		return b.RequestEndTurn(a.Side)
	default:
		return fmt.Errorf("unknown action type %d", a.Type)
	}
}

func (b *Battle) checkTurn(side Side) error {
	switch b.Phase {
	case PhaseNone:
		return ErrNotStarted
	case PhaseBattleEnd:
		return ErrBattleOver
	case PhasePlayerTurn, PhaseOpponentTurn:
	default:
		return ErrNotInTurn
	}
	if !side.Valid() || side != b.Active {
		return ErrNotYourTurn
	}
	return nil
}

func (b *Battle) reject(side Side, err error) error {
	b.diag.Warn("command rejected", zap.Stringer("side", side), zap.Stringer("phase", b.Phase), zap.Error(err))
	b.emit(log.NewCommandRejectedEvent(b.Turn, b.Phase.String(), int(side), err.Error()))
	b.flush()
	return err
}

// --- Turn boundaries ---

func (b *Battle) beginTurn() {
	if b.Turn >= b.maxTurns {
		b.endBattle(fmt.Sprintf("turn limit reached (%d turns)", b.maxTurns), false)
		return
	}
	b.Phase = PhaseTurnStart
	b.Turn++
	b.Active = b.Active.Other()
	c := b.Combatants[b.Active]
	b.emit(log.NewTurnStartedEvent(b.Turn, b.Phase.String(), int(b.Active)))

	b.track(func() {
		c.Stats.RefreshActionPoints()
		c.Status.TurnStart(c.Stats)
	})
	b.draw(b.Active, b.cardsPerTurn+c.Status.Stacks(StatusEnergized))

	b.Phase = turnPhase(b.Active)
}

func (b *Battle) endTurn() {
	b.Phase = PhaseTurnEnd
	side := b.Active
	c := b.Combatants[side]

	b.track(func() {
		fired, _ := c.Status.TurnEnd(c.Stats)
		for _, t := range fired {
			b.diag.Debug("status triggered", zap.Stringer("side", side), zap.Stringer("status", t.Status), zap.Int("amount", t.Amount))
		}
	})
	for _, card := range c.Zones.DiscardHand() {
		b.emit(log.NewCardDiscardedEvent(b.Turn, b.Phase.String(), int(side), card.Card.Name, "end of turn"))
	}
	b.emit(log.NewTurnEndedEvent(b.Turn, int(side)))

	p, o := b.Combatants[SidePlayer], b.Combatants[SideOpponent]
	switch {
	case o.Stats.Defeated():
		b.endBattle(fmt.Sprintf("%s's Resolve broken", o.Name), true)
	case p.Stats.Defeated():
		b.endBattle(fmt.Sprintf("%s's Resolve broken", p.Name), true)
	default:
		b.beginTurn()
	}
}

func (b *Battle) endBattle(reason string, decided bool) {
	b.Phase = PhaseBattleEnd
	p := b.Combatants[SidePlayer]
	victory := b.Combatants[SideOpponent].Stats.Defeated()
	winner := SideOpponent
	if victory {
		winner = SidePlayer
	}
	b.Result = &BattleResult{
		Victory:        decided && victory,
		Winner:         winner,
		Decided:        decided,
		Turns:          b.Turn,
		FinalResolve:   p.Stats.Resolve,
		FinalComposure: p.Stats.Composure,
		FinalHostility: p.Stats.Hostility,
		Reason:         reason,
	}
	ev := log.NewBattleEndedEvent(b.Turn, b.Result.Victory, reason)
	ev.Player = int(winner)
	b.emit(ev)
	b.diag.Info("battle ended", zap.Bool("victory", b.Result.Victory), zap.Int("turns", b.Turn), zap.String("reason", reason))
}

// --- Zone helpers ---

func (b *Battle) draw(side Side, n int) int {
	if n <= 0 {
		return 0
	}
	c := b.Combatants[side]
	res := c.Zones.Draw(n)
	if res.Reclaimed > 0 {
		b.emit(log.NewShuffleEvent(b.Turn, b.Phase.String(), int(side)))
	}
	for _, card := range res.Drawn {
		b.emit(log.NewCardDrawnEvent(b.Turn, b.Phase.String(), int(side), card.Card.Name))
	}
	if len(res.Drawn) < n {
		b.diag.Debug("draw stopped early", zap.Stringer("side", side),
			zap.Int("requested", n), zap.Int("drawn", len(res.Drawn)), zap.Bool("hand_full", res.HandFull))
	}
	return len(res.Drawn)
}

// --- Event queue ---

func (b *Battle) emit(ev log.GameEvent) {
	b.queue = append(b.queue, ev)
}

// flush delivers queued events to the logger and listeners in order.
func (b *Battle) flush() {
	for len(b.queue) > 0 {
		ev := b.queue[0]
		b.queue = b.queue[1:]
		b.Logger.Log(ev)
		for _, fn := range b.listeners {
			fn(ev)
		}
	}
	b.queue = nil
}

// track runs fn and emits a *Changed event for every stat that moved and a
// StatusEffectExpired event for every status that disappeared, on both sides.
func (b *Battle) track(fn func()) {
	var stats [2]CombatantStats
	var statuses [2][]StatusEffect
	for i, c := range b.Combatants {
		stats[i] = *c.Stats
		statuses[i] = c.Status.Effects()
	}
	fn()
	for i, c := range b.Combatants {
		b.emitStatDiff(Side(i), stats[i], *c.Stats)
		for _, se := range statuses[i] {
			if !c.Status.Has(se.Type) {
				b.emit(log.NewStatusExpiredEvent(b.Turn, b.Phase.String(), i, se.Type.String()))
			}
		}
	}
}

func (b *Battle) emitStatDiff(side Side, before, after CombatantStats) {
	phase := b.Phase.String()
	diffs := []struct {
		t        log.EventType
		name     string
		old, new int
	}{
		{log.EventResolveChanged, "Resolve", before.Resolve, after.Resolve},
		{log.EventComposureChanged, "Composure", before.Composure, after.Composure},
		{log.EventHostilityChanged, "Hostility", before.Hostility, after.Hostility},
		{log.EventActionPointsChanged, "AP", before.ActionPoints, after.ActionPoints},
	}
	for _, d := range diffs {
		if d.old != d.new {
			b.emit(log.NewStatChangeEvent(b.Turn, phase, int(side), d.t, d.name, d.old, d.new))
		}
	}
}
