package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/parley/internal/log"
)

// ScriptedController is a PlayerController that follows a predefined script of actions.
// Used in tests to deterministically drive the battle.
type ScriptedController struct {
	t       *testing.T
	name    string
	actions []ScriptedAction
	pos     int
	events  []log.GameEvent
}

type ScriptedAction struct {
	// Match by ActionType — picks the first action of this type
	Type ActionType
	// Optional: match by card name as well
	CardName string
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) AddPlay(cardName string) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionPlayCard, CardName: cardName})
	return sc
}

func (sc *ScriptedController) AddEndTurn() *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: ActionEndTurn})
	return sc
}

func (sc *ScriptedController) ChooseAction(ctx context.Context, b *Battle, actions []Action) (Action, error) {
	if sc.pos < len(sc.actions) {
		scripted := sc.actions[sc.pos]
		for _, a := range actions {
			if a.Type != scripted.Type {
				continue
			}
			if scripted.CardName != "" && (a.Card == nil || a.Card.Card.Name != scripted.CardName) {
				continue
			}
			sc.pos++
			return a, nil
		}
		// Scripted play not available yet (probably a later turn): end this turn.
	}
	for _, a := range actions {
		if a.Type == ActionEndTurn {
			return a, nil
		}
	}
	return actions[len(actions)-1], nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.events = append(sc.events, event)
	return nil
}

// --- Test card helpers ---

func fixedDamageCard(name string, cost, amount int) *Card {
	return &Card{
		Name:    name,
		Type:    CardTypeHostility,
		Cost:    Cost{Amount: cost},
		Effects: []Effect{Damage{Target: TargetOpponent, Kind: DamageFixed, Amount: amount}},
	}
}

func effectCard(name string, cost int, effects ...Effect) *Card {
	return &Card{
		Name:    name,
		Type:    CardTypeDiplomacy,
		Cost:    Cost{Amount: cost},
		Effects: effects,
	}
}

func fillerCard() *Card {
	return &Card{Name: "Filler", Type: CardTypeDiplomacy, Cost: Cost{Amount: 9}}
}

// makePaddedDeck creates a deck with topCards drawn first (index 0 is the
// top) and filler below to reach minSize.
func makePaddedDeck(topCards []*Card, minSize int) []*Card {
	deck := append([]*Card(nil), topCards...)
	filler := fillerCard()
	for len(deck) < minSize {
		deck = append(deck, filler)
	}
	return deck
}

func testOrigin() Origin {
	return Origin{Name: "Test", MaxResolve: 20, MaxActionPoints: 3}
}

// newTestBattle builds an unshuffled, seeded battle with the given decks
// and a memory logger.
func newTestBattle(t *testing.T, playerDeck, opponentDeck []*Card, tweak ...func(*BattleConfig)) (*Battle, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg := BattleConfig{
		Player:    CombatantConfig{Name: "A", Origin: testOrigin(), Deck: playerDeck},
		Opponent:  CombatantConfig{Name: "B", Origin: testOrigin(), Deck: opponentDeck},
		Seed:      42,
		NoShuffle: true,
		Logger:    logger,
	}
	for _, fn := range tweak {
		fn(&cfg)
	}
	return NewBattle(cfg), logger
}

// startedBattle is newTestBattle followed by Start.
func startedBattle(t *testing.T, playerDeck, opponentDeck []*Card, tweak ...func(*BattleConfig)) (*Battle, *log.MemoryLogger) {
	t.Helper()
	b, logger := newTestBattle(t, playerDeck, opponentDeck, tweak...)
	require.NoError(t, b.Start())
	return b, logger
}

// handIndex returns the index of the first hand card with the given name.
func handIndex(t *testing.T, b *Battle, side Side, name string) int {
	t.Helper()
	for i, c := range b.Combatant(side).Zones.Hand {
		if c.Card.Name == name {
			return i
		}
	}
	t.Fatalf("%s has no %q in hand", side, name)
	return -1
}

// runBattleToCompletion runs a battle with scripted controllers and returns
// the result and logger for inspection.
func runBattleToCompletion(t *testing.T, cfg BattleConfig, p0, p1 *ScriptedController) (*BattleResult, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	cfg.NoShuffle = true // deterministic tests
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 100 // reasonable default for tests
	}
	if cfg.Seed == 0 {
		cfg.Seed = 7
	}

	b := NewBattle(cfg)
	result, err := b.Run(context.Background(), p0, p1)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result, logger
}
