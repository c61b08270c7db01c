package game

import (
	"context"

	"github.com/peterkuimelis/parley/internal/log"
)

// maxAutoPlaysPerTurn caps the cards an AutoController plays in one turn so
// zero-cost cards that do not exhaust cannot loop forever.
const maxAutoPlaysPerTurn = 20

// AutoController plays the first affordable card in hand until none is left
// (or the per-turn cap is reached), then ends the turn. X-cost cards are only
// played with at least one action point to spend.
type AutoController struct {
	turn  int
	plays int
}

// ChooseAction implements PlayerController.
func (ac *AutoController) ChooseAction(ctx context.Context, b *Battle, actions []Action) (Action, error) {
	if b.Turn != ac.turn {
		ac.turn, ac.plays = b.Turn, 0
	}
	var end Action
	for _, a := range actions {
		if a.Type == ActionEndTurn {
			end = a
			continue
		}
		if ac.plays >= maxAutoPlaysPerTurn {
			continue
		}
		if a.Card.Card.Cost.All && a.Cost == 0 {
			continue
		}
		ac.plays++
		return a, nil
	}
	return end, nil
}

// Notify implements PlayerController.
func (ac *AutoController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}
