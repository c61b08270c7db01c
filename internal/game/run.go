package game

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/parley/internal/log"
)

// PlayerController is the interface that human (TCP/WebSocket) and agent
// (MCP) players implement to drive one side of a battle.
type PlayerController interface {
	// ChooseAction presents the legal actions and waits for the side to pick one.
	ChooseAction(ctx context.Context, b *Battle, actions []Action) (Action, error)

	// Notify sends a battle event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// Run starts the battle (if needed) and asks the active side's controller
// for commands until BattleEnd. Notifications reach both controllers.
func (b *Battle) Run(ctx context.Context, player, opponent PlayerController) (*BattleResult, error) {
	controllers := [2]PlayerController{player, opponent}
	b.Subscribe(func(ev log.GameEvent) {
		// Notification errors surface on the next ChooseAction.
		for _, pc := range controllers {
			_ = pc.Notify(ctx, ev)
		}
	})

	if b.Phase == PhaseNone {
		if err := b.Start(); err != nil {
			return nil, err
		}
	}

	for !b.Over() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		side := b.Active
		actions := b.LegalActions(side)
		if len(actions) == 0 {
			return nil, fmt.Errorf("no legal actions for %s in %s", side, b.Phase)
		}
		chosen, err := controllers[side].ChooseAction(ctx, b, actions)
		if err != nil {
			return nil, err
		}
		chosen.Side = side
		if err := b.Apply(chosen); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", side, chosen, err)
		}
	}
	return b.Result, nil
}
