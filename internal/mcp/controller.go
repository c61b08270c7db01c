package mcp

import (
	"context"

	"github.com/peterkuimelis/parley/internal/game"
	"github.com/peterkuimelis/parley/internal/log"
	"github.com/peterkuimelis/parley/internal/net"
)

// MCPController implements game.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type MCPController struct {
	side       game.Side
	session    *Session
	responseCh chan int
}

// NewMCPController creates a controller for the given side.
func NewMCPController(side game.Side, session *Session) *MCPController {
	return &MCPController{
		side:       side,
		session:    session,
		responseCh: make(chan int),
	}
}

// ChooseAction implements game.PlayerController.
func (c *MCPController) ChooseAction(ctx context.Context, b *game.Battle, actions []game.Action) (game.Action, error) {
	pending := &PendingDecision{
		Type:    DecisionChooseAction,
		Side:    c.side,
		State:   net.BuildStateView(b, c.side),
		Actions: net.BuildActionViews(actions),
	}
	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	var idx int
	select {
	case idx = <-c.responseCh:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	// Tool handlers validate the index; anything else ends the turn.
	if idx < 0 || idx >= len(actions) {
		return actions[len(actions)-1], nil
	}
	return actions[idx], nil
}

// Notify implements game.PlayerController.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(*net.BuildEventView(event))
	return nil
}
