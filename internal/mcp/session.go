package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/parley/internal/game"
	"github.com/peterkuimelis/parley/internal/net"
)

// DecisionType identifies what the battle is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionBattleOver   DecisionType = "battle_over"
)

// PendingDecision represents a decision the battle is waiting for.
type PendingDecision struct {
	Type    DecisionType
	Side    game.Side
	State   *net.StateView
	Actions []net.ActionView
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events     []net.EventView `json:"events"`
	State      *net.StateView  `json:"state,omitempty"`
	Pending    *PendingView    `json:"pending,omitempty"`
	BattleOver bool            `json:"battle_over"`
	Result     *net.ResultView `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	Port       string          `json:"port,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type    DecisionType     `json:"type"`
	ForSide string           `json:"for_side"`
	Actions []net.ActionView `json:"actions,omitempty"`
}

// Session holds one battle driven by MCP tool calls. The agent plays
// agentSide; the other side is a TCP client or an AutoController.
type Session struct {
	battle    *game.Battle
	agentSide game.Side
	agent     *MCPController
	cancel    context.CancelFunc

	pendingCh chan *PendingDecision

	mu      sync.Mutex
	current *PendingDecision
	events  []net.EventView
	over    bool
	result  *net.ResultView
	errMsg  string
}

// newSession starts b in the background. finish runs on the battle goroutine
// once Run returns, before the session reports the battle as over.
func newSession(b *game.Battle, agentSide game.Side, opponent game.PlayerController, finish func(*game.Battle, error)) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	sess := &Session{
		battle:    b,
		agentSide: agentSide,
		cancel:    cancel,
		pendingCh: make(chan *PendingDecision, 2),
	}
	sess.agent = NewMCPController(agentSide, sess)

	var ctrls [2]game.PlayerController
	ctrls[agentSide] = sess.agent
	ctrls[agentSide.Other()] = opponent

	go func() {
		_, err := b.Run(ctx, ctrls[game.SidePlayer], ctrls[game.SideOpponent])
		if finish != nil {
			finish(b, err)
		}

		sess.mu.Lock()
		sess.over = true
		sess.result = net.BuildResultView(b.Result)
		if err != nil {
			sess.errMsg = err.Error()
		}
		sess.mu.Unlock()

		sess.pendingCh <- &PendingDecision{
			Type:  DecisionBattleOver,
			Side:  agentSide,
			State: net.BuildStateView(b, agentSide),
		}
	}()
	return sess
}

// Close stops the battle goroutine.
func (s *Session) Close() {
	s.cancel()
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *Session) appendEvent(ev net.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *Session) drainEvents() []net.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []net.EventView{}
	}
	return events
}

// pending returns the decision currently awaiting an answer.
func (s *Session) pending() *PendingDecision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// respond answers the current choose_action decision.
func (s *Session) respond(ctx context.Context, index int) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	select {
	case s.agent.responseCh <- index:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// waitForPending blocks until the next decision arrives from the battle,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *Session) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	s.current = pending
	s.mu.Unlock()

	resp := &ToolResponse{
		Events: s.drainEvents(),
		State:  pending.State,
	}

	if pending.Type == DecisionBattleOver {
		s.mu.Lock()
		resp.BattleOver = true
		resp.Result = s.result
		resp.Error = s.errMsg
		s.mu.Unlock()
		return resp, nil
	}

	resp.Pending = &PendingView{
		Type:    pending.Type,
		ForSide: s.sideLabel(pending.Side),
		Actions: pending.Actions,
	}
	return resp, nil
}

// snapshot reports the latest known state without waiting. The state view
// is the one captured at the last decision point, so it never races the
// battle goroutine.
func (s *Session) snapshot() *ToolResponse {
	resp := &ToolResponse{Events: s.drainEvents()}

	s.mu.Lock()
	defer s.mu.Unlock()
	resp.BattleOver = s.over
	resp.Result = s.result
	resp.Error = s.errMsg
	if s.current == nil {
		if !s.over {
			resp.Pending = &PendingView{Type: DecisionChooseAction, ForSide: "opponent"}
		}
		return resp
	}
	resp.State = s.current.State
	if s.current.Type == DecisionChooseAction {
		resp.Pending = &PendingView{
			Type:    s.current.Type,
			ForSide: s.sideLabel(s.current.Side),
			Actions: s.current.Actions,
		}
	}
	return resp
}

// sideLabel returns "agent" or "opponent" for the given side.
func (s *Session) sideLabel(side game.Side) string {
	if side == s.agentSide {
		return "agent"
	}
	return "opponent"
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
