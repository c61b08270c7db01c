package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/peterkuimelis/parley/internal/game"
	"github.com/peterkuimelis/parley/internal/log"
)

// NetworkController implements game.PlayerController over a TCP connection.
type NetworkController struct {
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
	side game.Side // which side this controller plays
	mu   sync.Mutex
}

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn net.Conn, side game.Side) *NetworkController {
	return &NetworkController{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
		side: side,
	}
}

// BuildStateView creates a StateView from the perspective of the given side.
func BuildStateView(b *game.Battle, side game.Side) *StateView {
	sv := &StateView{
		BattleID:   b.ID,
		Side:       int(side),
		Turn:       b.Turn,
		Phase:      b.Phase.String(),
		IsYourTurn: b.Active == side && !b.Over(),
		You:        BuildCombatantView(b, side, true),
		Opponent:   BuildCombatantView(b, side.Other(), false),
	}
	return sv
}

// BuildCombatantView describes one side. Hand contents are only included
// for the owner.
func BuildCombatantView(b *game.Battle, side game.Side, isOwner bool) CombatantView {
	c := b.Combatant(side)
	cv := CombatantView{
		Name:            c.Name,
		Origin:          c.Origin.Name,
		Resolve:         c.Stats.Resolve,
		MaxResolve:      c.Stats.MaxResolve,
		Composure:       c.Stats.Composure,
		Hostility:       c.Stats.Hostility,
		ActionPoints:    c.Stats.ActionPoints,
		MaxActionPoints: c.Stats.MaxActionPoints,
		BankedAP:        c.Stats.BankedActionPoints,
		HandCount:       len(c.Zones.Hand),
		DeckCount:       len(c.Zones.Deck),
		DiscardCount:    len(c.Zones.Discard),
		ExhaustCount:    len(c.Zones.Exhaust),
	}
	if isOwner {
		myTurn := b.Active == side && !b.Over()
		for i, ci := range c.Zones.Hand {
			cv.Hand = append(cv.Hand, CardView{
				Index:       i,
				Name:        ci.Card.Name,
				Type:        ci.Card.Type.String(),
				Cost:        ci.Card.Cost.String(),
				Description: ci.Card.Description,
				Playable:    myTurn && b.CanPlay(side, ci),
			})
		}
	}
	for _, se := range c.Status.Effects() {
		cv.Statuses = append(cv.Statuses, StatusView{
			Name:     se.Type.String(),
			Stacks:   se.Stacks,
			Duration: se.Duration.String(),
			Debuff:   se.Type.IsDebuff(),
		})
	}
	return cv
}

// BuildEventView converts a battle event for the wire.
func BuildEventView(event log.GameEvent) *EventView {
	return &EventView{
		Seq:     event.Seq,
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Status:  event.Status,
		Old:     event.Old,
		New:     event.New,
		Amount:  event.Amount,
		Victory: event.Victory,
		Details: event.Details,
	}
}

// BuildActionViews numbers the legal actions.
func BuildActionViews(actions []game.Action) []ActionView {
	views := make([]ActionView, 0, len(actions))
	for i, a := range actions {
		av := ActionView{Index: i, Type: a.Type.String(), Desc: a.String()}
		if a.Card != nil {
			av.Card = a.Card.Card.Name
			av.Cost = a.Cost
		}
		views = append(views, av)
	}
	return views
}

// BuildResultView converts a battle result for the wire.
func BuildResultView(r *game.BattleResult) *ResultView {
	if r == nil {
		return nil
	}
	return &ResultView{
		Victory:        r.Victory,
		Decided:        r.Decided,
		Winner:         int(r.Winner),
		Turns:          r.Turns,
		FinalResolve:   r.FinalResolve,
		FinalComposure: r.FinalComposure,
		FinalHostility: r.FinalHostility,
		Reason:         r.Reason,
	}
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// ChooseAction implements game.PlayerController.
func (nc *NetworkController) ChooseAction(ctx context.Context, b *game.Battle, actions []game.Action) (game.Action, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:    "choose_action",
		Actions: BuildActionViews(actions),
		State:   BuildStateView(b, nc.side),
	}
	if err := nc.send(msg); err != nil {
		return game.Action{}, fmt.Errorf("send choose_action: %w", err)
	}

	for {
		resp, err := nc.recv()
		if err != nil {
			return game.Action{}, fmt.Errorf("recv action: %w", err)
		}
		if resp.Type == "action" && resp.Index >= 0 && resp.Index < len(actions) {
			return actions[resp.Index], nil
		}
		if err := nc.send(ServerMessage{Type: "error", Error: fmt.Sprintf("invalid action index %d", resp.Index)}); err != nil {
			return game.Action{}, fmt.Errorf("send error: %w", err)
		}
	}
}

// SendBattleOver sends a battle_over message to the client.
func (nc *NetworkController) SendBattleOver(b *game.Battle) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{
		Type:   "battle_over",
		Result: BuildResultView(b.Result),
		State:  BuildStateView(b, nc.side),
	})
}

// Notify implements game.PlayerController.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(ServerMessage{Type: "notify", Event: BuildEventView(event)})
}
