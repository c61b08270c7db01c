package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
)

// Client connects to a battle server and provides a terminal REPL.
type Client struct {
	conn     net.Conn
	sideName string // "Player" or "Opponent"
	in       io.Reader
	out      io.Writer
}

// NewClient wraps conn with a REPL reading stdin and writing stdout.
func NewClient(conn net.Conn, sideName string) *Client {
	return &Client{conn: conn, sideName: sideName, in: os.Stdin, out: os.Stdout}
}

// Connect connects to a server, sends the deck choice, and runs the REPL.
func Connect(ctx context.Context, addr string, deckNumber int) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Send join message with deck choice
	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: "join", DeckNumber: deckNumber}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for the battle to start...")

	client := NewClient(conn, "Opponent")
	return client.RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(c.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "notify":
			c.renderEvent(msg.Event)

		case "choose_action":
			c.renderState(msg.State)
			c.renderActions(msg.Actions)
			idx := c.readChoice(reader, len(msg.Actions))
			if err := enc.Encode(ClientMessage{Type: "action", Index: idx}); err != nil {
				return fmt.Errorf("send action: %w", err)
			}

		case "error":
			fmt.Fprintf(c.out, "Server: %s\n", msg.Error)

		case "battle_over":
			c.renderResult(msg.Result, msg.State)
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	if phase == "" {
		phase = "          "
	}
	for len(phase) < 14 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	w := c.out

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")
	fmt.Fprintf(w, "║  %s\n", formatCombatant("OPPONENT", sv.Opponent))
	fmt.Fprintf(w, "║  Hand: %d  Deck: %d  Discard: %d  Exhaust: %d\n",
		sv.Opponent.HandCount, sv.Opponent.DeckCount, sv.Opponent.DiscardCount, sv.Opponent.ExhaustCount)
	if s := formatStatuses(sv.Opponent.Statuses); s != "" {
		fmt.Fprintf(w, "║  %s\n", s)
	}
	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")
	if s := formatStatuses(sv.You.Statuses); s != "" {
		fmt.Fprintf(w, "║  %s\n", s)
	}
	fmt.Fprintf(w, "║  Hand: %d  Deck: %d  Discard: %d  Exhaust: %d\n",
		sv.You.HandCount, sv.You.DeckCount, sv.You.DiscardCount, sv.You.ExhaustCount)
	fmt.Fprintf(w, "║  %s  AP: %d/%d\n", formatCombatant("YOU", sv.You), sv.You.ActionPoints, sv.You.MaxActionPoints)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Phase)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	} else {
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(w, turnInfo)

	if len(sv.You.Hand) > 0 {
		fmt.Fprintln(w, "\nHand:")
		for _, card := range sv.You.Hand {
			mark := " "
			if card.Playable {
				mark = "*"
			}
			fmt.Fprintf(w, " %s %s [%s, %s AP] %s\n", mark, card.Name, card.Type, card.Cost, card.Description)
		}
	}
}

func formatCombatant(label string, cv CombatantView) string {
	return fmt.Sprintf("%s %s (%s)  Resolve: %d/%d  Composure: %d  Hostility: %d",
		label, cv.Name, cv.Origin, cv.Resolve, cv.MaxResolve, cv.Composure, cv.Hostility)
}

func formatStatuses(statuses []StatusView) string {
	if len(statuses) == 0 {
		return ""
	}
	parts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		parts = append(parts, fmt.Sprintf("%s %d", s.Name, s.Stacks))
	}
	return "Status: " + strings.Join(parts, ", ")
}

func (c *Client) renderActions(actions []ActionView) {
	fmt.Fprintln(c.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

func (c *Client) renderResult(r *ResultView, sv *StateView) {
	w := c.out
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════")
	fmt.Fprintln(w, "          BATTLE OVER")
	fmt.Fprintln(w, "═══════════════════════════════════")
	if r != nil {
		fmt.Fprintf(w, "%s after %d turns (%s)\n", Outcome(r, sv), r.Turns, r.Reason)
		if sv != nil {
			fmt.Fprintf(w, "You: Resolve %d/%d, Composure %d, Hostility %d\n",
				sv.You.Resolve, sv.You.MaxResolve, sv.You.Composure, sv.You.Hostility)
			fmt.Fprintf(w, "Opponent: Resolve %d/%d\n", sv.Opponent.Resolve, sv.Opponent.MaxResolve)
		}
	}
	fmt.Fprintln(w, "═══════════════════════════════════")
}

// Outcome describes a result from the viewer's side.
func Outcome(r *ResultView, sv *StateView) string {
	switch {
	case r == nil || !r.Decided:
		return "No decision"
	case sv == nil && r.Victory, sv != nil && r.Winner == sv.Side:
		return "Victory"
	default:
		return "Defeat"
	}
}

func (c *Client) readChoice(reader *bufio.Reader, count int) int {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		n, convErr := strconv.Atoi(line)
		if convErr == nil && n >= 1 && n <= count {
			return n - 1 // convert to 0-indexed
		}
		if err != nil {
			// Input closed: fall back to the last action (End Turn).
			return count - 1
		}
		fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
	}
}
