package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/parley/internal/storage"
)

const testDecks = `
decks:
  - name: Pacifists
    origin: Faith Leader
    cards:
      - name: Compliment
        count: 12
  - name: Hecklers
    origin: Actor
    cards:
      - name: Heckle
        count: 12
`

type recorder struct {
	records []storage.BattleRecord
}

func (r *recorder) RecordResult(ctx context.Context, rec storage.BattleRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDecks), 0o644))
	s := NewServer(path, "0")
	s.Seed = 5
	return s
}

// newCallToolRequest builds a tool call request with arguments.
func newCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func decodeResult(t *testing.T, result *mcp.CallToolResult) ToolResponse {
	t.Helper()
	require.NotNil(t, result)
	require.False(t, result.IsError, resultText(t, result))
	var resp ToolResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	return resp
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestBattleAgainstAutoOpponent(t *testing.T) {
	s := newTestServer(t)
	rec := &recorder{}
	s.Recorder = rec
	ctx := context.Background()

	result, err := s.handleStartBattle(ctx, newCallToolRequest("start_battle", map[string]any{
		"agent_deck":    1,
		"opponent":      "auto",
		"opponent_deck": 2,
	}))
	require.NoError(t, err)
	resp := decodeResult(t, result)
	require.NotNil(t, resp.Pending)
	assert.Equal(t, DecisionChooseAction, resp.Pending.Type)
	assert.Equal(t, "agent", resp.Pending.ForSide)
	require.NotNil(t, resp.State)
	assert.Equal(t, "Pacifists", resp.State.You.Name)
	assert.Equal(t, "Hecklers", resp.State.Opponent.Name)
	assert.Len(t, resp.State.You.Hand, 6, "starting hand plus the turn draw")
	assert.Empty(t, resp.State.Opponent.Hand, "opponent hand is hidden")
	assert.NotEmpty(t, resp.Events)
	assert.Empty(t, resp.Port)

	state, err := s.handleGetBattleState(ctx, newCallToolRequest("get_battle_state", nil))
	require.NoError(t, err)
	snap := decodeResult(t, state)
	require.NotNil(t, snap.Pending)
	assert.Equal(t, resp.Pending.Actions, snap.Pending.Actions)

	// End every turn; the heckling opponent wins.
	for i := 0; i < 200 && !resp.BattleOver; i++ {
		last := len(resp.Pending.Actions) - 1
		require.Equal(t, "End Turn", resp.Pending.Actions[last].Desc)
		result, err = s.handleTakeAction(ctx, newCallToolRequest("take_action", map[string]any{"index": last}))
		require.NoError(t, err)
		resp = decodeResult(t, result)
	}
	require.True(t, resp.BattleOver)
	require.NotNil(t, resp.Result)
	assert.True(t, resp.Result.Decided)
	assert.False(t, resp.Result.Victory)
	assert.Empty(t, resp.Error)
	assert.Nil(t, s.activeSession(), "session is released after the battle")

	require.Len(t, rec.records, 1)
	assert.Equal(t, "Pacifists", rec.records[0].PlayerName)
	assert.False(t, rec.records[0].Victory)
}

func TestToolErrors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleTakeAction(ctx, newCallToolRequest("take_action", map[string]any{"index": 0}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = s.handleGetBattleState(ctx, newCallToolRequest("get_battle_state", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	for name, args := range map[string]map[string]any{
		"missing deck":  {},
		"bad side":      {"agent_deck": 1, "agent_side": "referee"},
		"bad opponent":  {"agent_deck": 1, "opponent": "ghost"},
		"unknown deck":  {"agent_deck": 9, "opponent": "auto"},
		"unknown other": {"agent_deck": 1, "opponent": "auto", "opponent_deck": 9},
	} {
		t.Run(name, func(t *testing.T) {
			result, err := s.handleStartBattle(ctx, newCallToolRequest("start_battle", args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Nil(t, s.activeSession())
		})
	}
}

func TestStartBattleRejectsSecondBattle(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	args := map[string]any{"agent_deck": 1, "opponent": "auto"}

	result, err := s.handleStartBattle(ctx, newCallToolRequest("start_battle", args))
	require.NoError(t, err)
	resp := decodeResult(t, result)
	require.NotNil(t, resp.Pending)
	sess := s.activeSession()
	require.NotNil(t, sess)
	t.Cleanup(sess.Close)

	result, err = s.handleStartBattle(ctx, newCallToolRequest("start_battle", args))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = s.handleTakeAction(ctx, newCallToolRequest("take_action", map[string]any{"index": 99}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestAgentPlaysOpponentSide(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, err := s.handleStartBattle(ctx, newCallToolRequest("start_battle", map[string]any{
		"agent_deck":    2,
		"agent_side":    "opponent",
		"opponent":      "auto",
		"opponent_deck": 1,
	}))
	require.NoError(t, err)
	resp := decodeResult(t, result)
	require.NotNil(t, resp.Pending)
	t.Cleanup(s.activeSession().Close)

	assert.Equal(t, "Hecklers", resp.State.You.Name)
	assert.True(t, resp.State.IsYourTurn)
	assert.Equal(t, 2, resp.State.Turn, "the player side moves first")
}

func TestListDecks(t *testing.T) {
	s := newTestServer(t)
	result, err := s.handleListDecks(context.Background(), newCallToolRequest("list_decks", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)
	text := resultText(t, result)
	assert.Contains(t, text, "1. Pacifists (Faith Leader")
	assert.Contains(t, text, "2. Hecklers (Actor")
}
