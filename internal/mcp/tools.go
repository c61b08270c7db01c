package mcp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/parley/internal/game"
	"github.com/peterkuimelis/parley/internal/log"
	"github.com/peterkuimelis/parley/internal/net"
	"github.com/peterkuimelis/parley/internal/storage"

	stdnet "net"
)

// Server exposes battle tools over MCP. It runs at most one battle at a time.
type Server struct {
	DeckFile string
	Port     string // TCP port for a human opponent
	Seed     int64

	Recorder net.ResultRecorder // optional
	Logger   *zap.Logger        // optional

	mu      sync.Mutex
	session *Session
}

// NewServer creates a tool server reading decks from deckFile.
func NewServer(deckFile, port string) *Server {
	return &Server{DeckFile: deckFile, Port: port}
}

// Register adds all battle tools to the MCP server.
func (s *Server) Register(ms *server.MCPServer) {
	ms.AddTool(startBattleTool(), s.handleStartBattle)
	ms.AddTool(takeActionTool(), s.handleTakeAction)
	ms.AddTool(getBattleStateTool(), s.handleGetBattleState)
	ms.AddTool(listDecksTool(), s.handleListDecks)
}

// --- Tool definitions ---

func startBattleTool() mcp.Tool {
	return mcp.NewTool("start_battle",
		mcp.WithDescription("Start a new negotiation battle. Returns the initial state and first pending decision. "+
			"With opponent 'human' the other side connects via `parley-cli join --addr localhost:<port> --deck N` "+
			"and this call blocks until they connect. With opponent 'auto' a built-in controller plays the other side."),
		mcp.WithNumber("agent_deck", mcp.Required(), mcp.Description("Deck number for the agent (1-indexed from the decks file)")),
		mcp.WithString("agent_side", mcp.Description("Side the agent plays: 'player' or 'opponent' (default 'player'; the opponent side moves first)")),
		mcp.WithString("opponent", mcp.Description("Who plays the other side: 'human' (default) or 'auto'")),
		mcp.WithNumber("opponent_deck", mcp.Description("Deck number for the auto opponent (default 2)")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending action list: play a card from hand or end the turn."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func getBattleStateTool() mcp.Tool {
	return mcp.NewTool("get_battle_state",
		mcp.WithDescription("Get the latest battle state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

func listDecksTool() mcp.Tool {
	return mcp.NewTool("list_decks",
		mcp.WithDescription("List the decks in the decks file with their origin and card counts."),
	)
}

// --- Tool handlers ---

func (s *Server) handleStartBattle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		return mcp.NewToolResultError("A battle is already running. Only one battle at a time is supported."), nil
	}

	agentDeck := request.GetInt("agent_deck", 0)
	if agentDeck < 1 {
		return mcp.NewToolResultError("agent_deck must be >= 1"), nil
	}
	var agentSide game.Side
	switch strings.ToLower(request.GetString("agent_side", "player")) {
	case "player":
		agentSide = game.SidePlayer
	case "opponent":
		agentSide = game.SideOpponent
	default:
		return mcp.NewToolResultError("agent_side must be 'player' or 'opponent'"), nil
	}
	mode := strings.ToLower(request.GetString("opponent", "human"))
	if mode != "human" && mode != "auto" {
		return mcp.NewToolResultError("opponent must be 'human' or 'auto'"), nil
	}

	sess, err := s.startSession(agentDeck, agentSide, mode, request.GetInt("opponent_deck", 2))
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start battle: %v", err), nil
	}
	s.session = sess

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	if mode == "human" {
		resp.Port = s.Port
	}
	if resp.BattleOver {
		s.session = nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// startSession loads both decks, connects the opponent, and starts the battle.
func (s *Server) startSession(agentDeck int, agentSide game.Side, mode string, opponentDeck int) (*Session, error) {
	lg := s.Logger
	if lg == nil {
		lg = zap.NewNop()
	}

	content, err := game.ParseContentFile(s.DeckFile)
	if err != nil {
		return nil, fmt.Errorf("load decks: %w", err)
	}
	agent, err := content.DeckByNumber(agentDeck)
	if err != nil {
		return nil, fmt.Errorf("load agent deck: %w", err)
	}

	var (
		opponent game.PlayerController
		human    *net.NetworkController
		closers  []func() error
	)
	if mode == "human" {
		ln, err := stdnet.Listen("tcp", ":"+s.Port)
		if err != nil {
			return nil, fmt.Errorf("listen on port %s: %w", s.Port, err)
		}
		// Blocks until the human runs `parley-cli join`.
		conn, joinMsg, err := net.AcceptJoin(ln)
		if err != nil {
			ln.Close()
			return nil, err
		}
		closers = append(closers, conn.Close, ln.Close)
		if joinMsg.DeckNumber != 0 {
			opponentDeck = joinMsg.DeckNumber
		}
		human = net.NewNetworkController(conn, agentSide.Other())
		opponent = human
	} else {
		opponent = &game.AutoController{}
	}

	other, err := content.DeckByNumber(opponentDeck)
	if err != nil {
		for _, c := range closers {
			_ = c()
		}
		return nil, fmt.Errorf("load opponent deck: %w", err)
	}

	var configs [2]game.CombatantConfig
	configs[agentSide] = game.CombatantConfig{Name: agent.Name, Origin: agent.Origin, Deck: agent.Cards}
	configs[agentSide.Other()] = game.CombatantConfig{Name: other.Name, Origin: other.Origin, Deck: other.Cards}

	battle := game.NewBattle(game.BattleConfig{
		Player:      configs[game.SidePlayer],
		Opponent:    configs[game.SideOpponent],
		Seed:        s.Seed,
		Logger:      log.NewMemoryLogger(),
		Diagnostics: lg,
	})
	lg.Info("mcp battle starting",
		zap.String("battle", battle.ID), zap.Stringer("agent_side", agentSide), zap.String("opponent", mode))

	started := time.Now()
	finish := func(b *game.Battle, runErr error) {
		if runErr != nil {
			lg.Warn("battle stopped", zap.String("battle", b.ID), zap.Error(runErr))
		}
		if human != nil {
			_ = human.SendBattleOver(b)
		}
		for _, c := range closers {
			_ = c()
		}
		if runErr == nil && s.Recorder != nil {
			if err := s.Recorder.RecordResult(context.Background(), storage.NewBattleRecord(b, started)); err != nil {
				lg.Warn("record result", zap.Error(err))
			}
		}
	}
	return newSession(battle, agentSide, opponent, finish), nil
}

// activeSession returns the running session, if any.
func (s *Server) activeSession() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// endSession forgets sess once its battle is over.
func (s *Server) endSession(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == sess {
		s.session = nil
	}
}

func (s *Server) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := s.activeSession()
	if sess == nil {
		return mcp.NewToolResultError("No battle is running. Use start_battle first."), nil
	}

	pending := sess.pending()
	if pending == nil {
		return mcp.NewToolResultError("No pending decision. The opponent is still acting."), nil
	}
	if pending.Type != DecisionChooseAction {
		return mcp.NewToolResultErrorf("Nothing to choose: pending decision is '%s'.", pending.Type), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Actions)-1), nil
	}

	if err := sess.respond(ctx, index); err != nil {
		return mcp.NewToolResultErrorf("Error sending action: %v", err), nil
	}

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	if resp.BattleOver {
		s.endSession(sess)
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (s *Server) handleGetBattleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := s.activeSession()
	if sess == nil {
		return mcp.NewToolResultError("No battle is running. Use start_battle first."), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.snapshot())), nil
}

func (s *Server) handleListDecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := game.ParseContentFile(s.DeckFile)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to load decks: %v", err), nil
	}
	var b strings.Builder
	for i, d := range content.Decks {
		fmt.Fprintf(&b, "%d. %s (%s, %d Resolve, %d AP): %d cards\n",
			i+1, d.Name, d.Origin.Name, d.Origin.MaxResolve, d.Origin.MaxActionPoints, len(d.Cards))
	}
	return mcp.NewToolResultText(b.String()), nil
}
