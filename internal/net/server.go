package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/parley/internal/game"
	"github.com/peterkuimelis/parley/internal/log"
	"github.com/peterkuimelis/parley/internal/storage"
)

// ResultRecorder persists finished battles.
type ResultRecorder interface {
	RecordResult(ctx context.Context, rec storage.BattleRecord) error
}

// Server hosts a battle: the host plays the player side from a local REPL,
// one TCP client plays the opponent side.
type Server struct {
	DeckFile string
	Port     string
	HostDeck int // host's deck number (1-indexed)
	Seed     int64

	Recorder ResultRecorder // optional
	Logger   *zap.Logger    // optional
}

// Run starts the server, waits for a client to join, then runs the battle.
func (s *Server) Run(ctx context.Context) error {
	lg := s.Logger
	if lg == nil {
		lg = zap.NewNop()
	}

	content, err := game.ParseContentFile(s.DeckFile)
	if err != nil {
		return fmt.Errorf("load decks: %w", err)
	}

	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Printf("Waiting for opponent on port %s...\n", s.Port)

	conn, joinMsg, err := AcceptJoin(ln)
	if err != nil {
		return err
	}
	defer conn.Close()

	lg.Info("opponent connected", zap.String("remote", conn.RemoteAddr().String()))

	joinerDeck := joinMsg.DeckNumber
	if joinerDeck == 0 {
		joinerDeck = 2
	}

	hostDeck, err := content.DeckByNumber(s.HostDeck)
	if err != nil {
		return fmt.Errorf("load host deck: %w", err)
	}
	oppDeck, err := content.DeckByNumber(joinerDeck)
	if err != nil {
		return fmt.Errorf("load joiner deck: %w", err)
	}

	fmt.Printf("Host: %s as %s (%d cards)\n", hostDeck.Name, hostDeck.Origin.Name, len(hostDeck.Cards))
	fmt.Printf("Joiner: %s as %s (%d cards)\n", oppDeck.Name, oppDeck.Origin.Name, len(oppDeck.Cards))

	// Create a pipe for the host's local connection
	hostConn, hostServerConn := net.Pipe()

	// Player side = host, opponent side = joiner
	hostCtrl := NewNetworkController(hostServerConn, game.SidePlayer)
	joinerCtrl := NewNetworkController(conn, game.SideOpponent)

	battle := game.NewBattle(game.BattleConfig{
		Player:      game.CombatantConfig{Name: hostDeck.Name, Origin: hostDeck.Origin, Deck: hostDeck.Cards},
		Opponent:    game.CombatantConfig{Name: oppDeck.Name, Origin: oppDeck.Origin, Deck: oppDeck.Cards},
		Seed:        s.Seed,
		Logger:      log.NewTextLogger(os.Stdout),
		Diagnostics: lg,
	})

	// Run the host's local REPL in a goroutine
	replErr := make(chan error, 1)
	go func() {
		client := NewClient(hostConn, "Player")
		replErr <- client.RunREPL(ctx)
	}()

	battleErr := make(chan error, 1)
	go func() {
		started := time.Now()
		if _, err := battle.Run(ctx, hostCtrl, joinerCtrl); err != nil {
			battleErr <- fmt.Errorf("battle error: %w", err)
			return
		}
		_ = joinerCtrl.SendBattleOver(battle)
		_ = hostCtrl.SendBattleOver(battle)

		if s.Recorder != nil {
			if err := s.Recorder.RecordResult(ctx, storage.NewBattleRecord(battle, started)); err != nil {
				lg.Warn("record result", zap.Error(err))
			}
		}
		battleErr <- nil
	}()

	// The host REPL exits on battle_over; wait for the battle goroutine to
	// finish recording before returning.
	select {
	case err := <-battleErr:
		return err
	case err := <-replErr:
		if err != nil {
			return err
		}
		return <-battleErr
	}
}

// AcceptJoin accepts one connection from ln and reads its join message.
// The returned connection replays anything read past the handshake.
func AcceptJoin(ln net.Listener) (net.Conn, ClientMessage, error) {
	conn, err := ln.Accept()
	if err != nil {
		return nil, ClientMessage{}, fmt.Errorf("accept: %w", err)
	}
	dec := json.NewDecoder(conn)
	var joinMsg ClientMessage
	if err := dec.Decode(&joinMsg); err != nil {
		conn.Close()
		return nil, ClientMessage{}, fmt.Errorf("read join message: %w", err)
	}
	if joinMsg.Type != "join" {
		conn.Close()
		return nil, ClientMessage{}, fmt.Errorf("expected join message, got %q", joinMsg.Type)
	}
	return &prefixedConn{Conn: conn, r: io.MultiReader(dec.Buffered(), conn)}, joinMsg, nil
}

// prefixedConn replays bytes the handshake decoder buffered before reading
// from the connection again.
type prefixedConn struct {
	net.Conn
	r io.Reader
}

func (c *prefixedConn) Read(p []byte) (int, error) {
	return c.r.Read(p)
}
