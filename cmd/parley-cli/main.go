package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/parley/internal/config"
	"github.com/peterkuimelis/parley/internal/game"
	"github.com/peterkuimelis/parley/internal/log"
	parleynet "github.com/peterkuimelis/parley/internal/net"
	"github.com/peterkuimelis/parley/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "host":
		err = runHost(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	case "sim":
		err = runSim(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  parley-cli host [--deck N] [--port P] [--decks FILE] [--db FILE] [--seed S]")
	fmt.Println("  parley-cli join [--deck N] [--addr ADDR]")
	fmt.Println("  parley-cli sim  [--deck N] [--vs M] [--decks FILE] [--db FILE] [--seed S]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  host    Start a battle server and play the player side")
	fmt.Println("  join    Connect to a battle server and play the opponent side")
	fmt.Println("  sim     Run a battle between two automatic controllers")
	fmt.Println()
	fmt.Println("Environment: PARLEY_DECKS, PARLEY_PORT, PARLEY_DB, PARLEY_LOG_LEVEL, PARLEY_SEED")
}

// parseFlags loads env config, binds the common flags, and parses args.
func parseFlags(fs *flag.FlagSet, args []string) (config.Config, *zap.Logger, error) {
	cfg, err := config.ParseEnv()
	if err != nil {
		return config.Config{}, nil, err
	}
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return config.Config{}, nil, err
	}
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// openStore opens the result store when a path is configured.
func openStore(cfg config.Config, logger *zap.Logger) (*storage.Store, error) {
	if cfg.DBPath == "" {
		return nil, nil
	}
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	logger.Info("recording results", zap.String("db", cfg.DBPath))
	return store, nil
}

func runHost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	deck := fs.Int("deck", 1, "deck number to use (from the decks file)")
	cfg, logger, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	srv := &parleynet.Server{
		DeckFile: cfg.DeckFile,
		Port:     cfg.Port,
		HostDeck: *deck,
		Seed:     cfg.Seed,
		Logger:   logger,
	}
	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		srv.Recorder = store
	}
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	deck := fs.Int("deck", 2, "deck number to use (from the host's decks file)")
	addr := fs.String("addr", "localhost:7777", "server address to connect to")
	fs.Parse(args)

	return parleynet.Connect(ctx, *addr, *deck)
}

func runSim(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	deck := fs.Int("deck", 1, "player deck number")
	vs := fs.Int("vs", 2, "opponent deck number")
	quiet := fs.Bool("quiet", false, "print only the result")
	cfg, logger, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	content, err := game.ParseContentFile(cfg.DeckFile)
	if err != nil {
		return fmt.Errorf("load decks: %w", err)
	}
	player, err := content.DeckByNumber(*deck)
	if err != nil {
		return err
	}
	opponent, err := content.DeckByNumber(*vs)
	if err != nil {
		return err
	}

	var events log.EventLogger = log.NewTextLogger(os.Stdout)
	if *quiet {
		events = log.NewMemoryLogger()
	}
	battle := game.NewBattle(game.BattleConfig{
		Player:      game.CombatantConfig{Name: player.Name, Origin: player.Origin, Deck: player.Cards},
		Opponent:    game.CombatantConfig{Name: opponent.Name, Origin: opponent.Origin, Deck: opponent.Cards},
		Seed:        cfg.Seed,
		Logger:      events,
		Diagnostics: logger,
	})

	started := time.Now()
	result, err := battle.Run(ctx, &game.AutoController{}, &game.AutoController{})
	if err != nil {
		return err
	}

	outcome := "no decision"
	if result.Decided {
		outcome = result.Winner.String() + " wins"
	}
	fmt.Printf("%s vs %s: %s after %d turns (%s)\n", player.Name, opponent.Name, outcome, result.Turns, result.Reason)

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		if err := store.RecordResult(ctx, storage.NewBattleRecord(battle, started)); err != nil {
			return err
		}
	}
	return nil
}
