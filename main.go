package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/fairsettle/fairsettle-go/internal/api"
	"github.com/fairsettle/fairsettle-go/internal/config"
	"github.com/fairsettle/fairsettle-go/internal/engine"
	"github.com/fairsettle/fairsettle-go/internal/games"
	"github.com/fairsettle/fairsettle-go/internal/session"
	"github.com/fairsettle/fairsettle-go/internal/stats"
	"github.com/fairsettle/fairsettle-go/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			log.Fatalf("serve: %v", err)
		}
	case "simulate":
		if err := runSimulate(os.Args[2:]); err != nil {
			log.Fatalf("simulate: %v", err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: fairsettle <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  serve      run the HTTP settlement API")
	fmt.Fprintln(os.Stderr, "  simulate   run one settlement batch to completion")
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts := []api.Option{
		api.WithScheduling(cfg.TickInterval(), cfg.BatchSize),
	}

	if cfg.DBPath != "" {
		db, err := store.NewSQLiteDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open history db: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("migrate history db: %w", err)
		}
		opts = append(opts, api.WithHistory(db))
	}

	server := api.NewServer(opts...)
	log.Printf("listening on %s (%d games registered)", cfg.Addr, len(games.List()))
	return http.ListenAndServe(cfg.Addr, server.Routes())
}

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	gameID := fs.String("game", "coinflip", "game id to settle with")
	count := fs.Int("n", 1000, "number of games to run")
	player1 := fs.String("p1", "player1", "first party label")
	player2 := fs.String("p2", "player2", "second party label")
	batch := fs.Int("batch", session.DefaultBatchSize, "games per scheduler tick")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := session.New(*gameID, *player1, *player2, *count)
	if err != nil {
		return err
	}
	fmt.Printf("session %s\nseed    %s\n\n", sess.ID, sess.Seed)

	bar := pb.StartNew(*count)
	for sess.State != session.StateComplete {
		var batchResults []games.GameResult
		sess, batchResults, err = session.Tick(sess, *batch)
		if err != nil {
			return err
		}
		bar.Add(len(batchResults))
	}
	bar.Finish()

	tally := sess.Tally()
	fmt.Printf("\n%-20s %d\n", *player1, tally[*player1])
	fmt.Printf("%-20s %d\n", *player2, tally[*player2])
	fmt.Printf("%-20s %d\n", "ties", tally[games.TieWinner])
	fmt.Printf("%-20s %s\n", "winner", sess.Winner)

	// Uniformity telemetry over the session's primary derivation stream.
	values := make([]float64, *count)
	for i := range values {
		values[i] = engine.Derive(sess.Seed, "verify-"+sess.ID, i)
	}
	f := stats.Summarize(values)
	fmt.Printf("\nfairness: chi2=%.2f p=%.3f mean=%.4f sd=%.4f\n",
		f.ChiSquare, f.PValue, f.Mean, f.StdDev)
	return nil
}
