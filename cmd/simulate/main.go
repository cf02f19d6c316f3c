package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

const (
	sourceUniform = "uniform"
	sourceSigner  = "signer"
)

type CLI struct {
	Spins     int      `default:"1000000" help:"Number of wheel spins to simulate"`
	Workers   int      `short:"w" default:"0" help:"Parallel workers (0 for one per CPU)"`
	Seed      int64    `default:"0" help:"RNG seed (0 for random)"`
	Source    string   `default:"uniform" enum:"uniform,signer" help:"Byte source: uniform random bytes or local signer signatures"`
	MasterKey string   `env:"ORACLE_MASTER_KEY" help:"Hex master key for the signer source (random if empty)"`
	Kinds     []string `help:"Bet kinds to evaluate (default: all)"`
	Selector  uint8    `default:"1" help:"Selector used for kinds that take one"`
	Verbose   bool     `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("simulate"),
		kong.Description("Monte-Carlo check of roulette win rates and house edge"))

	if cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	if cli.Workers <= 0 {
		cli.Workers = runtime.NumCPU()
	}
	if cli.Seed == 0 {
		cli.Seed = time.Now().UnixNano()
	}

	bets, err := parseBets(cli.Kinds, cli.Selector)
	if err != nil {
		log.Error("Invalid bet kinds", "error", err)
		kctx.Exit(1)
	}

	newSource, err := sourceFactory(cli.Source, cli.MasterKey)
	if err != nil {
		log.Error("Invalid byte source", "error", err)
		kctx.Exit(1)
	}

	log.Info("Simulating", "spins", cli.Spins, "workers", cli.Workers, "source", cli.Source, "seed", cli.Seed)

	start := time.Now()
	results, err := Simulate(context.Background(), Options{
		Spins:     cli.Spins,
		Workers:   cli.Workers,
		Seed:      cli.Seed,
		Bets:      bets,
		NewSource: newSource,
	})
	if err != nil {
		log.Error("Simulation failed", "error", err)
		kctx.Exit(1)
	}
	log.Debug("Simulation finished", "duration", time.Since(start))

	printResults(results)
}

func parseBets(kinds []string, selector uint8) ([]domain.Bet, error) {
	if len(kinds) == 0 {
		bets := make([]domain.Bet, 0, len(domain.AllBetKinds()))
		for _, k := range domain.AllBetKinds() {
			bets = append(bets, domain.Bet{Kind: k, Amount: domain.NewAmount(1), Selector: selector})
		}
		return bets, nil
	}

	bets := make([]domain.Bet, 0, len(kinds))
	for _, name := range kinds {
		k, err := domain.ParseBetKind(name)
		if err != nil {
			return nil, err
		}
		bets = append(bets, domain.Bet{Kind: k, Amount: domain.NewAmount(1), Selector: selector})
	}
	return bets, nil
}

func printResults(results []KindResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "kind\tselector\tbets\twin rate\texact\tz\treturn\thouse edge\t")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.5f\t%.5f\t%+.2f\t%.5f\t%.3f%%\t\n",
			r.Bet.Kind, r.Bet.Selector, r.Bets,
			r.WinRate(), r.ExactWinRate, r.ZScore(),
			r.Return(), r.HouseEdge()*100)
	}
	w.Flush()
}
