package main

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/oracle"
	"github.com/osse101/RouletteHouse_Go/internal/roulette"
)

// ByteSource yields the random bytes that select wheel pockets
type ByteSource interface {
	Next(ctx context.Context) (byte, error)
}

// Options configures a simulation run
type Options struct {
	Spins     int
	Workers   int
	Seed      int64
	Bets      []domain.Bet
	NewSource func(rng *rand.Rand) ByteSource
}

// KindResult is the tally for one bet placed on every simulated spin
type KindResult struct {
	Bet          domain.Bet
	Bets         int
	Wins         int
	Returned     uint64
	ExactWinRate float64
}

// WinRate is the observed fraction of winning spins
func (r KindResult) WinRate() float64 {
	if r.Bets == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Bets)
}

// Return is the average amount paid back per unit staked
func (r KindResult) Return() float64 {
	if r.Bets == 0 {
		return 0
	}
	return float64(r.Returned) / float64(r.Bets)
}

// HouseEdge is the fraction of stake the house keeps on average
func (r KindResult) HouseEdge() float64 {
	return 1 - r.Return()
}

// ZScore measures how far the observed win rate is from the exact one in
// standard errors
func (r KindResult) ZScore() float64 {
	p := r.ExactWinRate
	if r.Bets == 0 || p == 0 || p == 1 {
		return 0
	}
	se := math.Sqrt(p * (1 - p) / float64(r.Bets))
	return (r.WinRate() - p) / se
}

// ExactWinRate counts the bytes 0-255 that win bet, which includes the
// modulo-37 bias of the byte to pocket mapping
func ExactWinRate(bet domain.Bet) float64 {
	wins := 0
	for b := 0; b < 256; b++ {
		if roulette.Evaluate(byte(b), bet).Won {
			wins++
		}
	}
	return float64(wins) / 256
}

// Simulate spreads the spins across workers, each with its own source
func Simulate(ctx context.Context, opts Options) ([]KindResult, error) {
	if opts.Spins <= 0 {
		return nil, fmt.Errorf("%w: spins must be positive", domain.ErrInvalidInput)
	}
	if len(opts.Bets) == 0 {
		return nil, fmt.Errorf("%w: no bets", domain.ErrInvalidInput)
	}
	for _, bet := range opts.Bets {
		if !roulette.Validate(bet) {
			return nil, fmt.Errorf("%w: %s selector %d", domain.ErrIllegalBet, bet.Kind, bet.Selector)
		}
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.NewSource == nil {
		opts.NewSource = NewUniformSource
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	perWorker := opts.Spins / opts.Workers
	remainder := opts.Spins % opts.Workers

	g, gctx := errgroup.WithContext(ctx)
	partials := make([][]KindResult, opts.Workers)

	for w := 0; w < opts.Workers; w++ {
		spins := perWorker
		if w < remainder {
			spins++
		}
		source := opts.NewSource(rand.New(rand.NewSource(rng.Int63())))

		g.Go(func() error {
			tally, err := runWorker(gctx, source, opts.Bets, spins)
			if err != nil {
				return err
			}
			partials[w] = tally
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]KindResult, len(opts.Bets))
	for i, bet := range opts.Bets {
		results[i] = KindResult{Bet: bet, ExactWinRate: ExactWinRate(bet)}
		for _, tally := range partials {
			results[i].Bets += tally[i].Bets
			results[i].Wins += tally[i].Wins
			results[i].Returned += tally[i].Returned
		}
	}
	return results, nil
}

func runWorker(ctx context.Context, source ByteSource, bets []domain.Bet, spins int) ([]KindResult, error) {
	tally := make([]KindResult, len(bets))
	for s := 0; s < spins; s++ {
		if s%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		b, err := source.Next(ctx)
		if err != nil {
			return nil, err
		}
		for i, bet := range bets {
			out := roulette.Evaluate(b, bet)
			tally[i].Bets++
			if out.Won {
				tally[i].Wins++
				tally[i].Returned += uint64(out.Multiple) + 1
			}
		}
	}
	return tally, nil
}

type uniformSource struct {
	rng *rand.Rand
}

// NewUniformSource draws independent uniform bytes
func NewUniformSource(rng *rand.Rand) ByteSource {
	return &uniformSource{rng: rng}
}

func (s *uniformSource) Next(context.Context) (byte, error) {
	return byte(s.rng.Intn(256)), nil
}

// signerSource settles spins from real signatures, the same way a batch
// consumes its oracle response
type signerSource struct {
	signer *oracle.LocalSigner
	rng    *rand.Rand
	buf    []byte
}

func newSignerSource(signer *oracle.LocalSigner, rng *rand.Rand) ByteSource {
	return &signerSource{signer: signer, rng: rng}
}

func (s *signerSource) Next(ctx context.Context) (byte, error) {
	if len(s.buf) == 0 {
		seed := make([]byte, oracle.SeedLength)
		for i := 0; i < len(seed); i += 8 {
			binary.BigEndian.PutUint64(seed[i:], s.rng.Uint64())
		}
		resp, err := s.signer.Sign(ctx, oracle.SignRequest{
			Payload: hex.EncodeToString(seed),
			Path:    "simulate",
			Domain:  oracle.DomainECDSA,
		})
		if err != nil {
			return 0, err
		}
		stream, err := oracle.RandomBytes(resp)
		if err != nil {
			return 0, err
		}
		s.buf = stream
	}
	b := s.buf[0]
	s.buf = s.buf[1:]
	return b, nil
}

func sourceFactory(name, masterKey string) (func(rng *rand.Rand) ByteSource, error) {
	switch name {
	case sourceUniform:
		return NewUniformSource, nil
	case sourceSigner:
		signer, err := oracle.NewLocalSigner(masterKey)
		if err != nil {
			return nil, err
		}
		return func(rng *rand.Rand) ByteSource { return newSignerSource(signer, rng) }, nil
	}
	return nil, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, name)
}
