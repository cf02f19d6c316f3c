package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coder/quartz"

	"github.com/osse101/RouletteHouse_Go/internal/config"
	"github.com/osse101/RouletteHouse_Go/internal/oracle"
	"github.com/osse101/RouletteHouse_Go/internal/repository"
)

// StalePendingReporter lists settlements that outlived the process that
// created them
type StalePendingReporter interface {
	ReportStalePending(ctx context.Context) (int, error)
}

// NewSigner builds the randomness oracle client selected by ORACLE_MODE.
func NewSigner(cfg *config.Config, clock quartz.Clock) (oracle.Client, error) {
	switch cfg.OracleMode {
	case config.OracleModeLocal:
		signer, err := oracle.NewLocalSigner(cfg.OracleMasterKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateSigner, err)
		}
		slog.Warn(LogMsgSignerLocal, "environment", cfg.Environment)
		return signer, nil
	case config.OracleModeRemote:
		slog.Info(LogMsgSignerRemote, "url", cfg.OracleURL, "signer_id", cfg.OracleSignerID)
		return oracle.NewHTTPClient(oracle.HTTPClientConfig{
			BaseURL:  cfg.OracleURL,
			SignerID: cfg.OracleSignerID,
			Timeout:  cfg.OracleTimeout,
		}, clock), nil
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownOracleMode, cfg.OracleMode)
	}
}

// InitializeHouse seeds the house ledger on first boot and reports
// settlements still pending from an earlier run. Their stakes stay escrowed.
func InitializeHouse(ctx context.Context, repo repository.Settlement, stale StalePendingReporter, cfg *config.Config) error {
	if err := repo.EnsureLedger(ctx, cfg.HouseInitialBalance); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedEnsureLedger, err)
	}

	stats, err := repo.GetLedgerStats(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedReadStats, err)
	}
	slog.Info(LogMsgHouseLedgerReady,
		"house_balance", stats.HouseBalance.Decimal(cfg.AssetDecimals).String(),
		"spins_total", stats.SpinsTotal,
		"bets_total", stats.BetsTotal,
		"payout_total", stats.PayoutTotal.Decimal(cfg.AssetDecimals).String())

	count, err := stale.ReportStalePending(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedReportStale, err)
	}
	if count > 0 {
		slog.Warn(LogMsgStalePendingFound, "count", count)
	}
	return nil
}
