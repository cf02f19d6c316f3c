package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// numeric encodes an Amount as an exact NUMERIC parameter
func numeric(a domain.Amount) pgtype.Numeric {
	return pgtype.Numeric{Int: a.Big(), Exp: 0, Valid: true}
}

// parseAmount decodes a NUMERIC column selected with a ::text cast
func parseAmount(column, s string) (domain.Amount, error) {
	a, err := domain.ParseAmount(s)
	if err != nil {
		return domain.Amount{}, fmt.Errorf("%s %s: %w", ErrMsgInvalidStoredAmount, column, err)
	}
	return a, nil
}

// isPgError reports whether err carries the given SQLSTATE
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// assetColumns splits an asset into its kind and token columns
func assetColumns(a domain.PayoutAsset) (kind, tokenID string) {
	if a.IsNative() {
		return string(domain.AssetKindNative), ""
	}
	return string(a.Kind), a.TokenID
}

func assetFromColumns(kind, tokenID string) domain.PayoutAsset {
	if domain.AssetKind(kind) == domain.AssetKindToken {
		return domain.TokenAsset(tokenID)
	}
	return domain.NativeAsset()
}
