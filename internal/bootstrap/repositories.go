package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RouletteHouse_Go/internal/database/postgres"
	"github.com/osse101/RouletteHouse_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Settlement repository.Settlement
	Accounts   repository.Accounts
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Settlement: postgres.NewSettlementRepository(dbPool),
		Accounts:   postgres.NewAccountsRepository(dbPool),
	}
}
