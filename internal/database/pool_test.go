package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/RouletteHouse_Go/internal/testing/leaktest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	terminate := func() {}
	if !testing.Short() {
		testDBConnString, terminate = startPostgres(context.Background())
	}

	code := m.Run()
	terminate()
	os.Exit(code)
}

// startPostgres returns an empty connection string when docker is not
// available so the integration tests skip instead of failing
func startPostgres(ctx context.Context) (connStr string, terminate func()) {
	terminate = func() {}
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic starting postgres: %v\n", r)
		}
	}()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("roulette_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", terminate
	}

	terminate = func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		terminate()
		return "", func() {}
	}
	return connStr, terminate
}

func newTestPool(t *testing.T, maxConns int) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	pool, err := NewPool(testDBConnString, maxConns, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool("postgres://%zz", 5, time.Minute, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestPool_ReleasesConnections(t *testing.T) {
	pool := newTestPool(t, 5)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		conn, err := pool.Acquire(ctx)
		require.NoError(t, err, "acquire %d", i)

		_, err = conn.Exec(ctx, "SELECT * FROM missing_table")
		assert.Error(t, err)
		conn.Release()
	}

	assert.Zero(t, pool.Stat().AcquiredConns())
}

func TestPool_MaxConnsEnforced(t *testing.T) {
	const maxConns = 3
	pool := newTestPool(t, maxConns)
	ctx := context.Background()

	held := make([]*pgxpool.Conn, 0, maxConns)
	for i := 0; i < maxConns; i++ {
		conn, err := pool.Acquire(ctx)
		require.NoError(t, err)
		held = append(held, conn)
	}
	assert.Equal(t, int32(maxConns), pool.Stat().AcquiredConns())

	shortCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	_, err := pool.Acquire(shortCtx)
	cancel()
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	held[0].Release()
	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	conn.Release()

	for _, c := range held[1:] {
		c.Release()
	}
}

func TestPool_ConcurrentAccess(t *testing.T) {
	pool := newTestPool(t, 10)
	checker := leaktest.NewGoroutineChecker(t)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			var got int
			if err := pool.QueryRow(ctx, "SELECT $1::int", i).Scan(&got); err != nil {
				return err
			}
			if got != i {
				return fmt.Errorf("worker %d read %d", i, got)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Zero(t, pool.Stat().AcquiredConns())
	checker.Check(2)
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := newTestPool(t, 5)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool))

	for _, table := range []string{"house_ledger", "pending_settlements", "token_balances", "transfers"} {
		var exists bool
		require.NoError(t, pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists))
		assert.True(t, exists, "table %s", table)
	}
}
