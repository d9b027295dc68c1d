//go:build integration

// Package integration runs the storefront against a real PostgreSQL started
// with testcontainers and migrated with the embedded SQL migrations.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/config"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/migration"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

const (
	testDBName     = "flipcart_test"
	testDBUser     = "postgres"
	testDBPassword = "postgres"
)

var (
	// one container per package run
	sharedContainer *tcpostgres.PostgresContainer
	sharedConfig    config.DatabaseConfig
	sharedMu        sync.Mutex
)

// TestDB is a migrated database connection for one test
type TestDB struct {
	*persistence.Database
	Config config.DatabaseConfig
	t      *testing.T
}

// NewTestDB connects to the shared container, starting and migrating it on
// first use, and truncates every table so the test starts empty
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := containerConfig(t)
	db, err := persistence.NewDatabase(&cfg, nil)
	require.NoError(t, err, "Failed to connect to database")

	tdb := &TestDB{Database: db, Config: cfg, t: t}
	t.Cleanup(func() {
		_ = db.Close()
	})
	tdb.CleanTables()
	return tdb
}

func containerConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedContainer != nil {
		return sharedConfig
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(testDBName),
		tcpostgres.WithUsername(testDBUser),
		tcpostgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Driver:       "postgres",
		Host:         host,
		Port:         port.Int(),
		User:         testDBUser,
		Password:     testDBPassword,
		DBName:       testDBName,
		SSLMode:      "disable",
		MaxOpenConns: 10,
		MaxIdleConns: 2,
	}
	migrateUp(t, cfg)

	sharedContainer = container
	sharedConfig = cfg
	return cfg
}

// migrateUp applies the embedded migrations
func migrateUp(t *testing.T, cfg config.DatabaseConfig) {
	t.Helper()

	sqlDB, err := sql.Open("postgres", cfg.DSN())
	require.NoError(t, err)
	defer sqlDB.Close()

	m, err := migration.New(sqlDB, "", zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to run migrations")
}

// CleanTables truncates every application table
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to list tables")

	for _, table := range tables {
		require.NoError(tdb.t, tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %q CASCADE", table)).Error)
	}
}

// CleanupSharedContainer terminates the shared container. Call it from TestMain.
func CleanupSharedContainer() {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedContainer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = sharedContainer.Terminate(ctx)
	sharedContainer = nil
}
