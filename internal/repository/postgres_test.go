package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/jobportal/internal/config"
	"github.com/deppfellow/jobportal/internal/database"
	"github.com/deppfellow/jobportal/internal/repository"
	"github.com/deppfellow/jobportal/internal/repository/repotest"
	"github.com/deppfellow/jobportal/internal/sqlerr"
)

// testDatabase connects to JOBPORTAL_TEST_DATABASE_URL and applies the
// schema, or skips the test when the variable is unset.
func testDatabase(t *testing.T) *database.Database {
	t.Helper()

	url := os.Getenv("JOBPORTAL_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("JOBPORTAL_TEST_DATABASE_URL not set")
	}

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Database: config.DatabaseConfig{
			URL:             url,
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 60,
			ConnMaxIdleTime: 60,
			QueryTimeout:    5 * time.Second,
		},
	}

	logger := zerolog.Nop()
	db := database.New(cfg, &logger, nil)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := database.Migrate(ctx, &logger, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func truncate(t *testing.T, db *database.Database) {
	t.Helper()
	ctx := context.Background()

	pool, err := db.Pool(ctx)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}

	_, err = pool.Exec(ctx, `TRUNCATE interviews, applications, job_postings, companies, users RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func TestPostgresRepositoryContract(t *testing.T) {
	db := testDatabase(t)

	repotest.Run(t, func(t *testing.T) *repository.Repositories {
		truncate(t, db)
		return repository.NewPostgresRepositories(db)
	})
}

func TestPostgresPoolIsRecreatedAfterClose(t *testing.T) {
	db := testDatabase(t)
	truncate(t, db)
	repos := repository.NewPostgresRepositories(db)
	ctx := context.Background()

	if _, err := repos.Users.FindAll(ctx); err != nil {
		t.Fatalf("first query: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := repos.Users.FindAll(ctx); err != nil {
		t.Fatalf("query after close: %v", err)
	}
}

func TestPostgresCanceledContextIsTimeout(t *testing.T) {
	db := testDatabase(t)
	repos := repository.NewPostgresRepositories(db)

	// Warm the pool so the failure comes from the query, not the dial.
	if _, err := repos.Companies.FindAll(context.Background()); err != nil {
		t.Fatalf("warm up: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := repos.Companies.FindAll(ctx)
	if err == nil {
		t.Fatalf("expected an error on an expired context")
	}
	if sqlerr.KindOf(err) != sqlerr.KindTimeout {
		t.Fatalf("expected timeout kind, got %q (%v)", sqlerr.KindOf(err), err)
	}
}
