// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mkarpovs/studynotes/internal/dbx"
	"github.com/mkarpovs/studynotes/internal/server/migrations"
	"github.com/mkarpovs/studynotes/internal/server/repositories/classes"
	"github.com/mkarpovs/studynotes/internal/server/repositories/notes"
	"github.com/mkarpovs/studynotes/internal/server/repositories/semesters"
	"github.com/mkarpovs/studynotes/internal/server/repositories/subjects"
	"github.com/mkarpovs/studynotes/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Classes returns a classes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Classes(db dbx.DBTX) classes.Repository {
	return classes.NewPostgresRepository(db)
}

// Semesters returns a semesters.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Semesters(db dbx.DBTX) semesters.Repository {
	return semesters.NewPostgresRepository(db)
}

// Subjects returns a subjects.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Subjects(db dbx.DBTX) subjects.Repository {
	return subjects.NewPostgresRepository(db)
}

// Notes returns a notes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	return notes.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
