// Command seed creates the admin user and a small sample hierarchy so a
// fresh deployment has something to log in to. Running it twice is safe:
// an existing admin is left alone and the sample data is only created
// alongside a fresh admin.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mkarpovs/studynotes/internal/common"
	"github.com/mkarpovs/studynotes/internal/server"
	"github.com/mkarpovs/studynotes/internal/server/auth"
	"github.com/mkarpovs/studynotes/internal/server/blobstore"
	"github.com/mkarpovs/studynotes/internal/server/config"
	"github.com/mkarpovs/studynotes/internal/server/repositories/repomanager"
	"github.com/mkarpovs/studynotes/internal/server/services"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	logger := server.NewLogger(cfg.LogFormat)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	blobs, err := blobstore.NewLocalStore(cfg.UploadsDir, "/uploads")
	if err != nil {
		log.Fatalf("blob store error: %v", err)
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	users := services.NewUserService(db, rm, hasher, cfg)
	catalog := services.NewCatalogService(db, rm, blobs)
	notes := services.NewNoteService(db, rm, blobs)

	username := envOr("ADMIN_USERNAME", "admin")
	password := envOr("ADMIN_PASSWORD", "admin123")

	if _, err := users.Register(ctx, username, password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			logger.Info(ctx, "admin already exists, nothing to do", "username", username)
			return
		}
		log.Fatalf("admin creation error: %v", err)
	}
	logger.Info(ctx, "admin user created", "username", username)

	class, err := catalog.CreateClass(ctx, "BCA")
	if err != nil {
		log.Fatalf("sample class error: %v", err)
	}
	semester, err := catalog.CreateSemester(ctx, "Semester 1", class.ID)
	if err != nil {
		log.Fatalf("sample semester error: %v", err)
	}
	subject, err := catalog.CreateSubject(ctx, "Database", semester.ID)
	if err != nil {
		log.Fatalf("sample subject error: %v", err)
	}

	sample := strings.NewReader("sample note content\n")
	if _, err := notes.Create(ctx, "Intro to DBMS", subject.ID, sample, "sample.pdf"); err != nil {
		log.Fatalf("sample note error: %v", err)
	}

	logger.Info(ctx, "sample hierarchy created",
		"class", class.Name, "semester", semester.Name, "subject", subject.Name)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
