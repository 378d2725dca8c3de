// Package server initializes and runs the catalog server: it wires config,
// logging, the database, the blob store, services, and the HTTP API, and
// handles graceful shutdown. All store handles are constructed here and
// passed down explicitly; nothing is package-level state.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/mkarpovs/studynotes/internal/logging"
	"github.com/mkarpovs/studynotes/internal/server/auth"
	"github.com/mkarpovs/studynotes/internal/server/blobstore"
	"github.com/mkarpovs/studynotes/internal/server/config"
	"github.com/mkarpovs/studynotes/internal/server/httpapi"
	"github.com/mkarpovs/studynotes/internal/server/repositories/repomanager"
	"github.com/mkarpovs/studynotes/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger := NewLogger(c.LogFormat)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	blobs, uploadsDir, err := newBlobStore(c)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	hasher := auth.NewBcryptHasher(c.BcryptCost)

	us := services.NewUserService(db, rm, hasher, c)
	cs := services.NewCatalogService(db, rm, blobs)
	ns := services.NewNoteService(db, rm, blobs)

	httpServer := httpapi.NewServer(httpapi.Options{
		Address:    c.EndpointAddrHTTP,
		SecretKey:  c.SecretKey,
		UploadsDir: uploadsDir,
		PublicDir:  c.PublicDir,
	}, logger, us, cs, ns)

	return &App{config: c, logger: logger, db: db, httpServer: httpServer}, nil
}

// NewLogger builds the configured Logger implementation: slog JSON by
// default, zerolog console output when format is "console".
func NewLogger(format string) logging.Logger {
	if format == "console" {
		zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
		return logging.NewZerologLogger(zl)
	}
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

func newBlobStore(c *config.Config) (blobstore.Store, string, error) {
	if c.BlobBackend == config.BackendS3 {
		s, err := blobstore.NewS3Store(context.Background(), blobstore.S3Config{
			RootUser:     c.S3RootUser,
			RootPassword: c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		// no local mount when blobs live in the bucket
		return s, "", err
	}

	s, err := blobstore.NewLocalStore(c.UploadsDir, "/uploads")
	if err != nil {
		return nil, "", err
	}
	return s, s.RootDir(), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "blob_backend", app.config.BlobBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
