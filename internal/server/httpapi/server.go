// Package httpapi exposes the catalog over an HTTP JSON API (fiber). All
// routes except register and login sit behind the bearer-token middleware.
package httpapi

import (
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mkarpovs/studynotes/internal/logging"
	"github.com/mkarpovs/studynotes/internal/server/models"
)

// UserService is the credential/token surface the API binds to.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id string) error
}

// CatalogService is the class/semester/subject surface the API binds to.
type CatalogService interface {
	ListClasses(ctx context.Context) ([]*models.Class, error)
	CreateClass(ctx context.Context, name string) (*models.Class, error)
	DeleteClass(ctx context.Context, id string) error

	ListSemesters(ctx context.Context, classID string) ([]*models.Semester, error)
	CreateSemester(ctx context.Context, name, classID string) (*models.Semester, error)
	DeleteSemester(ctx context.Context, id string) error

	ListSubjects(ctx context.Context, semesterID string) ([]*models.Subject, error)
	CreateSubject(ctx context.Context, name, semesterID string) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id string) error
}

// NoteService is the upload surface the API binds to.
type NoteService interface {
	List(ctx context.Context, subjectID string) ([]*models.Note, error)
	Create(ctx context.Context, title, subjectID string, upload io.Reader, originalName string) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}

// Options carries the static wiring of the HTTP server.
type Options struct {
	Address   string
	SecretKey string
	// UploadsDir, when non-empty, is served read-only under /uploads.
	UploadsDir string
	// PublicDir, when non-empty, is served as the static front end under /.
	PublicDir string
}

type Server struct {
	app       *fiber.App
	address   string
	logger    logging.Logger
	users     UserService
	catalog   CatalogService
	notes     NoteService
	jwtSecret []byte
}

func NewServer(opts Options, l logging.Logger, us UserService, cs CatalogService, ns NoteService) *Server {
	s := &Server{
		address:   opts.Address,
		logger:    l.With("module", "http_server"),
		users:     us,
		catalog:   cs,
		notes:     ns,
		jwtSecret: []byte(opts.SecretKey),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	api := app.Group("/api")
	api.Post("/register", s.handleRegister)
	api.Post("/login", s.handleLogin)

	// registration order matters: everything below requires a token
	api.Use(s.requireToken)

	api.Get("/classes", s.handleListClasses)
	api.Post("/classes", s.handleCreateClass)
	api.Delete("/classes/:id", s.handleDeleteClass)

	api.Get("/semesters", s.handleListSemesters)
	api.Post("/semesters", s.handleCreateSemester)
	api.Delete("/semesters/:id", s.handleDeleteSemester)

	api.Get("/subjects", s.handleListSubjects)
	api.Post("/subjects", s.handleCreateSubject)
	api.Delete("/subjects/:id", s.handleDeleteSubject)

	api.Get("/notes", s.handleListNotes)
	api.Post("/notes", s.handleCreateNote)
	api.Delete("/notes/:id", s.handleDeleteNote)

	api.Get("/users", s.handleListUsers)
	api.Post("/users", s.handleCreateUser)
	api.Delete("/users/:id", s.handleDeleteUser)

	if opts.UploadsDir != "" {
		app.Static("/uploads", opts.UploadsDir)
	}
	if opts.PublicDir != "" {
		app.Static("/", opts.PublicDir)
	}

	s.app = app
	return s
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = s.app.ShutdownWithTimeout(5 * time.Second)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}
