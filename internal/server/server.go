// Package server wires the HTTP surface: routing, middleware, handlers and
// server-rendered views.
package server

import (
	"context"
	"log/slog"
	"time"

	"uplift/internal/cache"
	"uplift/internal/config"
	"uplift/internal/database"
	"uplift/internal/middleware"
	"uplift/internal/moderation"
	"uplift/internal/repository"
	"uplift/internal/service"
	"uplift/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds the application's HTTP surface and its dependencies.
type Server struct {
	config   *config.Config
	db       *gorm.DB
	app      *fiber.App
	sessions *session.Manager
	prom     *fiberprometheus.FiberPrometheus

	userRepo          repository.UserRepository
	feedService       *service.FeedService
	submissionService *service.SubmissionService
	replyService      *service.ReplyService
}

// access classifies a route for the auth gate.
type access int

const (
	public access = iota
	protected
)

// route is one row of the routing table. Every path the application serves is
// declared here with its access class; nothing is classified ad hoc inside
// handlers.
type route struct {
	method  string
	path    string
	access  access
	handler fiber.Handler
}

// NewServer creates a fully wired server: database, Redis, session store,
// repositories and services.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)

	var storage fiber.Storage
	if client := cache.GetClient(); client != nil {
		storage = cache.NewSessionStorage(client)
	}

	return NewServerWithDeps(cfg, db, storage), nil
}

// NewServerWithDeps wires a server onto an existing database handle and
// session storage. Tests use it with an in-memory SQLite handle and nil
// storage.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, storage fiber.Storage) *Server {
	userRepo := repository.NewUserRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	reactionRepo := repository.NewReactionRepository(db)

	filter := moderation.NewFilter(moderation.NewVaderScorer())

	s := &Server{
		config:            cfg,
		db:                db,
		sessions:          session.NewManager(storage),
		prom:              middleware.InitMetrics("uplift"),
		userRepo:          userRepo,
		feedService:       service.NewFeedService(submissionRepo, reactionRepo),
		submissionService: service.NewSubmissionService(submissionRepo, reactionRepo, filter),
		replyService:      service.NewReplyService(replyRepo, submissionRepo, filter),
	}

	s.app = fiber.New(fiber.Config{
		Views:        newViewEngine(),
		ErrorHandler: s.errorHandler,
	})

	s.setupMiddleware()
	s.registerRoutes()

	return s
}

// App exposes the underlying Fiber app for handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// WithModerationScorer swaps the sentiment scorer. Tests use it to make
// verdicts deterministic.
func (s *Server) WithModerationScorer(scorer moderation.Scorer) *Server {
	filter := moderation.NewFilter(scorer)
	submissionRepo := repository.NewSubmissionRepository(s.db)
	replyRepo := repository.NewReplyRepository(s.db)
	reactionRepo := repository.NewReactionRepository(s.db)
	s.submissionService = service.NewSubmissionService(submissionRepo, reactionRepo, filter)
	s.replyService = service.NewReplyService(replyRepo, submissionRepo, filter)
	return s
}

func (s *Server) setupMiddleware() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New())

	if s.config.TracingEnabled {
		s.app.Use(middleware.TracingMiddleware())
	}

	// Viewer resolution must precede the context middleware so user_id lands
	// in the request context for logging.
	s.app.Use(s.viewerMiddleware())
	s.app.Use(middleware.ContextMiddleware())

	s.prom.RegisterAt(s.app, "/metrics")
	s.app.Use(middleware.MetricsMiddleware(s.prom))

	s.app.Use(helmet.New())
	s.app.Use(middleware.StructuredLogger())
}

// routes is the explicit route-classification table consulted at registration
// time. Reads are public; anything that writes requires a session.
func (s *Server) routes() []route {
	return []route{
		{fiber.MethodGet, "/", public, s.handleIndex},
		{fiber.MethodGet, "/feed", public, s.handleFeed},
		{fiber.MethodGet, "/post/:id", public, s.handleShowSubmission},
		{fiber.MethodGet, "/register", public, s.handleRegisterForm},
		{fiber.MethodPost, "/register", public, s.handleRegister},
		{fiber.MethodGet, "/login", public, s.handleLoginForm},
		{fiber.MethodPost, "/login", public, s.handleLogin},
		{fiber.MethodGet, "/logout", public, s.handleLogout},
		{fiber.MethodGet, "/newpost", protected, s.handleNewSubmissionForm},
		{fiber.MethodPost, "/newpost", protected, s.handleCreateSubmission},
		{fiber.MethodPost, "/reply/:id", protected, s.handleCreateReply},
		{fiber.MethodPost, "/react", protected, s.handleReact},
		{fiber.MethodPost, "/unreact", protected, s.handleUnreact},
		{fiber.MethodPost, "/deletePost/:id", protected, s.handleDeleteSubmission},
		{fiber.MethodPost, "/deleteReply/:id", protected, s.handleDeleteReply},
	}
}

func (s *Server) registerRoutes() {
	writeLimit := middleware.RateLimit(cache.GetClient(), 30, time.Minute, "write")

	for _, r := range s.routes() {
		handler := r.handler
		if r.access == protected {
			handler = s.requireLogin(handler)
		}
		if r.method == fiber.MethodPost {
			s.app.Add(r.method, r.path, writeLimit, handler)
		} else {
			s.app.Add(r.method, r.path, handler)
		}
	}
}

// viewerMiddleware resolves the request's viewer from the session exactly once
// and stashes it in locals for handlers and the auth gate.
func (s *Server) viewerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer, err := s.sessions.Load(c)
		if err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "session load failed",
				slog.String("error", err.Error()))
			viewer = session.Viewer{}
		}

		c.Locals("viewer", viewer)
		if viewer.LoggedIn {
			c.Locals("userID", viewer.UserID())
		}
		return c.Next()
	}
}

// requireLogin gates protected routes. An anonymous request is answered with
// the login view carrying an informational message, not a redirect.
func (s *Server) requireLogin(next fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if viewerFrom(c).LoggedIn {
			return next(c)
		}
		return s.render(c, "login", fiber.Map{
			"Info": "Please log in to continue.",
		})
	}
}

// errorHandler is the Fiber fallback for errors that escape a handler.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	return s.renderError(c, err)
}

// Start runs the server until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	middleware.Logger.Info("server listening", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
