package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallyboard/platform/internal/handler"
	"github.com/tallyboard/platform/internal/repository"
	"github.com/tallyboard/platform/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool               *pgxpool.Pool
	Logger             *slog.Logger
	CORSAllowedOrigins string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	logger := deps.Logger

	// Repositories
	boardRepo := repository.NewBoardRepository()
	scoreRepo := repository.NewScoreRepository()

	// Services
	boardSvc := service.NewBoardService(pool, boardRepo, scoreRepo, logger)

	// Handlers
	boardHandler := handler.NewBoardHandler(boardSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORSWithOrigins(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Greeting and health (no auth)
	r.Get("/", handler.Greeting)
	r.Get("/health", handler.HealthHandler(pool))

	// Board routes. Creation is public; everything else is gated on the
	// api-key header inside the service.
	r.Route("/board", func(r chi.Router) {
		r.Post("/create", boardHandler.CreateBoard)
		r.Get("/{name}", boardHandler.GetScores)
		r.Post("/{name}", boardHandler.SubmitScore)
		r.Delete("/{name}", boardHandler.DeleteBoard)
	})

	return r
}
