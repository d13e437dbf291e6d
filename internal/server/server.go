package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/carecircle/internal/catalog"
	"github.com/dukerupert/carecircle/internal/coordination"
	"github.com/dukerupert/carecircle/internal/handler"
	"github.com/dukerupert/carecircle/internal/middleware"
	"github.com/dukerupert/carecircle/internal/push"
	"github.com/dukerupert/carecircle/internal/store"
	ws "github.com/dukerupert/carecircle/internal/websocket"
)

// Pings allowed per member per window.
const (
	pingLimit  = 6
	pingWindow = time.Minute
)

type Config struct {
	Location        *time.Location
	Catalog         *catalog.Table
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	TickInterval    time.Duration
}

type Server struct {
	hub         *ws.Hub
	service     *coordination.Service
	taskH       *handler.TaskHandler
	puzzleH     *handler.PuzzleHandler
	helpH       *handler.HelpHandler
	pingH       *handler.PingHandler
	pushH       *handler.PushHandler
	rateLimiter *middleware.RateLimiter
	scheduler   *coordination.Scheduler
	logger      *slog.Logger
}

// New wires stores, engines, and handlers. cacheDB holds puzzle progress;
// when it is nil progress lives in memory only.
func New(db, cacheDB *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	stores := coordination.Stores{
		Tasks:    store.NewTaskStore(db),
		Settings: store.NewSettingsStore(db),
		Help:     store.NewHelpStore(db),
		Status:   store.NewStatusStore(db),
		Pings:    store.NewPingStore(db),
		Scores:   store.NewScoreStore(db),
		Activity: store.NewActivityStore(db),
	}

	// Push notification service
	pushSt := store.NewPushStore(db)
	var notifier coordination.PingNotifier
	var pushH *handler.PushHandler
	if cfg.VAPIDPublicKey != "" && cfg.VAPIDPrivateKey != "" {
		pushSvc := push.NewService(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
		notifier = push.NewNotifier(pushSvc, pushSt, logger.With("component", "push"))
		pushH = handler.NewPushHandler(pushSt, pushSvc, logger.With("component", "push_handler"))
	}

	svcCfg := coordination.Config{
		Location: cfg.Location,
		Catalog:  cfg.Catalog,
	}

	var svc *coordination.Service
	var sched *coordination.Scheduler
	schedLogger := logger.With("component", "scheduler")
	if cacheDB != nil {
		progress := store.NewProgressStore(cacheDB)
		svc = coordination.NewService(stores, progress, hub, notifier, svcCfg, logger.With("component", "coordination"))
		sched = coordination.NewScheduler(svc, progress, cfg.TickInterval, schedLogger)
	} else {
		svc = coordination.NewService(stores, nil, hub, notifier, svcCfg, logger.With("component", "coordination"))
		sched = coordination.NewScheduler(svc, nil, cfg.TickInterval, schedLogger)
	}

	return &Server{
		hub:         hub,
		service:     svc,
		taskH:       handler.NewTaskHandler(svc, logger.With("component", "task")),
		puzzleH:     handler.NewPuzzleHandler(svc, logger.With("component", "puzzle")),
		helpH:       handler.NewHelpHandler(svc, logger.With("component", "help")),
		pingH:       handler.NewPingHandler(svc, logger.With("component", "ping")),
		pushH:       pushH,
		rateLimiter: middleware.NewRateLimiter(),
		scheduler:   sched,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Scheduler returns the daily reset and retention scheduler.
func (s *Server) Scheduler() *coordination.Scheduler {
	return s.scheduler
}

// Service returns the coordination facade.
func (s *Server) Service() *coordination.Service {
	return s.service
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes, wrapped with RequireMember
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)
	outerMux.Handle("/", middleware.RequireMember(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.MemberKey, pingLimit, pingWindow)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	mux.HandleFunc("GET /api/catalog", s.helpH.Catalog)

	// Task API routes
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("POST /api/tasks/reset-check", s.taskH.CheckReset)
	mux.HandleFunc("POST /api/tasks/{id}/complete", s.taskH.Complete)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)

	// Puzzle API routes
	mux.HandleFunc("GET /api/puzzle", s.puzzleH.Today)
	mux.HandleFunc("POST /api/puzzle/answers", s.puzzleH.Submit)
	mux.HandleFunc("GET /api/puzzle/leaderboard", s.puzzleH.Leaderboard)

	// Help board API routes
	mux.HandleFunc("GET /api/help", s.helpH.Board)
	mux.HandleFunc("GET /api/matches", s.helpH.Matches)
	mux.HandleFunc("POST /api/offers", s.helpH.CreateOffer)
	mux.HandleFunc("DELETE /api/offers/{id}", s.helpH.DeleteOffer)
	mux.HandleFunc("POST /api/requests", s.helpH.CreateRequest)
	mux.HandleFunc("DELETE /api/requests/{id}", s.helpH.DeleteRequest)
	mux.HandleFunc("PUT /api/status", s.helpH.SetStatus)

	// Ping API routes
	mux.HandleFunc("POST /api/pings", s.rateLimitedHandler(s.pingH.Send))
	mux.HandleFunc("GET /api/notifications/current", s.pingH.Current)
	mux.HandleFunc("POST /api/notifications/current/dismiss", s.pingH.Dismiss)
	mux.HandleFunc("GET /api/activity", s.pingH.Activity)

	// Push notification API routes
	if s.pushH != nil {
		mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
		mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Unsubscribe)
		mux.HandleFunc("GET /api/push/subscriptions", s.pushH.ListSubscriptions)
		mux.HandleFunc("GET /api/push/vapid-key", s.pushH.GetVAPIDKey)
		mux.HandleFunc("POST /api/push/test", s.pushH.TestNotification)
	}
}
