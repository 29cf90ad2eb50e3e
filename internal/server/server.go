package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/nextstep/nextstep-api/internal/config"
	"github.com/nextstep/nextstep-api/internal/db"
	"github.com/nextstep/nextstep-api/internal/server/middleware"
	"github.com/nextstep/nextstep-api/internal/server/ratelimit"
	"github.com/nextstep/nextstep-api/internal/tracker"
)

// Store is the persistence surface the HTTP layer depends on. *db.DB
// implements it; tests inject fakes. Handlers hold no mutable state of
// their own, so every request can run concurrently against the store.
type Store interface {
	tracker.DecisionStore

	SearchJobs(ctx context.Context, queryText string) ([]db.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	CreateJob(ctx context.Context, input *db.JobCreateInput) (*db.Job, error)
	ListApplications(ctx context.Context, userID uuid.UUID) ([]db.Application, error)

	CreateUser(ctx context.Context, input *db.UserCreateInput) (*db.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	FindOrCreateGoogleUser(ctx context.Context, input *db.GoogleUserInput) (*db.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input *db.ProfileUpdateInput) (*db.User, error)
	ListOtherUsers(ctx context.Context, callerID uuid.UUID) ([]db.Contact, error)

	InsertMessage(ctx context.Context, input *db.MessageCreateInput) (*db.Message, error)
	ListMessagesForUser(ctx context.Context, userID uuid.UUID) ([]db.Message, error)
	ListRecentContacts(ctx context.Context, userID uuid.UUID) ([]db.Contact, error)

	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	database    *db.DB // nil when a fake store is injected
	store       Store
	recorder    *tracker.Recorder
	composer    *tracker.Composer
	jwtService  *JWTService
	authHandler *AuthHandler
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
}

// New creates a new server instance connected to Postgres
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s, err := newWithStore(database)
	if err != nil {
		database.Close()
		return nil, err
	}
	s.database = database

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// newWithStore wires the engine and handlers around an injected store
func newWithStore(store Store) (*Server, error) {
	s := &Server{
		store:    store,
		recorder: tracker.NewRecorder(store),
		composer: tracker.NewComposer(store),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	googleConfig, err := config.NewGoogleConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	s.authHandler = NewAuthHandler(NewUserService(store, passwordConfig), s.jwtService, googleConfig)

	return s, nil
}

// Handler builds the routed handler with the middleware chain applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	requireAuth := s.requireAuth
	optionalAuth := s.optionalAuth

	// Authentication
	mux.HandleFunc("POST /signup", s.authHandler.Signup)
	mux.HandleFunc("POST /signin", s.authHandler.Signin)
	mux.HandleFunc("POST /auth/google", s.authHandler.GoogleSignin)
	mux.HandleFunc("GET /logout", s.handleLogout)

	// Job catalog
	mux.Handle("GET /jobs", optionalAuth(http.HandlerFunc(s.handleBrowseJobs)))
	mux.HandleFunc("GET /jobs/{jobId}", s.handleGetJob)
	mux.Handle("POST /jobs", requireAuth(http.HandlerFunc(s.handleCreateJob)))

	// Feed and decisions
	mux.Handle("GET /retrieveJobsForHomepage", optionalAuth(http.HandlerFunc(s.handleHomepageFeed)))
	mux.Handle("POST /jobsTracker", requireAuth(http.HandlerFunc(s.handleTrackDecision)))
	mux.Handle("GET /applications", requireAuth(http.HandlerFunc(s.handleListApplications)))

	// Profile
	mux.Handle("GET /profile", requireAuth(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("POST /updateprofile", requireAuth(http.HandlerFunc(s.handleUpdateProfile)))

	// Messenger
	mux.Handle("GET /users", requireAuth(http.HandlerFunc(s.handleListUsers)))
	mux.Handle("GET /messages", requireAuth(http.HandlerFunc(s.handleListMessages)))
	mux.Handle("POST /messages", requireAuth(http.HandlerFunc(s.handleSendMessage)))
	mux.Handle("GET /myRecentContacts", requireAuth(http.HandlerFunc(s.handleRecentContacts)))

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if s.database != nil {
		s.database.Close()
	}
	log.Println("Server stopped")
	return nil
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return middleware.RequireAuth(s.jwtService.AsTokenValidator())(next)
}

func (s *Server) optionalAuth(next http.Handler) http.Handler {
	return middleware.OptionalAuth(s.jwtService.AsTokenValidator())(next)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogout clears the auth cookie. Tokens are stateless, so this only
// exists for clients that keep the token in a cookie.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "nextstep_auth",
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "You've been logged out"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// Uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
