package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	adminService "github.com/reshetovitsme/support-relay-bot/internal/modules/admin/service"
	userService "github.com/reshetovitsme/support-relay-bot/internal/modules/user/service"
	"github.com/reshetovitsme/support-relay-bot/internal/shared/config"
	sloghttp "github.com/samber/slog-http"
)

// Server exposes a small status surface next to the bot
type Server struct {
	cfg          *config.Config
	userService  *userService.Service
	adminService *adminService.Service
	logger       *slog.Logger
	startedAt    time.Time
}

// New creates a new HTTP server
func New(cfg *config.Config, userService *userService.Service, adminService *adminService.Service) *Server {
	return &Server{
		cfg:          cfg,
		userService:  userService,
		adminService: adminService,
		logger:       slog.Default(),
		startedAt:    time.Now(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)

	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("Status server starting", "addr", addr)

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.ListUsers()
	if err != nil {
		s.logger.Error("Error listing users", "error", err)
		http.Error(w, "Failed to read status", http.StatusInternalServerError)
		return
	}

	admins, err := s.adminService.LoadAdmins()
	if err != nil {
		s.logger.Error("Error loading admins", "error", err)
		http.Error(w, "Failed to read status", http.StatusInternalServerError)
		return
	}

	status := map[string]any{
		"users":          len(users),
		"admins":         len(admins),
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(status)
}
