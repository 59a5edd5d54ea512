package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/docuform/contact-extractor/internal/config"
	"github.com/docuform/contact-extractor/internal/export"
	"github.com/docuform/contact-extractor/internal/extractor"
	"github.com/docuform/contact-extractor/internal/logger"
)

const (
	readTimeout  = 30 * time.Second
	writeTimeout = 60 * time.Second
	idleTimeout  = 120 * time.Second
)

// Server is the HTTP JSON API over the extraction service
type Server struct {
	config  *config.Config
	service *extractor.Service
	writer  *export.Writer
	router  *mux.Router
	server  *http.Server
	logger  *logger.Logger
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, service *extractor.Service, log *logger.Logger) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if log == nil {
		log = logger.NewNop()
	}

	// Create router
	router := mux.NewRouter()

	// Create server
	s := &Server{
		config:  cfg,
		service: service,
		writer:  export.NewWriter(log),
		router:  router,
		logger:  log.WithComponent("web"),
	}

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	s.server = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Info endpoint
	s.router.HandleFunc("/info", s.handleInfo).Methods("GET")

	// Extraction endpoints
	v1 := s.router.PathPrefix("/v1").Subrouter()
	v1.Use(s.loggingMiddleware)
	v1.HandleFunc("/extract", s.handleExtractUpload).Methods("POST")
	v1.HandleFunc("/extract/path", s.handleExtractPath).Methods("POST")
	v1.HandleFunc("/extract/text", s.handleExtractText).Methods("POST")
	v1.HandleFunc("/export", s.handleExport).Methods("GET")
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting contact extraction HTTP server",
		zap.String("address", s.config.Address()),
		zap.Int64("max_file_size", s.config.MaxFileSize),
	)

	return s.server.ListenAndServe()
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping contact extraction HTTP server")
	return s.server.Shutdown(ctx)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339))
}

// handleInfo handles info requests
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info := s.service.ServerInfo(s.config.ServerName, s.config.Version)

	toolNames := make([]string, 0, len(info.AvailableTools))
	for _, tool := range info.AvailableTools {
		toolNames = append(toolNames, tool.Name)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":          info.ServerName,
		"version":       info.Version,
		"max_file_size": info.MaxFileSize,
		"fields":        info.Fields,
		"fallback_scan": info.FallbackScan,
		"tools":         toolNames,
		"sheet_rows":    s.writer.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
