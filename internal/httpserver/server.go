package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/fdg312/fitness-coach/internal/ai"
	"github.com/fdg312/fitness-coach/internal/ask"
	"github.com/fdg312/fitness-coach/internal/config"
	"github.com/fdg312/fitness-coach/internal/health"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server представляет HTTP сервер
type Server struct {
	config      *config.Config
	logger      zerolog.Logger
	mux         *http.ServeMux
	healthStore *health.Store
	aiAvailable bool
	httpServer  *http.Server
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config, logger zerolog.Logger) *Server {
	s := &Server{
		config:      cfg,
		logger:      logger,
		mux:         http.NewServeMux(),
		healthStore: health.NewStore(cfg.DefaultStepsGoal),
	}

	s.routes()

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// routes регистрирует маршруты
func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.Handle("GET /metrics", promhttp.Handler())

	// Health metrics
	healthHandler := health.NewHandler(s.healthStore)
	s.mux.HandleFunc("GET /health", healthHandler.HandleGet)
	s.mux.HandleFunc("POST /health", healthHandler.HandleUpdate)
	s.mux.HandleFunc("DELETE /health", healthHandler.HandleReset)
	s.mux.HandleFunc("PUT /health/steps", healthHandler.HandleSetSteps)
	s.mux.HandleFunc("PUT /health/heart-rate", healthHandler.HandleSetHeartRate)
	s.mux.HandleFunc("PUT /health/sleep", healthHandler.HandleSetSleep)
	s.mux.HandleFunc("PUT /health/active-minutes", healthHandler.HandleSetActiveMinutes)
	s.mux.HandleFunc("GET /health/report", healthHandler.HandleReport)

	// AI coach
	provider, ok := ai.NewProvider(s.config)
	s.aiAvailable = ok
	if !ok {
		s.logger.Warn().Msg("OpenRouter API key is not configured, POST /ask will return 503")
	}
	askService := ask.NewService(provider, ok, s.config.AIHistoryLimit)
	askHandler := ask.NewHandler(askService)
	s.mux.HandleFunc("POST /ask", askHandler.HandleAsk)
}

// Handler returns the router wrapped in the middleware chain (outermost first): CORS → request log → router.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.mux
	handler = RequestLogMiddleware(s.logger, handler)
	handler = CORSMiddleware(handler)
	return handler
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":       "ok",
		"ai_available": s.aiAvailable,
	})
}

// Start запускает HTTP сервер и блокируется до Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve принимает соединения на уже открытом listener.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("server listening")

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown дожидается завершения активных запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
