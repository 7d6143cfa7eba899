// Package httpapi exposes the tutor backend over HTTP for browser front ends.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/speech"
	"lingua-tutor/internal/tutor"
)

type Store interface {
	Settings(ctx context.Context) domain.Settings
	SaveSettings(ctx context.Context, s domain.Settings) error
	Progress(ctx context.Context) domain.Progress
	Sessions(ctx context.Context) []domain.Session
	CustomTopics(ctx context.Context) []string
	SaveCustomTopic(ctx context.Context, topic string) error
	RemoveCustomTopic(ctx context.Context, topic string) error
	Clear(ctx context.Context) error
}

type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// Deps are the server's collaborators. TTS is optional; without it /api/tts
// answers 503.
type Deps struct {
	Backend tutor.Backend
	TTS     speech.Synthesizer
	Store   Store
	Logger  *zap.SugaredLogger
}

type Server struct {
	opts    Options
	router  *chi.Mux
	backend tutor.Backend
	tts     speech.Synthesizer
	store   Store
	log     *zap.SugaredLogger
}

func NewServer(opts Options, deps Deps) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Server{
		opts:    opts,
		backend: deps.Backend,
		tts:     deps.TTS,
		store:   deps.Store,
		log:     logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Post("/tts", s.handleTTS)

		r.Get("/topics", s.handleListTopics)
		r.Post("/topics", s.handleCreateTopic)
		r.Delete("/topics/{name}", s.handleDeleteTopic)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
		r.Get("/progress", s.handleGetProgress)
		r.Get("/sessions", s.handleListSessions)
		r.Delete("/data", s.handleClearData)
	})

	s.router = r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.log.Infow("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
