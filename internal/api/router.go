package api

import (
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/Harshitk-cp/introspect/internal/annotate"
	"github.com/Harshitk-cp/introspect/internal/api/handlers"
	mw "github.com/Harshitk-cp/introspect/internal/api/middleware"
	"github.com/Harshitk-cp/introspect/internal/config"
	"github.com/Harshitk-cp/introspect/internal/domain"
	"github.com/Harshitk-cp/introspect/internal/ingest"
	"github.com/Harshitk-cp/introspect/internal/llm"
	"github.com/Harshitk-cp/introspect/internal/service"
	"github.com/Harshitk-cp/introspect/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and request metrics for lifecycle management.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(logger *zap.Logger) *App {
	dataDir := config.DataDir()

	// Stores
	logStore := store.NewLogStore(dataDir)
	beliefStore := store.NewBeliefStore(dataDir)
	patternStore := store.NewPatternStore(dataDir)
	tensionStore := store.NewTensionStore(dataDir)

	// Model client via provider factory
	provider := config.LLMProvider()
	llmClient, err := llm.NewClient(provider, config.OllamaURL(), config.LLMModel(), config.LLMTimeout())
	if err != nil {
		logger.Warn("LLM client initialization failed, falling back to mock",
			zap.String("provider", provider), zap.Error(err))
		llmClient = llm.NewMockClient()
	} else {
		logger.Info("LLM client initialized",
			zap.String("provider", provider), zap.String("model", config.LLMModel()))
	}

	// Services
	journalSvc := service.NewJournalService(logStore, annotate.NewRegexTagger(), annotate.NewHedgeScorer(), logger)
	reflectionSvc := service.NewReflectionService(logStore, beliefStore, llmClient, logger)
	reflectionSvc.SetWindow(config.ReflectionWindow())
	reflectionSvc.SetMinConfidence(config.MinBeliefConfidence())
	reflectionSvc.SetTemperature(config.ReflectTemperature())
	synthesisSvc := service.NewSynthesisService(logStore, beliefStore, patternStore, tensionStore, llmClient, logger)
	synthesisSvc.SetTemperature(config.SynthesizeTemperature())
	contextSvc := service.NewContextService(beliefStore, patternStore, tensionStore)
	transferSvc := service.NewTransferService(patternStore, llmClient, logger)
	transferSvc.SetTemperature(config.TransferTemperature())
	ingestSvc := ingest.NewService(journalSvc, logger)

	// Handlers
	journalHandler := handlers.NewJournalHandler(journalSvc)
	reflectionHandler := handlers.NewReflectionHandler(reflectionSvc, beliefStore)
	synthesisHandler := handlers.NewSynthesisHandler(synthesisSvc, patternStore, tensionStore)
	contextHandler := handlers.NewContextHandler(contextSvc)
	transferHandler := handlers.NewTransferHandler(transferSvc)
	ingestHandler := handlers.NewIngestHandler(ingestSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler(dataDir))
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/interactions", func(r chi.Router) {
			r.Post("/", journalHandler.Create)
			r.Get("/", journalHandler.List)
			r.Get("/count", journalHandler.Count)
		})

		r.Post("/reflect", reflectionHandler.Run)
		r.Get("/beliefs", reflectionHandler.GetBeliefs)

		r.Post("/synthesize", synthesisHandler.Run)
		r.Get("/patterns", synthesisHandler.GetPatterns)
		r.Get("/tensions", synthesisHandler.GetTensions)

		r.Get("/context", contextHandler.Get)
		r.Post("/transfer", transferHandler.Apply)
		r.Post("/ingest", ingestHandler.Ingest)
	})

	return app
}

// NewRouter returns just the chi.Mux.
func NewRouter(logger *zap.Logger) *chi.Mux {
	return NewApp(logger).Router
}

func healthHandler(dataDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.InteractionStore = (*store.LogStore)(nil)
	_ domain.BeliefStore      = (*store.BeliefStore)(nil)
	_ domain.PatternStore     = (*store.PatternStore)(nil)
	_ domain.TensionStore     = (*store.TensionStore)(nil)
	_ domain.LLMClient        = (*llm.OllamaClient)(nil)
	_ domain.LLMClient        = (*llm.MockClient)(nil)
)
