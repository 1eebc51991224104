// Package server exposes the HTTP, websocket, and GraphQL surface over generated signals.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"signalgen-go/internal/config"
	"signalgen-go/internal/generator"
	"signalgen-go/internal/history"
)

const defaultHistoryWindow = 24 * time.Hour

// Server wires the gin engine, the sample sources, and the live hub together.
type Server struct {
	log    zerolog.Logger
	cfg    config.Server
	gen    *generator.Generator
	store  *history.Store
	stats  *history.Stats
	hub    *Hub
	engine *gin.Engine
}

// New builds the API server and registers all routes.
func New(log zerolog.Logger, cfg config.Server, gen *generator.Generator, store *history.Store, stats *history.Stats, hub *Hub) *Server {
	s := &Server{
		log:   log,
		cfg:   cfg,
		gen:   gen,
		store: store,
		stats: stats,
		hub:   hub,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowMethods:     []string{"GET", "POST", "PUT"},
		AllowWebSockets:  true,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/api/signals", s.handleSignals)
	r.PUT("/api/signals", s.handleSetSignals)
	r.GET("/api/signals/:id/latest", s.handleLatest)
	r.GET("/api/signals/:id/history", s.handleHistory)
	r.GET("/api/signals/:id/live", s.handleLive)
	r.POST("/graphql", s.handleGraphQL())

	s.engine = r
	return s
}

// Engine exposes the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Run serves the API until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()
	s.log.Info().Str("addr", s.cfg.Addr).Msg("api listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleSignals(c *gin.Context) {
	snapshot := s.stats.Snapshot()
	ids := s.gen.Signals()
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	for _, id := range s.store.Signals() {
		if _, ok := known[id]; !ok {
			known[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	out := make([]gin.H, 0, len(ids))
	for _, id := range ids {
		entry := gin.H{"id": id}
		if agg, ok := snapshot[id]; ok {
			entry["stats"] = agg
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"signals": out})
}

// handleSetSignals swaps the generator's tracked signal list at runtime.
func (s *Server) handleSetSignals(c *gin.Context) {
	payload := struct {
		Signals []string `json:"signals"`
	}{}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing arguments"})
		return
	}
	if len(payload.Signals) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing signals argument"})
		return
	}
	s.gen.SetSignals(payload.Signals)
	tracked := s.gen.Signals()
	s.log.Info().Strs("signals", tracked).Msg("tracked signals replaced")
	c.JSON(http.StatusOK, gin.H{"signals": tracked})
}

func (s *Server) handleLatest(c *gin.Context) {
	id := c.Param("id")
	sample, ok := s.store.Latest(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no samples for signal"})
		return
	}
	c.JSON(http.StatusOK, sample)
}

func (s *Server) handleHistory(c *gin.Context) {
	id := c.Param("id")
	start, end, err := parseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	samples := s.store.Range(id, start, end)
	if len(samples) == 0 {
		samples = s.gen.Historical(id, start, end)
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"start":   start,
		"end":     end,
		"samples": samples,
	})
}

// parseRange applies the default last-24h window when bounds are omitted.
func parseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	end := time.Now()
	if endRaw != "" {
		parsed, err := time.Parse(time.RFC3339, endRaw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidBound("end", err)
		}
		end = parsed
	}
	start := end.Add(-defaultHistoryWindow)
	if startRaw != "" {
		parsed, err := time.Parse(time.RFC3339, startRaw)
		if err != nil {
			return time.Time{}, time.Time{}, errInvalidBound("start", err)
		}
		start = parsed
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errEmptyRange
	}
	return start, end, nil
}
