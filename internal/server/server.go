package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"BCVMonitor/internal/dashboard"
	"BCVMonitor/internal/model"
	"BCVMonitor/internal/render"
	"BCVMonitor/internal/store"
)

// Rates produces the record served on /api/rates.
type Rates interface {
	Collect(ctx context.Context) (*model.Record, error)
}

// Dashboard is the controller surface the HTTP handlers drive.
type Dashboard interface {
	Snapshot() dashboard.View
	RefreshAsync(ctx context.Context) bool
	SetAutoRefresh(enabled bool)
}

// Server wires the HTTP handlers to their collaborators.
type Server struct {
	Rates     Rates
	Dashboard Dashboard
	Store     store.Store
	Hub       *Hub
	Logger    logrus.FieldLogger

	// ctx outlives single requests; refreshes started over HTTP run on it.
	ctx context.Context
}

// New creates a Server. ctx bounds refreshes triggered through the API.
func New(ctx context.Context, rates Rates, d Dashboard, st store.Store, hub *Hub, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{Rates: rates, Dashboard: d, Store: st, Hub: hub, Logger: logger, ctx: ctx}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(LoggerMiddleware(s.Logger), CORSMiddleware(), RecoveryMiddleware(s.Logger))
	r.SetHTMLTemplate(render.Templates())

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.GET("/rates", s.rates)
	api.GET("/dashboard", s.snapshot)
	api.POST("/refresh", s.refresh)
	api.POST("/auto-refresh", s.autoRefresh)

	r.GET("/", s.page)
	if s.Hub != nil {
		r.GET("/ws", s.Hub.ServeWS)
	}

	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, errors.New("not found"))
	})
	return r
}

// HTTPServer wraps the router with timeouts.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func (s *Server) rates(c *gin.Context) {
	rec, err := s.Rates.Collect(c.Request.Context())
	if err != nil {
		s.Logger.Errorf("collect rates: %v", err)
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	writeJSON(c, http.StatusOK, rec)
}

func (s *Server) snapshot(c *gin.Context) {
	writeJSON(c, http.StatusOK, s.Dashboard.Snapshot())
}

func (s *Server) page(c *gin.Context) {
	c.HTML(http.StatusOK, render.PageName, render.NewPage(s.Dashboard.Snapshot()))
}

// refresh starts a fetch in the background; 409 when one is already running.
func (s *Server) refresh(c *gin.Context) {
	if !s.Dashboard.RefreshAsync(s.ctx) {
		writeError(c, http.StatusConflict, errors.New("refresh already in progress"))
		return
	}
	writeJSON(c, http.StatusAccepted, gin.H{"status": "refreshing"})
}

func (s *Server) autoRefresh(c *gin.Context) {
	enabled, err := strconv.ParseBool(c.Query("enabled"))
	if err != nil {
		writeError(c, http.StatusBadRequest, errors.New("enabled must be true or false"))
		return
	}
	s.Dashboard.SetAutoRefresh(enabled)
	writeJSON(c, http.StatusOK, gin.H{"auto_refresh": enabled})
}

func (s *Server) health(c *gin.Context) {
	if s.Store != nil {
		if err := s.Store.Ping(c.Request.Context()); err != nil {
			writeJSON(c, http.StatusServiceUnavailable, gin.H{"status": "degraded", "cache": err.Error()})
			return
		}
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
