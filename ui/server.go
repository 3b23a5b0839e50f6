// Package ui exposes the dashboard core over a JSON HTTP API. The
// presentation shell is a client of these endpoints: it uploads files,
// posts selections, and renders the returned classifications, snapshots and
// chart specs. Every request recomputes its outputs from the stored table;
// only the table and its load-time classification are cached.
package ui

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"datalens/adapters/ingest"
	"datalens/domain/energy"
	"datalens/internal/advisor"
	"datalens/internal/config"
	"datalens/internal/errors"
	"datalens/internal/session"
)

// Server wires the ingestion, session and advisory components behind a gin
// router.
type Server struct {
	router  *gin.Engine
	store   *session.Store
	reader  *ingest.Reader
	advisor *advisor.Advisor
	cfg     *config.Config
}

// NewServer creates the server and registers all routes.
func NewServer(cfg *config.Config, store *session.Store, reader *ingest.Reader, adv *advisor.Advisor) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:  gin.Default(),
		store:   store,
		reader:  reader,
		advisor: adv,
		cfg:     cfg,
	}
	s.router.MaxMultipartMemory = cfg.Upload.MaxFileSizeBytes
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/api/health", s.handleHealth)

	api := s.router.Group("/api/datasets")
	{
		api.POST("", s.handleUpload)
		api.GET("", s.handleList)
		api.GET("/:id", s.handleInfo)
		api.GET("/:id/rows", s.handleRows)
		api.DELETE("/:id", s.handleDelete)

		api.POST("/:id/metrics", s.handleMetrics)
		api.POST("/:id/charts", s.handleChartSelect)
		api.POST("/:id/frequency", s.handleFrequency)
		api.POST("/:id/histogram", s.handleHistogram)
		api.POST("/:id/correlation", s.handleCorrelation)

		api.GET("/:id/energy/options", s.handleEnergyOptions)
		api.POST("/:id/energy", s.handleEnergyDashboard)

		api.POST("/:id/ask", s.handleAsk)
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := ":" + s.cfg.Server.Port
	log.Printf("[Server] Listening on %s (advisory enabled: %v)", addr, s.advisor.Enabled())
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"datasets": s.store.Len(),
		"advisory": s.advisor.Enabled(),
	})
}

// dataset pulls the dataset for the :id param, answering 404 itself when
// absent.
func (s *Server) dataset(c *gin.Context) (*session.Dataset, bool) {
	ds, ok := s.store.Get(c.Param("id"))
	if !ok {
		respondError(c, errors.NotFound("dataset"))
		return nil, false
	}
	return ds, true
}

// respondError maps the error taxonomy onto HTTP statuses. Uncategorized
// faults surface as a generic error with the underlying message, never
// silently swallowed.
func respondError(c *gin.Context, err error) {
	if missing, ok := err.(*energy.MissingColumnsError); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          missing.Error(),
			"code":           errors.CodeMissingColumns,
			"missingColumns": missing.Columns,
		})
		return
	}

	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeLoadError, errors.CodeUnsupportedFile, errors.CodeMissingColumns,
		errors.CodeInvalidInput, errors.CodeSelectionEmpty:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeExternalService:
		status = http.StatusBadGateway
	}

	log.Printf("[Server] %s: %v", code, err)
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
