// Package server exposes stored run reports over HTTP.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fogsim/fog-offload-sim/sim/store"
)

// Server represents the API server
type Server struct {
	router *gin.Engine
	repo   *store.Repository
}

// New creates a server over repo. allowOrigins configures CORS; empty allows none.
func New(repo *store.Repository, allowOrigins []string) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	if len(allowOrigins) > 0 {
		config := cors.DefaultConfig()
		config.AllowOrigins = allowOrigins
		config.AllowMethods = []string{"GET", "DELETE", "OPTIONS"}
		router.Use(cors.New(config))
	}

	s := &Server{router: router, repo: repo}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")
	api.GET("/health", s.healthCheck)
	api.GET("/runs", s.listRuns)
	api.GET("/runs/:id", s.getRun)
	api.GET("/runs/:id/summary", s.getRunSummary)
	api.DELETE("/runs/:id", s.deleteRun)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) listRuns(c *gin.Context) {
	runs, err := s.repo.ListRuns(c.Query("policy"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) getRun(c *gin.Context) {
	run, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) getRunSummary(c *gin.Context) {
	run, ok := s.lookup(c)
	if !ok {
		return
	}
	summary := run.Report().Summary()
	c.JSON(http.StatusOK, gin.H{
		"id":                     run.ID,
		"policy":                 run.Policy,
		"mean_utilization":       summary.MeanUtilization,
		"stddev_utilization":     summary.StdDevUtilization,
		"max_utilization":        summary.MaxUtilization,
		"total_energy_joules":    summary.TotalEnergy,
		"total_tuples_processed": summary.TotalProcessed,
	})
}

func (s *Server) deleteRun(c *gin.Context) {
	if err := s.repo.DeleteRun(c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) lookup(c *gin.Context) (*store.Run, bool) {
	run, err := s.repo.GetRun(c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return nil, false
	}
	return run, true
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, store.ErrRunNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
