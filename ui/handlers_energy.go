package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"datalens/domain/energy"
	"datalens/internal/errors"
)

// handleEnergyOptions returns the distinct technology and status values for
// the dashboard's multiselect widgets.
func (s *Server) handleEnergyOptions(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	if err := energy.ValidateSchema(ds.Table); err != nil {
		respondError(c, err)
		return
	}

	technologies, statuses := energy.FilterOptions(ds.Table)
	c.JSON(http.StatusOK, gin.H{
		"technologies": technologies,
		"statuses":     statuses,
	})
}

// handleEnergyDashboard computes the full energy dashboard for a filter
// pair. An empty technology or status selection yields a warning payload
// with the computation skipped.
func (s *Server) handleEnergyDashboard(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}

	var filter energy.Filter
	if err := c.ShouldBindJSON(&filter); err != nil {
		respondError(c, errors.Wrap(errors.InvalidInput("invalid request body"), err.Error()))
		return
	}

	dash, err := energy.Build(ds.Table, ds.Classification, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
