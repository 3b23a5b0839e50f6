package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"datalens/domain/metrics"
	"datalens/domain/table"
	"datalens/internal/advisor"
	"datalens/internal/errors"
)

type askRequest struct {
	Question string          `json:"question"`
	Filters  table.Selection `json:"filters"`
}

// handleAsk forwards the dataset's statistical summary and the user's
// question to the chat endpoint. Without a credential the feature responds
// with an inline notice; failures never disturb the rest of the dashboard.
func (s *Server) handleAsk(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}

	if !s.advisor.Enabled() {
		c.JSON(http.StatusOK, gin.H{
			"enabled": false,
			"notice":  advisor.DisabledNotice,
		})
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(errors.InvalidInput("invalid request body"), err.Error()))
		return
	}
	view, ok := filteredView(c, ds, req.Filters)
	if !ok {
		return
	}

	profiles := metrics.Describe(view, ds.Classification)
	snap := metrics.Summarize(view, ds.Classification, nil)

	answer, err := s.advisor.Ask(c.Request.Context(), ds.Name, req.Question, profiles, snap)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": true, "answer": answer})
}
