package ui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"datalens/domain/chart"
	"datalens/domain/metrics"
	"datalens/domain/table"
	"datalens/internal/errors"
	"datalens/internal/session"
)

// analysisRequest is the shared body for the filtered-analysis endpoints.
// Filters is the shell's current Selection, replaced wholesale per change.
type analysisRequest struct {
	Filters table.Selection `json:"filters"`

	// Metrics: which numeric columns to summarize (nil = all numeric).
	Columns []string `json:"columns,omitempty"`

	// Chart selection.
	X     string `json:"x,omitempty"`
	Y     string `json:"y,omitempty"`
	Extra string `json:"extra,omitempty"`

	// Frequency/histogram target.
	Column string `json:"column,omitempty"`
}

// filteredView applies the request's selection. When an admissible set is
// explicitly empty the downstream computation is skipped and a warning
// returned instead, per the selection contract.
func filteredView(c *gin.Context, ds *session.Dataset, sel table.Selection) (*table.View, bool) {
	if empty := sel.EmptyColumns(); len(empty) > 0 {
		c.JSON(http.StatusOK, gin.H{
			"skipped": true,
			"warning": fmt.Sprintf("selection excludes all rows: no values chosen for %s", strings.Join(empty, ", ")),
		})
		return nil, false
	}
	return table.Apply(ds.Table.AllRows(), sel), true
}

func bindAnalysis(c *gin.Context) (analysisRequest, bool) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(errors.InvalidInput("invalid request body"), err.Error()))
		return req, false
	}
	return req, true
}

// handleMetrics recomputes the metric snapshot for the current selection.
func (s *Server) handleMetrics(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	req, ok := bindAnalysis(c)
	if !ok {
		return
	}
	view, ok := filteredView(c, ds, req.Filters)
	if !ok {
		return
	}

	snap := metrics.Summarize(view, ds.Classification, req.Columns)
	c.JSON(http.StatusOK, gin.H{"snapshot": snap})
}

// handleChartSelect runs the type-driven decision table for the chosen
// columns. Selection does not affect the outcome (types are fixed at load),
// but the filtered row count is echoed for the shell's benefit.
func (s *Server) handleChartSelect(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	req, ok := bindAnalysis(c)
	if !ok {
		return
	}
	view, ok := filteredView(c, ds, req.Filters)
	if !ok {
		return
	}

	spec, err := chart.Select(ds.Classification, req.X, req.Y, req.Extra)
	if err != nil {
		respondError(c, errors.Wrap(errors.InvalidInput("chart selection failed"), err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"spec": spec, "rows": view.Len()})
}

func (s *Server) handleFrequency(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	req, ok := bindAnalysis(c)
	if !ok {
		return
	}
	view, ok := filteredView(c, ds, req.Filters)
	if !ok {
		return
	}

	data, err := chart.Frequency(view, req.Column)
	if err != nil {
		respondError(c, errors.Wrap(errors.InvalidInput("frequency failed"), err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"frequency": data})
}

func (s *Server) handleHistogram(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	req, ok := bindAnalysis(c)
	if !ok {
		return
	}
	view, ok := filteredView(c, ds, req.Filters)
	if !ok {
		return
	}

	data, err := chart.Histogram(view, req.Column)
	if err != nil {
		respondError(c, errors.Wrap(errors.InvalidInput("histogram failed"), err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"histogram": data})
}

// handleCorrelation returns the numeric correlation matrix; with fewer than
// two numeric columns it reports "insufficient columns" as data, not as an
// error.
func (s *Server) handleCorrelation(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	req, ok := bindAnalysis(c)
	if !ok {
		return
	}
	view, ok := filteredView(c, ds, req.Filters)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"correlation": metrics.Correlate(view, ds.Classification)})
}
