package ui

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"datalens/domain/energy"
	"datalens/domain/metrics"
	"datalens/domain/table"
	"datalens/internal/errors"
	"datalens/internal/session"
)

// handleUpload ingests a CSV/XLSX file into a new dataset. With
// ?schema=energy the upload is validated against the energy variant's
// required columns and rejected, listing the missing names, before anything
// is stored — previously loaded datasets stay untouched.
func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, errors.InvalidInput("multipart field 'file' is required"))
		return
	}
	if fileHeader.Size > s.cfg.Upload.MaxFileSizeBytes {
		respondError(c, errors.LoadError("file exceeds the upload size limit"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respondError(c, errors.Wrap(errors.LoadError("failed to open upload"), err.Error()))
		return
	}
	defer src.Close()

	t, err := s.reader.Load(fileHeader.Filename, src)
	if err != nil {
		respondError(c, err)
		return
	}

	energySchema := c.Query("schema") == "energy"
	if energySchema {
		if err := energy.ValidateSchema(t); err != nil {
			respondError(c, err)
			return
		}
	}

	cls := table.Classify(t)
	ds := s.store.Put(fileHeader.Filename, t, cls, energySchema)

	c.JSON(http.StatusCreated, datasetInfo(ds))
}

func (s *Server) handleList(c *gin.Context) {
	list := s.store.List()
	out := make([]gin.H, 0, len(list))
	for _, ds := range list {
		out = append(out, gin.H{
			"id":         ds.ID,
			"name":       ds.Name,
			"uploadedAt": ds.UploadedAt,
			"rows":       ds.Table.RowCount(),
			"columns":    ds.Table.ColumnCount(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"datasets": out, "count": len(out)})
}

func (s *Server) handleInfo(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, datasetInfo(ds))
}

func (s *Server) handleDelete(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	s.store.Delete(ds.ID)
	c.Status(http.StatusNoContent)
}

// handleRows returns a raw-data preview of the filtered view.
func (s *Server) handleRows(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	view := ds.Table.AllRows()
	names := ds.Table.ColumnNames()

	rows := make([][]string, 0, limit)
	for i := 0; i < view.Len() && i < limit; i++ {
		r := view.Row(i)
		row := make([]string, len(names))
		for j, name := range names {
			col, _ := ds.Table.Column(name)
			row[j] = col.Value(r)
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{
		"columns":   names,
		"rows":      rows,
		"totalRows": view.Len(),
	})
}

func datasetInfo(ds *session.Dataset) gin.H {
	view := ds.Table.AllRows()
	return gin.H{
		"id":           ds.ID,
		"name":         ds.Name,
		"uploadedAt":   ds.UploadedAt,
		"rows":         ds.Table.RowCount(),
		"columns":      ds.Table.ColumnCount(),
		"energySchema": ds.EnergySchema,
		"classification": gin.H{
			"numeric":     ds.Classification.Numeric,
			"categorical": ds.Classification.Categorical,
			"temporal":    ds.Classification.Temporal,
		},
		"profiles": metrics.Describe(view, ds.Classification),
	}
}
