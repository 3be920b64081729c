package ui

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"esglens/adapters/excel"
	"esglens/app"
	"esglens/internal/errors"
	"esglens/internal/filter"
	"esglens/internal/report"
	"esglens/internal/session"

	"github.com/gin-gonic/gin"
)

// handleCreateSession parses an uploaded file and opens a session on it
func (s *Server) handleCreateSession(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.Upload.MaxBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit),
				"code":  errors.CodeInvalidInput,
			})
			return
		}
		respondError(c, errors.InvalidInput("multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	ds, err := s.dashboards.Load(c.Request.Context(), header.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}

	sess := s.sessions.Create(ds, ds.DefaultSelection)
	d, err := s.dashboards.Recompute(ds, sess.Selection)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID,
		"dataset":    ds,
		"dashboard":  d,
	})
}

// handleGetDashboard recomputes the dashboard for the stored selection
func (s *Server) handleGetDashboard(c *gin.Context) {
	sess, d, ok := s.currentDashboard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"dashboard":  d,
	})
}

// handleUpdateSelection stores a new selection and returns the recomputed dashboard
func (s *Server) handleUpdateSelection(c *gin.Context) {
	var sel filter.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		respondError(c, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "invalid selection body")))
		return
	}

	sess, err := s.sessions.UpdateSelection(c.Param("id"), sel)
	if err != nil {
		respondError(c, err)
		return
	}

	d, err := s.dashboards.Recompute(sess.Dataset, sess.Selection)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"dashboard":  d,
	})
}

// handleOptions returns the filter choices of the session's dataset, both
// overall and as narrowed by the current selection
func (s *Server) handleOptions(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"options":           sess.Dataset.Options,
		"available":         filter.CascadedOptions(sess.Dataset.Table, sess.Dataset.Capabilities, sess.Selection),
		"default_selection": sess.Dataset.DefaultSelection,
		"selection":         sess.Selection,
		"capabilities":      sess.Dataset.Capabilities,
	})
}

// handleReport renders the dataset summary as an HTML page
func (s *Server) handleReport(c *gin.Context) {
	sess, d, ok := s.currentDashboard(c)
	if !ok {
		return
	}
	title := "ESG Analytics Report"
	if sess.Dataset.Name != "" {
		title = fmt.Sprintf("ESG Analytics Report: %s", sess.Dataset.Name)
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", report.HTML(title, d))
}

// handleExport downloads the filtered table as CSV or XLSX
func (s *Server) handleExport(c *gin.Context) {
	format := excel.Format(strings.ToLower(c.DefaultQuery("format", string(excel.FormatCSV))))
	if format != excel.FormatCSV && format != excel.FormatXLSX {
		respondError(c, errors.UnsupportedFormat(string(format)))
		return
	}

	sess, d, ok := s.currentDashboard(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	var err error
	if format == excel.FormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = excel.WriteXLSX(&buf, d.Filtered)
	} else {
		err = excel.WriteCSV(&buf, d.Filtered)
	}
	if err != nil {
		respondError(c, errors.Wrap(err, "export failed"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(sess.Dataset.Name, format)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// handleDeleteSession drops a session
func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.sessions.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) currentDashboard(c *gin.Context) (session.Session, *app.Dashboard, bool) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return session.Session{}, nil, false
	}
	d, err := s.dashboards.Recompute(sess.Dataset, sess.Selection)
	if err != nil {
		respondError(c, err)
		return session.Session{}, nil, false
	}
	return sess, d, true
}

func exportName(source string, format excel.Format) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." {
		base = "esg_data"
	}
	return fmt.Sprintf("%s_filtered.%s", base, format)
}
