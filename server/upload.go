package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps a single PDF upload.
const maxUploadBytes = 50 << 20

// handleUploadPDF saves an uploaded PDF into the documents directory and
// indexes it synchronously, so the file is queryable once the response
// arrives.
func (s *Server) handleUploadPDF(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	name := filepath.Base(file.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are supported"})
		return
	}

	if err := os.MkdirAll(s.cfg.Documents.Dir, 0o755); err != nil {
		s.log.ErrorWithErr("Failed to create documents directory", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	dest := filepath.Join(s.cfg.Documents.Dir, name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		s.log.ErrorWithErr("Failed to save uploaded file", err, "file", name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	result, err := s.pipeline.IngestFile(c.Request.Context(), dest)
	if err != nil {
		s.log.ErrorWithErr("Failed to ingest uploaded file", err, "file", name)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "PDF uploaded and processed successfully",
		"filename":     result.Source,
		"total_pages":  result.TotalPages,
		"total_chunks": result.TotalChunks,
	})
}
