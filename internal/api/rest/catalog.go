package rest

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/draco-astrodb/astrodb/internal/astrodb"
	"github.com/draco-astrodb/astrodb/internal/catfmt"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// importSource accepts a multipart file upload of one catalog source
// kind -- stars_bin (CELSTARS), stars_stc, dso_dsc, names, or xindex
// (CELINDEX, with a "prefix" form field naming the external catalog,
// e.g. "HD") -- sniffs its content type with mimetype to confirm it
// matches the declared kind, and feeds it into the server's in-progress
// Builder, creating one lazily on first import.
func (s *Server) importSource(c *gin.Context) {
	kind := c.PostForm("kind")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	mime := mimetype.Detect(data)
	isBinary := kind == "stars_bin" || kind == "xindex"
	isText := strings.HasPrefix(mime.String(), "text/")
	if isBinary && isText {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected binary content for kind " + kind + ", got " + mime.String()})
		return
	}
	if !isBinary && !isText {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected text content for kind " + kind + ", got " + mime.String()})
		return
	}

	s.mu.Lock()
	if s.builder == nil {
		s.builder = astrodb.NewBuilder(s.bus)
	}
	builder := s.builder
	s.mu.Unlock()

	var count int
	switch kind {
	case "stars_bin":
		records, err := catfmt.ReadCELSTARS(bytes.NewReader(data))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		count, err = builder.LoadStarsBinary(records)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	case "stars_stc":
		tok := catfmt.NewTokenizer(bytes.NewReader(data))
		count, err = builder.LoadStarsText(tok)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	case "dso_dsc":
		tok := catfmt.NewTokenizer(bytes.NewReader(data))
		count, err = builder.LoadDSOsText(tok)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	case "names":
		records, readErr := catfmt.ReadNames(bytes.NewReader(data), nil)
		if readErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": readErr.Error()})
			return
		}
		count = builder.LoadNames(records)

	case "xindex":
		prefix := c.PostForm("prefix")
		if prefix == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing prefix form field"})
			return
		}
		pairs, readErr := catfmt.ReadCELINDEX(bytes.NewReader(data))
		if readErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": readErr.Error()})
			return
		}
		overwrite := c.PostForm("overwrite") == "true"
		count, err = builder.LoadCrossIndex(prefix, pairs, overwrite)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown kind " + kind})
		return
	}

	c.JSON(http.StatusOK, gin.H{"kind": kind, "loaded": count})
}

// sealCatalog finalizes the in-progress Builder into an immutable
// Database, swapping it in behind the server's lock. The Builder is
// single-use: a subsequent import starts a fresh one.
func (s *Server) sealCatalog(c *gin.Context) {
	s.mu.Lock()
	builder := s.builder
	s.builder = nil
	s.mu.Unlock()

	if builder == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing accumulated; POST /api/v1/catalog/import first"})
		return
	}

	db, err := builder.Seal(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.SetDatabase(db)
	c.JSON(http.StatusOK, gin.H{"status": "sealed"})
}
