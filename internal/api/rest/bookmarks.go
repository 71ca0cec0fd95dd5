package rest

import (
	"errors"
	"net/http"

	"github.com/draco-astrodb/astrodb/internal/bookmarks"
	"github.com/gin-gonic/gin"
)

func (s *Server) listBookmarks(c *gin.Context) {
	names, err := s.bookmarks.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": names})
}

func (s *Server) getBookmark(c *gin.Context) {
	obs, err := s.bookmarks.Get(c.Request.Context(), c.Param("name"))
	if errors.Is(err, bookmarks.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "bookmark not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, obs)
}

func (s *Server) setBookmark(c *gin.Context) {
	var obs bookmarks.Observer
	if err := c.ShouldBindJSON(&obs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.bookmarks.Set(c.Request.Context(), c.Param("name"), obs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func (s *Server) deleteBookmark(c *gin.Context) {
	if err := s.bookmarks.Delete(c.Request.Context(), c.Param("name")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
