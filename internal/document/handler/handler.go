package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkpad/inkpad/internal/document"
	"github.com/inkpad/inkpad/pkg/logger"
)

// RegisterDocumentRoutes wires the document API onto r. The handlers are
// thin: they parse requests, invoke the manager and map its errors
// (ErrNotFound -> 404, StorageError -> 500).
func RegisterDocumentRoutes(r *gin.Engine, mgr *document.Manager) {
	r.GET("/api/documents", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"documents": mgr.List()})
	})

	r.POST("/api/documents", func(c *gin.Context) {
		var req struct {
			Title   string `json:"title" binding:"required"`
			Content string `json:"content"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id, err := mgr.Create(req.Title, req.Content)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id, "title": req.Title})
	})

	r.GET("/api/documents/:id", func(c *gin.Context) {
		doc, err := mgr.Get(c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	})

	r.PUT("/api/documents/:id", func(c *gin.Context) {
		var req struct {
			Content string `json:"content"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := mgr.Save(c.Param("id"), req.Content, true); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Document saved successfully"})
	})

	r.DELETE("/api/documents/:id", func(c *gin.Context) {
		if err := mgr.Delete(c.Param("id")); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.GET("/api/documents/:id/backups", func(c *gin.Context) {
		backups, err := mgr.ListBackups(c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"backups": backups})
	})

	r.POST("/api/documents/:id/restore/:timestamp", func(c *gin.Context) {
		if err := mgr.Restore(c.Param("id"), c.Param("timestamp")); err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Backup restored successfully"})
	})
}

func abortWithError(c *gin.Context, err error) {
	if errors.Is(err, document.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
}
