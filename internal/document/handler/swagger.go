package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the document API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>inkpad — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the document storage endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "inkpad", "version": "v0.1.0" },
  "paths": {
    "/api/documents": {
      "get": { "summary": "List documents, most recently modified first", "responses": { "200": { "description": "document summaries" } } },
      "post": {
        "summary": "Create a document",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["title"],"properties":{"title":{"type":"string"},"content":{"type":"string"}}}}}},
        "responses": { "201": { "description": "id of the new document" }, "400": { "description": "invalid request" } }
      }
    },
    "/api/documents/{id}": {
      "get": { "summary": "Get document content and metadata", "responses": { "200": { "description": "document" }, "404": { "description": "unknown id" } } },
      "put": {
        "summary": "Save document content (snapshots the prior content when it changed)",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"content":{"type":"string"}}}}}},
        "responses": { "200": { "description": "saved" }, "404": { "description": "unknown id" } }
      },
      "delete": { "summary": "Delete a document and all of its backups", "responses": { "204": { "description": "deleted" }, "404": { "description": "unknown id" } } }
    },
    "/api/documents/{id}/backups": {
      "get": { "summary": "List backups, newest first", "responses": { "200": { "description": "backup timestamps" }, "404": { "description": "unknown id" } } }
    },
    "/api/documents/{id}/restore/{timestamp}": {
      "post": { "summary": "Restore a backup (the pre-restore state is snapshotted first)", "responses": { "200": { "description": "restored" }, "404": { "description": "unknown id or backup" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } }
  }
}`
