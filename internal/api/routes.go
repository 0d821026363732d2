// routes.go - Route registration helpers
package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mglucas0123/JavaCraft-Dev/internal/history"
	"github.com/mglucas0123/JavaCraft-Dev/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store          storage.Store
	History        history.Store
	ConvertTimeout time.Duration
	Version        string
}

// NewHandlers creates the handler instance from its dependencies
func NewHandlers(deps *Dependencies) *Handler {
	return NewHandler(deps.Store, deps.History, deps.ConvertTimeout, deps.Version)
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, h *Handler) {
	// Health check
	e.GET("/health", h.HandleHealth)
	e.GET("/api/health", h.HandleHealth)

	// Conversion routes
	convertGroup := e.Group("/api/convert")
	convertGroup.POST("", h.HandleConvert)
	convertGroup.POST("/file", h.HandleConvertFile)
	convertGroup.GET("/recent", h.HandleRecentConversions)
	convertGroup.GET("/:id", h.HandleGetConversion)

	// Source file routes
	fileGroup := e.Group("/api/files")
	fileGroup.POST("/upload", h.HandleUploadSource)
	fileGroup.GET("/recent", h.HandleRecentFiles)
	fileGroup.GET("/:id", h.HandleGetFile)
	fileGroup.DELETE("/:id", h.HandleDeleteFile)
	fileGroup.PUT("/:id", h.HandleRenameFile)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler
}
