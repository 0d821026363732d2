package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mglucas0123/JavaCraft-Dev/internal/converter"
	"github.com/mglucas0123/JavaCraft-Dev/internal/history"
	"github.com/mglucas0123/JavaCraft-Dev/internal/models"
	"github.com/mglucas0123/JavaCraft-Dev/internal/storage"
	"github.com/vmihailenco/msgpack/v5"
)

// Handler handles API requests.
type Handler struct {
	store          storage.Store
	history        history.Store
	convertTimeout time.Duration
	version        string
}

// NewHandler creates a new API handler.
func NewHandler(store storage.Store, hist history.Store, convertTimeout time.Duration, version string) *Handler {
	if convertTimeout <= 0 {
		convertTimeout = 30 * time.Second
	}
	return &Handler{
		store:          store,
		history:        hist,
		convertTimeout: convertTimeout,
		version:        version,
	}
}

// HandleHealth returns server health status.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// convertResponse is the JSON body for a successful conversion.
type convertResponse struct {
	ID            string           `json:"id"`
	ClassName     string           `json:"className"`
	Namespace     string           `json:"namespace,omitempty"`
	Archetype     models.Archetype `json:"archetype"`
	PartCount     int              `json:"partCount"`
	Notes         []string         `json:"notes,omitempty"`
	ConvertedCode string           `json:"convertedCode"`
}

// HandleConvert converts legacy model source supplied inline, either as
// JSON {"code": "..."} or as a raw text/plain body.
func (h *Handler) HandleConvert(c echo.Context) error {
	var code string
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMETextPlain) {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return NewBadRequestError("failed to read request body", err)
		}
		code = string(body)
	} else {
		var req struct {
			Code string `json:"code"`
		}
		if err := c.Bind(&req); err != nil {
			return NewBadRequestError("invalid JSON body", err)
		}
		code = req.Code
	}
	if strings.TrimSpace(code) == "" {
		return NewBadRequestError("code is required", nil)
	}

	resp, err := h.runConversion(c.Request().Context(), code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// runConversion executes the pipeline, records history and returns the
// response body. Converter errors come back already mapped to APIError.
func (h *Handler) runConversion(ctx context.Context, src string) (*convertResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, h.convertTimeout)
	defer cancel()

	start := time.Now()
	desc, code, err := converter.ConvertFull(ctx, src)
	if err != nil {
		return nil, NewConversionError(err)
	}

	rec := &models.ConversionRecord{
		ID:            uuid.New().String(),
		ClassName:     desc.ClassName,
		Namespace:     desc.Namespace,
		Archetype:     desc.Archetype,
		PartCount:     len(desc.Parts),
		SourceSize:    len(src),
		OutputSize:    len(code),
		ConvertedCode: code,
		Notes:         desc.Notes,
		CreatedAt:     time.Now(),
	}
	if err := h.history.Record(ctx, rec); err != nil {
		// A history failure must not lose the user's conversion result.
		fmt.Printf("[API] history record failed: %v\n", err)
	}

	fmt.Printf("[API] Converted %s: %d parts, archetype=%s, %d -> %d bytes in %v\n",
		desc.ClassName, len(desc.Parts), desc.Archetype, len(src), len(code), time.Since(start))

	return &convertResponse{
		ID:            rec.ID,
		ClassName:     desc.ClassName,
		Namespace:     desc.Namespace,
		Archetype:     desc.Archetype,
		PartCount:     len(desc.Parts),
		Notes:         desc.Notes,
		ConvertedCode: code,
	}, nil
}

// HandleRecentConversions returns recent conversion metadata.
func (h *Handler) HandleRecentConversions(c echo.Context) error {
	records, err := h.history.Recent(c.Request().Context(), 20)
	if err != nil {
		return NewInternalError("failed to list conversions", err)
	}
	if records == nil {
		records = []*models.ConversionRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

// HandleGetConversion returns one conversion including its converted code.
// Clients that accept application/msgpack get a MessagePack body, which is
// noticeably smaller for large converted sources.
func (h *Handler) HandleGetConversion(c echo.Context) error {
	id := c.Param("id")
	rec, err := h.history.Get(c.Request().Context(), id)
	if err != nil {
		return NewNotFoundError("conversion", id)
	}

	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), "application/msgpack") {
		data, err := msgpack.Marshal(rec)
		if err != nil {
			return NewInternalError("failed to encode msgpack", err)
		}
		return c.Blob(http.StatusOK, "application/msgpack", data)
	}
	return c.JSON(http.StatusOK, rec)
}

// HandleUploadSource accepts a legacy source file as base64 JSON and saves
// it to storage for later conversion.
func (h *Handler) HandleUploadSource(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
		Data string `json:"data"` // Base64-encoded file content
	}
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if req.Name == "" || req.Data == "" {
		return NewBadRequestError("name and data are required", nil)
	}

	// Decode base64
	decoded, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return NewBadRequestError("invalid base64 data", err)
	}

	info, err := h.store.Save(req.Name, bytes.NewReader(decoded))
	if err != nil {
		return NewInternalError("failed to save file", err)
	}

	return c.JSON(http.StatusCreated, info)
}

// HandleConvertFile converts a previously uploaded source file by ID and
// marks its status.
func (h *Handler) HandleConvertFile(c echo.Context) error {
	var req struct {
		FileID string `json:"fileId"`
	}
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.FileID == "" {
		return NewBadRequestError("fileId is required", nil)
	}

	src, err := h.store.ReadSource(req.FileID)
	if err != nil {
		return NewNotFoundError("file", req.FileID)
	}

	resp, err := h.runConversion(c.Request().Context(), src)
	if err != nil {
		h.store.SetStatus(req.FileID, "error")
		return err
	}

	h.store.SetStatus(req.FileID, "converted")
	return c.JSON(http.StatusOK, resp)
}

// HandleRecentFiles returns a list of recently uploaded source files.
func (h *Handler) HandleRecentFiles(c echo.Context) error {
	files, err := h.store.List(20)
	if err != nil {
		return NewInternalError("failed to list files", err)
	}
	if files == nil {
		files = []*models.FileInfo{}
	}
	return c.JSON(http.StatusOK, files)
}

// HandleGetFile returns metadata for a specific file.
func (h *Handler) HandleGetFile(c echo.Context) error {
	id := c.Param("id")
	info, err := h.store.Get(id)
	if err != nil {
		return NewNotFoundError("file", id)
	}
	return c.JSON(http.StatusOK, info)
}

// HandleDeleteFile removes a file from storage.
func (h *Handler) HandleDeleteFile(c echo.Context) error {
	id := c.Param("id")
	if err := h.store.Delete(id); err != nil {
		return NewNotFoundError("file", id)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleRenameFile updates the name of a file.
func (h *Handler) HandleRenameFile(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.Name == "" {
		return NewBadRequestError("name is required", nil)
	}

	info, err := h.store.Rename(id, req.Name)
	if err != nil {
		return NewNotFoundError("file", id)
	}
	return c.JSON(http.StatusOK, info)
}
