package handler

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mibiblioteca/catalog-api/internal/api/metrics"
	"github.com/mibiblioteca/catalog-api/internal/core/domain"
	"github.com/mibiblioteca/catalog-api/internal/core/ports"
)

// AssetHandler streams stored covers and PDFs.
type AssetHandler struct {
	service ports.AssetService
}

func NewAssetHandler(service ports.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// Download streams an asset as an attachment to an authenticated user.
//
// @Summary      Download a file
// @Tags         archivos
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        filename  path      string  true  "Asset name"
// @Success      200       {file}    binary
// @Failure      401       {object}  errorBody
// @Failure      404       {object}  errorBody
// @Router       /api/download/{filename} [get]
func (h *AssetHandler) Download(c echo.Context) error {
	return h.serve(c, c.Param("filename"), "attachment", "download")
}

// Public serves an asset inline without authentication.
//
// @Summary      Public file
// @Tags         archivos
// @Produce      octet-stream
// @Param        file  path      string  true  "Asset name"
// @Success      200   {file}    binary
// @Failure      404   {object}  errorBody
// @Router       /uploads/{file} [get]
func (h *AssetHandler) Public(c echo.Context) error {
	return h.serve(c, c.Param("file"), "inline", "uploads")
}

func (h *AssetHandler) serve(c echo.Context, name, disposition, route string) error {
	asset, err := h.service.Open(c.Request().Context(), name)
	if err != nil {
		return err
	}
	defer asset.Content.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, mime.FormatMediaType(disposition, map[string]string{"filename": asset.Name}))
	if asset.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(asset.Size, 10))
	}
	if !asset.ModTime.IsZero() {
		header.Set(echo.HeaderLastModified, asset.ModTime.UTC().Format(http.TimeFormat))
	}

	metrics.AssetDownloadsTotal.WithLabelValues(route).Inc()
	return c.Stream(http.StatusOK, contentType(asset), asset.Content)
}

func contentType(a *domain.Asset) string {
	if a.ContentType != "" {
		return a.ContentType
	}
	return echo.MIMEOctetStream
}
