package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/roundqr/internal/config"
	"github.com/cristianadrielbraun/roundqr/internal/qr"
	"github.com/cristianadrielbraun/roundqr/web/components"
	"github.com/cristianadrielbraun/roundqr/web/pages"
)

// Handler holds the dependencies shared by the HTTP handlers.
type Handler struct {
	cfg      *config.Config
	renderer config.Renderer
	log      *slog.Logger
}

// New returns a Handler for cfg. The render settings must be valid.
func New(cfg *config.Config, logger *slog.Logger) (*Handler, error) {
	r, err := cfg.Render.Options()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{cfg: cfg, renderer: r, log: logger}, nil
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/htmx/toast", h.GenericToast)
	}
	r.GET("/", h.Home)
	r.GET("/healthz", h.Health)
}

// Home serves the generator page.
func (h *Handler) Home(c *gin.Context) {
	rc := h.cfg.Render
	data := components.PreviewData{
		Text:     "https://example.com",
		Pixel:    rc.Pixel,
		Ink:      rc.Ink,
		Paper:    rc.Paper,
		Encoder:  rc.Encoder,
		Level:    h.renderer.Level.String(),
		Backend:  string(h.renderer.Backend),
		Encoders: qr.EncoderNames(),
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pages.HomePage(data).Render(c.Request.Context(), c.Writer); err != nil {
		h.log.Error("failed to render home page", slog.Any("error", err))
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	_ = components.Toast(components.ToastProps{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     components.ParseToastVariant(c.PostForm("variant")),
		Dismissible: c.PostForm("dismissible") == "on",
		Class:       c.PostForm("class"),
	}).Render(c.Request.Context(), c.Writer)
}
