package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/roundqr/internal/canvas"
	"github.com/cristianadrielbraun/roundqr/internal/config"
	"github.com/cristianadrielbraun/roundqr/internal/logo"
	"github.com/cristianadrielbraun/roundqr/internal/qr"
)

const (
	maxMargin      = 16
	maxPreviewSize = 4096
	jpegQuality    = 92
	defaultLogo    = "temp_logo.png"
)

// normalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme, a non-empty hostname, and returns a cleaned absolute URL.
func normalizeHTTPURL(s string, maxLen int) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL parameter is required")
	}
	// If missing scheme, default to https
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	if len(v) > maxLen {
		return "", fmt.Errorf("URL is too long")
	}
	return u.String(), nil
}

// parseColorParam parses a hex color or "transparent". Empty yields the default.
func parseColorParam(param string, defaultColor color.RGBA) (color.RGBA, error) {
	if param == "" {
		return defaultColor, nil
	}
	return config.ParseColor(param)
}

// intParam parses an optional integer query parameter within [lo, hi].
func intParam(c *gin.Context, name string, def, lo, hi int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%s must be between %d and %d", name, lo, hi)
	}
	return n, nil
}

// fitPixel checks the served edge, margin included, against maxEdge. A
// default pixel shrinks to fit; an explicit one is rejected.
func fitPixel(modules, margin, pixel int, explicit bool, maxEdge int) (int, error) {
	span := modules + 2*margin
	if span*pixel <= maxEdge {
		return pixel, nil
	}
	if !explicit && maxEdge/span >= 1 {
		return maxEdge / span, nil
	}
	return 0, fmt.Errorf("image would be %dpx wide (max %dpx); lower pixel or margin", span*pixel, maxEdge)
}

// qrRequest is a parsed /api/qr query.
type qrRequest struct {
	text        string
	format      string
	size        string
	pixel       int
	pixelSet    bool
	ink         color.RGBA
	paper       color.RGBA
	encoderName string
	encoder     qr.Encoder
	level       qr.Level
	backend     canvas.Backend
	margin      int
	previewSize int
	centerLogo  bool
	logoFile    string
}

func (h *Handler) parseQRRequest(c *gin.Context) (*qrRequest, error) {
	rc := h.cfg.Render
	req := &qrRequest{
		encoderName: rc.Encoder,
		encoder:     h.renderer.Encoder,
		level:       h.renderer.Level,
		backend:     h.renderer.Backend,
		centerLogo:  c.DefaultQuery("centerLogo", "false") == "true",
		logoFile:    c.Query("logoFile"),
	}

	req.text = c.Query("text")
	if req.text == "" {
		rawURL := strings.TrimSpace(c.Query("url"))
		if rawURL == "" {
			return nil, fmt.Errorf("text or url parameter is required")
		}
		normalized, err := normalizeHTTPURL(rawURL, rc.MaxTextLength)
		if err != nil {
			return nil, err
		}
		req.text = normalized
	}
	if len(req.text) > rc.MaxTextLength {
		return nil, fmt.Errorf("text is too long (max %d bytes)", rc.MaxTextLength)
	}

	// Parse format parameter (default to PNG)
	req.format = strings.ToLower(c.DefaultQuery("format", "png"))
	if req.format == "jpeg" {
		req.format = "jpg"
	}
	if req.format != "png" && req.format != "jpg" {
		req.format = "png"
	}

	// "preview" or "download"
	req.size = c.DefaultQuery("size", "preview")
	def := rc.Pixel
	if req.size == "download" {
		def = rc.DownloadPixel
	}

	var err error
	if req.pixel, err = intParam(c, "pixel", def, 1, rc.MaxPixel); err != nil {
		return nil, err
	}
	req.pixelSet = c.Query("pixel") != ""
	if req.margin, err = intParam(c, "margin", 0, 0, maxMargin); err != nil {
		return nil, err
	}
	if req.previewSize, err = intParam(c, "previewSize", 0, 1, maxPreviewSize); err != nil {
		return nil, err
	}
	if req.ink, err = parseColorParam(c.Query("fg"), h.renderer.Ink); err != nil {
		return nil, err
	}
	if req.ink.A == 0 {
		return nil, fmt.Errorf("fg must be opaque")
	}
	if req.paper, err = parseColorParam(c.Query("bg"), h.renderer.Paper); err != nil {
		return nil, err
	}
	if name := c.Query("encoder"); name != "" {
		if req.encoder, err = qr.EncoderByName(name); err != nil {
			return nil, err
		}
		req.encoderName = name
	}
	if ecc := c.Query("ecc"); ecc != "" {
		if req.level, err = qr.ParseLevel(ecc); err != nil {
			return nil, err
		}
	}
	if b := c.Query("backend"); b != "" {
		if req.backend, err = canvas.ParseBackend(b); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// QRCodeHandler renders a rounded QR code as PNG or JPEG.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	start := time.Now()

	req, err := h.parseQRRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := qr.EncodeWith(req.text, req.encoder, req.level)
	if err != nil {
		// Capacity failures come from the client's text; a malformed matrix
		// is an encoder bug.
		if errors.Is(err, qr.ErrEmptyText) ||
			errors.Is(err, qr.ErrEncode) && !errors.Is(err, qr.ErrInvalidMatrix) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("text cannot be encoded: %v", err)})
			return
		}
		h.log.Error("failed to encode qr code", slog.String("encoder", req.encoderName), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create QR code"})
		return
	}

	if req.pixel, err = fitPixel(m.Size(), req.margin, req.pixel, req.pixelSet, h.cfg.Render.MaxEdge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	img, err := qr.Render(m, req.pixel, qr.WithColors(req.ink, req.paper), qr.WithBackend(req.backend))
	if err != nil {
		h.log.Error("failed to render qr code", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to generate QR code image: %v", err)})
		return
	}

	extent := qr.ReservedPixelExtent(m, req.pixel)
	if req.centerLogo {
		img = h.addLogo(img, req.logoFile, extent)
	}
	img = addPadding(img, req.margin*req.pixel, req.paper)
	// X-QR-Reserved is the reserved edge in pixels of the returned image.
	reserved := extent
	if req.size == "preview" && req.previewSize > 0 {
		reserved = extent * req.previewSize / img.Bounds().Dx()
		img = scaleExact(img, req.previewSize)
	}

	var buf bytes.Buffer
	contentType := "image/png"
	if req.format == "jpg" {
		contentType = "image/jpeg"
		err = jpeg.Encode(&buf, canvas.Flatten(img, req.paper), &jpeg.Options{Quality: jpegQuality})
	} else {
		err = png.Encode(&buf, img)
	}
	if err != nil {
		h.log.Error("failed to encode image", slog.String("format", req.format), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to encode %s: %v", strings.ToUpper(req.format), err)})
		return
	}

	c.Header("Cache-Control", "public, max-age=3600") // Cache for 1 hour
	c.Header("X-QR-Debug", fmt.Sprintf("format=%s;size=%s;encoder=%s;ecc=%s;backend=%s;modules=%d;pixel=%d",
		req.format, req.size, req.encoderName, req.level, req.backend, m.Size(), req.pixel))
	c.Header("X-QR-Reserved", strconv.Itoa(reserved))
	c.Data(http.StatusOK, contentType, buf.Bytes())

	h.log.Info("qr rendered",
		slog.Int("size", m.Size()),
		slog.Int("pixel", req.pixel),
		slog.String("encoder", req.encoderName),
		slog.String("format", req.format),
		slog.Duration("elapsed", time.Since(start)),
	)
}

// addLogo pastes an uploaded logo into the reserved center. A missing or
// unreadable logo leaves the code as is.
func (h *Handler) addLogo(img *image.RGBA, logoFile string, extent int) *image.RGBA {
	name := defaultLogo
	if logoFile != "" {
		name = filepath.Base(logoFile)
	}
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return img
	}
	path := filepath.Join(h.cfg.UploadsDir, name)
	if _, err := os.Stat(path); err != nil {
		h.log.Debug("logo not found", slog.String("path", path))
		return img
	}

	overlay, err := logo.Load(path, extent)
	if err != nil {
		h.log.Warn("failed to prepare logo", slog.String("path", path), slog.Any("error", err))
		return img
	}
	return qr.CompositeCenter(img, overlay)
}
