package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/roundqr/internal/config"
	"github.com/cristianadrielbraun/roundqr/internal/qr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, mutate func(*config.Config)) (*gin.Engine, *config.Config) {
	t.Helper()
	cfg := config.Defaults()
	cfg.UploadsDir = t.TempDir()
	if mutate != nil {
		mutate(cfg)
	}
	h, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	r := gin.New()
	h.Register(r)
	return r, cfg
}

func get(r http.Handler, path string, q url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path+"?"+q.Encode(), nil)
	r.ServeHTTP(w, req)
	return w
}

func decodePNG(t *testing.T, w *httptest.ResponseRecorder) image.Image {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))
	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	return img
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestNewRejectsInvalidRenderConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Render.Encoder = "zxing"
	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, qr.ErrUnknownEncoder)
}

func TestQRCodeHandlerPNG(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := get(r, "/api/qr", url.Values{"text": {"hello"}, "pixel": {"4"}})
	img := decodePNG(t, w)
	assert.Equal(t, image.Rect(0, 0, 84, 84), img.Bounds())
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Equal(t, "20", w.Header().Get("X-QR-Reserved"))
	assert.Contains(t, w.Header().Get("X-QR-Debug"), "modules=21")
	assert.Contains(t, w.Header().Get("X-QR-Debug"), "encoder=yeqown")
	// Finder center is ink, reserved center is paper.
	finder := rgbaAt(img, 14, 14)
	assert.Less(t, int(finder.R), 8)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgbaAt(img, 42, 42))
}

func TestQRCodeHandlerURL(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := get(r, "/api/qr", url.Values{"url": {"example.com"}})
	img := decodePNG(t, w)

	m, err := qr.EncodeWith("https://example.com", qr.Yeqown, qr.LevelMedium)
	require.NoError(t, err)
	side := m.Size() * 16
	assert.Equal(t, image.Rect(0, 0, side, side), img.Bounds())
	assert.Equal(t, strconv.Itoa(qr.ReservedPixelExtent(m, 16)), w.Header().Get("X-QR-Reserved"))
}

func TestQRCodeHandlerSizes(t *testing.T) {
	r, _ := newTestRouter(t, func(c *config.Config) {
		c.Render.DownloadPixel = 30
	})

	img := decodePNG(t, get(r, "/api/qr", url.Values{"text": {"hello"}, "size": {"download"}}))
	assert.Equal(t, 21*30, img.Bounds().Dx())

	img = decodePNG(t, get(r, "/api/qr", url.Values{"text": {"hello"}, "pixel": {"4"}, "margin": {"2"}}))
	assert.Equal(t, 84+2*8, img.Bounds().Dx())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgbaAt(img, 1, 1), "margin is paper")

	img = decodePNG(t, get(r, "/api/qr", url.Values{"text": {"hello"}, "previewSize": {"50"}}))
	assert.Equal(t, image.Rect(0, 0, 50, 50), img.Bounds())

	// previewSize only applies to previews.
	img = decodePNG(t, get(r, "/api/qr", url.Values{"text": {"hello"}, "size": {"download"}, "previewSize": {"50"}}))
	assert.Equal(t, 21*30, img.Bounds().Dx())
}

func TestQRCodeHandlerOptions(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	for _, q := range []url.Values{
		{"text": {"hello"}, "encoder": {"skip2"}},
		{"text": {"hello"}, "encoder": {"rsc"}, "ecc": {"H"}},
		{"text": {"hello"}, "backend": {"gg"}},
	} {
		q.Set("pixel", "4")
		img := decodePNG(t, get(r, "/api/qr", q))
		assert.Equal(t, 84, img.Bounds().Dx(), q.Encode())
	}

	img := decodePNG(t, get(r, "/api/qr", url.Values{
		"text": {"hello"}, "pixel": {"4"}, "fg": {"#ff0000"}, "bg": {"#00f"},
	}))
	finder := rgbaAt(img, 14, 14)
	assert.Greater(t, int(finder.R), 247)
	assert.Less(t, int(finder.B), 8)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rgbaAt(img, 42, 42))

	img = decodePNG(t, get(r, "/api/qr", url.Values{"text": {"hello"}, "pixel": {"4"}, "bg": {"transparent"}}))
	assert.Equal(t, uint8(0), rgbaAt(img, 42, 42).A)
	assert.Greater(t, int(rgbaAt(img, 14, 14).A), 247)
}

func TestQRCodeHandlerJPEG(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	for _, format := range []string{"jpg", "jpeg"} {
		w := get(r, "/api/qr", url.Values{"text": {"hello"}, "pixel": {"4"}, "format": {format}, "bg": {"transparent"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
		img, err := jpeg.Decode(w.Body)
		require.NoError(t, err)
		assert.Equal(t, 84, img.Bounds().Dx())
		c := rgbaAt(img, 42, 42)
		assert.Greater(t, int(c.R), 230, "transparent paper is flattened onto white")
	}

	// Unknown formats fall back to PNG.
	decodePNG(t, get(r, "/api/qr", url.Values{"text": {"hello"}, "format": {"gif"}}))
}

func TestQRCodeHandlerBadRequests(t *testing.T) {
	r, _ := newTestRouter(t, func(c *config.Config) {
		c.Render.MaxTextLength = 20
	})

	tests := []struct {
		name string
		q    url.Values
	}{
		{"no text", url.Values{}},
		{"bad url scheme", url.Values{"url": {"ftp://example.com"}}},
		{"text too long", url.Values{"text": {strings.Repeat("a", 21)}}},
		{"url too long", url.Values{"url": {"example.com/" + strings.Repeat("a", 20)}}},
		{"pixel zero", url.Values{"text": {"hi"}, "pixel": {"0"}}},
		{"pixel too large", url.Values{"text": {"hi"}, "pixel": {"1000"}}},
		{"pixel not a number", url.Values{"text": {"hi"}, "pixel": {"big"}}},
		{"margin", url.Values{"text": {"hi"}, "margin": {"17"}}},
		{"preview size", url.Values{"text": {"hi"}, "previewSize": {"0"}}},
		{"fg", url.Values{"text": {"hi"}, "fg": {"#zzzzzz"}}},
		{"fg transparent", url.Values{"text": {"hi"}, "fg": {"transparent"}}},
		{"bg", url.Values{"text": {"hi"}, "bg": {"#1234"}}},
		{"encoder", url.Values{"text": {"hi"}, "encoder": {"zxing"}}},
		{"ecc", url.Values{"text": {"hi"}, "ecc": {"X"}}},
		{"backend", url.Values{"text": {"hi"}, "backend": {"cairo"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/api/qr", tt.q)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestQRCodeHandlerTextOverCapacity(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	// Within max_text_length but beyond what the level can hold.
	for _, q := range []url.Values{
		{"text": {strings.Repeat("x", 2900)}},
		{"text": {strings.Repeat("x", 2000)}, "ecc": {"H"}},
	} {
		w := get(r, "/api/qr", q)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "text cannot be encoded")
	}

	w := get(r, "/api/qr", url.Values{"text": {strings.Repeat("x", 4000)}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "text is too long")
}

func TestQRCodeHandlerMaxEdge(t *testing.T) {
	r, _ := newTestRouter(t, func(c *config.Config) {
		c.Render.MaxEdge = 100
	})

	tests := []struct {
		name  string
		q     url.Values
		code  int
		width int
	}{
		{"explicit pixel too large", url.Values{"pixel": {"5"}}, http.StatusBadRequest, 0},
		{"margin pushes over", url.Values{"pixel": {"4"}, "margin": {"3"}}, http.StatusBadRequest, 0},
		{"exactly at the limit", url.Values{"pixel": {"4"}, "margin": {"2"}}, http.StatusOK, 100},
		{"default pixel shrinks", url.Values{}, http.StatusOK, 84},
		{"default download pixel shrinks", url.Values{"size": {"download"}, "margin": {"16"}}, http.StatusOK, 53},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.q.Set("text", "hello")
			w := get(r, "/api/qr", tt.q)
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code != http.StatusOK {
				assert.Contains(t, w.Body.String(), "max 100px")
				return
			}
			img := decodePNG(t, w)
			assert.Equal(t, tt.width, img.Bounds().Dx())
		})
	}
}

func TestQRCodeHandlerRejectsHugeSurface(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := get(r, "/api/qr", url.Values{"text": {strings.Repeat("x", 1800)}, "pixel": {"160"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "max 8192px")
}

func TestQRCodeHandlerReservedHeaderTracksScaling(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	tests := []struct {
		q    url.Values
		want string
	}{
		{url.Values{"pixel": {"10"}}, "50"},
		{url.Values{"pixel": {"10"}, "margin": {"2"}}, "50"},
		{url.Values{"pixel": {"10"}, "previewSize": {"105"}}, "25"},
		{url.Values{"pixel": {"10"}, "margin": {"2"}, "previewSize": {"125"}}, "25"},
	}
	for _, tt := range tests {
		tt.q.Set("text", "hello")
		w := get(r, "/api/qr", tt.q)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tt.want, w.Header().Get("X-QR-Reserved"), tt.q.Encode())
	}
}

func writeLogo(t *testing.T, dir, name string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644))
}

func TestQRCodeHandlerCenterLogo(t *testing.T) {
	r, cfg := newTestRouter(t, nil)
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}
	writeLogo(t, cfg.UploadsDir, "brand.png", red)
	writeLogo(t, cfg.UploadsDir, defaultLogo, green)

	q := url.Values{"text": {"hello"}, "pixel": {"10"}, "centerLogo": {"true"}, "logoFile": {"brand.png"}}
	img := decodePNG(t, get(r, "/api/qr", q))
	// 21 modules reserve 5, so the logo is scaled to 50px centered at 105.
	assertRed := func(c color.RGBA) {
		assert.Greater(t, int(c.R), 240)
		assert.Less(t, int(c.G), 16)
	}
	assertRed(rgbaAt(img, 105, 105))
	assertRed(rgbaAt(img, 81, 81))

	// Path components are stripped from logoFile.
	q.Set("logoFile", "../../brand.png")
	assertRed(rgbaAt(decodePNG(t, get(r, "/api/qr", q)), 105, 105))

	// Without logoFile the default upload is used.
	q.Del("logoFile")
	c := rgbaAt(decodePNG(t, get(r, "/api/qr", q)), 105, 105)
	assert.Greater(t, int(c.G), 240)

	// A missing logo leaves the center blank.
	q.Set("logoFile", "missing.png")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgbaAt(decodePNG(t, get(r, "/api/qr", q)), 105, 105))

	// centerLogo must be requested.
	q.Set("logoFile", "brand.png")
	q.Del("centerLogo")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgbaAt(decodePNG(t, get(r, "/api/qr", q)), 105, 105))
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := get(r, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHome(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	w := get(r, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `id="qr-preview"`)
	assert.Contains(t, w.Body.String(), `<option value="yeqown" selected>yeqown</option>`)
}

func TestGenericToast(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	form := url.Values{"title": {"Copied"}, "variant": {"warning"}, "class": {"p-2"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/htmx/toast", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Copied")
	assert.Contains(t, w.Body.String(), `data-variant="warning"`)
	assert.Contains(t, w.Body.String(), `text-amber-900 p-2"`)
	assert.NotContains(t, w.Body.String(), "p-4", "class overrides the default padding")
}
