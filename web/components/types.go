package components

import (
	"net/url"
	"strconv"
)

// PreviewData seeds the generator form and its preview image.
type PreviewData struct {
	Text    string
	Pixel   int
	Ink     string
	Paper   string
	Encoder string
	Level   string
	Backend string
	// Encoders lists the selectable encoder names.
	Encoders []string
}

// QueryURL returns the /api/qr URL rendering d as a preview.
func (d PreviewData) QueryURL() string {
	q := url.Values{}
	q.Set("text", d.Text)
	q.Set("size", "preview")
	if d.Pixel > 0 {
		q.Set("pixel", strconv.Itoa(d.Pixel))
	}
	if d.Ink != "" {
		q.Set("fg", d.Ink)
	}
	if d.Paper != "" {
		q.Set("bg", d.Paper)
	}
	if d.Encoder != "" {
		q.Set("encoder", d.Encoder)
	}
	if d.Level != "" {
		q.Set("ecc", d.Level)
	}
	if d.Backend != "" {
		q.Set("backend", d.Backend)
	}
	return "/api/qr?" + q.Encode()
}
