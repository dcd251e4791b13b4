package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/cristianadrielbraun/roundqr/web/components"
)

// HomePage renders the generator form with a live preview seeded from d.
func HomePage(d components.PreviewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>roundqr</title>
</head>
<body class="min-h-screen bg-neutral-50 p-8 font-sans">
<main class="mx-auto max-w-xl space-y-6">
<h1 class="text-2xl font-semibold">Rounded QR codes</h1>
<form id="qr-form" class="space-y-3" action="/api/qr" method="get" target="_blank">
`); err != nil {
			return err
		}

		fields := []struct{ label, name, kind, value string }{
			{"Text", "text", "text", d.Text},
			{"Module size (px)", "pixel", "number", strconv.Itoa(d.Pixel)},
			{"Ink", "fg", "color", d.Ink},
			{"Paper", "bg", "color", d.Paper},
		}
		for _, f := range fields {
			if _, err := fmt.Fprintf(w,
				`<label class="block">%s <input class="w-full rounded border p-2" type="%s" name="%s" value="%s"></label>
`, templ.EscapeString(f.label), f.kind, f.name, templ.EscapeString(f.value)); err != nil {
				return err
			}
		}

		if err := selectField(w, "Encoder", "encoder", d.Encoders, d.Encoder); err != nil {
			return err
		}
		if err := selectField(w, "Error correction", "ecc", []string{"L", "M", "Q", "H"}, d.Level); err != nil {
			return err
		}
		if err := selectField(w, "Rasterizer", "backend", []string{"rasterx", "gg"}, d.Backend); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w, `<input type="hidden" name="size" value="download">
<button class="rounded bg-black px-4 py-2 text-white" type="submit">Download PNG</button>
</form>
<img id="qr-preview" class="mx-auto rounded border" alt="QR code preview" src="%s">
</main>
<script>
const form = document.getElementById("qr-form");
form.addEventListener("input", () => {
  const q = new URLSearchParams(new FormData(form));
  q.set("size", "preview");
  document.getElementById("qr-preview").src = "/api/qr?" + q.toString();
});
</script>
</body>
</html>
`, templ.EscapeString(d.QueryURL()))
		return err
	})
}

func selectField(w io.Writer, label, name string, options []string, selected string) error {
	if _, err := fmt.Fprintf(w, `<label class="block">%s <select class="w-full rounded border p-2" name="%s">`,
		templ.EscapeString(label), name); err != nil {
		return err
	}
	for _, o := range options {
		attr := ""
		if o == selected {
			attr = " selected"
		}
		if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`,
			templ.EscapeString(o), attr, templ.EscapeString(o)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</select></label>\n")
	return err
}
