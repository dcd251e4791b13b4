package components

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

type ToastVariant string

const (
	ToastSuccess ToastVariant = "success"
	ToastInfo    ToastVariant = "info"
	ToastWarning ToastVariant = "warning"
	ToastError   ToastVariant = "error"
)

// ParseToastVariant maps form values to a variant, defaulting to success.
func ParseToastVariant(s string) ToastVariant {
	switch s {
	case "error", "destructive":
		return ToastError
	case "warning":
		return ToastWarning
	case "info":
		return ToastInfo
	default:
		return ToastSuccess
	}
}

type ToastProps struct {
	Title       string
	Description string
	Variant     ToastVariant
	Dismissible bool
	// Class is merged over the default classes; conflicting utilities win.
	Class string
}

const toastBase = "fixed bottom-4 right-4 rounded border-l-4 p-4 shadow"

var toastClasses = map[ToastVariant]string{
	ToastSuccess: "border-green-600 bg-green-50 text-green-900",
	ToastInfo:    "border-blue-600 bg-blue-50 text-blue-900",
	ToastWarning: "border-amber-600 bg-amber-50 text-amber-900",
	ToastError:   "border-red-600 bg-red-50 text-red-900",
}

// Toast renders a notification fragment for HTMX swaps.
func Toast(p ToastProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		classes, ok := toastClasses[p.Variant]
		if !ok {
			classes = toastClasses[ToastSuccess]
		}
		class := twmerge.Merge(toastBase, classes, p.Class)
		if _, err := fmt.Fprintf(w, `<div class="%s" role="status" data-variant="%s">`,
			templ.EscapeString(class), templ.EscapeString(string(p.Variant))); err != nil {
			return err
		}
		if p.Title != "" {
			if _, err := fmt.Fprintf(w, `<p class="font-semibold">%s</p>`, templ.EscapeString(p.Title)); err != nil {
				return err
			}
		}
		if p.Description != "" {
			if _, err := fmt.Fprintf(w, `<p class="text-sm">%s</p>`, templ.EscapeString(p.Description)); err != nil {
				return err
			}
		}
		if p.Dismissible {
			if _, err := io.WriteString(w, `<button type="button" class="ml-4 text-sm" onclick="this.parentElement.remove()">Dismiss</button>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
