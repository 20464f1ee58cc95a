package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"log"
)

// LoadingMarkup is the content of the loading indicator.
const LoadingMarkup = "<p>Loading...</p>"

// LoadingClass marks the loading indicator element.
const LoadingClass = "loading"

// Op is an asynchronous page operation producing markup.
type Op[A any] func(ctx context.Context, arg A) (string, error)

// WithLoading shows a loading indicator in #root while next runs. The
// indicator is removed once next returns, whether or not it failed, and a
// failure is returned after the cleanup.
func WithLoading[A any](doc *Document, next Op[A]) Op[A] {
	return func(ctx context.Context, arg A) (string, error) {
		indicator, err := doc.AppendElement(RootID, "div", map[string]string{"class": LoadingClass}, LoadingMarkup)
		if err != nil {
			return "", fmt.Errorf("showing loading indicator: %w", err)
		}
		defer doc.Remove(indicator)
		return next(ctx, arg)
	}
}

// WithErrorMarkup turns a failure of next into a logged error and a
// fallback markup string. The returned Op never fails.
func WithErrorMarkup[A any](next Op[A]) Op[A] {
	return func(ctx context.Context, arg A) (string, error) {
		out, err := next(ctx, arg)
		if err != nil {
			log.Printf("dashboard: an error occurred: %v", err)
			return ErrorMarkup(err), nil
		}
		return out, nil
	}
}

// ErrorMarkup renders err as the fallback error block.
func ErrorMarkup(err error) string {
	return `<div class="error">An error occurred: ` + template.HTMLEscapeString(err.Error()) + `</div>`
}
