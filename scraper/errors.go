package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aluiziolira/go-scrape-sizes/parser"
)

// ErrFileAccess indicates a page that could not be opened or read.
type ErrFileAccess struct {
	Path       string
	StatusCode int
	Err        error
}

func (e ErrFileAccess) Error() string {
	if e.StatusCode != 0 {
		return fmt.Errorf("file access %s (%s): %w", e.Path, http.StatusText(e.StatusCode), e.Err).Error()
	}
	return fmt.Errorf("file access %s: %w", e.Path, e.Err).Error()
}

func (e ErrFileAccess) Unwrap() error {
	return e.Err
}

// ErrCategoryMismatch indicates a page whose category label differs from
// the label expected for its input key.
type ErrCategoryMismatch struct {
	Path     string
	Expected string
	Got      string
}

func (e ErrCategoryMismatch) Error() string {
	return fmt.Sprintf("category mismatch in %s: expected %q, page says %q", e.Path, e.Expected, e.Got)
}

// ErrorType returns a short label for err, used for logs and metrics.
func ErrorType(err error) string {
	if err == nil {
		return "unknown"
	}
	var access ErrFileAccess
	if errors.As(err, &access) {
		return "file_access"
	}
	var category parser.ErrCategoryNotFound
	if errors.As(err, &category) {
		return "category_not_found"
	}
	var label parser.ErrLabelNotFound
	if errors.As(err, &label) {
		return "label_not_found"
	}
	var mismatch ErrCategoryMismatch
	if errors.As(err, &mismatch) {
		return "category_mismatch"
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "other"
}
