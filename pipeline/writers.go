// Package pipeline writes extracted size charts.
package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/aluiziolira/go-scrape-sizes/models"
)

// OutputWriter defines the interface for data output.
type OutputWriter interface {
	Write(result *models.ExtractionResult) error
	Close() error
}

// TextWriter writes one "position , label , category" line per entry.
type TextWriter struct {
	writer *bufio.Writer
	closer io.Closer
	lines  int
	mu     sync.Mutex
}

// NewTextWriter wraps w. Closing the writer flushes but does not close w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{writer: bufio.NewWriter(w)}
}

// NewTextFileWriter creates filename, and any missing parent directories.
func NewTextFileWriter(filename string) (*TextWriter, error) {
	if err := ensureDir(filename); err != nil {
		return nil, err
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	return &TextWriter{
		writer: bufio.NewWriter(f),
		closer: f,
	}, nil
}

// Write appends the entries of result and flushes, so lines of earlier
// files stay in the output if a later file fails.
func (tw *TextWriter) Write(result *models.ExtractionResult) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	for _, entry := range result.Entries {
		if _, err := fmt.Fprintf(tw.writer, "%s , %s , %s\n", entry.Position, entry.Label, result.Category); err != nil {
			return fmt.Errorf("write size line: %w", err)
		}
		tw.lines++
	}
	if err := tw.writer.Flush(); err != nil {
		return fmt.Errorf("flush size lines: %w", err)
	}
	return nil
}

// Lines reports how many lines have been written.
func (tw *TextWriter) Lines() int {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.lines
}

// Close flushes buffers and closes the underlying file, if any.
func (tw *TextWriter) Close() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if err := tw.writer.Flush(); err != nil {
		return fmt.Errorf("flush text writer: %w", err)
	}
	if tw.closer == nil {
		return nil
	}
	return tw.closer.Close()
}

func ensureDir(filename string) error {
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
