package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/aluiziolira/go-scrape-sizes/config"
	"github.com/aluiziolira/go-scrape-sizes/models"
	"github.com/aluiziolira/go-scrape-sizes/parser"
	"github.com/aluiziolira/go-scrape-sizes/pipeline"
)

// Scraper loads saved catalog pages through a colly collector and
// extracts their size charts.
type Scraper struct {
	cfg       *config.Config
	collector *colly.Collector
	Metrics   *Metrics
}

// NewScraper builds a scraper that only serves file:// URLs.
func NewScraper(cfg *config.Config) (*Scraper, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	transport := &http.Transport{}
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))

	collector := colly.NewCollector(colly.AllowURLRevisit())
	collector.MaxBodySize = 0
	collector.WithTransport(transport)

	return &Scraper{
		cfg:       cfg,
		collector: collector,
		Metrics:   NewMetrics(),
	}, nil
}

// Extract reads the page at path and returns its category and size entries.
func (s *Scraper) Extract(path string) (*models.ExtractionResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ErrFileAccess{Path: path, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, ErrFileAccess{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, ErrFileAccess{Path: path, Err: errors.New("is a directory")}
	}

	var (
		result     *models.ExtractionResult
		parseErr   error
		parsed     bool
		statusCode int
	)

	c := s.collector.Clone()
	// Content-Type follows the file extension; parse every page regardless.
	c.OnResponse(func(r *colly.Response) {
		if parsed {
			return
		}
		parsed = true
		result, parseErr = parser.ParseReader(bytes.NewReader(r.Body))
	})
	c.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			statusCode = r.StatusCode
		}
	})

	if err := c.Visit(fileURL(abs)); err != nil {
		return nil, ErrFileAccess{Path: path, StatusCode: statusCode, Err: err}
	}
	if !parsed {
		return nil, ErrFileAccess{Path: path, Err: errors.New("no response body")}
	}
	if parseErr != nil {
		return nil, fmt.Errorf("extract %s: %w", path, parseErr)
	}

	result.Path = path
	return result, nil
}

// ExtractInput extracts in.Path and, when category verification is on,
// checks the page label against the one expected for in.Key.
func (s *Scraper) ExtractInput(in models.Input) (*models.ExtractionResult, error) {
	result, err := s.Extract(in.Path)
	if err != nil {
		return nil, err
	}
	if !s.cfg.VerifyCategory {
		return result, nil
	}

	expected, ok := config.ExpectedCategory(in.Key)
	if !ok {
		return nil, fmt.Errorf("unknown category key %q for %s", in.Key, in.Path)
	}
	if !strings.EqualFold(expected, result.Category) {
		return nil, ErrCategoryMismatch{Path: in.Path, Expected: expected, Got: result.Category}
	}
	return result, nil
}

// Run processes inputs in order and writes each page's entries as soon as
// it is extracted. The first failure stops the batch; the returned result
// still describes the pages completed before it.
func (s *Scraper) Run(ctx context.Context, inputs []models.Input, w pipeline.OutputWriter) (*models.BatchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	batch := &models.BatchResult{StartTime: time.Now()}
	defer func() {
		batch.EndTime = time.Now()
	}()

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			s.Metrics.IncError(ErrorType(err))
			return batch, fmt.Errorf("batch stopped before %s: %w", in.Path, err)
		}

		start := time.Now()
		result, err := s.ExtractInput(in)
		s.Metrics.ObserveDuration(time.Since(start))
		if err != nil {
			s.Metrics.IncFile("failed")
			s.Metrics.IncError(ErrorType(err))
			return batch, err
		}

		if err := w.Write(result); err != nil {
			s.Metrics.IncFile("failed")
			s.Metrics.IncError(ErrorType(err))
			return batch, fmt.Errorf("write %s: %w", in.Path, err)
		}

		s.Metrics.IncFile("ok")
		s.Metrics.AddEntries(len(result.Entries))
		batch.Results = append(batch.Results, result)
		batch.FileCount++
		batch.EntryCount += len(result.Entries)

		slog.Debug("page extracted",
			slog.String("path", in.Path),
			slog.String("category", result.Category),
			slog.Int("entries", len(result.Entries)),
			slog.Duration("took", time.Since(start)),
		)
	}

	return batch, nil
}

func fileURL(abs string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}
