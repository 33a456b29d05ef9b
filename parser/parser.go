// Package parser reads size charts out of saved catalog pages.
package parser

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aluiziolira/go-scrape-sizes/models"
)

const (
	categorySelector = "div.web_ui__Navigation__body"
	sizeSelector     = `[id^="size_group_sizes_"]`
	labelSelector    = "h2"
)

var sizeIDPattern = regexp.MustCompile(`^size_group_sizes_(\d+)-list-item-(\d+)`)

// ParseReader parses an HTML document and extracts its size chart.
func ParseReader(r io.Reader) (*models.ExtractionResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return Parse(doc.Selection)
}

// Parse extracts the category label and every size entry below root.
// Entries keep document order and are neither sorted nor deduplicated.
func Parse(root *goquery.Selection) (*models.ExtractionResult, error) {
	category, err := Category(root)
	if err != nil {
		return nil, err
	}

	entries := []models.SizeEntry{}
	var labelErr error
	root.Find(sizeSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		group, position, ok := MatchSizeID(id)
		if !ok {
			return true
		}
		heading := s.Find(labelSelector).First()
		if heading.Length() == 0 {
			labelErr = ErrLabelNotFound{ID: id}
			return false
		}
		entries = append(entries, models.SizeEntry{
			Group:    group,
			Position: position,
			Label:    NormalizeText(heading.Text()),
		})
		return true
	})
	if labelErr != nil {
		return nil, labelErr
	}

	return &models.ExtractionResult{
		Category: category,
		Entries:  entries,
	}, nil
}

// Category returns the text of the first navigation body below root.
func Category(root *goquery.Selection) (string, error) {
	nav := root.Find(categorySelector).First()
	if nav.Length() == 0 {
		return "", ErrCategoryNotFound{Selector: categorySelector}
	}
	return NormalizeText(nav.Text()), nil
}

// MatchSizeID splits a size list-item id into its group and position digits.
// Only the start of the id is anchored; trailing text after the position
// digits is ignored.
func MatchSizeID(id string) (group, position string, ok bool) {
	m := sizeIDPattern.FindStringSubmatch(id)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// NormalizeText trims surrounding whitespace; inner text is kept as is.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}
