// Package extractor turns a PDF byte stream into plain text, an
// approximate HTML reconstruction and a list of tables. Extraction is
// deterministic; failures are permanent for the file, there are no
// retries.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

// headingMaxLen is the upper bound for a paragraph to qualify as a
// heading; longer runs of upper-case text stay plain paragraphs.
const headingMaxLen = 100

// Result is the full output of extracting one PDF.
type Result struct {
	PageCount int
	PlainText string
	HTML      string
	Tables    []models.Table
}

type Extractor struct {
	logger logger.Logger
}

func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{logger: log}
}

// Extract reads an entire PDF and produces text, HTML and tables. It
// returns models.ErrNoText when no page yields any text, and a wrapped
// parse error for malformed input; both are fatal for the document.
func (e *Extractor) Extract(ctx context.Context, r io.Reader) (*Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF stream: %w", err)
	}

	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	numPages := pdfReader.NumPage()
	pageTexts := make([]string, 0, numPages)
	var tables []models.Table

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			pageTexts = append(pageTexts, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("Failed to extract text from page",
				logger.Int("page", pageNum),
				logger.Error(err),
			)
			text = ""
		}
		pageTexts = append(pageTexts, cleanText(text))

		pageTables, err := extractTables(page, pageNum, len(tables))
		if err != nil {
			e.logger.Warn("Failed to extract tables from page",
				logger.Int("page", pageNum),
				logger.Error(err),
			)
			continue
		}
		tables = append(tables, pageTables...)
	}

	if strings.TrimSpace(strings.Join(pageTexts, "")) == "" {
		return nil, models.ErrNoText
	}

	return &Result{
		PageCount: numPages,
		PlainText: JoinPages(pageTexts),
		HTML:      BuildHTML(pageTexts),
		Tables:    tables,
	}, nil
}

// JoinPages concatenates page texts with one delimiter marker per page.
func JoinPages(pageTexts []string) string {
	var b strings.Builder
	for i, text := range pageTexts {
		fmt.Fprintf(&b, "--- Seite %d ---\n", i+1)
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// BuildHTML reconstructs an approximate HTML view of the document. Each
// page is split on blank lines into paragraphs; short, fully upper-case
// paragraphs become headings, everything else a plain paragraph.
func BuildHTML(pageTexts []string) string {
	var b strings.Builder
	for _, text := range pageTexts {
		for _, paragraph := range SplitParagraphs(text) {
			escaped := html.EscapeString(paragraph)
			if IsHeading(paragraph) {
				fmt.Fprintf(&b, "<h2>%s</h2>\n", escaped)
			} else {
				fmt.Fprintf(&b, "<p>%s</p>\n", escaped)
			}
		}
	}
	return b.String()
}

// SplitParagraphs splits text on blank lines, trimming each paragraph
// and dropping empty ones.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

// IsHeading classifies a paragraph as a heading when it is short and
// fully upper-case.
func IsHeading(paragraph string) bool {
	if len(paragraph) >= headingMaxLen {
		return false
	}
	hasLetter := false
	for _, r := range paragraph {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSpace(text)
}
