// Package extract turns CV files into plain text for downstream structuring.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/unidoc/unipdf/v3/extractor"
	pdfmodel "github.com/unidoc/unipdf/v3/model"

	"github.com/hireloop/cv-ranker/internal/domain"
)

// Service extracts raw text from candidate files. A failure here is a
// per-candidate failure: the coordinator drops the candidate and continues.
type Service struct {
	logger *slog.Logger
}

// NewService creates a text extraction service.
func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// Extract reads the file at path and returns its text content. The file type
// is taken from fileType, falling back to the path extension when empty.
func (s *Service) Extract(ctx context.Context, path, fileType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fileType = strings.ToLower(strings.TrimSpace(fileType))
	if fileType == "" {
		fileType = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	switch fileType {
	case "txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return cleanText(string(data)), nil
	case "pdf":
		return s.extractPDF(path)
	case "docx":
		return s.extractDOCX(path)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, fileType)
	}
}

// extractPDF pulls text out of every page, skipping pages that fail rather
// than aborting the whole document.
func (s *Service) extractPDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	reader, err := pdfmodel.NewPdfReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("failed to get page count: %w", err)
	}
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	var builder strings.Builder
	extracted := false

	for i := 1; i <= numPages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			s.logger.Warn("Failed to load PDF page",
				slog.String("path", path),
				slog.Int("page", i),
				slog.Any("error", err),
			)
			continue
		}

		ex, err := extractor.New(page)
		if err != nil {
			s.logger.Warn("Failed to create extractor for PDF page",
				slog.String("path", path),
				slog.Int("page", i),
				slog.Any("error", err),
			)
			continue
		}

		pageText, err := ex.ExtractText()
		if err != nil {
			s.logger.Warn("Failed to extract text from PDF page",
				slog.String("path", path),
				slog.Int("page", i),
				slog.Any("error", err),
			)
			continue
		}

		if pageText != "" {
			extracted = true
			builder.WriteString(pageText)
			builder.WriteString("\n")
		}
	}

	if !extracted {
		return "", fmt.Errorf("no text could be extracted from PDF %s", path)
	}

	return cleanText(builder.String()), nil
}

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

// extractDOCX reads the document body and strips the WordprocessingML tags,
// breaking at paragraph ends so words from adjacent paragraphs don't run
// together.
func (s *Service) extractDOCX(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = docxTagPattern.ReplaceAllString(content, " ")

	text := cleanText(content)
	if text == "" {
		return "", fmt.Errorf("no text could be extracted from DOCX %s", path)
	}

	return text, nil
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// cleanText collapses runs of whitespace so structuring prompts stay compact.
func cleanText(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
