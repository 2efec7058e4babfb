// Package validator checks uploaded files before they enter the
// processing pipeline, so obviously broken uploads are rejected at the
// API edge instead of failing later inside the worker.
package validator

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
)

const (
	// MaxFileSize caps uploads at 50MB.
	MaxFileSize = 50 * 1024 * 1024

	pdfMagic = "%PDF-"
)

// ValidatePDF checks extension, size and the PDF magic bytes of an
// uploaded file. Errors wrap models.ErrInvalidInput so handlers map
// them to 400.
func ValidatePDF(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return fmt.Errorf("%w: only PDF files are allowed, got %q", models.ErrInvalidInput, ext)
	}
	if file.Size > MaxFileSize {
		return fmt.Errorf("%w: file exceeds the %d byte limit", models.ErrInvalidInput, MaxFileSize)
	}
	if file.Size == 0 {
		return fmt.Errorf("%w: file is empty", models.ErrInvalidInput)
	}

	f, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	header := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("%w: file is too short to be a PDF", models.ErrInvalidInput)
	}
	if string(header) != pdfMagic {
		return fmt.Errorf("%w: file does not look like a PDF", models.ErrInvalidInput)
	}
	return nil
}
