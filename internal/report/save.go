package report

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/veracity/internal/model"
)

// ErrUnsupportedFormat is returned for format strings outside the closed
// enumeration.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Format is the closed set of export encodings
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// ParseFormat validates a format string against the enumeration.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatMarkdown, FormatPDF:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q (supported: json, markdown, pdf)", ErrUnsupportedFormat, s)
}

// Export renders the report in the given format.
func Export(r *model.Report, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportJSON(r)
	case FormatMarkdown:
		return []byte(ExportMarkdown(r)), nil
	case FormatPDF:
		return ExportPDF(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// SaveToFile writes the rendered report to path.
func SaveToFile(r *model.Report, path string, format Format) error {
	data, err := Export(r, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
