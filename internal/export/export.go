// Package export writes fetched summaries to portable formats.
package export

import (
	"fmt"
	"io"

	"github.com/Hirosolo/train-diary-cli/internal/model"
)

// Exporter writes one summary to a stream.
type Exporter interface {
	Export(s *model.Summary, w io.Writer) error
	Extension() string
}

// NewExporter returns the exporter for a format name.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "json":
		return &JSONExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, yaml)", format)
	}
}
