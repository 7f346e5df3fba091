package export

import (
	"encoding/json"
	"io"

	"github.com/Hirosolo/train-diary-cli/internal/model"
)

type JSONExporter struct{}

func (e *JSONExporter) Export(s *model.Summary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func (e *JSONExporter) Extension() string {
	return "json"
}
