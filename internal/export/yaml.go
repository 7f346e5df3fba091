package export

import (
	"io"

	"github.com/Hirosolo/train-diary-cli/internal/model"
	"gopkg.in/yaml.v3"
)

type YAMLExporter struct{}

func (e *YAMLExporter) Export(s *model.Summary, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(s)
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
