package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/ballpit/internal/dynamo"
)

type ExportData struct {
	Run     RunMetadata     `json:"run"`
	Samples []dynamo.Sample `json:"samples"`
}

// ExportJSON writes a stored run and its samples as one indented document.
func ExportJSON(w io.Writer, meta RunMetadata, samples []dynamo.Sample) error {
	if samples == nil {
		samples = []dynamo.Sample{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: meta, Samples: samples})
}

// ExportRun loads a run by id and writes it with ExportJSON.
func (s *Store) ExportRun(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	return ExportJSON(w, *meta, samples)
}
