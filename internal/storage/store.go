package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/sim"
)

// DefaultDir is where the CLI keeps run logs.
const DefaultDir = ".ballpit"

// ErrInvalidName is returned by Save for names that are empty or would
// leave the data directory.
var ErrInvalidName = errors.New("storage: run name must be a plain file name")

var now = time.Now

var samplesHeader = []string{"tick", "kinetic_energy", "momentum", "contacts", "wall_hits", "max_overlap"}

// Store keeps one directory per run with its metadata and per-tick
// samples. Body positions are never written.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Bodies      int                `json:"bodies"`
	RadiusMin   float64            `json:"radius_min"`
	RadiusMax   float64            `json:"radius_max"`
	SpeedMin    float64            `json:"speed_min"`
	SpeedMax    float64            `json:"speed_max"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Steps       int                `json:"steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// NewMetadata describes a finished run of the given world.
func NewMetadata(name string, world dynamo.Config, result *sim.Result) RunMetadata {
	return RunMetadata{
		Name:        name,
		Timestamp:   now(),
		Seed:        world.Seed,
		Bodies:      world.BodyCount,
		RadiusMin:   world.RadiusMin,
		RadiusMax:   world.RadiusMax,
		SpeedMin:    world.SpeedMin,
		SpeedMax:    world.SpeedMax,
		Width:       world.Viewport.Width,
		Height:      world.Viewport.Height,
		Steps:       result.Ticks,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}
}

// Save writes metadata.json and samples.csv under a fresh run directory and
// returns the run id. A failed write removes the directory again.
func (s *Store) Save(name string, world dynamo.Config, result *sim.Result) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	meta := NewMetadata(name, world, result)
	runID, runDir, err := s.newRunDir(name, meta.Timestamp)
	if err != nil {
		return "", err
	}
	meta.ID = runID

	if err := writeMetadata(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, "samples.csv"), result.Samples); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// newRunDir creates name_YYYYMMDD_HHMMSS, adding _1, _2, ... when runs land
// in the same second.
func (s *Store) newRunDir(name string, ts time.Time) (string, string, error) {
	base := name + "_" + ts.Format("20060102_150405")
	runID := base
	for n := 1; ; n++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeSamples(path string, samples []dynamo.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSamples(f, samples)
}

// WriteSamples writes samples as CSV with a header row, the same layout
// samples.csv uses.
func WriteSamples(out io.Writer, samples []dynamo.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(samplesHeader); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Tick),
			strconv.FormatFloat(smp.KineticEnergy, 'f', 6, 64),
			strconv.FormatFloat(smp.Momentum, 'f', 6, 64),
			strconv.Itoa(smp.Contacts),
			strconv.Itoa(smp.WallHits),
			strconv.FormatFloat(smp.MaxOverlap, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]dynamo.Sample, error) {
	csvPath := filepath.Join(s.baseDir, runID, "samples.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(samplesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dynamo.Sample{}, nil
	}

	samples := make([]dynamo.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		smp, err := parseSample(record)
		if err != nil {
			return nil, fmt.Errorf("samples.csv line %d: %w", i+2, err)
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(record []string) (dynamo.Sample, error) {
	var smp dynamo.Sample
	var err error
	if smp.Tick, err = strconv.Atoi(record[0]); err != nil {
		return smp, err
	}
	if smp.KineticEnergy, err = strconv.ParseFloat(record[1], 64); err != nil {
		return smp, err
	}
	if smp.Momentum, err = strconv.ParseFloat(record[2], 64); err != nil {
		return smp, err
	}
	if smp.Contacts, err = strconv.Atoi(record[3]); err != nil {
		return smp, err
	}
	if smp.WallHits, err = strconv.Atoi(record[4]); err != nil {
		return smp, err
	}
	if smp.MaxOverlap, err = strconv.ParseFloat(record[5], 64); err != nil {
		return smp, err
	}
	return smp, nil
}
