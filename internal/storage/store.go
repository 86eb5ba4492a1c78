package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

// Store persists parameter scans under a base directory, one run
// directory per scan with metadata.json and curves.csv.
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
	ID         string             `json:"id"`
	Scan       string             `json:"scan"`
	Relation   string             `json:"relation"`
	Timestamp  time.Time          `json:"timestamp"`
	Fixed      string             `json:"fixed"`
	FixedValue float64            `json:"fixed_value"`
	Param      string             `json:"param"`
	Values     []float64          `json:"values"`
	Quantities map[string]float64 `json:"quantities"`
}

// Save writes one scan: a family of cuts sharing a varying axis, one
// per scanned parameter value. Returns the run id.
func (s *Store) Save(scan, relation, param string, values []float64, cuts []*bogo.Cut, quantities map[string]float64) (string, error) {
	if len(cuts) == 0 || len(cuts) != len(values) {
		return "", fmt.Errorf("storage: %d cuts for %d values", len(cuts), len(values))
	}

	runID := fmt.Sprintf("%s_%d", scan, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Scan:       scan,
		Relation:   relation,
		Timestamp:  time.Now(),
		Fixed:      cuts[0].Fixed.String(),
		FixedValue: cuts[0].FixedValue,
		Param:      param,
		Values:     values,
		Quantities: quantities,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "curves.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{cuts[0].Axis.ID.String()}
	for i := range cuts {
		header = append(header, fmt.Sprintf("omega_%d", i))
	}
	for i := range cuts {
		header = append(header, fmt.Sprintf("free_%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for row := 0; row < cuts[0].Len(); row++ {
		record := []string{strconv.FormatFloat(cuts[0].Axis.Samples[row], 'g', -1, 64)}
		for _, c := range cuts {
			record = append(record, strconv.FormatFloat(c.Omega[row], 'g', -1, 64))
		}
		for _, c := range cuts {
			record = append(record, strconv.FormatFloat(c.Free[row], 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

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

// LoadCurves reads back the axis samples and every stored column
// (omegas first, then frees, in save order).
func (s *Store) LoadCurves(runID string) ([]float64, [][]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "curves.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, [][]float64{}, nil
	}

	cols := len(records[0]) - 1
	samples := make([]float64, 0, len(records)-1)
	curves := make([][]float64, cols)
	for i := range curves {
		curves[i] = make([]float64, 0, len(records)-1)
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < cols+1 {
			continue
		}

		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		samples = append(samples, x)

		for j := 0; j < cols; j++ {
			val, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				val = 0
			}
			curves[j] = append(curves[j], val)
		}
	}

	return samples, curves, nil
}
