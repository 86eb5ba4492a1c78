package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"

	"github.com/quentinglorieux/Bogo3D/internal/analysis"
	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

type ExportData struct {
	Relation string             `json:"relation"`
	Params   map[string]float64 `json:"params,omitempty"`
	AxisA    string             `json:"axis_a"`
	AxisB    string             `json:"axis_b"`
	SamplesA []float64          `json:"samples_a"`
	SamplesB []float64          `json:"samples_b"`
	Omega    [][]float64        `json:"omega"`
	Free     [][]float64        `json:"free"`
	Summary  map[string]float64 `json:"summary"`
}

func buildExportData(rel bogo.Relation, f *bogo.Field) ExportData {
	data := ExportData{
		Relation: rel.Name(),
		AxisA:    f.A.ID.String(),
		AxisB:    f.B.ID.String(),
		SamplesA: f.A.Samples,
		SamplesB: f.B.Samples,
		Omega:    make([][]float64, f.Rows()),
		Free:     make([][]float64, f.Rows()),
		Summary:  analysis.Summarize(rel, f).ToMap(),
	}
	if cfg, ok := rel.(bogo.Configurable); ok {
		data.Params = cfg.GetParams()
	}

	for i := 0; i < f.Rows(); i++ {
		rowOmega := make([]float64, f.Cols())
		rowFree := make([]float64, f.Cols())
		for j := 0; j < f.Cols(); j++ {
			rowOmega[j] = f.At(i, j)
			rowFree[j] = f.FreeAt(i, j)
		}
		data.Omega[i] = rowOmega
		data.Free[i] = rowFree
	}
	return data
}

func ExportJSON(path string, rel bogo.Relation, f *bogo.Field) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExportData(rel, f))
}

func ExportJSONStdout(rel bogo.Relation, f *bogo.Field) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExportData(rel, f))
}

// WriteFieldCSV flattens a field to long-form rows: one line per grid
// point with both branches.
func WriteFieldCSV(path string, f *bogo.Field) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{f.A.ID.String(), f.B.ID.String(), "omega", "free"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < f.Rows(); i++ {
		for j := 0; j < f.Cols(); j++ {
			record := []string{
				formatFloat(f.A.Samples[i]),
				formatFloat(f.B.Samples[j]),
				formatFloat(f.At(i, j)),
				formatFloat(f.FreeAt(i, j)),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteCutCSV writes one line per sample along the varying axis.
func WriteCutCSV(path string, c *bogo.Cut) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{c.Axis.ID.String(), "omega", "free"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, v := range c.Axis.Samples {
		record := []string{
			formatFloat(v),
			formatFloat(c.Omega[i]),
			formatFloat(c.Free[i]),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
