package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

// ExportData is the full serialized form of a run.
type ExportData struct {
	Meta RunMeta `json:"meta"`
	Data RunData `json:"data"`
}

func ExportJSON(w io.Writer, meta RunMeta, data RunData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Meta: meta, Data: data})
}

// ExportCSV writes one row per configuration: index, energy, weight and the
// maximum force norm of the configuration.
func ExportCSV(w io.Writer, data RunData) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"config", "energy", "weight", "max_force_norm"}); err != nil {
		return err
	}

	for i, e := range data.Energies {
		maxNorm := 0.0
		if i < len(data.Forces) {
			for _, f := range data.Forces[i] {
				if n := f.Norm(); n > maxNorm {
					maxNorm = n
				}
			}
		}
		weight := 0.0
		if i < len(data.Weights) {
			weight = data.Weights[i]
		}
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(e, 'g', -1, 64),
			strconv.FormatFloat(weight, 'g', -1, 64),
			strconv.FormatFloat(maxNorm, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
