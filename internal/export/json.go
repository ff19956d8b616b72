package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/yeesim/internal/storage"
)

type ProbeExport struct {
	Position float64   `json:"position"`
	Index    int       `json:"index"`
	E        []float64 `json:"e"`
	H        []float64 `json:"h"`
}

type ExportData struct {
	Name      string             `json:"name"`
	Left      string             `json:"left"`
	Right     string             `json:"right"`
	SpaceStep float64            `json:"space_step"`
	Dt        float64            `json:"dt"`
	Sc        float64            `json:"sc"`
	Steps     int                `json:"steps"`
	Borders   []float64          `json:"borders"`
	Times     []float64          `json:"times"`
	Probes    []ProbeExport      `json:"probes"`
	X         []float64          `json:"x"`
	E         []float64          `json:"e"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewExportData gathers a stored run into one document. x and e are the
// final field, as returned by Store.LoadField.
func NewExportData(meta *storage.RunMetadata, probes *storage.ProbeData, x, e []float64) *ExportData {
	data := &ExportData{
		Name:      meta.Name,
		Left:      meta.Left,
		Right:     meta.Right,
		SpaceStep: meta.SpaceStep,
		Dt:        meta.Dt,
		Sc:        meta.Sc,
		Steps:     meta.Steps,
		Borders:   meta.Borders,
		Times:     probes.Times,
		Probes:    make([]ProbeExport, 0, len(meta.Probes)),
		X:         x,
		E:         e,
		Metrics:   meta.Metrics,
	}
	for i, p := range meta.Probes {
		pe := ProbeExport{Position: p.Position, Index: p.Index}
		if i < len(probes.E) {
			pe.E = probes.E[i]
			pe.H = probes.H[i]
		}
		data.Probes = append(data.Probes, pe)
	}
	return data
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}

func ExportJSONStdout(data *ExportData) error {
	return WriteJSON(os.Stdout, data)
}
