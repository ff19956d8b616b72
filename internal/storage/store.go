package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/yeesim/internal/config"
	"github.com/san-kum/yeesim/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	probesFile   = "probes.csv"
	fieldFile    = "field.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type ProbeMetadata struct {
	Position float64 `json:"position"`
	Index    int     `json:"index"`
}

type RunMetadata struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Timestamp    time.Time             `json:"timestamp"`
	AreaSize     float64               `json:"area_size"`
	SpaceStep    float64               `json:"space_step"`
	TimeDuration float64               `json:"time_duration"`
	Sc           float64               `json:"sc"`
	Dt           float64               `json:"dt"`
	Size         int                   `json:"size"`
	TimeCounts   int                   `json:"time_counts"`
	Steps        int                   `json:"steps"`
	Left         string                `json:"left"`
	Right        string                `json:"right"`
	Borders      []float64             `json:"borders"`
	Layers       []config.LayerConfig  `json:"layers"`
	Sources      []config.SourceConfig `json:"sources"`
	Probes       []ProbeMetadata       `json:"probes"`
	Metrics      map[string]float64    `json:"metrics"`
}

// ProbeData holds the probe series of a stored run; E[i] and H[i] belong
// to probe i.
type ProbeData struct {
	Times []float64
	E     [][]float64
	H     [][]float64
}

func (s *Store) Save(res *experiment.Result) (string, error) {
	name := res.Config.Name
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Name:         name,
		Timestamp:    time.Now(),
		AreaSize:     res.Config.Grid.AreaSize,
		SpaceStep:    res.Dx,
		TimeDuration: res.Config.Grid.TimeDuration,
		Sc:           res.Config.Grid.Sc,
		Dt:           res.Dt,
		Size:         res.Size,
		TimeCounts:   res.TimeCounts,
		Steps:        res.Steps,
		Left:         res.Config.Boundaries.Left,
		Right:        res.Config.Boundaries.Right,
		Borders:      res.Borders,
		Layers:       res.Config.Layers,
		Sources:      res.Config.Sources,
		Metrics:      finiteMetrics(res.Metrics),
	}
	for _, p := range res.Probes {
		meta.Probes = append(meta.Probes, ProbeMetadata{Position: p.Position, Index: p.Index})
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeProbes(filepath.Join(runDir, probesFile), res); err != nil {
		return "", err
	}
	if err := writeField(filepath.Join(runDir, fieldFile), res); err != nil {
		return "", err
	}
	return runID, nil
}

// finiteMetrics drops values JSON cannot carry, which a diverging run
// leaves behind.
func finiteMetrics(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func writeCSV(path string, header []string, rows func(yield func([]string) error) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := rows(w.Write); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeProbes(path string, res *experiment.Result) error {
	header := []string{"step", "time"}
	for i := range res.Probes {
		header = append(header, fmt.Sprintf("p%d_e", i), fmt.Sprintf("p%d_h", i))
	}

	return writeCSV(path, header, func(write func([]string) error) error {
		for k := 0; k < res.Steps; k++ {
			row := []string{strconv.Itoa(k), formatFloat(float64(k) * res.Dt)}
			for _, p := range res.Probes {
				row = append(row, formatFloat(p.E[k]), formatFloat(p.H[k]))
			}
			if err := write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeField(path string, res *experiment.Result) error {
	return writeCSV(path, []string{"x", "e", "h"}, func(write func([]string) error) error {
		for i, e := range res.FinalE {
			h := ""
			if i < len(res.FinalH) {
				h = formatFloat(res.FinalH[i])
			}
			if err := write([]string{formatFloat(float64(i) * res.Dx), formatFloat(e), h}); err != nil {
				return err
			}
		}
		return nil
	})
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func parseRow(record []string) ([]float64, error) {
	out := make([]float64, len(record))
	for i, v := range record {
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func (s *Store) LoadProbes(runID string) (*ProbeData, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, probesFile))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header", probesFile)
	}

	n := (len(records[0]) - 2) / 2
	data := &ProbeData{
		Times: make([]float64, 0, len(records)-1),
		E:     make([][]float64, n),
		H:     make([][]float64, n),
	}
	for _, record := range records[1:] {
		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", probesFile, err)
		}
		data.Times = append(data.Times, row[1])
		for p := 0; p < n; p++ {
			data.E[p] = append(data.E[p], row[2+2*p])
			data.H[p] = append(data.H[p], row[3+2*p])
		}
	}
	return data, nil
}

// LoadField returns node positions and the E and H values at the end of
// the run. H has one value fewer than E.
func (s *Store) LoadField(runID string) (x, e, h []float64, err error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, fieldFile))
	if err != nil {
		return nil, nil, nil, err
	}
	for i, record := range records {
		if i == 0 {
			continue
		}
		row, err := parseRow(record)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%s: %w", fieldFile, err)
		}
		x = append(x, row[0])
		e = append(e, row[1])
		if record[2] != "" {
			h = append(h, row[2])
		}
	}
	return x, e, h, nil
}
