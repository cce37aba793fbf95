// Package storage persists benchmark runs under a data directory: one
// subdirectory per run holding metadata.json and results.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/spanbench/internal/bench"
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

// RunMetadata is the per-run summary written next to the raw results.
type RunMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Methods   []string  `json:"methods"`
	Sizes     []int     `json:"sizes"`
	Reps      int       `json:"reps"`
	Processes []string  `json:"processes"`
	Elapsed   float64   `json:"elapsed_seconds"`
	Points    int       `json:"points"`
}

// SeriesPoint is one row of results.csv.
type SeriesPoint struct {
	Method   string
	N        int
	MeanNs   float64
	StdNs    float64
	MinNs    float64
	MedianNs float64
}

// Save writes a finished report and returns its run id.
func (s *Store) Save(report *bench.Report) (string, error) {
	runID := fmt.Sprintf("bench_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	methods := make([]string, len(report.Options.Methods))
	for i, m := range report.Options.Methods {
		methods[i] = m.String()
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: report.Started,
		Methods:   methods,
		Sizes:     report.Options.Sizes,
		Reps:      report.Options.Reps,
		Processes: report.Options.Procs.Names(),
		Elapsed:   report.Elapsed.Seconds(),
		Points:    len(report.Points),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "results.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"method", "n", "mean_ns", "std_ns", "min_ns", "median_ns"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, p := range report.Points {
		row := []string{
			p.Method.String(),
			strconv.Itoa(p.N),
			strconv.FormatFloat(p.Summary.Mean, 'f', 3, 64),
			strconv.FormatFloat(p.Summary.Std, 'f', 3, 64),
			strconv.FormatFloat(p.Summary.Min, 'f', 3, 64),
			strconv.FormatFloat(p.Summary.Median, 'f', 3, 64),
		}
		if err := w.Write(row); err != nil {
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads back the per-point results of a run.
func (s *Store) LoadSeries(runID string) ([]SeriesPoint, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "results.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []SeriesPoint{}, nil
	}

	points := make([]SeriesPoint, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 6 {
			return nil, fmt.Errorf("storage: malformed results row: %v", rec)
		}
		n, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("storage: bad n %q: %w", rec[1], err)
		}
		mean, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: bad mean %q: %w", rec[2], err)
		}
		std, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: bad std %q: %w", rec[3], err)
		}
		min, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: bad min %q: %w", rec[4], err)
		}
		median, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: bad median %q: %w", rec[5], err)
		}
		points = append(points, SeriesPoint{
			Method:   rec[0],
			N:        n,
			MeanNs:   mean,
			StdNs:    std,
			MinNs:    min,
			MedianNs: median,
		})
	}

	return points, nil
}
