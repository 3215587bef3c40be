// Package testutil provides shared test infrastructure for the fog offload
// simulator: the golden dataset of engine runs and float assertion helpers
// used by sim/cluster and sim/experiment tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one deterministic engine run: a fixed placement over the
// reference topology and application, with the expected per-node results.
type GoldenTestCase struct {
	Name        string             `json:"name"`
	Policy      string             `json:"policy"`
	HorizonMs   float64            `json:"horizon_ms"`
	Assignments []GoldenAssignment `json:"assignments"`
	Nodes       []GoldenNode       `json:"nodes"`
}

// GoldenAssignment places one sensor on one device.
type GoldenAssignment struct {
	Entity string `json:"entity"`
	Node   int    `json:"node"`
}

// GoldenNode holds the expected statistics of one device.
type GoldenNode struct {
	Node            int     `json:"node"`
	Utilization     float64 `json:"utilization"`
	TuplesProcessed int     `json:"tuples_processed"`
	MeanLatencyMs   float64 `json:"mean_latency_ms"`
	EnergyJoules    float64 `json:"energy_joules"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset is empty")
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
