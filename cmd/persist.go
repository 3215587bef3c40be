package cmd

import (
	"github.com/fogsim/fog-offload-sim/sim"
	"github.com/fogsim/fog-offload-sim/sim/experiment"
	"github.com/fogsim/fog-offload-sim/sim/store"
)

// saveResults stores every report of results in the SQLite file at path.
// The learned table is attached to the greedy-q report.
func saveResults(path string, seed int64, results *experiment.Results) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := store.NewRepository(db)
	for _, report := range results.Reports {
		var q map[sim.NodeID]float64
		if report.Policy == sim.PlacementGreedyQ && results.Training != nil {
			q = results.Training.QValues
		}
		if err := repo.SaveReport(report, seed, q); err != nil {
			return err
		}
	}
	return nil
}
