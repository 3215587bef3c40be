// Package store persists run reports and learned Q-tables in SQLite so that
// results of separate invocations can be compared later.
package store

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fogsim/fog-offload-sim/sim"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("run not found")

// DB holds the database connection
type DB struct {
	*gorm.DB
}

// Open connects to the SQLite file at path, creating and migrating it if needed.
func Open(path string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Run{}, &NodeResult{}, &QValue{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &DB{db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Repository provides data access methods
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveReport stores report under its RunID. qValues may be nil for policies
// that do not train.
func (r *Repository) SaveReport(report *sim.Report, seed int64, qValues map[sim.NodeID]float64) error {
	run := Run{ID: report.RunID, Policy: report.Policy, Seed: seed}
	for _, n := range report.Nodes {
		run.Nodes = append(run.Nodes, NodeResult{
			NodeID:          int(n.Node),
			Name:            n.Name,
			Cloud:           n.Cloud,
			Utilization:     n.Utilization,
			MeanLatencyMs:   n.MeanLatencyMs,
			TuplesProcessed: n.TuplesProcessed,
			EnergyJoules:    n.EnergyJoules,
		})
	}
	ids := make([]int, 0, len(qValues))
	for id := range qValues {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	for _, id := range ids {
		run.QValues = append(run.QValues, QValue{NodeID: id, Value: qValues[sim.NodeID(id)]})
	}
	if err := r.db.Create(&run).Error; err != nil {
		return fmt.Errorf("saving run %s: %w", report.RunID, err)
	}
	return nil
}

// GetRun retrieves a run with its node results and Q-values.
func (r *Repository) GetRun(id string) (*Run, error) {
	var run Run
	err := r.db.
		Preload("Nodes", func(db *gorm.DB) *gorm.DB { return db.Order("node_id ASC") }).
		Preload("QValues", func(db *gorm.DB) *gorm.DB { return db.Order("node_id ASC") }).
		First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns lists runs newest first, optionally filtered by policy.
// Node results are not loaded.
func (r *Repository) ListRuns(policy string) ([]Run, error) {
	var runs []Run
	query := r.db.Order("created_at DESC")
	if policy != "" {
		query = query.Where("policy = ?", policy)
	}
	err := query.Find(&runs).Error
	return runs, err
}

// DeleteRun removes a run and its children.
func (r *Repository) DeleteRun(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", id).Delete(&NodeResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("run_id = ?", id).Delete(&QValue{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Run{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%s: %w", id, ErrRunNotFound)
		}
		return nil
	})
}

// Report rebuilds the sim.Report of a stored run.
func (run *Run) Report() *sim.Report {
	report := &sim.Report{RunID: run.ID, Policy: run.Policy}
	for _, n := range run.Nodes {
		report.Nodes = append(report.Nodes, sim.NodeReport{
			Node:  sim.NodeID(n.NodeID),
			Name:  n.Name,
			Cloud: n.Cloud,
			NodeStats: sim.NodeStats{
				Utilization:     n.Utilization,
				MeanLatencyMs:   n.MeanLatencyMs,
				TuplesProcessed: n.TuplesProcessed,
				EnergyJoules:    n.EnergyJoules,
			},
		})
	}
	return report
}
