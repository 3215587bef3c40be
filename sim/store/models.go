package store

import "time"

// Run is one persisted policy run.
type Run struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Policy    string    `json:"policy" gorm:"index"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`

	Nodes   []NodeResult `json:"nodes" gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	QValues []QValue     `json:"q_values,omitempty" gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

// NodeResult is one node's post-run statistics.
type NodeResult struct {
	ID              uint    `json:"-" gorm:"primaryKey"`
	RunID           string  `json:"-" gorm:"index"`
	NodeID          int     `json:"node_id"`
	Name            string  `json:"name"`
	Cloud           bool    `json:"cloud"`
	Utilization     float64 `json:"utilization"`
	MeanLatencyMs   float64 `json:"mean_latency_ms"`
	TuplesProcessed int     `json:"tuples_processed"`
	EnergyJoules    float64 `json:"energy_joules"`
}

// QValue is one entry of the frozen table a greedy run was placed from.
type QValue struct {
	ID     uint    `json:"-" gorm:"primaryKey"`
	RunID  string  `json:"-" gorm:"index"`
	NodeID int     `json:"node_id"`
	Value  float64 `json:"value"`
}
