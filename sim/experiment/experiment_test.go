package experiment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fogsim/fog-offload-sim/sim"
	"github.com/fogsim/fog-offload-sim/sim/cluster"
	"github.com/fogsim/fog-offload-sim/sim/trace"
)

// fakeEngine records the plan it is started with and reports fixed stats.
type fakeEngine struct {
	startErr error
	stopErr  error
	plans    *[]sim.Plan
	util     float64
}

func (f *fakeEngine) Start(plan sim.Plan) error {
	if f.startErr != nil {
		return f.startErr
	}
	*f.plans = append(*f.plans, plan)
	return nil
}

func (f *fakeEngine) Stop() error { return f.stopErr }

func (f *fakeEngine) NodeStats(id sim.NodeID) (sim.NodeStats, error) {
	return sim.NodeStats{Utilization: f.util}, nil
}

func fakeFactory(e fakeEngine) EngineFactory {
	return func(cluster.Topology, cluster.AppConfig, float64) (sim.Engine, error) {
		engine := e
		return &engine, nil
	}
}

func TestRunner_Run_ReferenceComparison(t *testing.T) {
	// GIVEN the reference experiment on the cluster engine
	r, err := NewRunner(DefaultConfig())
	require.NoError(t, err)

	// WHEN both policies run
	res, err := r.Run()
	require.NoError(t, err)

	// THEN two independent reports exist, in configured order
	require.Len(t, res.Reports, 2)
	greedy, rr := res.Reports[0], res.Reports[1]
	assert.Equal(t, sim.PlacementGreedyQ, greedy.Policy)
	assert.Equal(t, sim.PlacementRoundRobin, rr.Policy)
	assert.NotEqual(t, greedy.RunID, rr.RunID)

	// THEN round-robin spreads load and greedy concentrates it on the learned node
	for _, id := range []sim.NodeID{1, 2, 3} {
		u, ok := rr.Utilization(id)
		require.True(t, ok)
		assert.InDelta(t, 0.8, u, 0.01, "round-robin node %d", id)
	}
	best := res.Training.Best
	u, _ := greedy.Utilization(best)
	assert.GreaterOrEqual(t, u, 0.99)
	assert.Greater(t, greedy.Summary().StdDevUtilization, rr.Summary().StdDevUtilization)

	// THEN the cloud never receives tuples
	for _, rep := range res.Reports {
		cloud, _ := rep.Utilization(0)
		assert.Equal(t, 0.0, cloud, "%s placed work on cloud", rep.Policy)
	}
	assert.Len(t, r.Reporter().Reports(), 2)
}

func TestRunner_Run_SameSeedSameOutcome(t *testing.T) {
	run := func() *Results {
		r, err := NewRunner(DefaultConfig())
		require.NoError(t, err)
		res, err := r.Run()
		require.NoError(t, err)
		return res
	}
	a, b := run(), run()
	assert.Equal(t, a.Training.QValues, b.Training.QValues)
	assert.Equal(t, a.Reports[0].Nodes, b.Reports[0].Nodes)
}

func TestRunner_Run_EngineErrorsUnmodified(t *testing.T) {
	errStart := errors.New("engine refused plan")
	errStop := errors.New("engine failed to stop")
	tests := []struct {
		name   string
		engine fakeEngine
		want   error
	}{
		{"start", fakeEngine{startErr: errStart}, errStart},
		{"stop", fakeEngine{stopErr: errStop}, errStop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRunner(DefaultConfig())
			require.NoError(t, err)
			var plans []sim.Plan
			tt.engine.plans = &plans
			r.SetEngineFactory(fakeFactory(tt.engine))

			_, err = r.Run()

			assert.Equal(t, tt.want, err)
		})
	}
}

func TestRunner_Run_FactoryErrorUnmodified(t *testing.T) {
	errFactory := errors.New("no engine")
	r, err := NewRunner(DefaultConfig())
	require.NoError(t, err)
	r.SetEngineFactory(func(cluster.Topology, cluster.AppConfig, float64) (sim.Engine, error) {
		return nil, errFactory
	})
	_, err = r.Run()
	assert.Equal(t, errFactory, err)
}

func TestRunner_Run_PlanCoversEveryDevice(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IoTDevices = 5
	cfg.Policies = []string{sim.PlacementRoundRobin}
	r, err := NewRunner(cfg)
	require.NoError(t, err)
	var plans []sim.Plan
	r.SetEngineFactory(fakeFactory(fakeEngine{plans: &plans, util: 0.5}))

	res, err := r.Run()
	require.NoError(t, err)

	require.Len(t, plans, 1)
	assert.Equal(t, 5, plans[0].Len())
	assert.Nil(t, res.Training, "round-robin needs no training")
	require.Len(t, res.Reports, 1)
	assert.Len(t, res.Reports[0].Nodes, 4, "cloud plus three fog nodes")
}

func TestRunner_Train_HistoricalModelCalibrates(t *testing.T) {
	// GIVEN the historical utilization model
	cfg := DefaultConfig()
	cfg.Decision.Cost.UtilizationModel = sim.UtilizationModelHistorical
	cfg.TraceLevel = string(trace.TraceLevelEpisodes)
	r, err := NewRunner(cfg)
	require.NoError(t, err)
	var plans []sim.Plan
	r.SetEngineFactory(fakeFactory(fakeEngine{plans: &plans, util: 0.3}))

	// WHEN trained
	rc, result, tr, err := r.Train()
	require.NoError(t, err)

	// THEN a round-robin calibration run primed every eligible node
	require.Len(t, plans, 1)
	assert.Equal(t, sim.PlacementRoundRobin, plans[0].Policy)
	for _, n := range rc.Nodes {
		assert.InDelta(t, 0.3, rc.Utilization.Estimate(n.ID), 1e-12)
	}
	assert.Equal(t, sim.TableFrozen, rc.Table.State())
	assert.Len(t, tr.Episodes, cfg.Decision.Learning.Episodes)
	for _, ep := range tr.Episodes {
		assert.InDelta(t, 0.3, ep.Utilization, 1e-12)
	}
	assert.Len(t, result.QValues, 3)
}

func TestRunner_Train_SyntheticModelSkipsCalibration(t *testing.T) {
	r, err := NewRunner(DefaultConfig())
	require.NoError(t, err)
	var plans []sim.Plan
	r.SetEngineFactory(fakeFactory(fakeEngine{plans: &plans}))

	_, _, _, err = r.Train()
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestRunner_ObserversSeeTraining(t *testing.T) {
	r, err := NewRunner(DefaultConfig())
	require.NoError(t, err)
	tr := trace.NewTrainingTrace(trace.TraceLevelEpisodes)
	r.AddObserver(tr)

	_, _, _, err = r.Train()
	require.NoError(t, err)
	assert.Len(t, tr.Episodes, 200)
}

func TestNewRunner_NoFogNodes(t *testing.T) {
	// GIVEN a topology with only the cloud
	cfg := DefaultConfig()
	cfg.Topology.FogNodes = 0
	r, err := NewRunner(cfg)
	require.NoError(t, err)

	// WHEN run
	_, err = r.Run()

	// THEN initialization fails with no eligible nodes
	assert.ErrorIs(t, err, sim.ErrNoEligibleNodes)
}

func TestNewRunner_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HorizonMs = -1
	_, err := NewRunner(cfg)
	assert.Error(t, err)
}
