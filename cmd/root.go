package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fogsim/fog-offload-sim/sim/experiment"
	"github.com/fogsim/fog-offload-sim/sim/server"
	"github.com/fogsim/fog-offload-sim/sim/store"
	"github.com/fogsim/fog-offload-sim/sim/telemetry"
	"github.com/fogsim/fog-offload-sim/sim/trace"
)

var (
	configPath       string   // Experiment YAML file; defaults apply when empty
	seed             int64    // Master seed for every random stream
	episodes         int      // Training episodes
	learningRate     float64  // Q-learning step size
	iotDevices       int      // Number of task-generating devices
	fogNodes         int      // Number of fog nodes below the cloud
	horizonMs        float64  // Simulated time per run (ms)
	policies         []string // Placement policies to compare, in run order
	utilizationModel string   // synthetic or historical
	logLevel         string   // Log verbosity level
	traceLevel       string   // Episode trace verbosity
	metricsPath      string   // Prometheus textfile output; disabled when empty
	dbPath           string   // SQLite file for run reports; disabled when empty
	listenAddr       string   // serve: HTTP listen address
	corsOrigins      []string // serve: allowed CORS origins
	serveLogLevel    string   // serve: log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fog-offload-sim",
	Short: "Learned offload placement for fog computing, compared against round-robin",
}

// runCmd trains the decision engine and compares every configured policy
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the placement policy comparison",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)
		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		runner, err := experiment.NewRunner(cfg)
		if err != nil {
			logrus.Fatalf("Failed to create runner: %v", err)
		}
		collector := attachCollector(runner)

		logrus.Infof("Starting comparison of %v with %d IoT devices over %d fog nodes, horizon=%.0fms, seed=%d",
			cfg.Policies, cfg.IoTDevices, cfg.Topology.FogNodes, cfg.HorizonMs, cfg.Decision.Seed)
		results, err := runner.Run()
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		if results.Training != nil {
			printTraining(os.Stdout, results.Training, trace.Summarize(results.Trace))
		}
		printComparison(os.Stdout, results.Reports)
		writeMetrics(collector)
		if dbPath != "" {
			if err := saveResults(dbPath, cfg.Decision.Seed, results); err != nil {
				logrus.Fatalf("Failed to store results: %v", err)
			}
			logrus.Infof("Stored %d reports in %s", len(results.Reports), dbPath)
		}
		logrus.Info("Simulation complete.")
	},
}

// trainCmd runs the training loop only and prints the learned table
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the offload decision engine and print the learned values",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)
		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		runner, err := experiment.NewRunner(cfg)
		if err != nil {
			logrus.Fatalf("Failed to create runner: %v", err)
		}
		collector := attachCollector(runner)

		_, result, tr, err := runner.Train()
		if err != nil {
			logrus.Fatalf("Training failed: %v", err)
		}
		printTraining(os.Stdout, result, trace.Summarize(tr))
		if tr.Level == trace.TraceLevelEpisodes {
			printEpisodes(os.Stdout, tr)
		}
		writeMetrics(collector)
	},
}

// serveCmd exposes stored run reports over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored run reports over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(serveLogLevel)
		if dbPath == "" {
			logrus.Fatalf("--db is required")
		}
		db, err := store.Open(dbPath)
		if err != nil {
			logrus.Fatalf("Failed to open %s: %v", dbPath, err)
		}
		defer db.Close()

		srv := server.New(store.NewRepository(db), corsOrigins)
		logrus.Infof("Serving reports from %s on %s", dbPath, listenAddr)
		if err := srv.Run(listenAddr); err != nil {
			logrus.Fatalf("Server stopped: %v", err)
		}
	},
}

func setupLogging(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

func attachCollector(runner *experiment.Runner) *telemetry.Collector {
	if metricsPath == "" {
		return nil
	}
	c := telemetry.NewCollector()
	runner.AddObserver(c)
	return c
}

func writeMetrics(c *telemetry.Collector) {
	if c == nil {
		return
	}
	if err := c.WriteTextfile(metricsPath); err != nil {
		logrus.Fatalf("Failed to write metrics to %s: %v", metricsPath, err)
	}
	logrus.Infof("Metrics written to %s", metricsPath)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerFlags attaches the shared flag set to c.
func registerFlags(c *cobra.Command) {
	c.Flags().StringVar(&configPath, "config", "", "Experiment YAML file (defaults apply when omitted)")
	c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().StringVar(&traceLevel, "trace", "none", "Episode trace level (none, episodes)")
	c.Flags().StringVar(&metricsPath, "metrics", "", "Write Prometheus metrics of the training run to this file")
	c.Flags().StringVar(&dbPath, "db", "", "Store run reports in this SQLite file")

	// Decision engine
	c.Flags().Int64Var(&seed, "seed", 42, "Master seed for task sampling, exploration and utilization")
	c.Flags().IntVar(&episodes, "episodes", 200, "Number of training episodes")
	c.Flags().Float64Var(&learningRate, "learning-rate", 0.1, "Q-learning step size in (0,1]")
	c.Flags().StringVar(&utilizationModel, "utilization-model", "synthetic", "Utilization model (synthetic, historical)")

	// Environment
	c.Flags().IntVar(&iotDevices, "iot-devices", 3, "Number of IoT devices")
	c.Flags().IntVar(&fogNodes, "fog-nodes", 3, "Number of fog nodes")
	c.Flags().Float64Var(&horizonMs, "horizon", 10000, "Simulated time per run (ms)")
	c.Flags().StringSliceVar(&policies, "policies", []string{"greedy-q", "round-robin"}, "Placement policies to compare, in order")
}

// init sets up CLI flags and subcommands
func init() {
	registerFlags(runCmd)
	registerFlags(trainCmd)

	serveCmd.Flags().StringVar(&dbPath, "db", "", "SQLite file written by run --db")
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Allowed CORS origins")
	serveCmd.Flags().StringVar(&serveLogLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(serveCmd)
}
