// Command nbastats merges the season's player stat exports, prints the derived
// views, writes them as CSV tables and renders the charts.
//
//	nbastats -data-dir ./data -out-dir ./out
//	nbastats -config run.yaml -validate
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"

	"nbastats/internal/config"
	"nbastats/internal/etl"
	"nbastats/internal/logging"
	"nbastats/internal/metrics"
	"nbastats/internal/metrics/datadog"
	"nbastats/internal/metrics/prompush"

	// register all output backends with the storage factory.
	_ "nbastats/internal/storage/all"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	cfgPath        string
	dataDir        string
	outDir         string
	metricsBackend string
	pushgatewayURL string
	datadogAddr    string
	validate       bool
	noCharts       bool
	verbose        bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("nbastats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.cfgPath, "config", "", "run config (JSON or YAML); built-in defaults when empty")
	fs.StringVar(&o.dataDir, "data-dir", "", "directory holding the input CSVs (overrides NBASTATS_DATA_DIR)")
	fs.StringVar(&o.outDir, "out-dir", "", "directory for tables and charts (overrides NBASTATS_OUT_DIR)")
	fs.StringVar(&o.metricsBackend, "metrics-backend", "", "metrics backend: pushgateway, datadog or none (overrides NBASTATS_METRICS_BACKEND)")
	fs.StringVar(&o.pushgatewayURL, "pushgateway-url", "", "Pushgateway base URL (overrides NBASTATS_PUSHGATEWAY_URL)")
	fs.StringVar(&o.datadogAddr, "datadog-addr", "", "DogStatsD address (overrides NBASTATS_DATADOG_ADDR)")
	fs.BoolVar(&o.validate, "validate", false, "validate the configuration and exit")
	fs.BoolVar(&o.noCharts, "no-charts", false, "skip chart rendering")
	fs.BoolVar(&o.verbose, "v", false, "enable debug logs")
	err := fs.Parse(args)
	return o, err
}

// pick returns the first non-empty value.
func pick(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// run is main without the process exit; it returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	level := logging.ParseLevel(env.LogLevel)
	if o.verbose {
		level = logging.LevelDebug
	}
	log := logging.New(env.LogFormat, level)
	logging.SetDefault(log)
	defer func() { _ = log.Sync() }()

	cfg := config.Default()
	if o.cfgPath != "" {
		if cfg, err = config.Load(o.cfgPath); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
	}
	cfg = cfg.WithDataDir(pick(o.dataDir, env.DataDir)).WithOutDir(pick(o.outDir, env.OutDir))
	if o.noCharts {
		cfg.Charts.Enabled = false
	}

	issues := config.ValidateRun(cfg)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Error("configuration is invalid", "config", o.cfgPath)
		return 1
	}
	if o.validate {
		log.Info("configuration is valid", "config", o.cfgPath)
		return 0
	}

	flush := setupMetrics(cfg.Job, pick(o.metricsBackend, env.MetricsBackend), pick(o.pushgatewayURL, env.PushgatewayURL), pick(o.datadogAddr, env.DatadogAddr), log)
	defer flush()

	if _, err := etl.Run(ctx, cfg, etl.Deps{Log: log, Out: stdout}); err != nil {
		fmt.Fprintf(stderr, "nbastats: %v\n", err)
		return 1
	}
	return 0
}

// setupMetrics installs the named backend and returns a function that flushes
// it. Metrics never fail the run: a backend that cannot be built is logged and
// the no-op backend stays in place.
func setupMetrics(job, name, gatewayURL, ddAddr string, log *logging.Logger) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch name {
	case "", "none":
		log.Debug("metrics disabled")
		return func() {}
	case "pushgateway":
		b, err = prompush.NewBackend(job, gatewayURL)
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{Addr: ddAddr})
	default:
		err = errors.Newf("unknown backend %q", name)
	}
	if err != nil {
		log.Warn("metrics disabled", "backend", name, "error", err)
		return func() {}
	}
	log.Info("metrics enabled", "backend", name)
	prev := metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Warn("metrics flush", "backend", name, "error", err)
		}
		metrics.SetBackend(prev)
	}
}
