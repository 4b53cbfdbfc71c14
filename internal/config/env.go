package config

import (
	"github.com/cockroachdb/errors"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix for every environment variable read by LoadEnv.
const EnvPrefix = "NBASTATS"

// Env holds process-level settings that may come from the environment.
// Command-line flags override them; they override the run file.
type Env struct {
	DataDir        string `envconfig:"DATA_DIR"`
	OutDir         string `envconfig:"OUT_DIR"`
	MetricsBackend string `envconfig:"METRICS_BACKEND" default:"none"`
	PushgatewayURL string `envconfig:"PUSHGATEWAY_URL"`
	DatadogAddr    string `envconfig:"DATADOG_ADDR" default:"127.0.0.1:8125"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string `envconfig:"LOG_FORMAT" default:"console"`
}

// LoadEnv reads NBASTATS_* variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return e, errors.Wrap(err, "read environment")
	}
	return e, nil
}

