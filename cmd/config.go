package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/etnz/xirr"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the environment configuration, every field is read from XIRR_<NAME>.
type Config struct {
	File     string `envconfig:"FILE" default:"cashflows.json"`
	JSONPath string `envconfig:"JSONPATH"`
	Currency string `envconfig:"CURRENCY"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Addr     string `envconfig:"ADDR" default:":8080"`

	Tolerance          float64 `envconfig:"TOLERANCE" default:"1e-9"`
	MaxIterations      int     `envconfig:"MAX_ITERATIONS" default:"100"`
	ScanMin            float64 `envconfig:"SCAN_MIN" default:"-0.999999"`
	ScanMax            float64 `envconfig:"SCAN_MAX" default:"10"`
	ScanSteps          int     `envconfig:"SCAN_STEPS" default:"200"`
	BrentMaxIterations int     `envconfig:"BRENT_MAX_ITERATIONS" default:"100"`
}

// LoadConfig reads the configuration from the environment, after loading an optional .env file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("XIRR", &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid XIRR environment: %w", err)
	}
	return cfg, nil
}

// SolverOptions returns the solver options from the configuration.
func (c Config) SolverOptions() xirr.Options {
	opts := xirr.DefaultOptions
	opts.Tolerance = c.Tolerance
	opts.MaxIterations = c.MaxIterations
	opts.ScanMin = c.ScanMin
	opts.ScanMax = c.ScanMax
	opts.ScanSteps = c.ScanSteps
	opts.BrentMaxIterations = c.BrentMaxIterations
	return opts
}

// defaultConfig is used when the environment cannot be parsed.
var defaultConfig = Config{
	File:               "cashflows.json",
	LogLevel:           "info",
	Addr:               ":8080",
	Tolerance:          xirr.DefaultOptions.Tolerance,
	MaxIterations:      xirr.DefaultOptions.MaxIterations,
	ScanMin:            xirr.DefaultOptions.ScanMin,
	ScanMax:            xirr.DefaultOptions.ScanMax,
	ScanSteps:          xirr.DefaultOptions.ScanSteps,
	BrentMaxIterations: xirr.DefaultOptions.BrentMaxIterations,
}

var config = sync.OnceValue(func() Config {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		return defaultConfig
	}
	return cfg
})
