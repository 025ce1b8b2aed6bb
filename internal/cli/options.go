// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"seedmap/internal/cliutil"
	"seedmap/internal/reducer"
	"seedmap/internal/runutil"
	"seedmap/internal/writers"
)

// ErrUsage marks errors caused by bad flags or arguments (exit code 2).
var ErrUsage = errors.New("usage")

func usagef(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, a...))
}

// Flag names, also used as viper keys.
const (
	flagConfig      = "config"
	flagMode        = "mode"
	flagStrategy    = "strategy"
	flagThreads     = "threads"
	flagBatchSize   = "batch-size"
	flagTrace       = "trace"
	flagOutput      = "output"
	flagNoHeader    = "no-header"
	flagLogLevel    = "log-level"
	flagLogFormat   = "log-format"
	flagMetricsAddr = "metrics-addr"
	flagVersion     = "version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Inputs []string
	Mode   string // runutil.ModeValues | runutil.ModeRanges

	// Evaluation
	Strategy  string
	Threads   int
	BatchSize uint64

	// Output
	Trace  bool
	Output string
	Header bool // true unless --no-header

	// Diagnostics
	LogLevel    string
	LogFormat   string
	MetricsAddr string

	Version bool
}

// NewViper returns a viper instance that reads SEEDMAP_* environment variables
// and an optional seedmap.yaml, in that order of precedence below flags.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("seedmap")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SEEDMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, path := range []string{".", "$HOME/.seedmap", "/etc/seedmap"} {
		v.AddConfigPath(path)
	}
	return v
}

// BindFlags registers every flag on cmd and binds it into v.
func BindFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.Flags()

	flags.String(flagConfig, "", "config file (default: seedmap.yaml in ., $HOME/.seedmap, /etc/seedmap)")

	flags.String(flagMode, runutil.ModeValues, "seed interpretation: values | ranges")
	flags.String(flagStrategy, reducer.StrategyScan, "ranges evaluation: scan (every value) | interval (split at rule bounds)")
	flags.Int(flagThreads, 0, "max concurrent range tasks (0 = one per task)")
	flags.Uint64(flagBatchSize, 0, "split ranges into tasks of at most N values (0 = one task per range)")

	flags.Bool(flagTrace, false, "emit each seed's value after every stage (values mode)")
	flags.StringP(flagOutput, "o", writers.FormatText, "output format: "+strings.Join(writers.Formats(), " | "))
	flags.Bool(flagNoHeader, false, "suppress header line in text output")

	flags.String(flagLogLevel, "warn", "log level: none | debug | info | warn | error")
	flags.String(flagLogFormat, "text", "log format: text | json")
	flags.String(flagMetricsAddr, "", "serve Prometheus /metrics on this address while running (empty = off)")

	flags.BoolP(flagVersion, "v", false, "print version and exit")

	flags.VisitAll(func(f *pflag.Flag) { mustBindPFlag(v, f.Name, f) })
}

// mustBindPFlag binds key to a cobra flag and panics if binding fails.
func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}

// ReadConfig loads the config file named by --config, or the first
// seedmap.yaml on the search path. A missing default file is not an error.
func ReadConfig(v *viper.Viper) error {
	if file := v.GetString(flagConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return usagef("read config %s: %v", file, err)
		}
		return nil
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return usagef("read config: %v", err)
		}
	}
	return nil
}

// Load builds Options from v and the positional arguments, then validates.
func Load(v *viper.Viper, args []string) (Options, error) {
	opt := Options{
		Mode:        v.GetString(flagMode),
		Strategy:    v.GetString(flagStrategy),
		Threads:     v.GetInt(flagThreads),
		BatchSize:   v.GetUint64(flagBatchSize),
		Trace:       v.GetBool(flagTrace),
		Output:      v.GetString(flagOutput),
		Header:      !v.GetBool(flagNoHeader),
		LogLevel:    v.GetString(flagLogLevel),
		LogFormat:   v.GetString(flagLogFormat),
		MetricsAddr: v.GetString(flagMetricsAddr),
		Version:     v.GetBool(flagVersion),
	}
	if opt.Version {
		return opt, nil
	}
	inputs, err := cliutil.ExpandPositionals(args)
	if err != nil {
		return opt, usagef("%v", err)
	}
	opt.Inputs = inputs
	return opt, opt.Validate()
}

// Validate checks option combinations.
func (o Options) Validate() error {
	if len(o.Inputs) == 0 {
		return usagef("at least one almanac file is required")
	}
	if o.Mode != runutil.ModeValues && o.Mode != runutil.ModeRanges {
		return usagef("invalid --mode %q", o.Mode)
	}
	if o.Strategy != reducer.StrategyScan && o.Strategy != reducer.StrategyInterval {
		return usagef("invalid --strategy %q", o.Strategy)
	}
	if o.Threads < 0 {
		return usagef("--threads must be >= 0")
	}
	if !slices.Contains(writers.Formats(), o.Output) {
		return usagef("invalid --output %q", o.Output)
	}
	switch o.LogLevel {
	case "none", "debug", "info", "warn", "error":
	default:
		return usagef("invalid --log-level %q", o.LogLevel)
	}
	if o.LogFormat != "text" && o.LogFormat != "json" {
		return usagef("invalid --log-format %q", o.LogFormat)
	}
	return nil
}
