package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/bstviz/anim"
	"github.com/benz9527/bstviz/observability"
	"github.com/benz9527/bstviz/render"
	"github.com/benz9527/bstviz/viz"
	"github.com/benz9527/bstviz/xlog"
)

const (
	// The prefix for configuration keys inside environment.
	envPrefix = "BSTVIZ"

	keyConfig      = "config"
	keyLogLevel    = "log-level"
	keyLogEncoder  = "log-encoder"
	keyLogFile     = "log-file"
	keyPause       = "pause"
	keySurface     = "surface"
	keySVGDir      = "svg-dir"
	keyWidth       = "width"
	keyHeight      = "height"
	keyANSI        = "ansi"
	keyMetrics     = "metrics"
	keyMetricsAddr = "metrics-addr"

	defaultWidth       = 800
	defaultHeight      = 400
	defaultSVGDir      = "frames"
	defaultMetricsAddr = "127.0.0.1:9464"
)

type baseConfiguration struct {
	CfgFile     string
	LogLevel    string
	LogEncoder  string
	LogFile     string
	Pause       time.Duration
	Surface     string
	SVGDir      string
	Width       int
	Height      int
	ANSI        bool
	Metrics     string
	MetricsAddr string

	logger   xlog.XLogger
	exporter *observability.MetricsExporter
}

func (config *baseConfiguration) addConfigurationFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&config.CfgFile, keyConfig, "", "config file path (yaml, json or toml)")
	flags.StringVar(&config.LogLevel, keyLogLevel, "INFO", "logging level, one of: DEBUG, INFO, WARN, ERROR")
	flags.StringVar(&config.LogEncoder, keyLogEncoder, "text", "log format, one of: text, json")
	flags.StringVar(&config.LogFile, keyLogFile, "", "also write the logs into this file")
	flags.DurationVar(&config.Pause, keyPause, anim.DefaultPauseInterval, "pause between two animation steps")
	flags.StringVar(&config.Surface, keySurface, string(render.GridSurfaceKind), "drawing surface, one of: grid, svg, none")
	flags.StringVar(&config.SVGDir, keySVGDir, defaultSVGDir, "directory of the svg frames")
	flags.IntVar(&config.Width, keyWidth, defaultWidth, "surface width in pixels")
	flags.IntVar(&config.Height, keyHeight, defaultHeight, "surface height in pixels")
	flags.BoolVar(&config.ANSI, keyANSI, false, "colored grid frames, the screen is cleared before each frame")
	flags.StringVar(&config.Metrics, keyMetrics, "", "metrics exporter, disabled when not set. One of: stdout, prometheus")
	flags.StringVar(&config.MetricsAddr, keyMetricsAddr, defaultMetricsAddr, "listen address of the prometheus endpoint")
}

// initializeConfig reads in config file and ENV variables if set.
func (config *baseConfiguration) initializeConfig(cmd *cobra.Command) error {
	v := viper.New()
	if len(config.CfgFile) > 0 {
		v.SetConfigFile(config.CfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config file %s", config.CfgFile)
		}
	}

	// Flags bind to environment variables with the prefix, e.g. --pause
	// binds to BSTVIZ_PAUSE.
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	return bindFlags(cmd, v)
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var bindFlagErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == keyConfig {
			return
		}

		// Environment variables can't have dashes in them, so bind them to their equivalent
		// keys with underscores, e.g. --log-level to BSTVIZ_LOG_LEVEL
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name, fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				bindFlagErr = multierr.Append(bindFlagErr, errors.Wrapf(err, "binding env to flag %q", f.Name))
				return
			}
		}

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				bindFlagErr = multierr.Append(bindFlagErr, errors.Wrapf(err, "setting flag %q value", f.Name))
				return
			}
		}
	})
	return bindFlagErr
}

func (config *baseConfiguration) initLogger(cmd *cobra.Command) error {
	lvl, err := xlog.ParseLogLevel(config.LogLevel)
	if err != nil {
		return err
	}
	enc := xlog.ParseLogEncoder(strings.ToLower(config.LogEncoder))
	opts := []xlog.XLoggerOption{
		xlog.WithXLoggerLevel(lvl),
		xlog.WithXLoggerEncoder(enc),
		xlog.WithXLoggerWriter(xlog.StdErr),
		xlog.WithXLoggerFileCore(config.LogFile),
	}
	if enc == xlog.PlainText {
		opts = append(opts, xlog.WithXLoggerTimeEncoder(zapcore.TimeEncoderOfLayout(time.TimeOnly)))
		if config.ANSI && len(config.LogFile) == 0 {
			// nil selects the colored level encoder.
			opts = append(opts, xlog.WithXLoggerLevelEncoder(nil))
		}
	}
	// Frames go to the standard output, the logs never do.
	if w := cmd.ErrOrStderr(); w != os.Stderr {
		opts = append(opts, xlog.WithXLoggerWriteSyncer(zapcore.AddSync(w)))
	}
	logger, err := xlog.TryNewXLogger(opts...)
	if err != nil {
		return err
	}
	config.logger = logger
	return nil
}

func (config *baseConfiguration) initObservability() error {
	kind, err := observability.ParseExporterKind(config.Metrics)
	if err != nil {
		return err
	}
	exporter, err := observability.NewMetricsExporter(observability.MetricsExporterConfig{
		Kind:   kind,
		Addr:   config.MetricsAddr,
		Logger: config.logger,
	})
	if err != nil {
		return err
	}
	config.exporter = exporter
	if kind == observability.NoneExporter {
		return nil
	}
	if err = observability.InitAppStats("cli"); err != nil {
		return err
	}
	if addr := exporter.Addr(); len(addr) > 0 {
		config.logger.Info("metrics endpoint", zap.String("addr", "http://"+addr+"/metrics"))
	}
	return nil
}

func initializeConfig(cmd *cobra.Command, config *baseConfiguration) error {
	var err error
	if cfgErr := config.initializeConfig(cmd); cfgErr != nil {
		err = multierr.Append(err, errors.Wrap(cfgErr, "reading configuration"))
	}
	if logErr := config.initLogger(cmd); logErr != nil {
		return multierr.Append(err, errors.Wrap(logErr, "initializing logger"))
	}
	if obsErr := config.initObservability(); obsErr != nil {
		err = multierr.Append(err, errors.Wrap(obsErr, "initializing observability"))
	}
	return err
}

func (config *baseConfiguration) shutdown(ctx context.Context) error {
	var err error
	if config.exporter != nil {
		err = multierr.Append(err, config.exporter.Shutdown(ctx))
		config.exporter = nil
	}
	if config.logger != nil {
		// Syncing a terminal stderr fails with EINVAL on linux.
		_ = config.logger.Close()
		config.logger = nil
	}
	return err
}

// newSession wires the configured surface, renderer and sequencer options
// into a session printing its messages on the command output.
func (config *baseConfiguration) newSession(cmd *cobra.Command) (*viz.Session, error) {
	kind, err := render.ParseSurfaceKind(config.Surface)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	surface, err := render.NewSurface(render.SurfaceConfig{
		Kind:   kind,
		Out:    out,
		SVGDir: config.SVGDir,
		Width:  config.Width,
		Height: config.Height,
		ANSI:   config.ANSI,
	})
	if err != nil {
		return nil, err
	}
	renderer, err := render.NewTreeRenderer[int](surface, render.WithTreeRendererLogger[int](config.logger))
	if err != nil {
		return nil, err
	}
	opts := []viz.SessionOption{
		viz.WithSessionRenderer(renderer),
		viz.WithSessionPauseInterval(config.Pause),
		viz.WithSessionLogger(config.logger),
		viz.WithSessionNotifier(func(msg string) {
			fmt.Fprintf(out, "! %s\n", msg)
		}),
		viz.WithSessionOutput(func(text string) {
			fmt.Fprintln(out, text)
		}),
	}
	if len(config.Metrics) > 0 {
		opts = append(opts, viz.WithSessionStats("cli"))
	}
	return viz.NewSession(opts...)
}
