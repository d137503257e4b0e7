package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pornin/go-falcon/falconapi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "FALCON_TRIAL"

const (
	flagConfig      = "config"
	flagLogLevel    = "log-level"
	flagDev         = "dev"
	flagMetricsAddr = "metrics-addr"
)

// app carries the state shared by subcommands. It is filled in by the
// root PersistentPreRunE.
type app struct {
	v       *viper.Viper
	log     *zap.Logger
	reg     *prometheus.Registry
	engine  *falconapi.Engine
	metrics *http.Server
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:           "falcon-trial",
		Short:         "Falcon-512 signing trials and tools",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Flags())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.String(flagConfig, "", "Configuration file (yaml, toml or json)")
	pf.String(flagLogLevel, "info", "Log level (debug, info, warn, error)")
	pf.Bool(flagDev, false, "Use a human-readable development logger")
	pf.String(flagMetricsAddr, "", "Serve Prometheus metrics on this address while running")

	root.AddCommand(
		newRunCmd(a),
		newKeygenCmd(a),
		newSignCmd(a),
		newVerifyCmd(a),
		newInspectCmd(a),
	)
	return root
}

// init binds flags, environment and the configuration file, then builds
// the logger, metrics registry and engine.
func (a *app) init(flags *pflag.FlagSet) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(flags); err != nil {
		return err
	}
	if path := a.v.GetString(flagConfig); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	log, err := newLogger(a.v.GetString(flagLogLevel), a.v.GetBool(flagDev))
	if err != nil {
		return err
	}
	a.log = log
	a.reg = prometheus.NewRegistry()
	a.engine = falconapi.New(
		falconapi.WithLogger(log.Named("falcon")),
		falconapi.WithMetrics(a.reg),
	)
	if addr := a.v.GetString(flagMetricsAddr); addr != "" {
		return a.serveMetrics(addr)
	}
	return nil
}

func newLogger(level string, dev bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func (a *app) serveMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.reg, promhttp.HandlerOpts{}))
	a.metrics = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := a.metrics.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server failed", zap.Error(err))
		}
	}()
	a.log.Info("serving metrics", zap.String("addr", ln.Addr().String()))
	return nil
}

func (a *app) close() error {
	var err error
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = a.metrics.Shutdown(ctx)
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
	return err
}
