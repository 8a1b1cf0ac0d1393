package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/partwright/component"
	"github.com/sarchlab/partwright/config"
	"github.com/sarchlab/partwright/datarecording"
	"github.com/sarchlab/partwright/designrules"
	"github.com/sarchlab/partwright/examples/primitives"
	"github.com/sarchlab/partwright/logging"
	"github.com/sarchlab/partwright/plugins"
	"github.com/sarchlab/partwright/scheduling"
)

// session holds everything a command needs to build components.
type session struct {
	cfg      config.Config
	logger   *slog.Logger
	pool     *scheduling.Pool
	registry *plugins.Registry
	rules    *designrules.Store
	recorder datarecording.DataRecorder
	tracer   *datarecording.Tracer
	exec     *datarecording.ExecRecorder
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)

	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	if envFile != "" {
		cfg, err = config.Load(envFile)
	} else {
		cfg, err = config.Load()
	}

	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("plugin-dir") {
		cfg.PluginDir, _ = flags.GetString("plugin-dir")
	}

	if flags.Changed("design-rules") {
		cfg.DesignRules, _ = flags.GetString("design-rules")
	}

	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	if flags.Changed("record") {
		cfg.Record, _ = flags.GetString("record")
	}

	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.MonitorPort, _ = flags.GetInt("port")
	}

	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")

	return logging.New(os.Stderr, level, noColor), nil
}

// openSession discovers the plugins, starts the scheduler, and opens the
// design rules and the recording database when configured.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger}

	modules, err := s.loadModules(cmd)
	if err != nil {
		return nil, err
	}

	s.registry = plugins.BuildRegistry(logger, modules...)

	if cfg.DesignRules != "" {
		s.rules, err = designrules.Open(cfg.DesignRules)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Workers > 0 && cfg.Workers < config.MinWorkers {
		logger.Warn("recomputes cannot run on a single worker",
			"workers", cfg.Workers, "minimum", config.MinWorkers)
	}

	s.pool = scheduling.MakeBuilder().
		WithNumWorkers(cfg.NumWorkers()).
		Build("Scheduler")

	if cfg.Record != "" {
		s.recorder = datarecording.New(cfg.Record)
		s.tracer = datarecording.NewTracer(s.recorder)
		s.exec = datarecording.NewExecRecorder(s.recorder)
		s.exec.Start()
		s.pool.AcceptHook(s.tracer)
	}

	return s, nil
}

func (s *session) loadModules(cmd *cobra.Command) ([]*plugins.Module, error) {
	var modules []*plugins.Module

	noBuiltin, _ := cmd.Flags().GetBool("no-builtin")
	if !noBuiltin {
		modules = append(modules, plugins.StaticModule("builtin", primitives.Load))
	}

	dir := s.cfg.PluginDir
	if dir == "" {
		var err error

		dir, err = plugins.DefaultPluginDir()
		if err != nil {
			return nil, err
		}

		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("no plugin directory", "path", dir)
			return modules, nil
		}
	}

	discovered, err := plugins.Discover(dir, s.logger)
	if err != nil {
		return nil, err
	}

	return append(modules, discovered...), nil
}

func (s *session) env() component.Environment {
	env := component.Environment{
		Scheduler: s.pool,
		Logger:    s.logger,
		Equations: s.registry.Equations(),
	}

	if s.tracer != nil {
		env.Hooks = append(env.Hooks, s.tracer)
	}

	return env
}

func (s *session) close() {
	s.pool.Drain()
	s.pool.Terminate()

	if s.exec != nil {
		s.exec.End()
	}

	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil {
			s.logger.Error("closing recording", "error", err)
		}
	}

	if s.rules != nil {
		s.rules.Close()
	}
}

var errNoDesignRules = fmt.Errorf(
	"no design rules database, use --design-rules or %s", config.EnvDesignRules)

func mustHaveRules(s *session) error {
	if s.rules == nil {
		return errNoDesignRules
	}

	return nil
}
