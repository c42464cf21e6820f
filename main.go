package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vdot/internal/config"
	"vdot/internal/render"
	"vdot/internal/service"
	"vdot/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, render.RenderError(err))
		os.Exit(1)
	}
}

// globalFlags are shared by every command
type globalFlags struct {
	configPath string
	debug      bool
}

// app bundles the dependencies a command runs with
type app struct {
	cfg   *config.Config
	log   *zap.SugaredLogger
	store *store.Store
	calc  *service.Calculator
	units render.Units
}

// loadApp reads configuration and builds the logger. The database is only
// opened when withStore is set.
func loadApp(flags *globalFlags, withStore bool) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if errors.Is(err, config.ErrNoConfig) {
		defaults := config.DefaultConfig()
		cfg = &defaults
	} else if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := newLogger(flags.debug)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:   cfg,
		log:   log,
		units: render.NewUnits(cfg.Display),
	}

	if withStore {
		a.store, err = store.Open(cfg.Database.Path)
		if err != nil {
			_ = log.Sync()
			return nil, fmt.Errorf("opening database: %w", err)
		}
		log.Debugw("opened database", "path", cfg.Database.Path)
	}

	a.calc = service.NewCalculator(a.store, log)
	return a, nil
}

// Close releases the database and flushes the logger
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warnw("closing database", "error", err)
		}
	}
	_ = a.log.Sync()
}

// newLogger builds a development logger when debug is set. Otherwise a
// production logger that only reports warnings and errors.
func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		zapLogger, err = cfg.Build()
	}
	if err != nil {
		return nil, fmt.Errorf("can't initialize zap logger: %w", err)
	}

	return zapLogger.Sugar(), nil
}
