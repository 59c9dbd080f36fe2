package main

import (
	"fmt"
	"io"
	"time"

	"github.com/Lin-Jiong-HDU/nlterm/internal/core"
	"github.com/Lin-Jiong-HDU/nlterm/internal/core/security"
	"github.com/Lin-Jiong-HDU/nlterm/internal/logging"
	"github.com/Lin-Jiong-HDU/nlterm/internal/nlp"
	"github.com/Lin-Jiong-HDU/nlterm/internal/storage"
	"github.com/Lin-Jiong-HDU/nlterm/internal/sysinfo"
	"github.com/rs/zerolog"
)

// app bundles everything one session needs
type app struct {
	cfg       *storage.Config
	engine    *core.Engine
	validator *security.Validator
	state     core.SessionState
	log       zerolog.Logger
	closer    io.Closer
}

func newApp(cfg *storage.Config, cwd string, verbose bool) (*app, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	state, err := core.NewSession(cwd)
	if err != nil {
		return nil, err
	}

	logCfg := logging.Config{Level: cfg.Log.Level, Verbose: verbose, SessionID: state.ID}
	if cfg.Log.File {
		dir, err := storage.GetLogDir()
		if err != nil {
			return nil, err
		}
		logCfg.Dir = dir
	}
	log, closer, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	validator := security.NewValidator(&cfg.Security)
	executor := core.NewExecutor(time.Duration(cfg.Pip.Timeout) * time.Second)

	router := core.NewRouter(core.RouterOptions{
		Validator:    validator,
		System:       sysinfo.NewReporter(sysinfo.Options{Logger: log}),
		Packages:     core.NewPackageManager(executor, cfg.Pip.Command, log),
		Logger:       log,
		ProcessLimit: cfg.System.ProcessLimit,
	})

	log.Info().Str("cwd", state.Cwd).Msg("session started")

	return &app{
		cfg:       cfg,
		engine:    core.NewEngine(nlp.NewInterpreter(log), router, log),
		validator: validator,
		state:     state,
		log:       log,
		closer:    closer,
	}, nil
}

func (a *app) Close() error {
	a.log.Info().Msg("session closed")
	return a.closer.Close()
}
