package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"packsmith/internal/autosave"
	"packsmith/internal/catalog"
	"packsmith/internal/config"
	"packsmith/internal/convert"
	"packsmith/internal/exporter"
	"packsmith/internal/host"
	"packsmith/internal/logging"
	"packsmith/internal/project"
	"packsmith/internal/savefile"
	"packsmith/internal/scanner"
)

// commandContext wires the config, logger, and services every subcommand
// needs. Everything is built lazily so commands that only print help never
// touch the filesystem.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) environment() savefile.Environment {
	cfg, err := c.ensureConfig()
	if err != nil || cfg.Host.Environment == "web" {
		return savefile.EnvWeb
	}
	return savefile.EnvDesktop
}

// openStore returns the environment-appropriate save store.
func (c *commandContext) openStore() (autosave.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if c.environment() == savefile.EnvWeb {
		return autosave.OpenKVStore(cfg.SaveDBPath())
	}
	return autosave.NewFileStore(cfg.SaveFilePath()), nil
}

// session is one loaded project plus the services acting on it. Commands
// load a session, dispatch edits, and save it back.
type session struct {
	ctx      *commandContext
	engine   *project.Engine
	codec    *savefile.Codec
	store    autosave.Store
	logger   *slog.Logger
	restored *savefile.Snapshot
}

// openSession loads the saved project, if any, into a fresh engine.
func (c *commandContext) openSession(ctx context.Context) (*session, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	store, err := c.openStore()
	if err != nil {
		return nil, err
	}

	engine := project.NewEngine(logger)
	codec := savefile.NewCodec(catalog.Default())

	s := &session{ctx: c, engine: engine, codec: codec, store: store, logger: logger}

	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Autosave.RestoreOnStart {
		scheduler := autosave.NewScheduler(engine, codec, store, c.environment(), logger)
		if snapshot, ok := scheduler.Restore(ctx); ok {
			s.restored = snapshot
		}
	}
	return s, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// save writes the current project state through the codec.
func (s *session) save(ctx context.Context) error {
	state := s.engine.Snapshot()
	data, err := s.codec.Encode(state.Config, state.Entries, s.ctx.environment(), time.Now())
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if err := s.store.Save(ctx, data); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	s.engine.Dispatch(project.MarkSaved{})
	return nil
}

func (c *commandContext) newScanner() (*scanner.Scanner, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return scanner.New(logger), nil
}

func (c *commandContext) newExporter() (*exporter.Exporter, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return exporter.New(logger), nil
}

// newHost builds the capability facade selected by the config. This is the
// single place the code branches on the environment.
func (c *commandContext) newHost() (host.Capabilities, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	probe, err := c.newScanner()
	if err != nil {
		return nil, err
	}
	if c.environment() == savefile.EnvWeb {
		return host.NewRestricted(logger, probe), nil
	}
	return host.NewDesktop(logger, probe, convert.NewConverter(logger)), nil
}
