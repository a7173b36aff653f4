package convert

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"packsmith/internal/project"
)

// runner is the transcode entry point Manager drives. Converter satisfies
// it; tests substitute a fake.
type runner interface {
	ConvertWithProgress(ctx context.Context, inputPath, targetFormat string, onProgress func(int)) (string, error)
}

// Manager turns transcode requests into convert jobs on the project state.
// Each job runs in its own goroutine and reports progress and completion by
// dispatching commands, like every other out-of-band operation.
type Manager struct {
	engine    *project.Engine
	converter runner
	logger    *slog.Logger
	wg        sync.WaitGroup
}

func NewManager(engine *project.Engine, converter runner, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		engine:    engine,
		converter: converter,
		logger:    logger.With("component", "convert"),
	}
}

// Start queues a transcode of sourcePath and returns the job id immediately.
// Progress lands on the job via UpdateConvertJob commands.
func (m *Manager) Start(ctx context.Context, sourcePath, targetFormat string) string {
	id := uuid.NewString()
	m.engine.Dispatch(project.AddConvertJob{Job: project.ConvertJob{
		ID:           id,
		SourceFile:   filepath.Base(sourcePath),
		TargetFormat: targetFormat,
		Status:       project.JobConverting,
	}})

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		output, err := m.converter.ConvertWithProgress(ctx, sourcePath, targetFormat, func(percent int) {
			m.engine.Dispatch(project.UpdateConvertJob{
				ID:       id,
				Status:   project.JobConverting,
				Progress: percent,
			})
		})
		if err != nil {
			m.logger.Warn("conversion failed", "job", id, "file", sourcePath, "error", err)
			m.engine.Dispatch(project.UpdateConvertJob{
				ID:     id,
				Status: project.JobError,
				Error:  err.Error(),
			})
			return
		}
		m.engine.Dispatch(project.UpdateConvertJob{
			ID:         id,
			Status:     project.JobDone,
			Progress:   100,
			OutputPath: output,
		})
	}()
	return id
}

// Wait blocks until every started job has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}
