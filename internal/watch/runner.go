package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docuform/contact-extractor/internal/export"
	"github.com/docuform/contact-extractor/internal/extractor"
	"github.com/docuform/contact-extractor/internal/logger"
)

const drainTimeout = 30 * time.Second

// processor is the slice of extractor.Service the runner depends on.
type processor interface {
	ExtractFile(req extractor.ExtractFileRequest) (*extractor.Record, error)
}

// Config controls watch mode.
type Config struct {
	// Root is the directory tree to watch for PDF documents.
	Root string
	// Workers is the number of concurrent extraction workers.
	Workers int
	// QueueSize bounds the number of pending documents.
	QueueSize int
	// Debounce coalesces rapid filesystem event bursts per file.
	Debounce time.Duration
	// ExportPath, when set, receives the contact sheet on shutdown.
	ExportPath string
}

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = 2
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 256
	}
	if c.Debounce <= 0 {
		c.Debounce = 200 * time.Millisecond
	}
}

type job struct {
	ID   string
	Path string
}

// Runner drives watch mode: it discovers PDFs under a directory tree,
// extracts contact records with a worker pool, writes a JSON sidecar
// next to each document, and saves the contact sheet on shutdown.
type Runner struct {
	cfg    Config
	proc   processor
	writer *export.Writer
	logger *logger.Logger

	ch   chan job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool

	// processed tracks source mtimes so a replayed event for an
	// unchanged file does not re-run extraction. Touched only by the
	// Run loop.
	processed map[string]time.Time
}

// NewRunner creates a watch mode runner over the extraction service
func NewRunner(cfg Config, svc *extractor.Service, log *logger.Logger) *Runner {
	return newRunner(cfg, svc, log)
}

func newRunner(cfg Config, proc processor, log *logger.Logger) *Runner {
	cfg.applyDefaults()
	if log == nil {
		log = logger.NewNop()
	}
	return &Runner{
		cfg:       cfg,
		proc:      proc,
		writer:    export.NewWriter(log),
		logger:    log.WithComponent("watch"),
		ch:        make(chan job, cfg.QueueSize),
		processed: map[string]time.Time{},
	}
}

// Run blocks until ctx is cancelled, then drains the queue and saves
// the contact sheet if an export path is configured.
func (r *Runner) Run(ctx context.Context) error {
	evCh, errCh, err := StartWatcher(ctx, WatcherConfig{
		Root:        r.cfg.Root,
		InitialScan: true,
		Debounce:    r.cfg.Debounce,
	}, r.logger)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	r.startWorkers()
	r.logger.Info("watching for documents",
		zap.String("directory", r.cfg.Root),
		zap.Int("workers", r.cfg.Workers))

	for {
		select {
		case <-ctx.Done():
			return r.shutdown()
		case path, ok := <-evCh:
			if !ok {
				return r.shutdown()
			}
			if !r.shouldProcess(path) {
				continue
			}
			r.enqueue(job{ID: uuid.NewString(), Path: path})
		case werr, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			r.logger.Warn("watch error", zap.Error(werr))
		}
	}
}

func (r *Runner) startWorkers() {
	r.once.Do(func() {
		for i := 0; i < r.cfg.Workers; i++ {
			r.wg.Add(1)
			go func(workerID int) {
				defer r.wg.Done()
				for j := range r.ch {
					r.process(j, workerID)
				}
			}(i + 1)
		}
	})
}

func (r *Runner) shouldProcess(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		r.logger.Debug("skipping vanished file", zap.String("path", path))
		return false
	}
	if prev, ok := r.processed[path]; ok && prev.Equal(info.ModTime()) {
		return false
	}
	r.processed[path] = info.ModTime()
	return true
}

func (r *Runner) enqueue(j job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.ch <- j:
		r.logger.Debug("queued document",
			zap.String("job_id", j.ID),
			zap.String("path", j.Path))
	default:
		r.logger.Warn("queue full, applying backpressure", zap.String("path", j.Path))
		r.ch <- j
	}
}

func (r *Runner) process(j job, workerID int) {
	rec, err := r.proc.ExtractFile(extractor.ExtractFileRequest{Path: j.Path})
	if err != nil {
		r.logger.Warn("extraction failed",
			zap.String("job_id", j.ID),
			zap.Int("worker_id", workerID),
			zap.String("path", j.Path),
			zap.Error(err))
		r.writeSidecar(j.Path, extractor.ErrorRecord(err))
		return
	}

	r.writeSidecar(j.Path, rec)
	r.writer.Add(filepath.Base(j.Path), rec)
	r.logger.Info("document processed",
		zap.String("job_id", j.ID),
		zap.Int("worker_id", workerID),
		zap.String("path", j.Path),
		zap.String("status", rec.Status))
}

func (r *Runner) writeSidecar(pdfPath string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		r.logger.Error("failed to encode sidecar",
			zap.String("path", pdfPath),
			zap.Error(err))
		return
	}
	target := SidecarPath(pdfPath)
	if err := os.WriteFile(target, append(data, '\n'), 0o644); err != nil {
		r.logger.Error("failed to write sidecar",
			zap.String("path", target),
			zap.Error(err))
	}
}

func (r *Runner) shutdown() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.ch)
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.wg.Wait()
	}()

	select {
	case <-time.After(drainTimeout):
		r.logger.Warn("shutdown timed out before queue drained")
	case <-done:
		r.logger.Info("queue drained")
	}

	if r.cfg.ExportPath != "" {
		if err := r.writer.Save(r.cfg.ExportPath); err != nil {
			return fmt.Errorf("save contact sheet: %w", err)
		}
	}
	return nil
}

// SidecarPath returns the JSON result path written next to a document
func SidecarPath(pdfPath string) string {
	return pdfPath + ".contact.json"
}
