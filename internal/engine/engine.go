package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"velvetstat/internal/config"
	"velvetstat/internal/data"
	"velvetstat/internal/extract"
	"velvetstat/internal/logging"
	"velvetstat/internal/output"
	"velvetstat/internal/report"

	"github.com/google/uuid"
)

const (
	ExitOK    = 0
	ExitFatal = 1
)

type Engine struct {
	Logger *slog.Logger
	RunID  string

	// Stdout receives console status lines and --emit streams.
	Stdout io.Writer
}

func NewEngine(logger *slog.Logger, runID string) *Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Engine{
		Logger: logger,
		RunID:  runID,
		Stdout: os.Stdout,
	}
}

func setupOutputManager(cfg *config.Config, runID string, stdout io.Writer) (*output.Manager, error) {
	outMgr := output.NewManager(runID)

	// Console Sink
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(stdout)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Emit Sinks (additional structured streams)
	for _, emit := range cfg.Output.Emit {
		es, err := output.NewEmitSink(stdout, emit)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(es); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Report file
	fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.Format)
	if err != nil {
		outMgr.Close()
		return nil, err
	}
	if err := outMgr.AddSink(fs); err != nil {
		outMgr.Close()
		return nil, err
	}

	return outMgr, nil
}

func metricsOf(rc *data.RunContext) map[string]any {
	out := make(map[string]any, rc.Len())
	for _, k := range rc.Keys() {
		v, _ := rc.Get(k)
		out[string(k)] = v
	}
	return out
}

// Run validates directories, extracts metrics and writes the report. It
// returns the process exit code.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	log := e.Logger

	selected, err := extract.Resolve(cfg.Inputs.Extractors)
	if err != nil {
		log.Error("resolving extractors", slog.String("error", err.Error()))
		return ExitFatal
	}
	plan, err := NewPlan(selected)
	if err != nil {
		log.Error("planning extraction", slog.String("error", err.Error()))
		return ExitFatal
	}
	log.Debug("extraction plan", slog.Int("extractors", len(plan.Extractors)), slog.Any("artifacts", plan.Artifacts()))

	sel, err := ResolveDirs(cfg.Inputs.Dirs, plan.Artifacts(), log)
	if err != nil {
		if errors.Is(err, ErrNoValidDirs) {
			log.Error("no valid assembly directories", slog.Int("candidates", len(cfg.Inputs.Dirs)))
		} else {
			log.Error("validating directories", slog.String("error", err.Error()))
		}
		return ExitFatal
	}
	log.Info("validated directories", slog.Int("accepted", len(sel.Accepted)), slog.Int("rejected", len(sel.Rejected)), slog.Int("duplicates", len(sel.Duplicates)))

	outMgr, err := setupOutputManager(cfg, e.RunID, e.Stdout)
	if err != nil {
		log.Error("creating output sinks", slog.String("error", err.Error()))
		return ExitFatal
	}

	_ = outMgr.Write(output.Event{Type: output.EventRunStarted, Dirs: len(sel.Accepted)})
	for _, rej := range sel.Rejected {
		_ = outMgr.Write(output.Event{Type: output.EventDirSkipped, Dir: rej.Dir, Reason: rej.Err.Error()})
	}

	results := ExtractAll(ctx, sel.Accepted, plan, cfg.Runtime.Concurrency)
	if err := ctx.Err(); err != nil {
		log.Error("run interrupted", slog.String("error", err.Error()))
		_ = outMgr.Close()
		return ExitFatal
	}

	contexts := make([]*data.RunContext, 0, len(results))
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			reason := presentError(res.Err, cfg.Runtime.Verbose)
			log.Warn("skipping directory", slog.String("dir", res.Dir), slog.String("reason", reason))
			_ = outMgr.Write(output.Event{Type: output.EventDirFailed, Dir: res.Dir, Reason: reason})
			continue
		}
		log.Debug("extracted directory", slog.String("dir", res.Dir), slog.Int("metrics", res.Context.Len()))
		_ = outMgr.Write(output.Event{Type: output.EventDirFinished, Dir: res.Dir, Metrics: metricsOf(res.Context)})
		contexts = append(contexts, res.Context)
	}
	if len(contexts) == 0 {
		log.Warn("no directory produced metrics; report has a header only")
	}

	table := report.Build(contexts)
	if err := outMgr.Write(table); err != nil {
		log.Error("writing report", slog.String("error", err.Error()))
		_ = outMgr.Close()
		return ExitFatal
	}
	_ = outMgr.Write(output.Event{
		Type:    output.EventRunFinished,
		Rows:    len(table.Rows),
		Skipped: len(sel.Rejected),
		Failed:  failed,
	})

	if err := outMgr.Close(); err != nil {
		log.Error("closing outputs", slog.String("error", err.Error()))
		return ExitFatal
	}
	log.Info("wrote report", slog.String("path", cfg.Output.Out), slog.String("format", cfg.Output.Format), slog.Int("rows", len(table.Rows)), slog.Int("columns", len(table.Columns())))
	return ExitOK
}

