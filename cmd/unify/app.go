package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"unify-data-model/internal/compare"
	"unify-data-model/internal/config"
	"unify-data-model/internal/diagnostic"
	"unify-data-model/internal/document"
	"unify-data-model/internal/logging"
	"unify-data-model/internal/record"
	"unify-data-model/internal/report"
)

// flags shared by all commands. Values left unset keep the configuration
// file (or default) value.
type flags struct {
	config    string
	dataDir   string
	outputDir string
	workers   int
	compress  bool
	logLevel  string
	logFormat string
	dump      bool
	diff      bool
}

func registerFlags(fs *flag.FlagSet) *flags {
	f := &flags{}

	fs.StringVar(&f.config, "config", "", "path to a YAML configuration file")
	fs.StringVar(&f.dataDir, "data", "", "directory holding the documents")
	fs.StringVar(&f.outputDir, "out", "", "directory receiving converted documents (batch, watch)")
	fs.IntVar(&f.workers, "workers", 0, "documents converted at once (batch, watch)")
	fs.BoolVar(&f.compress, "compress", false, "write zstd-compressed documents (batch, watch)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
	fs.BoolVar(&f.dump, "dump", false, "also dump loaded documents with their Go types")
	fs.BoolVar(&f.diff, "diff", false, "list the differing paths when a conversion does not match the target")

	return f
}

// apply overrides cfg with the flags given on the command line.
func (f *flags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "data":
			cfg.DataDir = f.dataDir
		case "out":
			cfg.OutputDir = f.outputDir
		case "workers":
			cfg.Workers = f.workers
		case "compress":
			cfg.Compress = f.compress
		case "log-level":
			cfg.Log.Level = f.logLevel
		case "log-format":
			cfg.Log.Format = f.logFormat
		}
	})
}

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	runID  string
	store  *document.Store
	rep    *report.Reporter
	args   []string
	dump   bool
	diff   bool
}

func newApp(fs *flag.FlagSet, f *flags, stdout, stderr io.Writer) (*app, error) {
	cfg := config.Default()

	if f.config != "" {
		var err error

		cfg, err = config.LoadFile(f.config)
		if err != nil {
			return nil, err
		}
	}

	f.apply(fs, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(stderr, logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}

	store, err := document.NewStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	runID := logging.NewRunID()

	return &app{
		cfg:    cfg,
		logger: logging.WithRun(logger, runID),
		runID:  runID,
		store:  store,
		rep:    report.New(stdout),
		args:   fs.Args(),
		dump:   f.dump,
		diff:   f.diff,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close document store", slog.Any("error", err))
	}
}

// outputDir resolves the configured output directory against the data
// directory.
func (a *app) outputDir() string {
	if filepath.IsAbs(a.cfg.OutputDir) {
		return a.cfg.OutputDir
	}

	return filepath.Join(a.cfg.DataDir, a.cfg.OutputDir)
}

// load reads and displays a document. Missing or malformed documents are
// reported and yield nil.
func (a *app) load(name string) record.Record {
	r, err := a.store.Load(name)

	var pe *document.ParseError

	switch {
	case errors.Is(err, document.ErrNotFound):
		a.rep.Line("File %s not found!", name)
		a.logger.Warn("document not found", slog.String("document", name))

		return nil
	case errors.As(err, &pe):
		a.rep.Line("Error parsing JSON in %s: %v", name, pe.Err)
		a.logger.Warn("document is not valid JSON", slog.String("document", name), slog.Any("error", pe.Err))

		return nil
	case err != nil:
		a.rep.Line("Error reading %s: %v", name, err)
		a.logger.Error("failed to load document", slog.String("document", name), slog.Any("error", err))

		return nil
	}

	a.show(name, r)

	return r
}

// show prints a document, and its Go dump when -dump is set.
func (a *app) show(name string, v any) {
	if err := a.rep.Document(name, v); err != nil {
		a.logger.Error("failed to print document", slog.String("document", name), slog.Any("error", err))
	}

	if a.dump {
		a.rep.Dump(v)
	}
}

// match reports whether got equals the target document and records a
// target_mismatch warning listing the differing paths when it does not.
func (a *app) match(d *diagnostic.Diagnostics, label string, got any, targetName string, target record.Record) {
	paths := compare.Diff(got, target)
	a.rep.Match(label, len(paths) == 0)

	if len(paths) == 0 {
		return
	}

	d.AddWarning(diagnostic.CodeTargetMismatch,
		fmt.Sprintf("%s differs at %s", label, strings.Join(paths, ", ")), targetName, "")

	if a.diff {
		a.rep.Differences(label, paths)
	}
}
