package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"unify-data-model/internal/batch"
	"unify-data-model/internal/config"
	"unify-data-model/internal/convert"
	"unify-data-model/internal/diagnostic"
	"unify-data-model/internal/document"
	"unify-data-model/internal/record"
	"unify-data-model/internal/report"
	"unify-data-model/internal/watch"
)

const defaultConfigPath = "unify.yaml"

func runExplore(_ context.Context, a *app) error {
	docs := a.cfg.Documents

	a.rep.Line("Exploring two different JSON data formats...")

	nested := a.load(docs.Nested)
	flattened := a.load(docs.Flattened)

	if nested != nil {
		a.rep.Structure(docs.Nested, report.Summarize(nested))
	}

	if flattened != nil {
		a.rep.Structure(docs.Flattened, report.Summarize(flattened))
	}

	a.rep.FormatComparison()

	return nil
}

func runConvert(_ context.Context, a *app) error {
	docs := a.cfg.Documents

	a.rep.Banner("TESTING CONVERSION FUNCTIONS")

	nested := a.load(docs.Nested)
	flattened := a.load(docs.Flattened)

	var (
		fromNested    record.Record
		fromFlattened *record.Unified
		errs          []error
		diags         diagnostic.Diagnostics
	)

	if nested != nil {
		a.rep.Section("Converting Nested to Unified")

		fromNested = convert.NestedToUnified(nested)
		a.show("", fromNested)
	}

	if flattened != nil {
		a.rep.Section("Converting Flattened to Unified")

		u, err := convert.FlattenedRecordToUnified(flattened)
		if err != nil {
			a.rep.Line("Conversion of %s failed: %v", docs.Flattened, err)
			errs = append(errs, fmt.Errorf("failed to convert %s: %w", docs.Flattened, err))
		} else {
			fromFlattened = &u
			a.show("", u)
		}
	}

	target := a.load(docs.Target)
	if target != nil && (fromNested != nil || fromFlattened != nil) {
		a.rep.Section("Comparing Results")

		if fromNested != nil {
			a.match(&diags, "Nested->Unified", fromNested, docs.Target, target)
		}

		if fromFlattened != nil {
			a.match(&diags, "Flattened->Unified", *fromFlattened, docs.Target, target)
		}
	}

	a.printDiagnostics(&diags)

	return errors.Join(errs...)
}

func runBatch(ctx context.Context, a *app) error {
	runner, closeOut, err := a.newRunner()
	if err != nil {
		return err
	}
	defer closeOut()

	res, err := runner.RunAll(ctx, a.runID)
	if res != nil {
		a.printResult(res)
	}

	if err != nil {
		return err
	}

	return res.Diagnostics.Error()
}

func runWatch(ctx context.Context, a *app) error {
	if filepath.Clean(a.outputDir()) == filepath.Clean(a.cfg.DataDir) {
		return errors.New("watch needs an output directory different from the data directory")
	}

	runner, closeOut, err := a.newRunner()
	if err != nil {
		return err
	}
	defer closeOut()

	res, err := runner.RunAll(ctx, a.runID)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	if err != nil {
		return err
	}

	a.printResult(res)

	// Diagnostics of every run since the watch started.
	var total diagnostic.Diagnostics

	total.Merge(res.Diagnostics)

	w, err := watch.New(a.cfg.DataDir, a.logger, func(ctx context.Context, name string) {
		res, err := runner.Run(ctx, a.runID, []string{name})
		if err != nil {
			return
		}

		a.printResult(res)
		total.Merge(res.Diagnostics)
	})
	if err != nil {
		return err
	}

	err = w.Run(ctx)

	a.rep.Line("Watch finished: %d converted, %d errors, %d warnings",
		len(total.Infos), len(total.Errors), len(total.Warnings))
	a.logger.Info("watch finished",
		slog.Int("converted", len(total.Infos)),
		slog.Int("errors", len(total.Errors)),
		slog.Int("warnings", len(total.Warnings)))

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func runInitConfig(_ context.Context, a *app) error {
	path := defaultConfigPath
	if len(a.args) > 0 {
		path = a.args[0]
	}

	if err := config.WriteFile(a.cfg, path); err != nil {
		return err
	}

	a.rep.Line("Wrote %s", path)
	a.logger.Debug("wrote configuration", slog.String("path", path))

	return nil
}

func (a *app) newRunner() (*batch.Runner, func(), error) {
	out, err := document.NewStore(a.outputDir())
	if err != nil {
		return nil, nil, err
	}

	runner := batch.NewRunner(a.store, out, a.logger, batch.Options{
		Workers:  a.cfg.Workers,
		Compress: a.cfg.Compress,
	})

	closeOut := func() {
		if err := out.Close(); err != nil {
			a.logger.Warn("failed to close output store", slog.Any("error", err))
		}
	}

	return runner, closeOut, nil
}

func (a *app) printResult(res *batch.Result) {
	a.rep.Section("Batch " + res.RunID)

	for _, c := range res.Converted {
		a.rep.Line("%s (%s) -> %s", c.Source, c.Format, c.Output)
	}

	a.printDiagnostics(&res.Diagnostics)
}

// printDiagnostics prints errors, then warnings. Infos are left to the log.
func (a *app) printDiagnostics(d *diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		if diag.Severity == diagnostic.DiagnosticInfo {
			continue
		}

		a.rep.Line("%s: %s", diag.Severity, diag)
	}
}
