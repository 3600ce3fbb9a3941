package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"unify-data-model/internal/convert"
	"unify-data-model/internal/diagnostic"
	"unify-data-model/internal/document"
	"unify-data-model/internal/record"
)

// ErrUnknownFormat is returned for documents that are neither nested nor
// flattened.
var ErrUnknownFormat = errors.New("unknown document format")

// readError marks a failure to read a document, as opposed to writing its
// converted copy.
type readError struct {
	err error
}

func (e *readError) Error() string { return e.err.Error() }
func (e *readError) Unwrap() error { return e.err }

// Options configure a Runner.
type Options struct {
	Workers  int  // concurrent conversions, at least 1
	Compress bool // write ".json.zst" instead of ".json"
}

// Conversion describes one converted document.
type Conversion struct {
	Source string
	Output string
	Format record.Format
}

// Result is the outcome of a run.
type Result struct {
	RunID       string
	Converted   []Conversion
	Diagnostics diagnostic.Diagnostics
}

// Runner converts documents from one store into another.
type Runner struct {
	in     *document.Store
	out    *document.Store
	logger *slog.Logger
	opts   Options
}

// NewRunner creates a Runner reading from in and writing to out.
func NewRunner(in, out *document.Store, logger *slog.Logger, opts Options) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &Runner{in: in, out: out, logger: logger, opts: opts}
}

// RunAll converts every document listed by the input store.
func (r *Runner) RunAll(ctx context.Context, runID string) (*Result, error) {
	names, err := r.in.List()
	if err != nil {
		return nil, err
	}

	return r.Run(ctx, runID, names)
}

// Run converts the named documents. It only fails when ctx is cancelled;
// per-document failures are recorded in Result.Diagnostics.
func (r *Runner) Run(ctx context.Context, runID string, names []string) (*Result, error) {
	res := &Result{RunID: runID}

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for _, name := range names {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			conv, err := r.Convert(name)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				r.report(&res.Diagnostics, name, err)
				return nil
			}

			res.Converted = append(res.Converted, conv)
			res.Diagnostics.AddInfo(diagnostic.CodeConverted,
				fmt.Sprintf("%s -> %s", conv.Format, conv.Output), name, "")

			return nil
		})
	}

	err := g.Wait()

	slices.SortFunc(res.Converted, func(a, b Conversion) int {
		return strings.Compare(a.Source, b.Source)
	})

	if err != nil {
		return res, err
	}

	return res, ctx.Err()
}

// Convert loads, converts and saves a single document.
func (r *Runner) Convert(name string) (Conversion, error) {
	in, err := r.in.Load(name)
	if err != nil {
		return Conversion{}, &readError{err: err}
	}

	format, out, err := toUnified(in)
	if err != nil {
		return Conversion{}, fmt.Errorf("failed to convert %s document %s: %w", format, name, err)
	}

	conv := Conversion{
		Source: name,
		Output: OutputName(name, r.opts.Compress),
		Format: format,
	}

	if err := r.out.Save(conv.Output, out); err != nil {
		return Conversion{}, err
	}

	r.logger.Info("converted document",
		slog.String("document", name),
		slog.String("format", format.String()),
		slog.String("output", r.out.Path(conv.Output)))

	return conv, nil
}

func (r *Runner) report(d *diagnostic.Diagnostics, name string, err error) {
	var (
		pe *document.ParseError
		fe *convert.FormatError
		re *readError
	)

	switch {
	case errors.Is(err, document.ErrNotFound):
		d.AddError(diagnostic.CodeNotFound, err.Error(), name, "")
	case errors.As(err, &pe):
		d.AddError(diagnostic.CodeParseError, err.Error(), name, "")
	case errors.As(err, &fe):
		d.AddError(diagnostic.CodeFormatError, err.Error(), name, fmt.Sprintf("%s[%d]", record.KeyItems, fe.Index))
	case errors.Is(err, ErrUnknownFormat):
		d.AddWarning(diagnostic.CodeUnknownFormat, err.Error(), name, "")
		r.logger.Warn("skipped document", slog.String("document", name), slog.Any("error", err))

		return
	case errors.As(err, &re):
		d.AddError(diagnostic.CodeReadError, err.Error(), name, "")
	default:
		d.AddError(diagnostic.CodeWriteError, err.Error(), name, "")
	}

	r.logger.Error("document failed", slog.String("document", name), slog.Any("error", err))
}

// toUnified picks the converter for the detected shape. Unified input goes
// through NestedToUnified, which leaves it as it is.
func toUnified(in record.Record) (record.Format, any, error) {
	format := record.Detect(in)

	switch format {
	case record.FormatNested, record.FormatUnified:
		return format, convert.NestedToUnified(in), nil
	case record.FormatFlattened:
		u, err := convert.FlattenedRecordToUnified(in)
		return format, u, err
	default:
		return format, nil, ErrUnknownFormat
	}
}

// OutputName maps a source document name to the name of its converted copy.
func OutputName(name string, compress bool) string {
	base := strings.TrimSuffix(strings.TrimSuffix(name, document.ExtZstd), document.ExtJSON)
	if compress {
		return base + document.ExtJSON + document.ExtZstd
	}

	return base + document.ExtJSON
}
