package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"unify-data-model/internal/common"
	"unify-data-model/internal/document"
)

const bannerWidth = 60

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Reporter writes human-readable output to a writer.
type Reporter struct {
	w io.Writer
}

// New creates a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Banner prints title between two rules.
func (r *Reporter) Banner(title string) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(r.w, "\n%s\n%s\n%s\n", rule, title, rule)
}

// Section prints a section heading.
func (r *Reporter) Section(title string) {
	fmt.Fprintf(r.w, "\n--- %s ---\n", title)
}

// Line prints one line of text.
func (r *Reporter) Line(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Document prints v as indented JSON under a "=== name ===" heading.
// An empty name prints the JSON only.
func (r *Reporter) Document(name string, v any) error {
	data, err := document.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	if name != "" {
		fmt.Fprintf(r.w, "\n=== %s ===\n", name)
	}

	_, err = r.w.Write(data)

	return err
}

// Structure prints the structure analysis of a document.
func (r *Reporter) Structure(name string, s Structure) {
	r.Section("Structure Analysis for " + name)
	r.Line("Top-level keys: %s", formatKeys(s.Keys))

	if !common.IsEmpty(s.Objects) {
		r.Line("Nested objects: %s", formatKeys(s.Objects))
	}

	if !common.IsEmpty(s.Arrays) {
		r.Line("Arrays: %s", formatKeys(s.Arrays))
	}
}

// Match prints whether a conversion matched the target document.
func (r *Reporter) Match(label string, ok bool) {
	r.Line("%s matches target: %t", label, ok)
}

// Differences lists the paths at which a conversion differs from the target.
func (r *Reporter) Differences(label string, paths []string) {
	if common.IsEmpty(paths) {
		return
	}

	r.Line("%s differs at:", label)

	for _, p := range paths {
		r.Line("  %s", p)
	}
}

// Dump prints a verbose dump of v with its Go types.
func (r *Reporter) Dump(v any) {
	dumper.Fdump(r.w, v)
}

// FormatComparison prints how the nested and flattened formats differ.
func (r *Reporter) FormatComparison() {
	r.Section("Format Comparison")
	r.Line("The nested format uses a NESTED/HIERARCHICAL layout:")
	r.Line("  - User info is grouped in a 'user' object")
	r.Line("  - Metadata is grouped in a 'metadata' object")
	r.Line("  - Items contain full object structures")
	r.Line("")
	r.Line("The flattened format uses a FLATTENED layout:")
	r.Line("  - User info is flattened with prefixes (user_id, user_name, etc.)")
	r.Line("  - Metadata is flattened with prefixes (metadata_version, etc.)")
	r.Line("  - Items are serialized as strings with delimiters (id:title:active)")

	r.Section("Key Differences")
	r.Line("1. Nested vs Flattened structure")
	r.Line("2. Object grouping vs prefix naming")
	r.Line("3. Structured arrays vs serialized strings")
	r.Line("4. Readability vs compactness trade-offs")
}

func formatKeys(keys []string) string {
	return "[" + strings.Join(keys, ", ") + "]"
}
