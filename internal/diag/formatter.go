package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vellum-lang/vellum/internal/ast"
)

// FileTable is the narrow slice of internal/symtab.GlobalState the
// formatter needs: a path plus line/column derived from a byte-offset Loc.
// Kept as an interface here rather than importing symtab directly, since
// symtab in turn depends on ast and diag sits below both.
type FileTable interface {
	Path(f ast.FileID) string
	Source(f ast.FileID) string
	Position(loc ast.Loc) (line, col int)
}

// Formatter renders diagnostics with source snippets, the way a one-shot
// CLI run reports errors (the LSP path never uses this — it encodes
// Diagnostics as JSON instead, see internal/lsp/encoders.go).
type Formatter struct {
	out io.Writer
}

// NewFormatter constructs a Formatter writing to out.
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

// Format prints d, resolving its Loc (and any related locations) through
// files for line/column and source text.
func (f *Formatter) Format(d Diagnostic, files FileTable) {
	f.printHeader(d)

	path := files.Path(d.Loc.File)
	line, col := files.Position(d.Loc)
	fmt.Fprintf(f.out, "  --> %s:%d:%d\n", path, line, col)

	if src := files.Source(d.Loc.File); src != "" {
		f.printSnippet(src, line)
	}

	for _, rel := range d.Related {
		relLine, relCol := files.Position(rel.Loc)
		fmt.Fprintf(f.out, "  = note: %s\n", rel.Message)
		fmt.Fprintf(f.out, "          at %s:%d:%d\n", files.Path(rel.Loc.File), relLine, relCol)
	}
	fmt.Fprintln(f.out)
}

// FormatAll formats every diagnostic in files' natural order, then a
// one-line summary count.
func (f *Formatter) FormatAll(diags []Diagnostic, files FileTable) {
	sorted := make([]Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Loc.File < sorted[j].Loc.File
	})
	for _, d := range sorted {
		f.Format(d, files)
	}
	fmt.Fprintf(f.out, "%d error(s)\n", len(diags))
}

func (f *Formatter) printHeader(d Diagnostic) {
	sev := string(d.Severity)
	if sev == "" {
		sev = "error"
	}
	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", sev, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", sev, d.Message)
	}
}

func (f *Formatter) printSnippet(src string, line int) {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return
	}
	fmt.Fprintf(f.out, "   |\n")
	fmt.Fprintf(f.out, "%3d| %s\n", line, lines[line-1])
	fmt.Fprintf(f.out, "   |\n")
}
