package lsp

import (
	"fmt"
	"strings"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diag"
	"github.com/vellum-lang/vellum/internal/symtab"
)

// Position is an LSP position: zero-based line and character.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is an LSP range: a half-open [Start, End) pair of positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location is an LSP location: a URI plus the range within it.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// DiagnosticRelatedInformation mirrors LSP's DiagnosticRelatedInformation.
type DiagnosticRelatedInformation struct {
	Location Location `json:"location"`
	Message  string   `json:"message"`
}

// Diagnostic is the wire shape of a single LSP diagnostic.
type Diagnostic struct {
	Range              Range                          `json:"range"`
	Severity           int                             `json:"severity"`
	Code               int                             `json:"code,omitempty"`
	Source             string                          `json:"source"`
	Message            string                          `json:"message"`
	RelatedInformation []DiagnosticRelatedInformation `json:"relatedInformation,omitempty"`
}

// PublishDiagnosticsParams mirrors LSP's PublishDiagnosticsParams.
type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// SymbolInformation mirrors LSP's SymbolInformation.
type SymbolInformation struct {
	Name          string   `json:"name"`
	Kind          int      `json:"kind"`
	Location      Location `json:"location"`
	ContainerName string   `json:"containerName,omitempty"`
}

// severityCode maps an internal Severity to the LSP numeric scale
// (1=Error, 2=Warning, 3=Information, 4=Hint).
func severityCode(sev diag.Severity) int {
	switch sev {
	case diag.SeverityWarning:
		return 2
	case diag.SeverityNote:
		return 4
	default:
		return 1
	}
}

// topLevelURI renders fileID the way a notification-level `uri` field
// does (textDocument/publishDiagnostics's own URI, not a location inside
// one): a workspace file as `<rootURI>/<path>`, a payload file as its bare
// path with no line suffix, since there is no single line to anchor a
// whole-document notification to.
func topLevelURI(files *symtab.GlobalState, rootURI string, fileID ast.FileID, kind symtab.FileKind) string {
	path := files.Path(fileID)
	if kind == symtab.FilePayload {
		return path
	}
	return strings.TrimRight(rootURI, "/") + "/" + strings.TrimLeft(path, "/")
}

// fileURI renders a workspace file as a `<rootURI>/<path>` location and a
// payload (bundled, non-workspace) file as a `<path>#L<line>` pseudo-URI,
// matching how the covered core distinguishes real edit targets from
// read-only bundled definitions in relatedInformation.
func fileURI(files *symtab.GlobalState, rootURI string, fileID ast.FileID, kind symtab.FileKind, line int) string {
	if kind == symtab.FilePayload {
		return fmt.Sprintf("%s#L%d", files.Path(fileID), line)
	}
	return topLevelURI(files, rootURI, fileID, kind)
}

// EncodeLocation converts loc into an LSP Location, deriving its range from
// gs and rendering its URI relative to rootURI.
func EncodeLocation(gs *symtab.GlobalState, rootURI string, loc ast.Loc, kind symtab.FileKind) Location {
	startLine, startCol := gs.Position(ast.Loc{File: loc.File, Start: loc.Start})
	endLine, endCol := gs.Position(ast.Loc{File: loc.File, Start: loc.End})
	return Location{
		URI: fileURI(gs, rootURI, loc.File, kind, startLine),
		Range: Range{
			Start: Position{Line: startLine - 1, Character: startCol - 1},
			End:   Position{Line: endLine - 1, Character: endCol - 1},
		},
	}
}

// EncodeDiagnostic converts an internal diagnostic into its wire shape.
// A related location is the one place payload (bundled, read-only) files
// routinely turn up — "previous definition was here" pointing at a `.rbi`
// stub is the common case — so each location's kind is looked up from gs
// rather than assumed to be a workspace file.
func EncodeDiagnostic(gs *symtab.GlobalState, rootURI string, d diag.Diagnostic) Diagnostic {
	out := Diagnostic{
		Range:    EncodeLocation(gs, rootURI, d.Loc, gs.Kind(d.Loc.File)).Range,
		Severity: severityCode(d.Severity),
		Code:     d.Code.Number(),
		Source:   "vellum",
		Message:  d.Message,
	}
	for _, rel := range d.Related {
		out.RelatedInformation = append(out.RelatedInformation, DiagnosticRelatedInformation{
			Location: EncodeLocation(gs, rootURI, rel.Loc, gs.Kind(rel.Loc.File)),
			Message:  rel.Message,
		})
	}
	return out
}

// EncodeSymbolInformation converts a symbol table entry into a
// SymbolInformation, or reports ok=false if the symbol has no LSP kind
// (SymbolKindFor found no matching clause).
func EncodeSymbolInformation(gs *symtab.GlobalState, rootURI string, ref ast.SymbolRef, sym *symtab.Symbol) (SymbolInformation, bool) {
	kind, ok := symtab.SymbolKindFor(sym)
	if !ok {
		return SymbolInformation{}, false
	}
	container := ""
	if sym.Owner != ast.NoSymbol {
		container = gs.QualifiedName(sym.Owner)
	}
	return SymbolInformation{
		Name:          sym.Name,
		Kind:          int(kind),
		Location:      EncodeLocation(gs, rootURI, sym.DefLoc, gs.Kind(sym.DefLoc.File)),
		ContainerName: container,
	}, true
}
