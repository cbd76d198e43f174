package symtab

import (
	"strings"
	"sync"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diag"
)

// GlobalState is the symbol table plus file table shared by the namer,
// resolver and typechecker, and the backing store for both the loop's
// initialGS (grows-only, indexed across the whole session) and its finalGs
// (freshly cloned and re-resolved on every slow path). It also owns the
// raw error queue those passes push diagnostics into.
//
// Mutating methods are not safe for concurrent use from more than one
// goroutine at a time except where noted (the error queue, whose PushError
// and DrainErrors take their own lock).
type GlobalState struct {
	files    []*File
	pathToID map[string]ast.FileID

	symbols []*Symbol
	byID    map[ast.SymbolRef]*Symbol

	errMu sync.Mutex
	queue []diag.Diagnostic
}

// New constructs an empty GlobalState.
func New() *GlobalState {
	return &GlobalState{
		pathToID: make(map[string]ast.FileID),
		byID:     make(map[ast.SymbolRef]*Symbol),
	}
}

// EnterFile admits path into the file table, updating its source in place
// if it is already a live (non-tombstone) entry, or allocating a new
// FileID otherwise. Tombstoned ids are never reused for the same path — a
// file that comes back after deletion gets a fresh id.
func (g *GlobalState) EnterFile(path, source string, kind FileKind) ast.FileID {
	if id, ok := g.pathToID[path]; ok {
		f := g.files[id-1]
		if f.Kind != FileTombStone {
			f.Source = source
			f.Kind = kind
			return id
		}
	}
	id := ast.FileID(len(g.files) + 1)
	g.files = append(g.files, &File{ID: id, Path: path, Source: source, Kind: kind})
	g.pathToID[path] = id
	return id
}

// Tombstone marks id as removed. The id is retained in the table (other
// structures may still reference it) but File.Kind flips to FileTombStone.
func (g *GlobalState) Tombstone(id ast.FileID) {
	if f := g.fileByID(id); f != nil {
		f.Kind = FileTombStone
	}
}

// IsTombstone reports whether id's file has been removed.
func (g *GlobalState) IsTombstone(id ast.FileID) bool {
	f := g.fileByID(id)
	return f == nil || f.Kind == FileTombStone
}

func (g *GlobalState) fileByID(id ast.FileID) *File {
	if id <= 0 || int(id) > len(g.files) {
		return nil
	}
	return g.files[id-1]
}

// Path implements diag.FileTable.
func (g *GlobalState) Path(id ast.FileID) string {
	if f := g.fileByID(id); f != nil {
		return f.Path
	}
	return "<unknown>"
}

// Source implements diag.FileTable.
func (g *GlobalState) Source(id ast.FileID) string {
	if f := g.fileByID(id); f != nil {
		return f.Source
	}
	return ""
}

// Kind reports id's FileKind (FileNormal, FilePayload, or FileTombStone),
// or FileNormal for an id with no entry. Callers that render a location
// need this to tell a workspace file from a read-only payload one — it is
// the only way to reach a file's kind from outside the package, since
// fileByID stays private.
func (g *GlobalState) Kind(id ast.FileID) FileKind {
	if f := g.fileByID(id); f != nil {
		return f.Kind
	}
	return FileNormal
}

// Position implements diag.FileTable: it derives 1-based line/column from
// loc.Start by scanning the file's source, since Loc stores only a byte
// offset.
func (g *GlobalState) Position(loc ast.Loc) (line, col int) {
	src := g.Source(loc.File)
	line, col = 1, 1
	for i := 0; i < loc.Start && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// NormalFiles returns the ids of every currently live Normal file, in
// table order — used by reIndex(initial=false) to know what to reprocess.
func (g *GlobalState) NormalFiles() []ast.FileID {
	var out []ast.FileID
	for _, f := range g.files {
		if f.Kind == FileNormal {
			out = append(out, f.ID)
		}
	}
	return out
}

// EnterSymbol allocates a new SymbolRef for sym and stores it.
func (g *GlobalState) EnterSymbol(sym *Symbol) ast.SymbolRef {
	ref := ast.SymbolRef(len(g.symbols) + 1)
	g.symbols = append(g.symbols, sym)
	g.byID[ref] = sym
	return ref
}

// Symbol looks up a previously entered symbol by its handle.
func (g *GlobalState) Symbol(ref ast.SymbolRef) *Symbol {
	return g.byID[ref]
}

// AllSymbols returns every symbol currently in the table together with its
// handle, in entry order.
func (g *GlobalState) AllSymbols() []struct {
	Ref ast.SymbolRef
	Sym *Symbol
} {
	out := make([]struct {
		Ref ast.SymbolRef
		Sym *Symbol
	}, len(g.symbols))
	for i, s := range g.symbols {
		out[i] = struct {
			Ref ast.SymbolRef
			Sym *Symbol
		}{Ref: ast.SymbolRef(i + 1), Sym: s}
	}
	return out
}

// QualifiedName returns sym's name prefixed by its owner chain, e.g.
// "Foo::bar", used as a SymbolInformation's containerName source.
func (g *GlobalState) QualifiedName(ref ast.SymbolRef) string {
	sym := g.Symbol(ref)
	if sym == nil {
		return ""
	}
	var parts []string
	for sym != nil {
		parts = append([]string{sym.Name}, parts...)
		if sym.Owner == ast.NoSymbol {
			break
		}
		sym = g.Symbol(sym.Owner)
	}
	return strings.Join(parts, "::")
}

// PushError enqueues a diagnostic. Safe for concurrent use.
func (g *GlobalState) PushError(d diag.Diagnostic) {
	g.errMu.Lock()
	defer g.errMu.Unlock()
	g.queue = append(g.queue, d)
}

// DrainErrors removes and returns every currently queued diagnostic.
func (g *GlobalState) DrainErrors() []diag.Diagnostic {
	g.errMu.Lock()
	defer g.errMu.Unlock()
	drained := g.queue
	g.queue = nil
	return drained
}

// Clone returns a structurally independent copy of g: a fresh finalGs
// built from this initialGS. Symbol and File values are plain data (no
// owned AST edges), so cloning is a shallow struct copy per entry rather
// than anything routed through ast.DeepCopy.
func (g *GlobalState) Clone() *GlobalState {
	clone := New()
	clone.files = make([]*File, len(g.files))
	for i, f := range g.files {
		clone.files[i] = f.clone()
	}
	for path, id := range g.pathToID {
		clone.pathToID[path] = id
	}
	clone.symbols = make([]*Symbol, len(g.symbols))
	for i, s := range g.symbols {
		clone.symbols[i] = s.clone()
		clone.byID[ast.SymbolRef(i+1)] = clone.symbols[i]
	}
	return clone
}
