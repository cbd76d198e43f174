package pipeline

import (
	"context"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diag"
	"github.com/vellum-lang/vellum/internal/symtab"
)

var (
	classLine = regexp.MustCompile(`^\s*(class|module)\s+([A-Za-z_][A-Za-z0-9_:]*)`)
	defLine   = regexp.MustCompile(`^\s*def\s+(self\.)?([A-Za-z_][A-Za-z0-9_?!]*)`)
	endLine   = regexp.MustCompile(`^\s*end\b`)
)

// frame is a class/module or method currently open while scanning a file
// top to bottom; it is not part of the ast package, just scratch state
// used to assemble ClassDef/MethodDef nodes once their "end" is seen.
type frame struct {
	isMethod bool
	name     string
	isSelf   bool
	startOff int
	symbol   ast.SymbolRef
	kind     ast.ClassKind
	children []ast.Expression
}

// Default is the concrete Indexer/Resolver/Typechecker used when no other
// collaborator is wired in. It does line-oriented lexical scanning, not
// real parsing: nested class/module/def blocks are recognized by keyword
// and closed by the next "end", with no attempt at expression-level
// syntax. This is sufficient to populate finalGs with symbols for
// documentSymbol and to synthesize diagnostics that exercise the error
// accumulator, which is all the covered core requires of it.
type Default struct {
	// Workers bounds the errgroup's concurrent Index calls. Zero means
	// GOMAXPROCS.
	Workers int

	mu sync.Mutex
}

// NewDefault constructs a Default pipeline.
func NewDefault() *Default { return &Default{} }

func (d *Default) workers() int {
	if d.Workers > 0 {
		return d.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Index scans each file concurrently (bounded by Workers) and enters any
// classes/modules/methods it finds into gs.
func (d *Default) Index(ctx context.Context, gs *symtab.GlobalState, files []ast.FileID) (Trees, error) {
	trees := make(Trees, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers())

	for _, fileID := range files {
		fileID := fileID
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			tree := d.scanFile(gs, fileID)
			mu.Lock()
			trees[fileID] = tree
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trees, nil
}

func (d *Default) scanFile(gs *symtab.GlobalState, fileID ast.FileID) ast.Expression {
	src := gs.Source(fileID)
	lines := strings.Split(src, "\n")

	var top []ast.Expression
	var stack []*frame
	offset := 0

	// gs.EnterSymbol is not internally synchronized; Index may run this
	// method from several goroutines at once, one per file, so guard entry
	// with our own mutex rather than adding locking to GlobalState itself.
	enter := func(sym *symtab.Symbol) ast.SymbolRef {
		d.mu.Lock()
		defer d.mu.Unlock()
		return gs.EnterSymbol(sym)
	}

	closeFrame := func(f *frame, endOff int) ast.Expression {
		loc := ast.Loc{File: fileID, Start: f.startOff, End: endOff}
		if f.isMethod {
			return ast.NewMethodDef(loc, f.symbol, f.name, nil, ast.NewEmptyTree(loc), f.isSelf)
		}
		return ast.NewClassDef(loc, f.symbol, ast.NewIdent(loc, f.symbol), nil, f.children, f.kind)
	}

	appendChild := func(child ast.Expression) {
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, child)
		} else {
			top = append(top, child)
		}
	}

	var owner ast.SymbolRef
	for _, line := range lines {
		switch {
		case classLine.MatchString(line):
			m := classLine.FindStringSubmatch(line)
			kind := ast.ClassKindClass
			if m[1] == "module" {
				kind = ast.ClassKindModule
			}
			sym := enter(&symtab.Symbol{
				Name:          m[2],
				Owner:         owner,
				DefLoc:        ast.Loc{File: fileID, Start: offset},
				IsClass:       true,
				IsClassClass:  kind == ast.ClassKindClass,
				IsClassModule: kind == ast.ClassKindModule,
			})
			owner = sym
			stack = append(stack, &frame{name: m[2], startOff: offset, symbol: sym, kind: kind})

		case defLine.MatchString(line):
			m := defLine.FindStringSubmatch(line)
			sym := enter(&symtab.Symbol{
				Name:     m[2],
				Owner:    owner,
				DefLoc:   ast.Loc{File: fileID, Start: offset},
				IsMethod: true,
			})
			stack = append(stack, &frame{isMethod: true, name: m[2], isSelf: m[1] != "", startOff: offset, symbol: sym})

		case endLine.MatchString(line):
			if len(stack) == 0 {
				break
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			node := closeFrame(f, offset+len(line))
			appendChild(node)
			if !f.isMethod {
				if len(stack) > 0 {
					owner = stack[len(stack)-1].symbol
				} else {
					owner = ast.NoSymbol
				}
			}
		}
		offset += len(line) + 1
	}

	// Unterminated blocks at EOF: close them against the end of the file
	// rather than dropping the partially-scanned symbol.
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		appendChild(closeFrame(f, len(src)))
	}

	loc := ast.Loc{File: fileID, Start: 0, End: len(src)}
	return ast.NewInsSeq(loc, top, ast.NewEmptyTree(loc))
}

// Resolve is a pass-through: the default scanner already resolves symbols
// as it indexes, so there is nothing left for a separate resolution pass
// to rewrite. It exists to satisfy the Pipeline interface and as the seam
// a real resolver would occupy.
func (d *Default) Resolve(ctx context.Context, gs *symtab.GlobalState, trees Trees) (Trees, error) {
	return trees, nil
}

// Typecheck walks each tree looking for method names repeated within the
// same class body and pushes a redefinition diagnostic for every repeat
// after the first — deliberately one of the classes the error accumulator
// silences, so a slow path always has at least one candidate to filter —
// then checks the whole symbol table for a name declared as a class
// somewhere and a module somewhere else, which is not silenced and so
// reaches a client end to end.
func (d *Default) Typecheck(ctx context.Context, gs *symtab.GlobalState, trees Trees) error {
	for _, tree := range trees {
		if tree == nil {
			continue
		}
		ast.Walk(tree, func(n ast.Expression) bool {
			cd, ok := ast.As[*ast.ClassDef](n)
			if !ok {
				return true
			}
			seen := make(map[string]ast.Loc)
			for _, stmt := range cd.Rhs {
				method, ok := ast.As[*ast.MethodDef](stmt)
				if !ok {
					continue
				}
				if first, dup := seen[method.Name]; dup {
					finding := diag.New(diag.StageNamer, diag.CodeRedefinitionOfMethod, method.Loc(),
						"method %q redefined", method.Name).
						WithRelated(first, "previous definition was here")
					gs.PushError(finding)
				} else {
					seen[method.Name] = method.Loc()
				}
			}
			return true
		})
	}
	checkClassKindConflicts(gs)
	return nil
}

// checkClassKindConflicts flags a name that was declared `class` under one
// owner and `module` under the same owner elsewhere in the workspace — a
// real Ruby TypeError ("previously defined as a module"), and distinct
// from the ordinary re-open case CodeRedefinitionOfParents covers.
func checkClassKindConflicts(gs *symtab.GlobalState) {
	type key struct {
		owner ast.SymbolRef
		name  string
	}
	firstClass := make(map[key]*symtab.Symbol)
	firstModule := make(map[key]*symtab.Symbol)
	for _, entry := range gs.AllSymbols() {
		sym := entry.Sym
		if !sym.IsClass {
			continue
		}
		k := key{owner: sym.Owner, name: sym.Name}
		switch {
		case sym.IsClassClass:
			if _, ok := firstClass[k]; !ok {
				firstClass[k] = sym
			}
		case sym.IsClassModule:
			if _, ok := firstModule[k]; !ok {
				firstModule[k] = sym
			}
		}
	}
	for k, moduleSym := range firstModule {
		classSym, ok := firstClass[k]
		if !ok {
			continue
		}
		gs.PushError(diag.New(diag.StageTypecheck, diag.CodeRedefinedAsDifferentKind, classSym.DefLoc,
			"%q redefined as a different kind of term", k.name).
			WithRelated(moduleSym.DefLoc, "previous definition was here"))
	}
}
