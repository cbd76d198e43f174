package lsp

import (
	"context"
	"fmt"
	"os"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diag"
	"github.com/vellum-lang/vellum/internal/pipeline"
	"github.com/vellum-lang/vellum/internal/symtab"
)

// FileChangeType mirrors LSP's FileChangeType enum used by
// workspace/didChangeWatchedFiles.
type FileChangeType int

const (
	FileChangeCreated FileChangeType = 1
	FileChangeChanged FileChangeType = 2
	FileChangeDeleted FileChangeType = 3
)

// FileChange is one entry of a didChangeWatchedFiles notification, already
// resolved to a filesystem path and (for create/change) its new content.
type FileChange struct {
	Path    string
	Content string
	Type    FileChangeType
}

// EditHandler owns the two symbol-table snapshots and the last-known
// indexed tree per file, and runs the re-check that keeps finalGs current
// after an edit. initialGS only ever grows; finalGs is thrown away and
// rebuilt from scratch on every re-check.
type EditHandler struct {
	pipeline  pipeline.Pipeline
	initialGS *symtab.GlobalState
	finalGs   *symtab.GlobalState

	// indexed is initialGS's per-file tree cache, kept across re-checks so
	// unchanged files don't need to be re-scanned from source. A slow path
	// still deep-copies every entry before handing it to finalGs, since
	// resolve/typecheck may rewrite trees in place and initialGS's copy
	// must stay pristine for the next re-check.
	indexed map[ast.FileID]ast.Expression

	// InputFileNames is opts.inputFileNames: the external collaborator's
	// list of paths making up the workspace, consulted only by
	// ReIndex(initial=true).
	InputFileNames []string

	// PayloadFileNames is opts.payloadFileNames: read-only bundled
	// definitions (e.g. *.rbi stubs) entered as symtab.FilePayload rather
	// than symtab.FileNormal. Consulted only by ReIndex(initial=true) —
	// payload files never change out from under a running session, so
	// there is nothing for a later non-initial re-index to refresh.
	PayloadFileNames []string

	// ReadFile loads a workspace file's content for the initial index.
	// Defaults to os.ReadFile; tests substitute an in-memory stub.
	ReadFile func(path string) (string, error)

	// Publish is called once per touched file after a re-check completes,
	// with the file's full accumulated diagnostic set (possibly empty).
	// Wired to the server's transport in normal operation; tests supply a
	// recording stub.
	Publish func(fileID ast.FileID, diags []diag.Diagnostic)

	errors *ErrorAccumulator
}

// NewEditHandler constructs a handler with a fresh initialGS and no files
// indexed yet.
func NewEditHandler(p pipeline.Pipeline) *EditHandler {
	gs := symtab.New()
	return &EditHandler{
		pipeline:  p,
		initialGS: gs,
		finalGs:   gs.Clone(),
		indexed:   make(map[ast.FileID]ast.Expression),
		ReadFile: func(path string) (string, error) {
			data, err := os.ReadFile(path)
			return string(data), err
		},
		errors: NewErrorAccumulator(),
	}
}

// FinalGS returns the current finalGs snapshot, used by documentSymbol.
func (h *EditHandler) FinalGS() *symtab.GlobalState { return h.finalGs }

// HandleDidChange re-checks after a single file's content changes.
//
// TODO: the fast path should reuse indexed[fileID] for every file besides
// the one that changed instead of calling straight into the slow path;
// today every edit re-typechecks the whole workspace.
func (h *EditHandler) HandleDidChange(ctx context.Context, path, content string) error {
	return h.recheck(ctx, []FileChange{{Path: path, Content: content, Type: FileChangeChanged}})
}

// HandleDidChangeWatchedFiles re-checks after a batch of filesystem events.
func (h *EditHandler) HandleDidChangeWatchedFiles(ctx context.Context, changes []FileChange) error {
	return h.recheck(ctx, changes)
}

// HandleInitialized implements the loop's Initialized notification: perform
// the first full index over InputFileNames, then run the slow path with an
// empty changed-file set.
func (h *EditHandler) HandleInitialized(ctx context.Context) error {
	if err := h.ReIndex(ctx, true); err != nil {
		return err
	}
	return h.recheck(ctx, nil)
}

// ReIndex implements reIndex(initial). With initial=true, indexed is
// cleared and rebuilt from InputFileNames, read fresh off disk via
// ReadFile. With initial=false, every Normal file currently registered in
// initialGS is re-scanned from its already-stored source. Either way the
// resulting trees replace their entries in indexed; callers still need a
// slow path afterward to bring finalGs and diagnostics up to date.
func (h *EditHandler) ReIndex(ctx context.Context, initial bool) error {
	var ids []ast.FileID
	if initial {
		h.indexed = make(map[ast.FileID]ast.Expression)
		for _, path := range h.InputFileNames {
			content, err := h.ReadFile(path)
			if err != nil {
				return fmt.Errorf("lsp: read %s: %w", path, err)
			}
			ids = append(ids, h.initialGS.EnterFile(path, content, symtab.FileNormal))
		}
		for _, path := range h.PayloadFileNames {
			content, err := h.ReadFile(path)
			if err != nil {
				return fmt.Errorf("lsp: read payload %s: %w", path, err)
			}
			ids = append(ids, h.initialGS.EnterFile(path, content, symtab.FilePayload))
		}
	} else {
		ids = h.initialGS.NormalFiles()
	}
	if len(ids) == 0 {
		return nil
	}

	trees, err := h.pipeline.Index(ctx, h.initialGS, ids)
	if err != nil {
		return fmt.Errorf("lsp: index failed: %w", err)
	}
	for id, tree := range trees {
		h.indexed[id] = tree
	}
	return nil
}

// recheck is the slow path: invalidate every stored diagnostic, apply the
// incoming file changes to initialGS, re-index just those files, clone
// initialGS into a fresh finalGs, deep-copy every indexed tree into it, run
// resolve and typecheck against the clone, then publish whatever changed.
func (h *EditHandler) recheck(ctx context.Context, changes []FileChange) error {
	h.errors.InvalidateAllErrors()

	var toReindex []ast.FileID
	for _, ch := range changes {
		switch ch.Type {
		case FileChangeDeleted:
			if id, ok := h.lookupFile(ch.Path); ok {
				h.initialGS.Tombstone(id)
				delete(h.indexed, id)
				h.errors.Tombstone(id)
			}
		default:
			id := h.initialGS.EnterFile(ch.Path, ch.Content, symtab.FileNormal)
			toReindex = append(toReindex, id)
		}
	}

	if len(toReindex) > 0 {
		freshTrees, err := h.pipeline.Index(ctx, h.initialGS, toReindex)
		if err != nil {
			return fmt.Errorf("lsp: index failed: %w", err)
		}
		for id, tree := range freshTrees {
			h.indexed[id] = tree
		}
	}

	h.finalGs = h.initialGS.Clone()

	trees := make(pipeline.Trees, len(h.indexed))
	for id, tree := range h.indexed {
		// Open Question decision #2: a nil tree in indexed (a file that
		// failed to index) never reaches DeepCopy at all, and a tree whose
		// copy itself fails (DeepCopy returns nil) is likewise left out of
		// the working vector entirely rather than entered as a nil value —
		// that file's tree is skipped for this pass, not reindexed.
		if tree == nil {
			continue
		}
		if copied := ast.DeepCopy(tree); copied != nil {
			trees[id] = copied
		}
	}

	resolved, err := h.pipeline.Resolve(ctx, h.finalGs, trees)
	if err != nil {
		return fmt.Errorf("lsp: resolve failed: %w", err)
	}
	if err := h.pipeline.Typecheck(ctx, h.finalGs, resolved); err != nil {
		return fmt.Errorf("lsp: typecheck failed: %w", err)
	}

	// The error queue is logically owned by initialGS (it is the one
	// long-lived GlobalState across re-checks), but Resolve/Typecheck ran
	// against finalGs this pass and PushError writes to whichever
	// GlobalState the caller was handed — draining finalGs is where this
	// pass's findings actually landed.
	for _, d := range h.finalGs.DrainErrors() {
		h.errors.Push(d)
	}

	for _, fd := range h.errors.DrainUpdated() {
		if h.Publish != nil {
			h.Publish(fd.FileID, fd.Diagnostics)
		}
	}
	return nil
}

func (h *EditHandler) lookupFile(path string) (ast.FileID, bool) {
	for _, id := range h.initialGS.NormalFiles() {
		if h.initialGS.Path(id) == path {
			return id, true
		}
	}
	return 0, false
}

// DocumentSymbols returns every symbol currently known for fileID, encoded
// as LSP SymbolInformation, for a textDocument/documentSymbol reply.
func (h *EditHandler) DocumentSymbols(rootURI string, fileID ast.FileID) []SymbolInformation {
	var out []SymbolInformation
	for _, entry := range h.finalGs.AllSymbols() {
		if entry.Sym.DefLoc.File != fileID {
			continue
		}
		if info, ok := EncodeSymbolInformation(h.finalGs, rootURI, entry.Ref, entry.Sym); ok {
			out = append(out, info)
		}
	}
	return out
}
