package lsp

import (
	"sort"
	"sync"

	"github.com/vellum-lang/vellum/internal/ast"
	"github.com/vellum-lang/vellum/internal/diag"
)

// silencedClasses lists the diagnostic codes never surfaced to the client.
// All three come from re-checks racing an in-flight edit: a symbol looks
// redefined only because the previous tree hasn't been replaced yet. There
// is no extension API for adding to this set; it is a fixed, hardcoded
// property of the covered core.
var silencedClasses = map[diag.Code]bool{
	diag.CodeRedefinitionOfMethod:            true,
	diag.CodeDuplicateVariableDeclaration:    true,
	diag.CodeRedefinitionOfParents:           true,
}

// FileDiagnostics pairs a file with its current accumulated diagnostic
// list, as handed back by DrainUpdated in publish order.
type FileDiagnostics struct {
	FileID      ast.FileID
	Diagnostics []diag.Diagnostic
}

// ErrorAccumulator holds the diagnostics known for every live file and
// tracks, as an ordered sequence, which files have changed since the last
// publish, so a slow path re-check only needs to push new findings and let
// DrainUpdated report what to send in what order.
type ErrorAccumulator struct {
	mu            sync.Mutex
	errorsForFile map[ast.FileID][]diag.Diagnostic

	// updatedFiles is updatedErrors: an ordered sequence of file ids
	// awaiting publish, de-duplicated only against the trailing entry
	// (cheap dedup, not a set) — the same file id can appear more than
	// once if something else was marked dirty in between.
	updatedFiles []ast.FileID
}

// NewErrorAccumulator constructs an empty accumulator.
func NewErrorAccumulator() *ErrorAccumulator {
	return &ErrorAccumulator{
		errorsForFile: make(map[ast.FileID][]diag.Diagnostic),
	}
}

// markUpdated appends fileID to updatedFiles unless it already equals the
// most recent entry.
func (e *ErrorAccumulator) markUpdated(fileID ast.FileID) {
	if n := len(e.updatedFiles); n > 0 && e.updatedFiles[n-1] == fileID {
		return
	}
	e.updatedFiles = append(e.updatedFiles, fileID)
}

// Push records d against its file and marks the file dirty, unless its code
// is silenced: a silenced diagnostic is dropped and does not mark its file.
// A file that InvalidateAllErrors emptied is already marked there, so
// DrainUpdated still reports it (with an empty list) when nothing new is
// pushed for it.
func (e *ErrorAccumulator) Push(d diag.Diagnostic) {
	if silencedClasses[d.Code] {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errorsForFile[d.Loc.File] = append(e.errorsForFile[d.Loc.File], d)
	e.markUpdated(d.Loc.File)
}

// InvalidateAllErrors drops every stored diagnostic and marks every file
// that had any as dirty, so the next DrainUpdated reports an empty
// diagnostic list for files a re-check ends up not reporting anything on. This runs at
// the start of the slow path, before re-typechecking.
func (e *ErrorAccumulator) InvalidateAllErrors() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for fileID := range e.errorsForFile {
		e.markUpdated(fileID)
	}
	e.errorsForFile = make(map[ast.FileID][]diag.Diagnostic)
}

// Tombstone removes a deleted file's errors outright and drops every one of
// its occurrences from updatedFiles, since a tombstoned file is never
// published again.
func (e *ErrorAccumulator) Tombstone(fileID ast.FileID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.errorsForFile, fileID)

	kept := e.updatedFiles[:0]
	for _, id := range e.updatedFiles {
		if id != fileID {
			kept = append(kept, id)
		}
	}
	e.updatedFiles = kept
}

// DrainUpdated returns, in publish order, every file touched since the
// last DrainUpdated call paired with its current (possibly empty)
// diagnostic list, and clears updatedFiles. Diagnostics within a file are
// sorted by start offset so a single file's own publish is stable.
func (e *ErrorAccumulator) DrainUpdated() []FileDiagnostics {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]FileDiagnostics, 0, len(e.updatedFiles))
	for _, fileID := range e.updatedFiles {
		diags := append([]diag.Diagnostic(nil), e.errorsForFile[fileID]...)
		sort.SliceStable(diags, func(i, j int) bool { return diags[i].Loc.Start < diags[j].Loc.Start })
		out = append(out, FileDiagnostics{FileID: fileID, Diagnostics: diags})
	}
	e.updatedFiles = nil
	return out
}
