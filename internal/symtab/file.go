package symtab

import "github.com/vellum-lang/vellum/internal/ast"

// FileKind classifies an entry in the file table.
type FileKind int

const (
	// Normal is a live, editable source file.
	FileNormal FileKind = iota
	// Payload is a read-only bundled definition file supplied at startup
	// from the payload file list (opts.payloadFileNames), not from
	// opts.inputFileNames, whose files are entered as Normal.
	FilePayload
	// TombStone marks a file id whose file was removed; the id is never
	// reused, but the table stops treating it as live.
	FileTombStone
)

// File is one entry in the file table: a path, its source text, and a
// kind. Source is retained (not just a hash) so the formatter and
// Position() can render/derive from it on demand.
type File struct {
	ID     ast.FileID
	Path   string
	Source string
	Kind   FileKind
}

func (f *File) clone() *File {
	c := *f
	return &c
}
