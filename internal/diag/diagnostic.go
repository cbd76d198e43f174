// Package diag defines the diagnostic model shared by the namer, resolver
// and typechecker passes and the LSP error accumulator that drains them.
package diag

import (
	"fmt"

	"github.com/vellum-lang/vellum/internal/ast"
)

// Stage identifies which pass produced the diagnostic.
type Stage string

const (
	StageNamer     Stage = "namer"
	StageResolver  Stage = "resolver"
	StageTypecheck Stage = "typecheck"
	StageDSL       Stage = "dsl"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic's error class. The three
// namer/resolver classes here are the ones the accumulator's silence set
// (internal/lsp/errors.go) references by name; the rest round out the
// taxonomy a namer/resolver/typechecker would realistically raise.
type Code string

const (
	CodeRedefinitionOfMethod         Code = "NAMER_REDEFINITION_OF_METHOD"
	CodeDuplicateVariableDeclaration Code = "RESOLVER_DUPLICATE_VARIABLE_DECLARATION"
	CodeRedefinitionOfParents        Code = "RESOLVER_REDEFINITION_OF_PARENTS"
	CodeUndeclaredVariable           Code = "RESOLVER_UNDECLARED_VARIABLE"
	CodeDynamicConstantAssignment    Code = "RESOLVER_DYNAMIC_CONSTANT_ASSIGNMENT"
	CodeMethodArgumentMismatch       Code = "TYPECHECK_METHOD_ARGUMENT_MISMATCH"
	CodeUnknownMethod                Code = "TYPECHECK_UNKNOWN_METHOD"
	CodeRedefinedAsDifferentKind     Code = "TYPECHECK_REDEFINED_AS_DIFFERENT_KIND"
	CodeUnanalyzableDSLCall          Code = "DSL_UNANALYZABLE_CALL"
)

// classNumbers assigns each Code the numeric error class id a client
// receives in a diagnostic's wire-level `code` field (internal/lsp's
// EncodeDiagnostic). Namer classes live in the 5000s, resolver in the
// 5010s, typecheck in the 7000s, and the DSL patcher in the 8000s — the
// same stage-grouped numbering the string form's prefix already implies.
var classNumbers = map[Code]int{
	CodeRedefinitionOfMethod:         5006,
	CodeDuplicateVariableDeclaration: 5011,
	CodeRedefinitionOfParents:        5012,
	CodeUndeclaredVariable:           5013,
	CodeDynamicConstantAssignment:    5014,
	CodeMethodArgumentMismatch:       7001,
	CodeUnknownMethod:                7002,
	CodeRedefinedAsDifferentKind:     7003,
	CodeUnanalyzableDSLCall:          8001,
}

// Number returns c's numeric error class code, or 0 if c is not one of
// the classes registered above.
func (c Code) Number() int {
	return classNumbers[c]
}

// RelatedLocation is a secondary location attached to a Diagnostic, e.g.
// "previous definition was here".
type RelatedLocation struct {
	Loc     ast.Loc
	Message string
}

// Diagnostic is a single error, warning or note surfaced to a client.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Loc      ast.Loc
	Related  []RelatedLocation
}

// New constructs an error-severity Diagnostic, the common case. message may
// be a format string with args, mirroring the pre-formatted human-readable
// strings the namer/resolver/typechecker classes build at raise time.
func New(stage Stage, code Code, loc ast.Loc, message string, args ...any) Diagnostic {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	return Diagnostic{Stage: stage, Severity: SeverityError, Code: code, Message: message, Loc: loc}
}

// WithSeverity returns a copy of d with Severity overridden.
func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}

// WithRelated returns a copy of d with a related location appended.
func (d Diagnostic) WithRelated(loc ast.Loc, message string) Diagnostic {
	related := make([]RelatedLocation, len(d.Related), len(d.Related)+1)
	copy(related, d.Related)
	d.Related = append(related, RelatedLocation{Loc: loc, Message: message})
	return d
}
