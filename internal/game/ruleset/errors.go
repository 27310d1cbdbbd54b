package ruleset

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by StructuralError. Match them with errors.Is.
// ErrSyntax wraps tokenizer failures reported by the YAML parser.
var (
	ErrMissingField  = errors.New("ruleset: missing field")
	ErrUnknownField  = errors.New("ruleset: unknown field")
	ErrDuplicateKey  = errors.New("ruleset: duplicate key")
	ErrWrongKind     = errors.New("ruleset: wrong node kind")
	ErrUnknownMember = errors.New("ruleset: unknown enumeration member")
	ErrOutOfRange    = errors.New("ruleset: integer out of range")
	ErrSyntax        = errors.New("ruleset: malformed source")
)

// UnrecognizedIdentifierError reports a numeric code with no symbolic tag in
// its identifier family.
type UnrecognizedIdentifierError struct {
	// Kind is the identifier family: "class" or "weapon category".
	Kind string
	// Code is the rejected code, widened so both families fit.
	Code uint32
}

func (e *UnrecognizedIdentifierError) Error() string {
	return fmt.Sprintf("ruleset: unrecognized %s code %d", e.Kind, e.Code)
}

// StructuralError reports input whose shape or value range does not match the
// job schema.
//
// Path is a dotted field path such as "weaponry.canonical.ids[1]"; for job
// collections it starts with the job name. Line and Column are 1-based and
// zero when the position is unknown.
type StructuralError struct {
	Path   string
	Line   int
	Column int
	Reason string
	Err    error
}

func (e *StructuralError) Error() string {
	where := e.Path
	if where == "" {
		where = "<root>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("ruleset: %s (line %d, column %d): %s", where, e.Line, e.Column, e.Reason)
	}
	return fmt.Sprintf("ruleset: %s: %s", where, e.Reason)
}

// Unwrap returns the sentinel or *UnrecognizedIdentifierError cause.
func (e *StructuralError) Unwrap() error {
	return e.Err
}
