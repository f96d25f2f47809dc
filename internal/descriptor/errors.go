package descriptor

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the three load failure classes. Every error returned
// by Load matches exactly one of them with errors.Is.
var (
	// ErrRead indicates the descriptor file could not be read as text.
	ErrRead = errors.New("descriptor unreadable")

	// ErrParse indicates the descriptor text is not valid TOML.
	ErrParse = errors.New("descriptor syntax error")

	// ErrValidation indicates the descriptor parsed but breaks the schema.
	ErrValidation = errors.New("invalid descriptor")
)

// ReadError reports a descriptor that could not be read: missing file,
// permissions, or bytes that are not valid UTF-8.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRead) match.
func (e *ReadError) Is(target error) bool { return target == ErrRead }

// ParseError reports malformed TOML. Line and Column are 1-based; both are
// zero when the parser gave no position.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parsing %s: line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

// Is lets errors.Is(err, ErrParse) match.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Problem is a single schema violation. Field is the dotted path of the
// offending value; Message is self-contained and already names the field.
type Problem struct {
	Field   string
	Message string
}

func (p Problem) String() string { return p.Message }

// ValidationError collects every schema violation found in one descriptor.
type ValidationError struct {
	Path     string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.String()
	}
	return fmt.Sprintf("validating %s: %s", e.Path, strings.Join(msgs, "; "))
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// HasField reports whether any problem is attached to field.
func (e *ValidationError) HasField(field string) bool {
	for _, p := range e.Problems {
		if p.Field == field {
			return true
		}
	}
	return false
}
