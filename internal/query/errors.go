package query

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument matches every *InvalidArgumentError.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NotFoundError reports a lookup miss. Available lists the valid names the
// caller can retry with, best candidates first.
type NotFoundError struct {
	Kind      string
	Name      string
	Project   string
	Available []string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q not found", e.Kind, e.Name)
	if e.Project != "" {
		fmt.Fprintf(&b, " in project %q", e.Project)
	}
	if len(e.Available) == 0 {
		fmt.Fprintf(&b, "; no %ss are defined", e.Kind)
		return b.String()
	}
	fmt.Fprintf(&b, "; available: %s", strings.Join(e.Available, ", "))
	return b.String()
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidArgumentError reports a missing or malformed argument.
type InvalidArgumentError struct {
	Arg     string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Arg, e.Message)
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

func invalid(arg, format string, args ...any) error {
	return &InvalidArgumentError{Arg: arg, Message: fmt.Sprintf(format, args...)}
}
