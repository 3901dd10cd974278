package attr

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/domattr/pkg/dom"
)

// Sentinel errors for use with errors.Is.
var (
	ErrInvalidTarget   = errors.New("invalid construction target")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Argument roles reported by InvalidArgumentError.
const (
	RoleClassName     = "Class name"
	RolePropertyName  = "Property name"
	RolePropertyValue = "Property value"
)

// InvalidTargetError is returned when an editor is constructed over a node
// that is not an element.
type InvalidTargetError struct {
	Kind dom.NodeKind
}

func (e *InvalidTargetError) Error() string {
	return "The element must contain an element node."
}

// Is matches ErrInvalidTarget.
func (e *InvalidTargetError) Is(target error) bool {
	return target == ErrInvalidTarget
}

// InvalidArgumentError is returned when a batch operation receives a
// non-string where a name or value is required.
type InvalidArgumentError struct {
	Role  string
	Index int
	Got   string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s must be a string, %s given.", e.Role, e.Got)
}

// Is matches ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// typeName describes v for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}

// stringsOf converts every element of values to a string, failing on the
// first element that is not one. Nothing is applied by callers until the
// whole batch has been converted.
func stringsOf(values []any, role string) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, &InvalidArgumentError{Role: role, Index: i, Got: typeName(v)}
		}
		out[i] = s
	}
	return out, nil
}

// Strings adapts typed names for the batch operations.
func Strings(names ...string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}

func checkTarget(el dom.Element) error {
	if el == nil {
		return &InvalidTargetError{Kind: dom.OtherNode}
	}
	if k := el.Kind(); k != dom.ElementNode {
		return &InvalidTargetError{Kind: k}
	}
	return nil
}
