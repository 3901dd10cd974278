// Package attr provides editors for the class and style attributes of DOM
// elements.
//
// ClassList treats the class attribute as an ordered set of whitespace
// separated tokens. StyleMap treats the style attribute as an ordered
// mapping of property names to values, serialized as
//
//	name: value; name: value
//
// Neither editor caches anything: each call reads the raw attribute from the
// element, parses it, and for mutations writes the re-serialized value back
// before returning. Editors sharing an element therefore never disagree.
//
// Batch operations (AddMultiple, SetMultipleProperties, ...) accept loosely
// typed input such as values decoded from YAML or JSON. The whole batch is
// validated before anything is written; a non-string entry yields an
// *InvalidArgumentError and leaves the attribute unchanged.
//
// Editors are not safe for concurrent use on the same element. Callers that
// share elements across goroutines must serialize access per element.
package attr
