// Package apperr defines the error kinds surfaced at the storefront
// boundary.
package apperr

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-faster/errors"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindTransient
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindTransient:
		return "transient"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Sentinels usable with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrTransient  = errors.New("temporarily unavailable")
	ErrConflict   = errors.New("conflict")
)

// Error carries a kind, the failing operation and, for validation
// failures, the offending fields.
type Error struct {
	Kind   Kind
	Op     string
	Msg    string
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString(e.sentinel().Error())
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(")")
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindTransient:
		return ErrTransient
	case KindConflict:
		return ErrConflict
	}
	return nil
}

// NotFound reports a missing entity, e.g. NotFound("products.get", "product 7").
func NotFound(op, what string) error {
	return &Error{Kind: KindNotFound, Op: op, Msg: what + " not found"}
}

// Validation reports malformed input. fields maps field name to reason.
func Validation(op string, fields map[string]string) error {
	return &Error{Kind: KindValidation, Op: op, Msg: "invalid input", Fields: fields}
}

// Invalid is Validation for a single field.
func Invalid(op, field, reason string) error {
	return Validation(op, map[string]string{field: reason})
}

// Transient wraps an availability failure (network, database, broker).
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindTransient, Op: op, Err: errors.Wrap(err, "transient")}
}

// Conflict reports an operation rejected by the current state, such as a
// second concurrent submission.
func Conflict(op, msg string) error {
	return &Error{Kind: KindConflict, Op: op, Msg: msg}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FieldsOf returns validation fields from err's chain, if any.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// HTTPStatus maps an error kind to a response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindTransient:
		return http.StatusServiceUnavailable
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
