package entity

import "fmt"

// ErrorKind classifies a calculation error.
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota + 1
	KindUndefinedRatio
	KindConfigurationMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindUndefinedRatio:
		return "undefined ratio"
	case KindConfigurationMismatch:
		return "configuration mismatch"
	default:
		return "unknown"
	}
}

// Error is a validation failure raised before or during a comparison.
// Field names the offending configuration key, when there is one.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	switch {
	case e.Field != "" && e.Message != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	default:
		return e.Kind.String()
	}
}

// Is makes errors.Is(err, ErrInvalidInput) match any error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Field == "" && t.Message == "" {
		return t.Kind == e.Kind
	}
	return *t == *e
}

// Sentinels, one per kind.
var (
	ErrInvalidInput          = &Error{Kind: KindInvalidInput}
	ErrUndefinedRatio        = &Error{Kind: KindUndefinedRatio}
	ErrConfigurationMismatch = &Error{Kind: KindConfigurationMismatch}
)

func invalidInput(field, format string, a ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Field: field, Message: fmt.Sprintf(format, a...)}
}

func mismatch(field, format string, a ...interface{}) *Error {
	return &Error{Kind: KindConfigurationMismatch, Field: field, Message: fmt.Sprintf(format, a...)}
}

// InvalidInput builds an InvalidInput error for callers outside this package.
func InvalidInput(field, format string, a ...interface{}) error {
	return invalidInput(field, format, a...)
}

// Mismatch builds a ConfigurationMismatch error for callers outside this package.
func Mismatch(field, format string, a ...interface{}) error {
	return mismatch(field, format, a...)
}
