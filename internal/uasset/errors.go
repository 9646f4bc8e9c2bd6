package uasset

import "fmt"

// Kind classifies a parse failure. Every kind is fatal for the file being parsed.
type Kind int

const (
	KindTruncatedData Kind = iota + 1
	KindInvalidFormat
	KindUnsupportedVersion
	KindUnsupportedFeature
	KindUnsupportedSize
	KindInvalidReference
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindTruncatedData:
		return "truncated data"
	case KindInvalidFormat:
		return "invalid format"
	case KindUnsupportedVersion:
		return "unsupported version"
	case KindUnsupportedFeature:
		return "unsupported feature"
	case KindUnsupportedSize:
		return "unsupported size"
	case KindInvalidReference:
		return "invalid reference"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. A *Error matches the sentinel of its kind.
var (
	ErrTruncatedData      = &Error{Kind: KindTruncatedData}
	ErrInvalidFormat      = &Error{Kind: KindInvalidFormat}
	ErrUnsupportedVersion = &Error{Kind: KindUnsupportedVersion}
	ErrUnsupportedFeature = &Error{Kind: KindUnsupportedFeature}
	ErrUnsupportedSize    = &Error{Kind: KindUnsupportedSize}
	ErrInvalidReference   = &Error{Kind: KindInvalidReference}
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
)

// Error is a parse failure with the byte offset where it was detected.
// Offset is -1 when the failure is not tied to a position (e.g. a bad filename).
type Error struct {
	Kind   Kind
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
