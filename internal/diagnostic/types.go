package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"mockgraph/internal/common"
)

// Code classifies a failure. Every code but CodeVerification means the
// declarations or the type setup are wrong.
type Code int

const (
	CodeGrammar Code = iota + 1
	CodeResolution
	CodePolicy
	CodeCoercion
	CodeVerification
)

var (
	ErrGrammar      = errors.New("grammar error")
	ErrResolution   = errors.New("resolution error")
	ErrPolicy       = errors.New("policy violation")
	ErrCoercion     = errors.New("coercion error")
	ErrVerification = errors.New("verification failure")
)

// String returns a short code name.
func (c Code) String() string {
	switch c {
	case CodeGrammar:
		return "grammar"
	case CodeResolution:
		return "resolution"
	case CodePolicy:
		return "policy"
	case CodeCoercion:
		return "coercion"
	case CodeVerification:
		return "verification"
	default:
		return common.UnknownStr
	}
}

// Sentinel returns the error matched by errors.Is for the code.
func (c Code) Sentinel() error {
	switch c {
	case CodeGrammar:
		return ErrGrammar
	case CodeResolution:
		return ErrResolution
	case CodePolicy:
		return ErrPolicy
	case CodeCoercion:
		return ErrCoercion
	case CodeVerification:
		return ErrVerification
	default:
		return nil
	}
}

// Error is a failure of a compile, build or verify call.
type Error struct {
	// Code classifies the failure.
	Code Code
	// Path is the declaration or canonical key the failure relates to (if any).
	Path string
	// Message is the human-readable description.
	Message string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
	// Err is the underlying cause (if any).
	Err error
}

func newError(code Code, path, format string, args ...any) *Error {
	e := &Error{Code: code, Path: path, Message: fmt.Sprintf(format, args...)}

	// keep the last %w-style cause reachable
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			e.Err = err
		}
	}

	return e
}

func Grammar(path, format string, args ...any) *Error {
	return newError(CodeGrammar, path, format, args...)
}

func Resolution(path, format string, args ...any) *Error {
	return newError(CodeResolution, path, format, args...)
}

func Policy(path, format string, args ...any) *Error {
	return newError(CodePolicy, path, format, args...)
}

func Coercion(path, format string, args ...any) *Error {
	return newError(CodeCoercion, path, format, args...)
}

func Verification(path, format string, args ...any) *Error {
	return newError(CodeVerification, path, format, args...)
}

// WithSuggestions attaches alternatives to the error and returns it.
func (e *Error) WithSuggestions(suggestions ...string) *Error {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// At sets the path when the error does not carry one yet.
func (e *Error) At(path string) *Error {
	if e.Path == "" {
		e.Path = path
	}
	return e
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}

	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}

	return msg
}

// Is matches the sentinel of the error code.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Code.Sentinel()
}

func (e *Error) Unwrap() error { return e.Err }

// As extracts a *Error from err.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
