// Package diag defines the Diagnostic error type returned by every
// fallible operation in lexgram: lexing, grammar loading, and parsing
// never panic or unwind, they return a located, typed diagnostic.
package diag

import (
	"fmt"

	"github.com/juju/errors"

	"github.com/tokenloom/lexgram/token"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// IO means a file could not be opened or read.
	IO Kind = iota
	// LexError means no recognizer could consume the next bytes, a
	// string was left unterminated, or an escape sequence failed to
	// decode.
	LexError
	// ConfigError means a lexicon or grammar JSON document was
	// malformed: an unknown recognizer name, a missing required key,
	// or a badly shaped alternative.
	ConfigError
	// ParseError means no rule alternative matched the token stream.
	ParseError
	// Internal means an invariant the algorithms rely on was violated
	// (e.g. a position advanced out of bounds when it should not
	// have been possible).
	Internal
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "IO"
	case LexError:
		return "LexError"
	case ConfigError:
		return "ConfigError"
	case ParseError:
		return "ParseError"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Diagnostic is the single error type returned across package
// boundaries. It carries a Kind, an optional source Location, a
// human-readable Message, and (when the diagnostic wraps a lower-level
// failure, e.g. a JSON decode error) a juju/errors-annotated cause.
type Diagnostic struct {
	Kind     Kind
	Location token.Location
	HasLoc   bool
	Message  string
	cause    error
}

// New builds a Diagnostic with no source location (e.g. a missing
// grammar key, or an I/O failure before any token has been read).
func New(kind Kind, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...any) *Diagnostic {
	return New(kind, fmt.Sprintf(format, args...))
}

// At builds a Diagnostic located at loc.
func At(kind Kind, loc token.Location, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Location: loc, HasLoc: true, Message: message}
}

// Atf is At with fmt.Sprintf-style formatting.
func Atf(kind Kind, loc token.Location, format string, args ...any) *Diagnostic {
	return At(kind, loc, fmt.Sprintf(format, args...))
}

// Wrap annotates cause with message under kind, preserving cause's
// stack trace via juju/errors so callers can still errors.As/errors.Is
// through Diagnostic.Unwrap to the original failure.
func Wrap(kind Kind, cause error, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message, cause: errors.Annotate(cause, message)}
}

// WrapAt is Wrap with a source Location attached.
func WrapAt(kind Kind, loc token.Location, cause error, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Location: loc, HasLoc: true, Message: message, cause: errors.Annotate(cause, message)}
}

// Error implements error. Human-readable, prefixed with
// "Line L, column C: " whenever a location is available, matching the
// wire format grammar/lexicon/AST diagnostics have always used.
func (d *Diagnostic) Error() string {
	if d == nil {
		return ""
	}
	if d.HasLoc {
		return fmt.Sprintf("Line %d, column %d: %s", d.Location.Line, d.Location.Column, d.Message)
	}
	return d.Message
}

// Unwrap exposes the annotated cause, if any, so errors.As/errors.Is
// can reach through a Diagnostic to the underlying juju/errors chain.
func (d *Diagnostic) Unwrap() error {
	if d == nil {
		return nil
	}
	return d.cause
}

// Cause returns the deepest non-annotated cause, via juju/errors.Cause,
// or d itself if there is no wrapped cause.
func (d *Diagnostic) Cause() error {
	if d == nil || d.cause == nil {
		return d
	}
	return errors.Cause(d.cause)
}
