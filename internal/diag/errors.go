package diag

import (
	"errors"
	"fmt"

	"comform/internal/source"
)

// ErrInternal marks a broken rewrite invariant. It is never expected and
// always aborts the file.
var ErrInternal = errors.New("internal error")

// ValidationError reports an input path that cannot be processed at all.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// TokenizeError carries the lexing diagnostics of one file.
type TokenizeError struct {
	Path        string
	Diagnostics []Diagnostic
	Files       *source.FileSet
}

func (e *TokenizeError) Error() string {
	if len(e.Diagnostics) == 0 {
		return fmt.Sprintf("%s: cannot tokenize", e.Path)
	}
	return FormatShort(e.Diagnostics, e.Files)
}

// Internalf wraps ErrInternal with a formatted message.
func Internalf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
