package extract

import "fmt"

// ParseError reports malformed input in an artifact. It is fatal for the
// directory being extracted but never for the run as a whole.
type ParseError struct {
	Extractor string
	Path      string
	Line      int // 1-based; 0 when not tied to a line
	Err       error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s:%d: %v", e.Extractor, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Extractor, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func NewParseError(extractor, path string, line int, format string, args ...any) *ParseError {
	return &ParseError{
		Extractor: extractor,
		Path:      path,
		Line:      line,
		Err:       fmt.Errorf(format, args...),
	}
}
