package engine

import (
	"errors"
	"fmt"

	"velvetstat/internal/extract"
)

// ErrNoValidDirs is returned when no candidate directory survives validation.
var ErrNoValidDirs = errors.New("no valid assembly directories")

// ArtifactError reports a required artifact that is missing or empty.
type ArtifactError struct {
	Dir      string
	Artifact string
	Empty    bool
}

func (e *ArtifactError) Error() string {
	if e.Empty {
		return fmt.Sprintf("%s is empty", e.Artifact)
	}
	return fmt.Sprintf("%s is missing", e.Artifact)
}

// ExtractorError ties a per-directory failure to the extractor that caused it.
type ExtractorError struct {
	Extractor string
	Err       error
}

func (e *ExtractorError) Error() string {
	return fmt.Sprintf("extractor %s: %v", e.Extractor, e.Err)
}

func (e *ExtractorError) Unwrap() error { return e.Err }

// presentError returns the message shown to users for a per-directory
// failure. Without verbose, parse errors are reduced to the extractor, line
// and cause; the full chain is kept for --verbose.
func presentError(err error, verbose bool) string {
	if err == nil {
		return "unknown error"
	}
	if verbose {
		return err.Error()
	}
	var pe *extract.ParseError
	if errors.As(err, &pe) {
		if pe.Line > 0 {
			return fmt.Sprintf("%s: line %d: %v", pe.Extractor, pe.Line, pe.Err)
		}
		return fmt.Sprintf("%s: %v", pe.Extractor, pe.Err)
	}
	var ee *ExtractorError
	if errors.As(err, &ee) {
		return fmt.Sprintf("%s: %v", ee.Extractor, ee.Err)
	}
	return err.Error()
}
