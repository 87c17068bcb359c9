// Package pixio loads detector frame files into pix.Frame values. Two
// on-disk formats are supported: the LSC hit-list format ("x,y count"
// records with // comments) and dense ASCII matrices of counts.
package pixio

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/InstituteForResearchInSchools/crayfish/internal/pix"
)

// ErrParse is the sentinel for malformed frame files. Format errors are
// a distinct failure kind from the core's grid errors and are never
// reported as out-of-bounds conditions.
var ErrParse = errors.New("malformed frame file")

// ParseError describes a malformed record in a frame file.
type ParseError struct {
	Format string // "lsc" or "matrix"
	Line   int    // 1-based line number
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s file: line %d: %s", e.Format, e.Line, e.Msg)
}

// Unwrap lets callers match with errors.Is(err, ErrParse).
func (e *ParseError) Unwrap() error { return ErrParse }

// Format identifies a supported frame file format.
type Format string

const (
	FormatLSC    Format = "lsc"
	FormatMatrix Format = "matrix"
)

// LoadFile reads the file at path in the given format and returns the
// populated frame.
func LoadFile(path string, format Format) (*pix.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame file: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatLSC:
		return ReadLSC(f)
	case FormatMatrix:
		return ReadMatrix(f)
	default:
		return nil, fmt.Errorf("unsupported frame file format %q", format)
	}
}

// GuessFormat picks a format from a filename extension, defaulting to
// LSC, the native CERN@school readout format.
func GuessFormat(path string) Format {
	if strings.HasSuffix(path, ".txt") || strings.HasSuffix(path, ".matrix") {
		return FormatMatrix
	}
	return FormatLSC
}
