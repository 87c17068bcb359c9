package pixio

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/InstituteForResearchInSchools/crayfish/internal/pix"
)

func TestReadLSC(t *testing.T) {
	input := strings.Join([]string{
		"// CERN@school frame header",
		"0,0 5",
		"",
		"1,0 3",
		"1,1 7",
		"10,10 2",
	}, "\n")

	frame, err := ReadLSC(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadLSC: %v", err)
	}

	wantPixels := []pix.Pixel{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 10, Y: 10}}
	if diff := cmp.Diff(wantPixels, frame.HitPixels()); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5, 3, 7, 2}, frame.Counts()); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	if len(frame.Clusters()) != 2 {
		t.Errorf("loaded frame produced %d clusters, want 2", len(frame.Clusters()))
	}
}

func TestReadLSCMalformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"missing count", "3,4"},
		{"bad coordinate", "3;4 7"},
		{"bad x", "a,4 7"},
		{"bad y", "3,b 7"},
		{"bad count", "3,4 seven"},
		{"extra fields", "3,4 7 9"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ReadLSC(strings.NewReader(c.input))
			if !errors.Is(err, ErrParse) {
				t.Fatalf("want ErrParse, got %v", err)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("want *ParseError, got %T", err)
			}
			if perr.Line != 1 {
				t.Errorf("reported line %d, want 1", perr.Line)
			}
			// Format errors must never surface as grid bounds errors.
			if errors.Is(err, pix.ErrOutOfBounds) {
				t.Error("parse error masked as ErrOutOfBounds")
			}
		})
	}
}

func TestReadMatrix(t *testing.T) {
	input := "0 5 0\n3 0 0\n0 0 2\n"
	frame, err := ReadMatrix(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadMatrix: %v", err)
	}

	// Zeros are skipped: only three pixels materialised.
	wantPixels := []pix.Pixel{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 2}}
	if diff := cmp.Diff(wantPixels, frame.HitPixels()); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5, 3, 2}, frame.Counts()); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestReadMatrixMalformed(t *testing.T) {
	_, err := ReadMatrix(strings.NewReader("0 1\n2 x\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *ParseError, got %v", err)
	}
	if perr.Line != 2 {
		t.Errorf("reported line %d, want 2", perr.Line)
	}
}

func TestGuessFormat(t *testing.T) {
	cases := map[string]Format{
		"frame_001.lsc":    FormatLSC,
		"frame_001.txt":    FormatMatrix,
		"frame_001.matrix": FormatMatrix,
		"frame_001":        FormatLSC,
	}
	for path, want := range cases {
		if got := GuessFormat(path); got != want {
			t.Errorf("GuessFormat(%q) = %q, want %q", path, got, want)
		}
	}
}
