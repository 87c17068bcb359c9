package pixio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/InstituteForResearchInSchools/crayfish/internal/pix"
)

// ReadMatrix parses a dense ASCII matrix of counts: one row per line,
// columns separated by whitespace, row index = y and column index = x.
// Zero counts are skipped so the frame stays sparse; materialising them
// would corrupt the only-non-zero-hits-stored invariant.
func ReadMatrix(r io.Reader) (*pix.Frame, error) {
	frame := pix.NewFrame()
	scanner := bufio.NewScanner(r)
	y := 0
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		for x, field := range strings.Fields(text) {
			count, err := strconv.Atoi(field)
			if err != nil {
				return nil, &ParseError{Format: "matrix", Line: y + 1, Msg: fmt.Sprintf("bad count %q at column %d", field, x)}
			}
			if count == 0 {
				continue
			}
			frame.Set(pix.Pixel{X: x, Y: y}, &pix.Hit{Value: count})
		}
		y++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read matrix file: %w", err)
	}
	return frame, nil
}
