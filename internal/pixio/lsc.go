package pixio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/InstituteForResearchInSchools/crayfish/internal/pix"
)

// ReadLSC parses the LSC hit-list format: one "x,y count" record per
// line, lines beginning with // ignored. Records are added to the frame
// in file order, which fixes the frame's pixel iteration order.
func ReadLSC(r io.Reader) (*pix.Frame, error) {
	frame := pix.NewFrame()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, &ParseError{Format: "lsc", Line: line, Msg: fmt.Sprintf("want \"x,y count\", got %q", text)}
		}
		coords := strings.Split(fields[0], ",")
		if len(coords) != 2 {
			return nil, &ParseError{Format: "lsc", Line: line, Msg: fmt.Sprintf("bad coordinate %q", fields[0])}
		}
		x, err := strconv.Atoi(coords[0])
		if err != nil {
			return nil, &ParseError{Format: "lsc", Line: line, Msg: fmt.Sprintf("bad x coordinate %q", coords[0])}
		}
		y, err := strconv.Atoi(coords[1])
		if err != nil {
			return nil, &ParseError{Format: "lsc", Line: line, Msg: fmt.Sprintf("bad y coordinate %q", coords[1])}
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &ParseError{Format: "lsc", Line: line, Msg: fmt.Sprintf("bad count %q", fields[1])}
		}
		frame.Set(pix.Pixel{X: x, Y: y}, &pix.Hit{Value: count})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lsc file: %w", err)
	}
	return frame, nil
}
