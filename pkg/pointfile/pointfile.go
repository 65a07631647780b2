// Package pointfile reads plain-text point clouds: one point per line as
// three numbers separated by whitespace or commas. Blank lines and lines
// starting with '#' are skipped.
package pointfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/meshfit/pkg/geom"
)

// ParseError reports a malformed line.
type ParseError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pointfile: line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// maxLine bounds a single input line.
const maxLine = 1 << 20

// Read parses every point in r.
func Read(r io.Reader) ([]geom.Vec3, error) {
	var pts []geom.Vec3
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		p, err := parseLine(text)
		if err != nil {
			return nil, &ParseError{Line: line, Text: text, Err: err}
		}
		pts = append(pts, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pointfile: read: %w", err)
	}
	return pts, nil
}

// ReadFile parses the point file at path.
func ReadFile(path string) ([]geom.Vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pointfile: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func parseLine(text string) (geom.Vec3, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 3 {
		return geom.Vec3{}, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geom.Vec3{}, fmt.Errorf("coordinate %d: %w", i+1, err)
		}
		c[i] = v
	}
	p := geom.V3(c[0], c[1], c[2])
	if !p.IsFinite() {
		return geom.Vec3{}, fmt.Errorf("coordinates must be finite")
	}
	return p, nil
}
