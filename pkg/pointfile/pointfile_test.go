package pointfile

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/chazu/meshfit/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	input := `
# a comment
0 0 0
  1.5	-2 3e2  

4,5,6
-1, -1, -1
`
	pts, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []geom.Vec3{
		geom.V3(0, 0, 0),
		geom.V3(1.5, -2, 300),
		geom.V3(4, 5, 6),
		geom.V3(-1, -1, -1),
	}, pts)
}

func TestReadEmpty(t *testing.T) {
	pts, err := Read(strings.NewReader("\n\n# nothing\n"))
	require.NoError(t, err)
	assert.Empty(t, pts)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantMsg  string
	}{
		{"too few", "0 0 0\n1 2\n", 2, "expected 3 coordinates, got 2"},
		{"too many", "1 2 3 4\n", 1, "got 4"},
		{"not a number", "\n\n1 x 3\n", 3, "coordinate 2"},
		{"infinite", "1 2 Inf\n", 1, "finite"},
		{"nan", "NaN 2 3\n", 1, "finite"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
			assert.Equal(t, tt.wantLine, pe.Line)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), "line "+strconv.Itoa(tt.wantLine))
		})
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	_, err := Read(strings.NewReader("1 2 abc"))
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloud.xyz")
	require.NoError(t, os.WriteFile(path, []byte("1 1 1\n2 2 2\n"), 0o644))

	pts, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, pts, 2)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.xyz"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
