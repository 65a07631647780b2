package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/meshfit/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cornersXYZ = `# unit cube corners
-1 -1 -1
1 -1 -1
-1 1 -1
1 1 -1
-1 -1 1
1 -1 1
-1 1 1
1 1 1
`

// run executes the root command with args and returns stdout, stderr and
// the command error.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "meshfit "+Version)
	assert.Contains(t, out, "commit: "+GitCommit)
}

func TestSphereCommand_Points(t *testing.T) {
	path := writeTemp(t, "cube.xyz", cornersXYZ)

	out, _, err := run(t, "", "sphere", "--points", path)
	require.NoError(t, err)
	assert.Contains(t, out, "radius:")
	assert.Contains(t, out, "points:   8")
}

func TestSphereCommand_JSON(t *testing.T) {
	path := writeTemp(t, "cube.xyz", cornersXYZ)

	out, _, err := run(t, "", "sphere", "--points", path, "--json")
	require.NoError(t, err)

	var result Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotNil(t, result.Sphere)
	assert.InDelta(t, math.Sqrt(3), result.Sphere.Radius, 1e-3)
	assert.Equal(t, 8, result.Sphere.Points)
	assert.Empty(t, result.Errors)
}

func TestSphereCommand_Stdin(t *testing.T) {
	out, _, err := run(t, cornersXYZ, "sphere", "--points", "-", "--max-passes", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "points:   8")
}

func TestSphereCommand_MultiplePointFiles(t *testing.T) {
	a := writeTemp(t, "a.xyz", "0 0 0\n")
	b := writeTemp(t, "b.xyz", "4 0 0\n")

	out, _, err := run(t, "", "sphere", "--points", a, "--points", b, "--json")
	require.NoError(t, err)

	var result Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotNil(t, result.Sphere)
	assert.InDelta(t, 2.0, result.Sphere.Radius, 1e-6)
	assert.InDelta(t, 2.0, result.Sphere.Center.X, 1e-6)
}

func TestSphereCommand_Scene(t *testing.T) {
	path := writeTemp(t, "ball.scene", "(sphere :radius 2)\n")

	out, _, err := run(t, "", "sphere", "--scene", path, "--cells", "24", "--json")
	require.NoError(t, err)

	var result Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotNil(t, result.Sphere)
	assert.InDelta(t, 2.0, result.Sphere.Radius, 0.2)
	assert.Len(t, result.Parts, 1)
}

func TestSphereCommand_SceneErrors(t *testing.T) {
	path := writeTemp(t, "bad.scene", "(sphere :radius -1)\n")

	out, errOut, err := run(t, "", "sphere", "--scene", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error(s)")
	assert.Contains(t, errOut, "must be positive")
	assert.NotContains(t, out, "radius:")
}

func TestSphereCommand_NothingToFit(t *testing.T) {
	_, _, err := run(t, "", "sphere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to fit")
}

func TestSphereCommand_EmptyInputs(t *testing.T) {
	path := writeTemp(t, "empty.xyz", "# no points\n")

	_, _, err := run(t, "", "sphere", "--points", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no points")
}

func TestSphereCommand_BadPointFile(t *testing.T) {
	path := writeTemp(t, "bad.xyz", "1 2\n")

	_, _, err := run(t, "", "sphere", "--points", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestSphereCommand_InvalidOverrides(t *testing.T) {
	path := writeTemp(t, "cube.xyz", cornersXYZ)

	tests := map[string]struct {
		args []string
		want string
	}{
		"tolerance":  {[]string{"--tolerance", "-1"}, "sphere.tolerance"},
		"max passes": {[]string{"--max-passes", "0"}, "sphere.max_passes"},
		"cells":      {[]string{"--cells", "2"}, "kernel.mesh_cells"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"sphere", "--points", path}, tt.args...)
			_, _, err := run(t, "", args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRootCommand_MissingConfig(t *testing.T) {
	_, _, err := run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigFileNotFound)
}

func TestRootCommand_ConfigFile(t *testing.T) {
	cfgPath := writeTemp(t, "meshfit.yaml", "sphere:\n  max_passes: 3\nlog:\n  level: warn\n")
	path := writeTemp(t, "cube.xyz", cornersXYZ)

	out, _, err := run(t, "", "--config", cfgPath, "sphere", "--points", path)
	require.NoError(t, err)
	assert.Contains(t, out, "points:   8")
}

func TestRootCommand_BadLogLevel(t *testing.T) {
	_, _, err := run(t, "", "--log-level", "loud", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}
