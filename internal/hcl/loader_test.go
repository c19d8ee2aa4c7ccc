package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/botgrid/internal/config"
)

// writeGrid writes content into a fresh temp dir and returns the file path.
func writeGrid(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_FullRobot(t *testing.T) {
	t.Parallel()

	path := writeGrid(t, `
robot "sprawl" {
  team = "field"

  connection "core" {
    adaptor = "loopback"
    port    = "/dev/null"
    retries = 3
  }

  device "led" {
    driver     = "ping"
    connection = "core"
    rate       = 1.5
    tags       = ["status", "debug"]
  }
}
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, model.Robots, 1)

	want := &config.RobotSpec{
		Name: "sprawl",
		Connections: []*config.ConnectionSpec{{
			Name:    "core",
			Adaptor: "loopback",
			Params: map[string]any{
				"port":    "/dev/null",
				"retries": int64(3),
			},
		}},
		Devices: []*config.DeviceSpec{{
			Name:       "led",
			Driver:     "ping",
			Connection: "core",
			Params: map[string]any{
				"rate": 1.5,
				"tags": []any{"status", "debug"},
			},
		}},
		Extra: map[string]any{"team": "field"},
	}
	if diff := cmp.Diff(want, model.Robots[0]); diff != "" {
		t.Fatalf("robot spec mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MultipleRobotsAcrossFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`
robot "alpha" {
  connection "core" { adaptor = "loopback" }
}
`), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`
robot "beta" {
  connection "core" { module = "botgrid-socketio" }
}
robot "gamma" {}
`), 0600))

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Robots, 3)

	names := []string{model.Robots[0].Name, model.Robots[1].Name, model.Robots[2].Name}
	assert.ElementsMatch(t, []string{"alpha", "beta", "gamma"}, names)
}

func TestLoad_EmptyBlocksYieldNilParams(t *testing.T) {
	t.Parallel()

	path := writeGrid(t, `
robot "bare" {
  connection "core" { adaptor = "loopback" }
}
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, model.Robots, 1)
	assert.Nil(t, model.Robots[0].Connections[0].Params)
	assert.Nil(t, model.Robots[0].Extra)
}

func TestLoad_ParseError(t *testing.T) {
	t.Parallel()

	path := writeGrid(t, `robot "broken" { connection "core" {`)

	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
