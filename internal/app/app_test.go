package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/botgrid/internal/hcl"
)

func TestNew_LoadsGrid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	gridPath := filepath.Join(dir, "demo.hcl")
	require.NoError(t, os.WriteFile(gridPath, []byte(`
robot "demo" {
  connection "core" { adaptor = "loopback" }
  device "led" {
    driver     = "ping"
    connection = "core"
  }
}
`), 0600))

	a := New(os.Stderr, &Config{GridPath: gridPath, LogLevel: "error"}, hcl.NewLoader())

	require.Len(t, a.model.Robots, 1)
	assert.Equal(t, "demo", a.model.Robots[0].Name)
	assert.NotNil(t, a.Registry())
}

func TestNew_PanicsOnBadGrid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	gridPath := filepath.Join(dir, "bad.hcl")
	require.NoError(t, os.WriteFile(gridPath, []byte(`robot "x" {`), 0600))

	assert.Panics(t, func() {
		New(os.Stderr, &Config{GridPath: gridPath, LogLevel: "error"}, hcl.NewLoader())
	})
}
