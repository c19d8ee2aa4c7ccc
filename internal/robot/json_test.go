package robot_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/botgrid/internal/config"
	"github.com/vk/botgrid/internal/robot"
)

func TestToJSON_Shape(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	rec := &recorder{}

	r, err := robot.New(ctx, &robot.Options{
		Name: "serializable",
		Connections: []*config.ConnectionSpec{
			{Name: "core", Adaptor: "fake", Params: map[string]any{"port": "/dev/ttyUSB0"}},
			{Name: "aux", Adaptor: "fake"},
		},
		Devices: []*config.DeviceSpec{
			{Name: "led", Driver: "fake", Connection: "core"},
		},
		Commands: map[string]robot.Command{
			"wave": func(...any) any { return nil },
			"beep": func(...any) any { return nil },
		},
		Events:   []string{"telemetry"},
		Runtime:  manualRuntime(),
		Registry: fakeRegistry(fakeBundle(rec, "", "")),
	})
	require.NoError(t, err)

	js := r.ToJSON()
	assert.Equal(t, "serializable", js.Name)
	require.Len(t, js.Connections, 2)
	require.Len(t, js.Devices, 1)
	assert.Equal(t, []string{"beep", "wave"}, js.Commands)
	assert.Equal(t, []string{"ready", "error", "telemetry"}, js.Events)

	assert.Equal(t, "core", js.Connections[0].Name)
	assert.Equal(t, "fake", js.Connections[0].Adaptor)
	assert.Equal(t, map[string]any{"port": "/dev/ttyUSB0"}, js.Connections[0].Details)

	assert.Equal(t, "led", js.Devices[0].Name)
	assert.Equal(t, "fake", js.Devices[0].Driver)
	assert.Equal(t, "core", js.Devices[0].Connection)
}

func TestToJSON_EmptyRobotMarshalsArrays(t *testing.T) {
	t.Parallel()

	r, err := robot.New(context.Background(), &robot.Options{
		Name:    "bare",
		Runtime: manualRuntime(),
	})
	require.NoError(t, err)

	raw, err := json.Marshal(r.ToJSON())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []any{}, decoded["connections"], "connections must encode as an array, not null")
	assert.Equal(t, []any{}, decoded["devices"])
	assert.Equal(t, []any{}, decoded["commands"])
	assert.Equal(t, []any{"ready", "error"}, decoded["events"])
}
