package testcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/botgrid/internal/plugin"
)

func TestAdaptor_CountsCalls(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	a := &Adaptor{}
	require.NoError(t, a.Connect(ctx))
	require.NoError(t, a.Connect(ctx))
	require.NoError(t, a.Disconnect(ctx))

	assert.Equal(t, 2, a.Connects)
	assert.Equal(t, 1, a.Disconnects)
}

func TestDriver_CountsCalls(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := &Driver{}
	require.NoError(t, d.Start(ctx))
	require.NoError(t, d.Halt(ctx))
	require.NoError(t, d.Halt(ctx))

	assert.Equal(t, 1, d.Starts)
	assert.Equal(t, 2, d.Halts)
}

func TestBundle_AdvertisesTestCapability(t *testing.T) {
	t.Parallel()

	b := Bundle()
	assert.Equal(t, []string{"tests"}, b.Adaptors)
	assert.Equal(t, []string{"tests"}, b.Drivers)

	a, err := b.NewAdaptor(plugin.AdaptorOptions{Name: "stub"})
	require.NoError(t, err)
	assert.Equal(t, "stub", a.Name())

	d, err := b.NewDriver(plugin.DriverOptions{Name: "stub"})
	require.NoError(t, err)
	assert.Equal(t, "stub", d.Name())
}
