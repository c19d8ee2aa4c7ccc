package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/botgrid/internal/registry"
	"github.com/vk/botgrid/modules/loopback"
)

func TestModuleLoader_KnownModule(t *testing.T) {
	t.Parallel()

	bundle, err := ModuleLoader()(loopback.ModuleName)
	require.NoError(t, err)
	assert.Equal(t, []string{"loopbacks"}, bundle.Adaptors)
}

func TestModuleLoader_UnknownModule(t *testing.T) {
	t.Parallel()

	_, err := ModuleLoader()("botgrid-warpdrive")
	require.Error(t, err)
}

func TestModuleLoader_ResolvesEveryBuiltin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg := registry.New(ModuleLoader())
	for name := range builtinModules {
		_, err := reg.Register(ctx, name)
		require.NoError(t, err, "builtin module %q must register", name)
	}
	assert.NotNil(t, reg.FindByAdaptor("loopback"))
	assert.NotNil(t, reg.FindByDriver("ping"))
	assert.NotNil(t, reg.FindByAdaptor("test"))
	assert.NotNil(t, reg.FindByDriver("test"))
	assert.NotNil(t, reg.FindByAdaptor("socketio"))
}
