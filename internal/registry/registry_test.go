package registry

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/botgrid/internal/plugin"
)

// countingLoader serves bundles from a table and counts loads per module.
func countingLoader(table map[string]*plugin.Bundle, counts map[string]int) Loader {
	return func(name string) (*plugin.Bundle, error) {
		counts[name]++
		if b, ok := table[name]; ok {
			return b, nil
		}
		return nil, fmt.Errorf("unknown module %q", name)
	}
}

func TestRegister_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	bundle := &plugin.Bundle{Adaptors: []string{"loopbacks"}}
	counts := map[string]int{}
	reg := New(countingLoader(map[string]*plugin.Bundle{"botgrid-loopback": bundle}, counts))

	first, err := reg.Register(ctx, "botgrid-loopback")
	require.NoError(t, err)
	second, err := reg.Register(ctx, "botgrid-loopback")
	require.NoError(t, err)

	assert.Same(t, first, second, "both calls must return the same cached bundle")
	assert.Equal(t, 1, counts["botgrid-loopback"], "loader must run once per module")
}

func TestRegister_RecursiveDependenciesOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	loopback := &plugin.Bundle{Adaptors: []string{"loopbacks"}}
	ping := &plugin.Bundle{
		Drivers:      []string{"pings"},
		Dependencies: []string{"botgrid-loopback"},
	}
	counts := map[string]int{}
	reg := New(countingLoader(map[string]*plugin.Bundle{
		"botgrid-loopback": loopback,
		"botgrid-ping":     ping,
	}, counts))

	// Registering loopback first and then ping must not reload loopback.
	_, err := reg.Register(ctx, "botgrid-loopback")
	require.NoError(t, err)
	_, err = reg.Register(ctx, "botgrid-ping")
	require.NoError(t, err)

	assert.Equal(t, 1, counts["botgrid-loopback"])
	assert.Equal(t, 1, counts["botgrid-ping"])
	assert.Equal(t, []string{"botgrid-loopback", "botgrid-ping"}, reg.Modules())
}

func TestRegister_DependencyPulledIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	loopback := &plugin.Bundle{Adaptors: []string{"loopbacks"}}
	ping := &plugin.Bundle{Dependencies: []string{"botgrid-loopback"}}
	counts := map[string]int{}
	reg := New(countingLoader(map[string]*plugin.Bundle{
		"botgrid-loopback": loopback,
		"botgrid-ping":     ping,
	}, counts))

	_, err := reg.Register(ctx, "botgrid-ping")
	require.NoError(t, err)

	assert.Same(t, loopback, reg.FindByModule("botgrid-loopback"))
}

func TestRegister_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg := New(countingLoader(nil, map[string]int{}))
	_, err := reg.Register(ctx, "botgrid-ghost")
	require.ErrorIs(t, err, ErrModuleNotFound)
}

func TestRegister_NilLoader(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	reg := New(nil)
	_, err := reg.Register(ctx, "anything")
	require.ErrorIs(t, err, ErrModuleNotFound)
}

func TestRegister_MissingDependencyFails(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	ping := &plugin.Bundle{Dependencies: []string{"botgrid-gone"}}
	reg := New(countingLoader(map[string]*plugin.Bundle{"botgrid-ping": ping}, map[string]int{}))

	_, err := reg.Register(ctx, "botgrid-ping")
	require.ErrorIs(t, err, ErrModuleNotFound)
}

func TestFindByAdaptor_PluralizesSingularRequest(t *testing.T) {
	t.Parallel()

	bundle := &plugin.Bundle{Adaptors: []string{"loopbacks"}}
	reg := New(nil)
	reg.RegisterBundle("botgrid-loopback", bundle)

	assert.Same(t, bundle, reg.FindByAdaptor("loopback"), "singular request must match plural-stored capability")
	assert.Same(t, bundle, reg.FindByAdaptor("loopbacks"), "plural request must pass through unchanged")
	assert.Nil(t, reg.FindByAdaptor("serial"))
}

func TestFindByDriver_PluralizesSingularRequest(t *testing.T) {
	t.Parallel()

	bundle := &plugin.Bundle{Drivers: []string{"pings"}}
	reg := New(nil)
	reg.RegisterBundle("botgrid-ping", bundle)

	assert.Same(t, bundle, reg.FindByDriver("ping"))
	assert.Nil(t, reg.FindByDriver("led"))
}

func TestFindBy_RegistrationOrderWins(t *testing.T) {
	t.Parallel()

	first := &plugin.Bundle{Adaptors: []string{"serials"}}
	second := &plugin.Bundle{Adaptors: []string{"serials"}}
	reg := New(nil)
	reg.RegisterBundle("mod-a", first)
	reg.RegisterBundle("mod-b", second)

	assert.Same(t, first, reg.FindByAdaptor("serial"))
}

func TestFindByModule(t *testing.T) {
	t.Parallel()

	bundle := &plugin.Bundle{}
	reg := New(nil)
	reg.RegisterBundle("botgrid-x", bundle)

	assert.Same(t, bundle, reg.FindByModule("botgrid-x"))
	assert.Nil(t, reg.FindByModule("botgrid-y"))
}

func TestRegisterBundle_Idempotent(t *testing.T) {
	t.Parallel()

	first := &plugin.Bundle{}
	second := &plugin.Bundle{}
	reg := New(nil)

	got := reg.RegisterBundle("botgrid-x", first)
	assert.Same(t, first, got)
	got = reg.RegisterBundle("botgrid-x", second)
	assert.Same(t, first, got, "re-registration must return the cached bundle")
	assert.Len(t, reg.Modules(), 1)
}

func TestPluralize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pings", pluralize("ping"))
	assert.Equal(t, "pings", pluralize("pings"))
	// A bare suffix check, not real pluralization.
	assert.Equal(t, "bus", pluralize("bus"))
}
