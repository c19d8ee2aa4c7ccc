package app

import (
	"fmt"

	"github.com/vk/botgrid/internal/plugin"
	"github.com/vk/botgrid/internal/registry"
	"github.com/vk/botgrid/modules/loopback"
	"github.com/vk/botgrid/modules/ping"
	"github.com/vk/botgrid/modules/socketio"
	"github.com/vk/botgrid/modules/testcore"
)

// builtinModules maps conventional module names to bundle constructors for
// every module compiled into this binary.
var builtinModules = map[string]func() *plugin.Bundle{
	loopback.ModuleName: loopback.Bundle,
	ping.ModuleName:     ping.Bundle,
	socketio.ModuleName: socketio.Bundle,
	testcore.ModuleName: testcore.Bundle,
}

// ModuleLoader returns a registry loader resolving the compiled-in modules.
// Resolution is a pure table lookup; there is no filesystem or package-index
// search.
func ModuleLoader() registry.Loader {
	return func(name string) (*plugin.Bundle, error) {
		if mk, ok := builtinModules[name]; ok {
			return mk(), nil
		}
		return nil, fmt.Errorf("no compiled-in module %q", name)
	}
}
