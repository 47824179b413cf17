// Package factory provides name-based construction of workflow components,
// so an engine can instantiate them from a serialized workflow definition.
package factory

import (
	"sort"
	"sync"

	"github.com/xpressai/xai-bedrock/pkg/components"
)

// ComponentConstructor creates a fresh component instance
type ComponentConstructor func() components.Component

var (
	registryMu sync.RWMutex
	registry   = make(map[string]ComponentConstructor)
)

// RegisterComponent makes a component available under the given name.
// Registering the same name twice replaces the previous constructor.
func RegisterComponent(name string, constructor ComponentConstructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = constructor
}

// GetComponent returns the constructor registered under the given name
func GetComponent(name string) (ComponentConstructor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	constructor, ok := registry[name]
	return constructor, ok
}

// ListComponents returns the registered component names, sorted
func ListComponents() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterComponent("BedrockAuthorize", func() components.Component {
		return &components.Authorize{}
	})
	RegisterComponent("BedrockInvokeModel", func() components.Component {
		return &components.InvokeModel{}
	})
	RegisterComponent("BedrockInvokeModelChat", func() components.Component {
		return &components.InvokeModelChat{}
	})
	RegisterComponent("BedrockInvokeModelStream", func() components.Component {
		return &components.InvokeModelStream{}
	})
	RegisterComponent("BedrockListModels", func() components.Component {
		return &components.ListModels{}
	})
	RegisterComponent("RenderPromptTemplate", func() components.Component {
		return &components.RenderPromptTemplate{}
	})
}
