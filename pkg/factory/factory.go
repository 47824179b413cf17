package factory

import (
	"github.com/xpressai/xai-bedrock/pkg/components"
	"github.com/xpressai/xai-bedrock/pkg/llm"
)

// Factory creates components by their registered name
type Factory struct{}

// New creates a component factory backed by the global registry
func New() *Factory {
	return &Factory{}
}

// CreateComponent instantiates a fresh component by name
func (f *Factory) CreateComponent(name string) (components.Component, error) {
	constructor, ok := GetComponent(name)
	if !ok {
		return nil, llm.NewValidationError("unknown_component",
			"no component registered under name: "+name)
	}
	return constructor(), nil
}
