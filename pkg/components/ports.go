package components

import "github.com/xpressai/xai-bedrock/pkg/llm"

// In is a typed input port. A port distinguishes "never set" from "set to the
// zero value", which matters for numeric sampling parameters.
type In[T any] struct {
	value T
	set   bool
}

// Set assigns the port's value
func (p *In[T]) Set(v T) {
	p.value = v
	p.set = true
}

// Get returns the port's value and whether it was set
func (p *In[T]) Get() (T, bool) {
	return p.value, p.set
}

// Value returns the port's value, or the zero value when unset
func (p *In[T]) Value() T {
	return p.value
}

// IsSet reports whether the port has been assigned
func (p *In[T]) IsSet() bool {
	return p.set
}

// Out is a typed output port, written by a component during Execute
type Out[T any] struct {
	value T
	set   bool
}

// Set assigns the port's value
func (p *Out[T]) Set(v T) {
	p.value = v
	p.set = true
}

// Value returns the port's value, or the zero value when unset
func (p *Out[T]) Value() T {
	return p.value
}

// IsSet reports whether the component produced a value
func (p *Out[T]) IsSet() bool {
	return p.set
}

// requireSet returns a validation error when a mandatory input port is unset
func requireSet[T any](port *In[T], name string) error {
	if !port.IsSet() {
		return llm.NewValidationError("missing_input", "missing required input: "+name)
	}
	return nil
}
