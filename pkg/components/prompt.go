package components

import (
	"context"

	"github.com/xpressai/xai-bedrock/pkg/llm"
)

// RenderPromptTemplate renders a Go text template against the Inputs map,
// producing a prompt string for downstream invocation components
type RenderPromptTemplate struct {
	Template In[string]
	Inputs   In[map[string]any]

	Rendered Out[string]
}

func (c *RenderPromptTemplate) Name() string { return "RenderPromptTemplate" }

func (c *RenderPromptTemplate) Execute(ctx context.Context, scope *Scope) error {
	if err := requireSet(&c.Template, "template"); err != nil {
		return err
	}

	out, err := llm.NewPromptTemplateRendered(c.Template.Value(), c.Inputs.Value())
	if err != nil {
		return llm.NewValidationError("invalid_template", err.Error())
	}

	c.Rendered.Set(out)
	return nil
}
