package components

import (
	"context"

	"github.com/xpressai/xai-bedrock/pkg/llm"
)

// ListModels queries the Bedrock model catalog, optionally filtered by
// provider name ("Anthropic", "Amazon", ...)
type ListModels struct {
	Provider In[string]

	ModelIDs Out[[]string]
}

func (c *ListModels) Name() string { return "BedrockListModels" }

func (c *ListModels) Execute(ctx context.Context, scope *Scope) error {
	invoker, err := scope.Invoker()
	if err != nil {
		return err
	}

	lister, ok := invoker.(llm.ModelLister)
	if !ok {
		return llm.NewValidationError("listing_unsupported",
			"authorized client does not support listing models")
	}

	ids, err := lister.ListModels(ctx, c.Provider.Value())
	if err != nil {
		return err
	}

	c.ModelIDs.Set(ids)
	return nil
}
