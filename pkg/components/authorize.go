package components

import (
	"context"

	"github.com/xpressai/xai-bedrock/pkg/bedrock"
	"github.com/xpressai/xai-bedrock/pkg/llm"
)

// Authorize configures a Bedrock client and places it in the scope for the
// invocation components. All ports are optional: with no static credentials
// the AWS default chain applies, and an empty region falls back to the
// library default.
type Authorize struct {
	AccessKeyID     In[string]
	SecretAccessKey In[string]
	SessionToken    In[string]
	Region          In[string]

	// newClient is swapped out by tests
	newClient func(llm.Config) (llm.Invoker, error)
}

func (c *Authorize) Name() string { return "BedrockAuthorize" }

func (c *Authorize) Execute(ctx context.Context, scope *Scope) error {
	cfg := llm.Config{
		AccessKeyID:     c.AccessKeyID.Value(),
		SecretAccessKey: c.SecretAccessKey.Value(),
		SessionToken:    c.SessionToken.Value(),
		Region:          c.Region.Value(),
	}

	construct := c.newClient
	if construct == nil {
		construct = func(cfg llm.Config) (llm.Invoker, error) {
			return bedrock.NewClient(cfg)
		}
	}

	client, err := construct(cfg)
	if err != nil {
		return err
	}

	scope.SetInvoker(client)
	return nil
}
