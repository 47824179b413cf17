package bedrock

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"

	"github.com/xpressai/xai-bedrock/pkg/llm"
)

// Client implements the llm.Invoker interface for AWS Bedrock
type Client struct {
	controlClient *bedrock.Client
	runtimeClient *bedrockruntime.Client
	region        string
	timeout       time.Duration

	// Health check caching
	healthMu         sync.Mutex
	lastHealthCheck  *time.Time
	lastHealthStatus *bool
}

// NewClient creates a new AWS Bedrock client. When the config carries static
// credentials they take precedence; otherwise the AWS SDK default chain
// applies (environment, shared config, IAM roles).
func NewClient(cfg llm.Config) (*Client, error) {
	region := cfg.Region
	if region == "" {
		region = llm.DefaultRegion
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.HasStaticCredentials() {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, &llm.Error{
			Code:    "aws_config_error",
			Message: "failed to load AWS configuration: " + err.Error(),
			Type:    llm.ErrorTypeAuthentication,
		}
	}

	controlClient := bedrock.NewFromConfig(awsConfig, func(o *bedrock.Options) {
		if cfg.ControlEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.ControlEndpoint)
		} else if endpoint := cfg.Extra["bedrock_endpoint"]; endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	runtimeClient := bedrockruntime.NewFromConfig(awsConfig, func(o *bedrockruntime.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		} else if endpoint := cfg.Extra["bedrock_runtime_endpoint"]; endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &Client{
		controlClient: controlClient,
		runtimeClient: runtimeClient,
		region:        region,
		timeout:       cfg.Timeout,
	}, nil
}

// Invoke performs a blocking text-generation request
func (c *Client) Invoke(ctx context.Context, req llm.InvokeRequest) (*llm.InvokeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	payload, err := encodeRequest(req)
	if err != nil {
		return nil, convertError(err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	response, err := c.runtimeClient.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(req.Model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return nil, convertError(err)
	}

	return decodeResponse(req.Model, response.Body)
}

// StreamInvoke performs a streaming text-generation request
func (c *Client) StreamInvoke(ctx context.Context, req llm.InvokeRequest) (<-chan llm.StreamEvent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !c.GetModelInfo(req.Model).SupportsStreaming {
		return nil, llm.NewValidationError("streaming_unsupported",
			"model "+req.Model+" does not support streaming")
	}

	payload, err := encodeRequest(req)
	if err != nil {
		return nil, convertError(err)
	}

	response, err := c.runtimeClient.InvokeModelWithResponseStream(ctx, &bedrockruntime.InvokeModelWithResponseStreamInput{
		ModelId:     aws.String(req.Model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return nil, convertError(err)
	}

	ch := make(chan llm.StreamEvent, 10)

	go func() {
		defer close(ch)

		finishReason := "stop"
		for event := range response.GetStream().Events() {
			switch v := event.(type) {
			case *types.ResponseStreamMemberChunk:
				text, finish, err := decodeStreamChunk(req.Model, v.Value.Bytes)
				if err != nil {
					ch <- llm.NewErrorEvent(convertError(err))
					return
				}
				if finish != "" {
					finishReason = finish
				}
				if text != "" {
					select {
					case ch <- llm.NewDeltaEvent(text):
					case <-ctx.Done():
						return
					}
				}
			default:
				// Unknown event type, continue processing
				continue
			}
		}

		if err := response.GetStream().Err(); err != nil {
			ch <- llm.NewErrorEvent(convertError(err))
			return
		}

		ch <- llm.NewDoneEvent(finishReason)
	}()

	return ch, nil
}

// ListModels returns the foundation model ids available to the caller,
// optionally filtered by provider name
func (c *Client) ListModels(ctx context.Context, provider string) ([]string, error) {
	input := &bedrock.ListFoundationModelsInput{}
	if provider != "" {
		input.ByProvider = aws.String(provider)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	output, err := c.controlClient.ListFoundationModels(ctx, input)
	if err != nil {
		return nil, convertError(err)
	}

	ids := make([]string, 0, len(output.ModelSummaries))
	for _, summary := range output.ModelSummaries {
		ids = append(ids, aws.ToString(summary.ModelId))
	}
	return ids, nil
}

// GetRemote returns information about the remote service
func (c *Client) GetRemote() llm.ClientRemoteInfo {
	info := llm.ClientRemoteInfo{
		Name: "bedrock",
	}

	c.healthMu.Lock()
	defer c.healthMu.Unlock()

	now := time.Now()
	needsRefresh := c.lastHealthCheck == nil ||
		now.Sub(*c.lastHealthCheck) >= llm.DefaultHealthCheckInterval

	if needsRefresh {
		healthy := c.performHealthCheck()
		c.lastHealthStatus = &healthy
		c.lastHealthCheck = &now
	}

	info.Status = &llm.ClientRemoteInfoStatus{
		Healthy:     c.lastHealthStatus,
		LastChecked: c.lastHealthCheck,
	}

	return info
}

// performHealthCheck performs a simple health check against the model catalog
func (c *Client) performHealthCheck() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := c.controlClient.ListFoundationModels(ctx, &bedrock.ListFoundationModelsInput{})
	return err == nil
}

// GetModelInfo returns information about the given model
func (c *Client) GetModelInfo(model string) llm.ModelInfo {
	family := llm.FamilyOf(model)

	return llm.ModelInfo{
		Name:              model,
		Provider:          "bedrock",
		Family:            family,
		MaxTokens:         maxTokensForModel(model, family),
		SupportsChat:      true,
		SupportsStreaming: family != llm.FamilyAI21,
	}
}

// Close cleans up any resources used by the client
func (c *Client) Close() error {
	// AWS SDK clients don't require explicit cleanup
	return nil
}

// maxTokensForModel returns the context window for the given model
func maxTokensForModel(model string, family llm.ModelFamily) int {
	switch family {
	case llm.FamilyClaude3:
		return 200000
	case llm.FamilyClaudeLegacy:
		return 100000
	case llm.FamilyTitan:
		return 8000
	case llm.FamilyMeta:
		if strings.Contains(model, "70b") {
			return 4096
		}
		return 2048
	case llm.FamilyAI21:
		return 8192
	default:
		return 4000
	}
}

// convertError converts AWS SDK errors to the standardized error format
func convertError(err error) *llm.Error {
	if err == nil {
		return nil
	}

	var llmErr *llm.Error
	if errors.As(err, &llmErr) {
		return llmErr
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		message := apiErr.ErrorMessage()

		switch code {
		case "UnrecognizedClientException", "AccessDeniedException",
			"ExpiredTokenException", "InvalidSignatureException", "AuthFailure":
			return &llm.Error{
				Code:       "authentication_error",
				Message:    message,
				Type:       llm.ErrorTypeAuthentication,
				StatusCode: 401,
			}
		case "ThrottlingException", "TooManyRequestsException", "ServiceQuotaExceededException":
			return &llm.Error{
				Code:       "rate_limit_error",
				Message:    message,
				Type:       llm.ErrorTypeRateLimit,
				StatusCode: 429,
			}
		case "ResourceNotFoundException":
			return &llm.Error{
				Code:       "model_not_found",
				Message:    message,
				Type:       llm.ErrorTypeValidation,
				StatusCode: 404,
			}
		case "ValidationException":
			if strings.Contains(message, "model") {
				return &llm.Error{
					Code:       "model_not_found",
					Message:    message,
					Type:       llm.ErrorTypeValidation,
					StatusCode: 404,
				}
			}
			return &llm.Error{
				Code:       "validation_error",
				Message:    message,
				Type:       llm.ErrorTypeValidation,
				StatusCode: 400,
			}
		case "ModelTimeoutException", "ServiceUnavailableException", "InternalServerException":
			return &llm.Error{
				Code:       "service_unavailable",
				Message:    message,
				Type:       llm.ErrorTypeAPI,
				StatusCode: 503,
			}
		}

		return &llm.Error{
			Code:    "api_error",
			Message: message,
			Type:    llm.ErrorTypeAPI,
		}
	}

	return &llm.Error{
		Code:    "api_error",
		Message: err.Error(),
		Type:    llm.ErrorTypeAPI,
	}
}

// withTimeout bounds the context with the configured timeout, if any
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}

// Ensure Client satisfies the invoker contracts
var (
	_ llm.Invoker     = (*Client)(nil)
	_ llm.ModelLister = (*Client)(nil)
)
