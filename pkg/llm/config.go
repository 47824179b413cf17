// Configuration types and environment fallbacks
package llm

import (
	"os"
	"strconv"
	"time"
)

// DefaultRegion is used when no region is configured anywhere
const DefaultRegion = "us-east-1"

// DefaultTimeout bounds a single model invocation
const DefaultTimeout = 60 * time.Second

// Config holds configuration for creating Bedrock clients.
//
// Credentials are optional: when AccessKeyID and SecretAccessKey are empty
// the AWS SDK default chain is used (environment, shared config, IAM roles).
type Config struct {
	Region          string            `json:"region,omitempty" yaml:"region,omitempty"`
	AccessKeyID     string            `json:"access_key_id,omitempty" yaml:"access_key_id,omitempty"`
	SecretAccessKey string            `json:"secret_access_key,omitempty" yaml:"secret_access_key,omitempty"`
	SessionToken    string            `json:"session_token,omitempty" yaml:"session_token,omitempty"`
	Endpoint        string            `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`                 // runtime plane
	ControlEndpoint string            `json:"control_endpoint,omitempty" yaml:"control_endpoint,omitempty"` // model catalog plane
	Timeout         time.Duration     `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	MaxRetries      int               `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	Extra           map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// HasStaticCredentials reports whether the config carries explicit keys
func (c Config) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// parseTimeoutFromEnv parses timeout from environment variable with fallback to default
func parseTimeoutFromEnv(envVar string, defaultTimeout time.Duration) time.Duration {
	if timeoutStr := os.Getenv(envVar); timeoutStr != "" {
		if timeoutSecs, err := strconv.Atoi(timeoutStr); err == nil && timeoutSecs > 0 {
			return time.Duration(timeoutSecs) * time.Second
		}
	}
	return defaultTimeout
}

// ConfigFromEnv builds a Config from the standard AWS environment variables,
// plus BEDROCK_ENDPOINT and BEDROCK_TIMEOUT (seconds) overrides.
func ConfigFromEnv() Config {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		region = DefaultRegion
	}

	return Config{
		Region:          region,
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Endpoint:        os.Getenv("BEDROCK_ENDPOINT"),
		Timeout:         parseTimeoutFromEnv("BEDROCK_TIMEOUT", DefaultTimeout),
	}
}
