package openai

import "time"

const (
	// DefaultModel is the default chat model
	DefaultModel = "gpt-3.5-turbo"

	// DefaultBaseURL is the default OpenAI API endpoint
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// Base URLs of OpenAI-compatible vendors, keyed by provider name.
var VendorBaseURLs = map[string]string{
	"openai":   DefaultBaseURL,
	"qwen":     "https://dashscope-intl.aliyuncs.com/compatible-mode/v1",
	"alibaba":  "https://dashscope-intl.aliyuncs.com/compatible-mode/v1",
	"deepseek": "https://api.deepseek.com/v1",
	"groq":     "https://api.groq.com/openai/v1",
}
