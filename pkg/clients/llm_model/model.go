package llm_model

// ClientParams 创建客户端的必填参数
type ClientParams struct {
	BaseURL   string `json:"base_url"`
	APIKey    string `json:"api_key"`
	ModelName string `json:"model_name"`
}

// Config 客户端完整配置
type Config struct {
	BaseURL     string  `json:"base_url"`
	APIKey      string  `json:"api_key"`
	ModelName   string  `json:"model_name"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// Option 可选配置项
type Option func(*Config)

func DefaultConfig() *Config {
	return &Config{
		Temperature: 0.2,
		MaxTokens:   1024,
	}
}

func WithTemperature(t float32) Option {
	return func(c *Config) {
		c.Temperature = t
	}
}

func WithMaxTokens(n int) Option {
	return func(c *Config) {
		c.MaxTokens = n
	}
}
