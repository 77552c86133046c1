package media

// ClientParams 创建客户端的必填参数
type ClientParams struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

// Config 客户端完整配置
type Config struct {
	BaseURL         string `json:"base_url"`
	APIKey          string `json:"api_key"`
	TranscribeModel string `json:"transcribe_model"`
	VisionModel     string `json:"vision_model"`
}

// Option 可选配置项
type Option func(*Config)

func DefaultConfig() *Config {
	return &Config{
		TranscribeModel: "whisper-1",
		VisionModel:     "gpt-4o-mini",
	}
}

func WithTranscribeModel(m string) Option {
	return func(c *Config) {
		if m != "" {
			c.TranscribeModel = m
		}
	}
}

func WithVisionModel(m string) Option {
	return func(c *Config) {
		if m != "" {
			c.VisionModel = m
		}
	}
}
