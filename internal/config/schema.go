package config

// Config is the full application configuration, loaded from YAML with
// environment overrides for secrets.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Agent    AgentConfig    `yaml:"agent"`
	Worldpay WorldpayConfig `yaml:"worldpay"`
	Channels ChannelsConfig `yaml:"channels"`
	Sessions SessionsConfig `yaml:"sessions"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Addr   string `yaml:"addr"`
	APIKey string `yaml:"api_key"`
}

// AgentConfig configures the LLM provider behind the assistant.
type AgentConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	MaxRounds   int     `yaml:"max_rounds"`
}

// WorldpayConfig carries the Access gateway credentials. Username and
// password come from the environment in production.
type WorldpayConfig struct {
	BaseURL        string `yaml:"base_url"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	MerchantEntity string `yaml:"merchant_entity"`
}

type ChannelsConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Slack    SlackConfig    `yaml:"slack"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
}

type SlackConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	AppToken string `yaml:"app_token"`
}

// SessionsConfig governs idle session eviction.
type SessionsConfig struct {
	IdleTTLMinutes int    `yaml:"idle_ttl_minutes"`
	SweepSchedule  string `yaml:"sweep_schedule"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration, suitable for local
// development against an Ollama endpoint and the Worldpay sandbox.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8000",
		},
		Agent: AgentConfig{
			BaseURL:     "http://localhost:11434/v1",
			Model:       "qwen3:8b",
			MaxTokens:   1024,
			Temperature: 0.3,
			MaxRounds:   10,
		},
		Worldpay: WorldpayConfig{
			BaseURL:        "https://try.access.worldpay.com",
			MerchantEntity: "default",
		},
		Sessions: SessionsConfig{
			IdleTTLMinutes: 60,
			SweepSchedule:  "@every 5m",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
