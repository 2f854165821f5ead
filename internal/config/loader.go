// Package config loads the application configuration. Values come from the
// defaults, then the YAML file if one exists, then environment variables for
// anything secret.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads path into a Config. A missing file is not an error; the
// defaults are returned with environment overrides applied.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setIfPresent(&cfg.Server.APIKey, "SHOPBOT_API_KEY")
	setIfPresent(&cfg.Agent.APIKey, "SHOPBOT_LLM_API_KEY")
	setIfPresent(&cfg.Agent.BaseURL, "SHOPBOT_LLM_BASE_URL")
	setIfPresent(&cfg.Agent.Model, "SHOPBOT_LLM_MODEL")
	setIfPresent(&cfg.Worldpay.BaseURL, "WORLDPAY_BASE_URL")
	setIfPresent(&cfg.Worldpay.Username, "WORLDPAY_USERNAME")
	setIfPresent(&cfg.Worldpay.Password, "WORLDPAY_PASSWORD")
	setIfPresent(&cfg.Worldpay.MerchantEntity, "WORLDPAY_MERCHANT_ENTITY")
	setIfPresent(&cfg.Channels.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setIfPresent(&cfg.Channels.Slack.BotToken, "SLACK_BOT_TOKEN")
	setIfPresent(&cfg.Channels.Slack.AppToken, "SLACK_APP_TOKEN")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
