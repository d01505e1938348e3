package config

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

// Enabled reports whether run reports should be delivered to a chat.
func (config TelegramConfig) Enabled() bool {
	return config.Token != "" && config.ChatID != 0
}

func (config TelegramConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"telegram.token":   "TG_TOKEN",
		"telegram.chat_id": "TG_CHAT_ID",
	})
}
