package models

import "time"

// Settings holds user-level configuration, persisted as a single YAML
// document alongside the task collection.
type Settings struct {
	Notifications NotificationSettings `yaml:"notifications" json:"notifications"`
	AI            AISettings           `yaml:"ai" json:"ai"`
	Server        ServerSettings       `yaml:"server" json:"server"`
	DefaultSort   string               `yaml:"default_sort" json:"default_sort"`
}

// NotificationSettings gates the reminder monitor. Enabled plays the role
// of the browser notification permission grant: while false, notices are
// suppressed and the monitor hints once about enabling them.
type NotificationSettings struct {
	Enabled  bool          `yaml:"enabled" json:"enabled"`
	Interval time.Duration `yaml:"interval" json:"interval"`
}

// AISettings configures the chat-completion backend used by the
// suggestion gateway. APIKey is read from config or the environment.
type AISettings struct {
	BaseURL string        `yaml:"base_url" json:"base_url"`
	Model   string        `yaml:"model" json:"model"`
	APIKey  string        `yaml:"api_key,omitempty" json:"-"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// ServerSettings configures the HTTP API surface.
type ServerSettings struct {
	Addr           string   `yaml:"addr" json:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{
			Enabled:  true,
			Interval: time.Minute,
		},
		AI: AISettings{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
			Timeout: 15 * time.Second,
		},
		Server: ServerSettings{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		DefaultSort: "priority",
	}
}
