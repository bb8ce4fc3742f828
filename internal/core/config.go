package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/taskwise-ai/taskwise/pkg/models"
)

const configFileName = "config.yaml"

// ResolveBasePath determines the directory holding the task collection and
// settings. TASKWISE_HOME wins; otherwise ~/.taskwise, falling back to the
// current directory when the home directory cannot be determined.
func ResolveBasePath() string {
	if home := os.Getenv("TASKWISE_HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".taskwise")
}

// LoadSettings reads config.yaml from the base path using Viper. Missing
// files and missing keys fall back to defaults. The AI API key may also be
// supplied via TASKWISE_API_KEY or OPENAI_API_KEY.
func LoadSettings(basePath string) (models.Settings, error) {
	cfg := models.DefaultSettings()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(basePath)

	v.SetDefault("notifications.enabled", cfg.Notifications.Enabled)
	v.SetDefault("notifications.interval", cfg.Notifications.Interval)
	v.SetDefault("ai.base_url", cfg.AI.BaseURL)
	v.SetDefault("ai.model", cfg.AI.Model)
	v.SetDefault("ai.timeout", cfg.AI.Timeout)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.allowed_origins", cfg.Server.AllowedOrigins)
	v.SetDefault("default_sort", cfg.DefaultSort)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, fmt.Errorf("reading %s: %w", configFileName, err)
		}
	}

	cfg.Notifications.Enabled = v.GetBool("notifications.enabled")
	cfg.Notifications.Interval = v.GetDuration("notifications.interval")
	cfg.AI.BaseURL = v.GetString("ai.base_url")
	cfg.AI.Model = v.GetString("ai.model")
	cfg.AI.APIKey = v.GetString("ai.api_key")
	cfg.AI.Timeout = v.GetDuration("ai.timeout")
	cfg.Server.Addr = v.GetString("server.addr")
	cfg.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	cfg.DefaultSort = v.GetString("default_sort")

	if cfg.AI.APIKey == "" {
		if key := os.Getenv("TASKWISE_API_KEY"); key != "" {
			cfg.AI.APIKey = key
		} else {
			cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	if cfg.Notifications.Interval <= 0 {
		cfg.Notifications.Interval = time.Minute
	}

	return cfg, nil
}

// SaveSettings writes the settings back to config.yaml. An API key that
// came from the environment is not written to the file.
func SaveSettings(basePath string, cfg models.Settings) error {
	if err := os.MkdirAll(basePath, 0o750); err != nil {
		return fmt.Errorf("saving settings: creating directory: %w", err)
	}
	if key := cfg.AI.APIKey; key != "" &&
		(key == os.Getenv("TASKWISE_API_KEY") || key == os.Getenv("OPENAI_API_KEY")) {
		cfg.AI.APIKey = ""
	}
	data, err := yaml.Marshal(settingsFile{
		Notifications: cfg.Notifications,
		AI:            cfg.AI,
		Server:        cfg.Server,
		DefaultSort:   cfg.DefaultSort,
	})
	if err != nil {
		return fmt.Errorf("saving settings: marshaling YAML: %w", err)
	}
	path := filepath.Join(basePath, configFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("saving settings: writing %s: %w", configFileName, err)
	}
	return nil
}

// settingsFile mirrors models.Settings with the nested YAML layout used on
// disk.
type settingsFile struct {
	Notifications models.NotificationSettings `yaml:"notifications"`
	AI            models.AISettings           `yaml:"ai"`
	Server        models.ServerSettings       `yaml:"server"`
	DefaultSort   string                      `yaml:"default_sort"`
}
