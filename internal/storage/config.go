package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lin-Jiong-HDU/nlterm/internal/core/security"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config"
	ConfigFileType = "yaml"
	NltermDirName  = ".nlterm"
	LogDirName     = "logs"
)

var config *Config

// Config holds the application configuration
type Config struct {
	Log      LogConfig               `mapstructure:"log"`
	Shell    ShellConfig             `mapstructure:"shell"`
	Security security.SecurityPolicy `mapstructure:"security"`
	Pip      PipConfig               `mapstructure:"pip"`
	System   SystemConfig            `mapstructure:"system"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	// File enables the dated log file under ~/.nlterm/logs.
	File bool `mapstructure:"file"`
}

// ShellConfig holds interactive shell configuration
type ShellConfig struct {
	UI          string `mapstructure:"ui"`
	HistorySize int    `mapstructure:"history_size"`
	HistoryFile string `mapstructure:"history_file"`
}

// PipConfig holds package manager configuration
type PipConfig struct {
	Command []string `mapstructure:"command"`
	Timeout int      `mapstructure:"timeout"`
}

// SystemConfig holds system report configuration
type SystemConfig struct {
	ProcessLimit int `mapstructure:"process_limit"`
}

const (
	UITUI   = "tui"
	UIPlain = "plain"
)

// GetConfigDir returns the nlterm config directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, NltermDirName), nil
}

// GetLogDir returns the directory log files are written to
func GetLogDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogDirName), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", true)

	v.SetDefault("shell.ui", UITUI)
	v.SetDefault("shell.history_size", 100)
	v.SetDefault("shell.history_file", "history.json")

	v.SetDefault("security.restricted_paths", []string{})
	v.SetDefault("security.allowed_paths", []string{})
	v.SetDefault("security.protected_files", []string{})

	v.SetDefault("pip.command", []string{"python3", "-m", "pip"})
	v.SetDefault("pip.timeout", 120)

	v.SetDefault("system.process_limit", 20)
}

// InitConfig initializes the configuration
func InitConfig() (*Config, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, err
	}

	// Create config directory if not exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("NLTERM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (ignore if not exists)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	config = &cfg
	return config, nil
}

// Validate rejects settings the shell cannot run with.
func (c *Config) Validate() error {
	switch c.Shell.UI {
	case UITUI, UIPlain:
	default:
		return fmt.Errorf("invalid shell.ui %q: expected %q or %q", c.Shell.UI, UITUI, UIPlain)
	}
	if c.Shell.HistorySize < 0 {
		return fmt.Errorf("invalid shell.history_size %d", c.Shell.HistorySize)
	}
	if len(c.Pip.Command) == 0 {
		return fmt.Errorf("pip.command must name a program")
	}
	if c.Pip.Timeout <= 0 {
		return fmt.Errorf("invalid pip.timeout %d", c.Pip.Timeout)
	}
	return nil
}

// HistoryPath resolves shell.history_file against the config directory.
func (c *Config) HistoryPath() (string, error) {
	if c.Shell.HistoryFile == "" {
		return "", nil
	}
	if filepath.IsAbs(c.Shell.HistoryFile) {
		return c.Shell.HistoryFile, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Shell.HistoryFile), nil
}

// GetConfig returns the loaded config
func GetConfig() *Config {
	return config
}

// SaveConfig saves the current config to file
func SaveConfig(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	// Create config directory if not exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(configDir)

	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	v.Set("shell.ui", cfg.Shell.UI)
	v.Set("shell.history_size", cfg.Shell.HistorySize)
	v.Set("shell.history_file", cfg.Shell.HistoryFile)

	// Save security config
	v.Set("security.restricted_paths", cfg.Security.RestrictedPaths)
	v.Set("security.allowed_paths", cfg.Security.AllowedPaths)
	v.Set("security.protected_files", cfg.Security.ProtectedFiles)

	v.Set("pip.command", cfg.Pip.Command)
	v.Set("pip.timeout", cfg.Pip.Timeout)

	v.Set("system.process_limit", cfg.System.ProcessLimit)

	configPath := filepath.Join(configDir, ConfigFileName+"."+ConfigFileType)
	return v.WriteConfigAs(configPath)
}
