package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/muurk/wordlebuddy/internal/logging"
)

const (
	appName    = "wordlebuddy"
	configFile = "config.yaml"
	logFile    = "wordlebuddy.log"

	// SolverURLEnvVar overrides solver.base_url
	SolverURLEnvVar = "WORDLEBUDDY_SOLVER_URL"

	// DotEnvFile is read from the working directory when present
	DotEnvFile = ".env"
)

var (
	// Global config instance (loaded lazily)
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigErr  error

	// Mutex for thread-safe file operations
	fileMutex sync.Mutex
)

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/wordlebuddy or $HOME/.config/wordlebuddy
//   - macOS: $HOME/.config/wordlebuddy (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\wordlebuddy
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// GetLogPath returns the default log file for interactive sessions.
// The directory is created if needed.
func GetLogPath() (string, error) {
	if err := ensureConfigDir(); err != nil {
		return "", err
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, logFile), nil
}

// ensureConfigDir ensures the configuration directory exists.
func ensureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// LoadDotEnv loads DotEnvFile from the working directory into the process
// environment. Variables already set win. A missing file is not an error.
func LoadDotEnv() error {
	return loadDotEnvFile(DotEnvFile)
}

func loadDotEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		logging.Debug("Loaded environment file")
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// Load loads the configuration from disk, applies environment overrides and
// validates it. If the file doesn't exist, defaults are used.
// Thread-safe - multiple calls will return the same instance.
func Load() (*Config, error) {
	globalConfigOnce.Do(func() {
		configPath, err := GetConfigPath()
		if err != nil {
			globalConfigErr = fmt.Errorf("failed to get config path: %w", err)
			return
		}
		globalConfig, globalConfigErr = LoadFrom(configPath)
	})
	return globalConfig, globalConfigErr
}

// LoadFrom loads a configuration file from path. A missing file yields defaults.
func LoadFrom(path string) (*Config, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, CurrentVersion)
	}

	cfg.fillDefaults()
	return &cfg, nil
}

// ApplyEnv applies environment overrides. Overrides are never saved.
func (c *Config) ApplyEnv() {
	if url := strings.TrimSpace(os.Getenv(SolverURLEnvVar)); url != "" {
		if c.Solver == nil {
			c.Solver = NewConfig().Solver
		}
		if c.envBaseURL == "" {
			c.fileBaseURL = c.Solver.BaseURL
		}
		c.envBaseURL = url
		c.Solver.BaseURL = url
	}
}

// persisted returns the config as it should be written to disk
func (c *Config) persisted() *Config {
	if c.envBaseURL == "" || c.Solver == nil || c.Solver.BaseURL != c.envBaseURL {
		return c
	}
	out := *c
	solverSettings := *c.Solver
	solverSettings.BaseURL = c.fileBaseURL
	out.Solver = &solverSettings
	return &out
}

// Save saves the configuration to the default path.
// Performs an atomic write to prevent corruption on crash.
func (c *Config) Save() error {
	if err := ensureConfigDir(); err != nil {
		return fmt.Errorf("failed to ensure config directory exists: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return c.SaveTo(configPath)
}

// SaveTo writes the configuration to path atomically
func (c *Config) SaveTo(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	data, err := yaml.Marshal(c.persisted())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# wordlebuddy configuration file
#
# Environment overrides: ` + SolverURLEnvVar + `, ` + logging.LogLevelEnvVar + `, ` + logging.LogFileEnvVar + `
# A .env file in the working directory is also read.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig writes a default configuration file.
// It refuses to overwrite an existing file unless force is set.
func CreateDefaultConfig(force bool) (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); err == nil && !force {
		return configPath, fmt.Errorf("config file already exists: %s", configPath)
	}

	return configPath, NewConfig().Save()
}
