package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Logging     LoggingConfig  `toml:"logging"`
	Datasets    DatasetsConfig `toml:"datasets"`
	Output      OutputConfig   `toml:"output"`
	Gemini      GeminiConfig   `toml:"gemini"`
	Claude      ClaudeConfig   `toml:"claude"`
	LLM         LLMConfig      `toml:"llm"`
	Deploy      DeployConfig   `toml:"deploy"`
	Jobs        JobsConfig     `toml:"jobs"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output []string `toml:"output"`                                      // "stdout", "file"
}

// DatasetsConfig locates the local JSON collections the filter step reads
type DatasetsConfig struct {
	Dir               string `toml:"dir" validate:"required"`
	DefaultCollection string `toml:"default_collection" validate:"required"`
}

// OutputConfig controls where generated websites are written
type OutputConfig struct {
	Dir string `toml:"dir" validate:"required"` // Root directory for per-job project directories
}

// GeminiConfig contains Google Gemini API configuration.
// MaxTokens is tuned lower than Claude's for cost/latency reasons.
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	RateLimit   string  `toml:"rate_limit"`  // Duration string, e.g. "4s" for 15 RPM
	Temperature float32 `toml:"temperature"` // Default when the caller does not set one
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	RateLimit   string  `toml:"rate_limit"`
	Temperature float32 `toml:"temperature"`
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	LLMProviderGemini LLMProvider = "gemini"
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains unified configuration for all AI providers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider" validate:"oneof=gemini claude"`
}

// DeployConfig contains hosting CLI configuration. An empty Token means
// deployment is skipped entirely, which is not an error.
type DeployConfig struct {
	Token   string `toml:"token"`
	Command string `toml:"command"` // Hosting CLI binary (default "vercel")
	Timeout string `toml:"timeout"` // Duration string for one deploy invocation
}

// JobsConfig contains job store policy settings
type JobsConfig struct {
	LogCap int `toml:"log_cap" validate:"gt=0"` // Max log entries retained per job (oldest evicted)
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in sitesmith.toml; technical
// parameters are hardcoded here for stability.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Datasets: DatasetsConfig{
			Dir:               "./datasets",
			DefaultCollection: "movies",
		},
		Output: OutputConfig{
			Dir: "./generated",
		},
		Gemini: GeminiConfig{
			APIKey:      "",
			Model:       "gemini-3-flash-preview",
			MaxTokens:   4096, // Tuned lower than Claude for cost/latency
			RateLimit:   "4s", // 15 RPM free tier
			Temperature: 0.3,
		},
		Claude: ClaudeConfig{
			APIKey:      "",
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   8192,
			RateLimit:   "1s",
			Temperature: 0.3,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
		Deploy: DeployConfig{
			Token:   "",
			Command: "vercel",
			Timeout: "5m",
		},
		Jobs: JobsConfig{
			LogCap: 1000,
		},
	}
}

// LoadFromFiles loads configuration from files with priority:
// defaults -> file1 -> file2 -> ... -> env. Later files override earlier
// files; environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks structural constraints on the resolved configuration
func Validate(config *Config) error {
	v := validator.New()
	if err := v.Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SITESMITH_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("SITESMITH_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SITESMITH_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("SITESMITH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("SITESMITH_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Dataset and output locations
	if dir := os.Getenv("SITESMITH_DATASETS_DIR"); dir != "" {
		config.Datasets.Dir = dir
	}
	if dir := os.Getenv("SITESMITH_OUTPUT_DIR"); dir != "" {
		config.Output.Dir = dir
	}

	// AI provider credentials and models. The vendor-standard variables
	// (GEMINI_API_KEY, ANTHROPIC_API_KEY) are honored so .env files work
	// without SITESMITH_ prefixes.
	if key := os.Getenv("SITESMITH_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if model := os.Getenv("SITESMITH_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
	if key := os.Getenv("SITESMITH_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if model := os.Getenv("SITESMITH_CLAUDE_MODEL"); model != "" {
		config.Claude.Model = model
	}
	if provider := os.Getenv("SITESMITH_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}

	// Deployment credentials. VERCEL_TOKEN is the CLI's own variable.
	if token := os.Getenv("SITESMITH_DEPLOY_TOKEN"); token != "" {
		config.Deploy.Token = token
	} else if token := os.Getenv("VERCEL_TOKEN"); token != "" {
		config.Deploy.Token = token
	}
	if cmd := os.Getenv("SITESMITH_DEPLOY_COMMAND"); cmd != "" {
		config.Deploy.Command = cmd
	}
}
