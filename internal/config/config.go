package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/oshokin/admin-client/internal/constants"
	"github.com/oshokin/admin-client/internal/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings.
type Config struct {
	// BaseAPI is the base endpoint every request path is resolved against.
	BaseAPI string `mapstructure:"base_api"`
	// AuthToken is the session token returned by the login endpoint.
	AuthToken string `mapstructure:"auth_token"`
	// TokenHeader is the name of the header the session token is sent in.
	TokenHeader string `mapstructure:"token_header"`
	// RequestTimeout is the overall timeout of a single request (e.g., "5s").
	RequestTimeout string `mapstructure:"request_timeout"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// MaxLogLength caps the size of logged request/response dumps (e.g., "1 MB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// AssumeYes accepts every confirmation prompt without asking.
	AssumeYes bool `mapstructure:"assume_yes"`
	// Filename is the configuration file the settings were read from.
	Filename string `mapstructure:"-"`
	// ParsedRequestTimeout is the parsed request timeout.
	ParsedRequestTimeout time.Duration `mapstructure:"-"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `mapstructure:"-"`
	// ParsedMaxLogLength is the parsed maximum dump length in bytes.
	ParsedMaxLogLength uint64 `mapstructure:"-"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".admin-client.yaml"

	// DefaultEnvFilename is the dotenv file read before the environment is consulted.
	DefaultEnvFilename = ".env"

	// EnvPrefix prefixes every environment variable the configuration reads.
	EnvPrefix = "ADMIN_CLIENT"

	// DefaultRequestTimeout is the overall request timeout.
	DefaultRequestTimeout = "5s"

	// DefaultLogLevel is the log level used when none is configured.
	DefaultLogLevel = "info"

	// DefaultMaxLogLength is the default maximum size (in bytes) for logged dumps.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	authTokenKey = "auth_token"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyBaseAPI indicates that the base endpoint is missing.
	ErrEmptyBaseAPI = errors.New("base_api cannot be empty")
	// ErrInvalidBaseAPI indicates that the base endpoint is not an absolute HTTP(S) URL.
	ErrInvalidBaseAPI = errors.New("base_api must be an absolute http(s) URL")
	// ErrEmptyTokenHeader indicates that the token header name is blank.
	ErrEmptyTokenHeader = errors.New("token_header cannot be empty")
	// ErrInvalidRequestTimeout indicates that the request timeout is not positive.
	ErrInvalidRequestTimeout = errors.New("request_timeout must be positive")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// LoadConfig loads configuration settings from a YAML file, a dotenv file and the environment.
// A missing default configuration file is not an error, the environment may carry everything.
func LoadConfig(configFilename string) (*Config, error) {
	isDefaultFilename := configFilename == ""
	if isDefaultFilename {
		configFilename = DefaultConfigFilename
	}

	if err := loadDotEnv(DefaultEnvFilename); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(configFilename)

	_, statErr := os.Stat(configFilename)
	if statErr == nil || !isDefaultFilename {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Filename = configFilename

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	baseAPI := strings.TrimSpace(cfg.BaseAPI)
	if baseAPI == "" {
		return ErrEmptyBaseAPI
	}

	parsedBaseAPI, err := url.Parse(baseAPI)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseAPI, err)
	}

	if (parsedBaseAPI.Scheme != "http" && parsedBaseAPI.Scheme != "https") || parsedBaseAPI.Host == "" {
		return fmt.Errorf("%w: '%s'", ErrInvalidBaseAPI, baseAPI)
	}

	cfg.BaseAPI = baseAPI
	cfg.AuthToken = strings.TrimSpace(cfg.AuthToken)

	cfg.TokenHeader = strings.TrimSpace(cfg.TokenHeader)
	if cfg.TokenHeader == "" {
		return ErrEmptyTokenHeader
	}

	cfg.ParsedRequestTimeout, err = time.ParseDuration(cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse request timeout: %w", err)
	}

	if cfg.ParsedRequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	cfg.ParsedMaxLogLength = DefaultMaxLogLength

	if maxLogLength := strings.TrimSpace(cfg.MaxLogLength); maxLogLength != "" {
		cfg.ParsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
		if err != nil {
			return fmt.Errorf("failed to parse max log length: %w", err)
		}
	}

	return nil
}

// SaveConfig saves the session token to the configuration file while preserving the original format and order.
func SaveConfig(cfg *Config) error {
	configFile := cfg.Filename
	if configFile == "" {
		configFile = DefaultConfigFilename
	}

	// Read the original file content.
	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if !updateAuthTokenInNode(&node, cfg.AuthToken) {
		appendAuthTokenToNode(&node, cfg.AuthToken)
	}

	// Marshal back to YAML (preserves order).
	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFile, newContent, constants.PrivateFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults make every key visible to AutomaticEnv during Unmarshal.
	v.SetDefault("base_api", "")
	v.SetDefault(authTokenKey, "")
	v.SetDefault("token_header", constants.DefaultTokenHeader)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("max_log_length", humanize.IBytes(DefaultMaxLogLength))
	v.SetDefault("assume_yes", false)

	return v
}

// loadDotEnv exports the variables of a dotenv file without overriding the real environment.
func loadDotEnv(filename string) error {
	err := godotenv.Load(filename)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("failed to load %s: %w", filename, err)
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile string, cfg *Config, err error) error {
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	content, err := yaml.Marshal(map[string]any{
		"base_api":        cfg.BaseAPI,
		authTokenKey:      cfg.AuthToken,
		"token_header":    cfg.TokenHeader,
		"request_timeout": cfg.RequestTimeout,
		"log_level":       cfg.LogLevel,
		"max_log_length":  cfg.MaxLogLength,
		"assume_yes":      cfg.AssumeYes,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFile, content, constants.PrivateFilePermissions); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// updateAuthTokenInNode updates the auth_token value in the YAML node tree.
// It reports whether the key was found.
func updateAuthTokenInNode(node *yaml.Node, authToken string) bool {
	// The root node is a document node, content[0] is the actual map.
	if len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return false
	}

	mapNode := node.Content[0]

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i+1 < len(mapNode.Content); i += 2 {
		keyNode := mapNode.Content[i]
		valueNode := mapNode.Content[i+1]

		if keyNode.Value != authTokenKey {
			continue
		}

		valueNode.Kind = yaml.ScalarNode
		valueNode.Tag = "!!str"
		valueNode.Value = authToken

		if valueNode.Style == 0 {
			valueNode.Style = yaml.DoubleQuotedStyle
		}

		return true
	}

	return false
}

// appendAuthTokenToNode adds an auth_token entry to the end of the mapping.
func appendAuthTokenToNode(node *yaml.Node, authToken string) {
	if len(node.Content) == 0 {
		node.Kind = yaml.DocumentNode
		node.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}

	mapNode := node.Content[0]
	if mapNode.Kind != yaml.MappingNode {
		return
	}

	mapNode.Content = append(mapNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: authTokenKey},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: authToken, Style: yaml.DoubleQuotedStyle},
	)
}
