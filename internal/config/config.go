package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Network settings
	Network   string `mapstructure:"network" yaml:"network"`
	RPCUrl    string `mapstructure:"rpc_url" yaml:"rpc_url"`
	WSUrl     string `mapstructure:"ws_url" yaml:"ws_url"`
	RPCAPIKey string `mapstructure:"rpc_api_key" yaml:"rpc_api_key"`

	// Wallet settings
	Wallet WalletConfig `mapstructure:"wallet" yaml:"wallet"`

	// Storage settings
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// Token registry settings
	Registry RegistryConfig `mapstructure:"registry" yaml:"registry"`

	// Logging settings
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Advanced settings
	Advanced AdvancedConfig `mapstructure:"advanced" yaml:"advanced"`
}

// WalletConfig contains wallet-related settings
type WalletConfig struct {
	PrivateKey     string `mapstructure:"private_key" yaml:"private_key"`         // base58, optional
	DerivationPath string `mapstructure:"derivation_path" yaml:"derivation_path"` // named path or raw path string
}

// StorageConfig contains permanent storage upload settings
type StorageConfig struct {
	APIEndpoint string `mapstructure:"api_endpoint" yaml:"api_endpoint"`
	GatewayURL  string `mapstructure:"gateway_url" yaml:"gateway_url"`
	APIKey      string `mapstructure:"api_key" yaml:"api_key"`
	TimeoutSec  int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// RegistryConfig contains token-list lookup settings
type RegistryConfig struct {
	TokenListURL string `mapstructure:"token_list_url" yaml:"token_list_url"`
	TimeoutSec   int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	LogToFile   bool   `mapstructure:"log_to_file" yaml:"log_to_file"`
	LogFilePath string `mapstructure:"log_file_path" yaml:"log_file_path"`
	JournalDir  string `mapstructure:"journal_dir" yaml:"journal_dir"`
}

// AdvancedConfig contains advanced settings
type AdvancedConfig struct {
	ConfirmTimeoutSec int    `mapstructure:"confirm_timeout_sec" yaml:"confirm_timeout_sec"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec" yaml:"request_timeout_sec"`
	Commitment        string `mapstructure:"commitment" yaml:"commitment"`
	SkipConfirmation  bool   `mapstructure:"skip_confirmation" yaml:"skip_confirmation"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string, envPath string) (*Config, error) {
	config := &Config{}

	// First, load .env file if specified or present in default locations
	if err := loadEnvFile(envPath); err != nil && envPath != "" {
		return nil, err
	}

	setDefaults()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("solkit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("$HOME/.solkit")
		viper.AddConfigPath("/etc/solkit/")
	}

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix("SOLKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, continue with defaults and env vars
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// loadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment so viper picks them up.
func loadEnvFile(envPath string) error {
	envFiles := []string{}
	if envPath != "" {
		envFiles = append(envFiles, envPath)
	}
	envFiles = append(envFiles, ".env", "configs/.env")

	var envFile string
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			envFile = file
			break
		}
	}
	if envFile == "" {
		if envPath != "" {
			return fmt.Errorf("specified .env file not found: %s", envPath)
		}
		return nil
	}

	file, err := os.Open(envFile)
	if err != nil {
		return fmt.Errorf("failed to open .env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, "=") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove surrounding quotes if present
		if len(value) >= 2 {
			if (strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"")) ||
				(strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) {
				value = value[1 : len(value)-1]
			}
		}

		os.Setenv(key, value)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading .env file: %w", err)
	}
	return nil
}

// bindEnvVariables manually binds environment variables that viper might miss
func bindEnvVariables() {
	viper.BindEnv("network", "SOLKIT_NETWORK")
	viper.BindEnv("rpc_url", "SOLKIT_RPC_URL")
	viper.BindEnv("ws_url", "SOLKIT_WS_URL")
	viper.BindEnv("rpc_api_key", "SOLKIT_RPC_API_KEY")

	viper.BindEnv("wallet.private_key", "SOLKIT_WALLET_PRIVATE_KEY")
	viper.BindEnv("wallet.derivation_path", "SOLKIT_WALLET_DERIVATION_PATH")

	viper.BindEnv("storage.api_endpoint", "SOLKIT_STORAGE_API_ENDPOINT")
	viper.BindEnv("storage.gateway_url", "SOLKIT_STORAGE_GATEWAY_URL")
	viper.BindEnv("storage.api_key", "SOLKIT_STORAGE_API_KEY")

	viper.BindEnv("registry.token_list_url", "SOLKIT_REGISTRY_TOKEN_LIST_URL")

	viper.BindEnv("logging.level", "SOLKIT_LOGGING_LEVEL")
	viper.BindEnv("logging.format", "SOLKIT_LOGGING_FORMAT")
	viper.BindEnv("logging.log_to_file", "SOLKIT_LOGGING_LOG_TO_FILE")

	viper.BindEnv("advanced.confirm_timeout_sec", "SOLKIT_ADVANCED_CONFIRM_TIMEOUT_SEC")
	viper.BindEnv("advanced.commitment", "SOLKIT_ADVANCED_COMMITMENT")
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("network", "devnet")
	viper.SetDefault("rpc_url", "")
	viper.SetDefault("ws_url", "")

	viper.SetDefault("wallet.derivation_path", "bip44Change")

	viper.SetDefault("storage.api_endpoint", DefaultStorageAPI)
	viper.SetDefault("storage.gateway_url", DefaultStorageGateway)
	viper.SetDefault("storage.timeout_sec", RequestTimeoutSec)

	viper.SetDefault("registry.token_list_url", DefaultTokenListURL)
	viper.SetDefault("registry.timeout_sec", RequestTimeoutSec)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.log_to_file", false)
	viper.SetDefault("logging.journal_dir", "journal")

	viper.SetDefault("advanced.confirm_timeout_sec", ConfirmTimeoutSec)
	viper.SetDefault("advanced.request_timeout_sec", RequestTimeoutSec)
	viper.SetDefault("advanced.commitment", "finalized")
	viper.SetDefault("advanced.skip_confirmation", false)
}

// validateConfig validates the configuration and fills in endpoint defaults
func validateConfig(config *Config) error {
	switch config.Network {
	case "mainnet", "devnet", "testnet":
	default:
		return fmt.Errorf("invalid network: %s (must be mainnet, devnet or testnet)", config.Network)
	}

	if config.RPCUrl == "" {
		config.RPCUrl = GetRPCEndpoint(config.Network)
	}
	if config.WSUrl == "" {
		config.WSUrl = GetWSEndpoint(config.Network)
	}

	switch config.Advanced.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("invalid commitment: %s", config.Advanced.Commitment)
	}

	if config.Advanced.ConfirmTimeoutSec <= 0 {
		config.Advanced.ConfirmTimeoutSec = ConfirmTimeoutSec
	}
	if config.Advanced.RequestTimeoutSec <= 0 {
		config.Advanced.RequestTimeoutSec = RequestTimeoutSec
	}

	return nil
}
