package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress  = "localhost:8080"
	defaultEnv            = "local"
	defaultConfigDir      = ".nexuslean"
	defaultRequestTimeout = 5
	defaultListTimeout    = 30
	defaultDebounceMillis = 1500
)

type Config struct {
	Env            string `mapstructure:"app_env"`
	ServerAddress  string `mapstructure:"server_address"`
	EnableTLS      bool   `mapstructure:"enable_tls"`
	ConfigDir      string `mapstructure:"config_dir"`
	TokenPath      string `mapstructure:"token_path"`
	DataPath       string `mapstructure:"data_path"`
	CompanyID      string `mapstructure:"company_id"`
	RequestTimeout int    `mapstructure:"request_timeout_seconds"`
	ListTimeout    int    `mapstructure:"list_timeout_seconds"`
	DebounceMillis int    `mapstructure:"sync_debounce_millis"`
}

// MustLoad loads the client configuration from .env and the environment.
func MustLoad() *Config {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("failed to load .env file: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", defaultRequestTimeout)
	viper.SetDefault("LIST_TIMEOUT_SECONDS", defaultListTimeout)
	viper.SetDefault("SYNC_DEBOUNCE_MILLIS", defaultDebounceMillis)
	viper.SetDefault("ENABLE_TLS", false)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("failed to create config directory: %v\n", err)
	}

	config := &Config{
		Env:            viper.GetString("APP_ENV"),
		ServerAddress:  viper.GetString("SERVER_ADDRESS"),
		EnableTLS:      viper.GetBool("ENABLE_TLS"),
		ConfigDir:      configDir,
		TokenPath:      filepath.Join(configDir, "token"),
		DataPath:       filepath.Join(configDir, "pending.db"),
		CompanyID:      viper.GetString("COMPANY_ID"),
		RequestTimeout: viper.GetInt("REQUEST_TIMEOUT_SECONDS"),
		ListTimeout:    viper.GetInt("LIST_TIMEOUT_SECONDS"),
		DebounceMillis: viper.GetInt("SYNC_DEBOUNCE_MILLIS"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("configuration error: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
