package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/bookshelf/internal/cmd/globals"
	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
)

// envPrefix namespaces environment variables. Each key is also read
// from its bare upper-case name.
const envPrefix = "BOOKSHELF"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Store configuration
	Store       string
	StoreFormat string
	StoreDriver string
	StoreTable  string
	StorePrefix string

	// Library behavior
	UniqueUserIDs   bool
	CascadeRemovals bool

	// HTTP API
	ServerHost string
	ServerPort int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// configKeys lists every key read from the environment.
var configKeys = []string{
	"verbose", "quiet", "no_color", "output",
	"store", "store_format", "store_driver", "store_table", "store_prefix",
	"unique_user_ids", "cascade_removals",
	"server_host", "server_port",
	"log_level", "log_format", "log_output",
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (BOOKSHELF_STORE or STORE)
// 3. .env files
// 4. Config file (~/.bookshelf.yaml or ./.bookshelf.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(os.Getenv(envPrefix + "_CONFIG"))
}

// LoadConfigFile loads configuration using an explicit config file.
// Unlike the search in LoadConfig, a missing or invalid file is an error.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(path)
}

func loadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".bookshelf")
		// Read config file (ignore error if not found)
		_ = v.ReadInConfig()
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Output:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		Store:       v.GetString("store"),
		StoreFormat: v.GetString("store_format"),
		StoreDriver: v.GetString("store_driver"),
		StoreTable:  v.GetString("store_table"),
		StorePrefix: v.GetString("store_prefix"),

		UniqueUserIDs:   v.GetBool("unique_user_ids"),
		CascadeRemovals: v.GetBool("cascade_removals"),

		ServerHost: v.GetString("server_host"),
		ServerPort: v.GetInt("server_port"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store", constants.DefaultStoreURL)
	v.SetDefault("store_format", "json")
	v.SetDefault("store_driver", "pgx")
	v.SetDefault("store_table", constants.DefaultTable)
	v.SetDefault("store_prefix", constants.DefaultKeyPrefix)
	v.SetDefault("unique_user_ids", true)
	v.SetDefault("cascade_removals", true)
	v.SetDefault("server_host", constants.DefaultHost)
	v.SetDefault("server_port", constants.DefaultPort)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// bindEnv binds each key to its prefixed and bare environment variable.
func bindEnv(v *viper.Viper) error {
	for _, key := range configKeys {
		name := strings.ToUpper(key)
		if err := v.BindEnv(key, envPrefix+"_"+name, name); err != nil {
			return errors.NewConfigError("config", "binding "+key, err)
		}
	}
	return nil
}

// UpdateFromFlags updates config values from parsed global flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(flags *globals.Flags) {
	c.Verbose = c.Verbose || flags.Verbose
	c.Quiet = c.Quiet || flags.Quiet
	c.NoColor = c.NoColor || flags.NoColor
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// godotenv never overrides variables already set, so .env.local goes first
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}
