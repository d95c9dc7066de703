package config

import (
	"fmt"
	"strings"

	internal "github.com/ZanzyTHEbar/xattrsum/xsum"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file, environment variables,
// or bound command-line flags.
type Config struct {
	Xattrsum XattrsumConfig `mapstructure:"xattrsum"`
}

// XattrsumConfig stores the tool-specific settings.
type XattrsumConfig struct {
	// AttrName is the extended attribute under which digests are stored.
	AttrName string `mapstructure:"attrName"`
	// IgnoreFile is the per-root ignore file name (gitignore syntax).
	IgnoreFile string `mapstructure:"ignoreFile"`
	// Algorithm names the content digest. Only "sha256" is supported.
	Algorithm string `mapstructure:"algorithm"`
	// Verbose enables the add/remove/update notices on stderr.
	Verbose bool `mapstructure:"verbose"`
	// OneFilesystem keeps directory traversal on the target's mount.
	OneFilesystem bool `mapstructure:"oneFilesystem"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("xattrsum.attrName", internal.DefaultAttrName)
	viper.SetDefault("xattrsum.ignoreFile", internal.DefaultIgnoreFile)
	viper.SetDefault("xattrsum.algorithm", internal.DefaultAlgorithm)
	viper.SetDefault("xattrsum.verbose", false)
	viper.SetDefault("xattrsum.oneFilesystem", true)

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // xattrsum.attrName becomes XATTRSUM_ATTRNAME

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; defaults will be used.
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := AppConfig.Xattrsum.validate(); err != nil {
		return nil, err
	}

	return &AppConfig, nil
}

func (c *XattrsumConfig) validate() error {
	if c.Algorithm != internal.DefaultAlgorithm {
		return fmt.Errorf("unsupported digest algorithm: %s", c.Algorithm)
	}
	if c.AttrName == "" {
		return fmt.Errorf("attribute name cannot be empty")
	}
	if !strings.HasPrefix(c.AttrName, "user.") {
		return fmt.Errorf("attribute name must be in the user namespace: %s", c.AttrName)
	}
	return nil
}
