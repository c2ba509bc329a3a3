package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "UNIFI"
	configFileName = ".unifi-admin-remover"
)

// Settings holds everything that can be preset instead of prompted for.
// There is deliberately no password key.
type Settings struct {
	Host     string        `mapstructure:"host"`
	Username string        `mapstructure:"username"`
	Insecure bool          `mapstructure:"insecure"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Verbose  bool          `mapstructure:"verbose"`
}

// InitConfig reads in config file and ENV variables if set. A missing
// config file is not an error; one that exists but cannot be read is.
func InitConfig(cfgFile string) error {
	// every key needs a default so AutomaticEnv values reach Unmarshal
	viper.SetDefault("host", "")
	viper.SetDefault("username", "")
	viper.SetDefault("insecure", true)
	viper.SetDefault("timeout", 30*time.Second)
	viper.SetDefault("verbose", false)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(configFileName)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("could not read config file %s: %w", viper.ConfigFileUsed(), err)
		}
	}
	return nil
}

// Load decodes the current viper state into Settings.
func Load() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	s.Host = strings.TrimSpace(s.Host)
	s.Username = strings.TrimSpace(s.Username)
	return s, nil
}
