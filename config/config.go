// Package config loads engine settings from command-line flags and the
// environment. Every flag has a DUELQUEENS_ environment variable twin
// (dashes become underscores), and flags win over the environment.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	v *viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("search-depth", 6)
	v.SetDefault("node-budget", uint64(0))
	v.SetDefault("default-algorithm", "greedy")
	v.SetDefault("debug", false)
}

// DefaultConfig returns a config with the built-in defaults and nothing
// else. Tests use this.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{v: v}
}

func (c *Config) Load(args []string) error {
	v := viper.New()
	setDefaults(v)

	fs := pflag.NewFlagSet("duelqueens", pflag.ContinueOnError)
	fs.Int("search-depth", 6, "maximum adversarial search depth, in plies")
	fs.Uint64("node-budget", 0, "abort searches after this many nodes; 0 means unbounded")
	fs.String("default-algorithm", "greedy", "AI algorithm used when a request names none (greedy, minimax, dp, dnc)")
	fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := v.BindPFlags(fs); err != nil {
		return err
	}

	v.SetEnvPrefix("duelqueens")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	c.v = v
	return nil
}

func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *Config) GetUint64(key string) uint64 {
	return c.v.GetUint64(key)
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// AllSettings dumps the effective settings, for the shell's "set" view.
func (c *Config) AllSettings() map[string]interface{} {
	return c.v.AllSettings()
}
