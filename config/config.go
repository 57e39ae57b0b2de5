// Package config holds the engine's runtime settings. Settings come from
// command-line flags, CONECTA_-prefixed environment variables, and
// defaults, in that order of precedence.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "conecta"

// Config wraps a viper instance. Use the typed getters; keys are the
// flag names below.
type Config struct {
	v    *viper.Viper
	args []string
}

// DefaultConfig returns a config loaded with no command-line arguments,
// i.e. defaults plus whatever the environment provides. Tests use this.
func DefaultConfig() Config {
	c := Config{}
	if err := c.Load(nil); err != nil {
		panic(err)
	}
	return c
}

// Load parses the given command-line arguments (usually os.Args[1:]) and
// binds them, along with the environment, into this config.
func (c *Config) Load(args []string) error {
	c.v = viper.New()

	fs := pflag.NewFlagSet("conecta", pflag.ContinueOnError)
	fs.Bool("debug", false, "debug logging on")
	fs.Int("ai-depth", 3, "default search depth (difficulty) for the engine, from 1 to 5")
	fs.Bool("color", true, "use colors in the board display")
	fs.String("seed", "", "optional file of deterministic seeds for autoplay")
	fs.String("autoplay-log", "/tmp/conecta-autoplay.csv", "per-move log file written during autoplay")
	fs.String("autoplay-summary", "/tmp/conecta-autoplay.yaml", "summary file written after autoplay")
	fs.String("cpu-profile", "", "write CPU profile to file")
	fs.String("mem-profile", "", "write memory profile to file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.v.BindPFlags(fs); err != nil {
		return err
	}
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	return nil
}

// Args returns the positional arguments left after flag parsing. The
// shell binary treats them as a single command to execute.
func (c *Config) Args() []string {
	return c.args
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// Set overrides a single setting. Tests and the shell's settings command
// use this.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// AllSettings returns every setting for display. Nothing secret lives in
// this config, so no sanitizing is needed beyond this copy.
func (c *Config) AllSettings() map[string]any {
	return c.v.AllSettings()
}
