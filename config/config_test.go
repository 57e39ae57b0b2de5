package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := Config{}
	is.NoErr(c.Load(nil))

	is.Equal(c.GetInt("ai-depth"), 3)
	is.Equal(c.GetBool("debug"), false)
	is.Equal(c.GetBool("color"), true)
	is.Equal(c.GetString("seed"), "")
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	c := Config{}
	is.NoErr(c.Load([]string{"--ai-depth", "5", "--debug", "--color=false"}))

	is.Equal(c.GetInt("ai-depth"), 5)
	is.Equal(c.GetBool("debug"), true)
	is.Equal(c.GetBool("color"), false)
}

func TestEnvOverride(t *testing.T) {
	is := is.New(t)
	t.Setenv("CONECTA_AI_DEPTH", "4")
	t.Setenv("CONECTA_SEED", "/tmp/seeds.txt")
	c := Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetInt("ai-depth"), 4)
	is.Equal(c.GetString("seed"), "/tmp/seeds.txt")
}

func TestSet(t *testing.T) {
	is := is.New(t)
	c := DefaultConfig()
	c.Set("ai-depth", 2)
	is.Equal(c.GetInt("ai-depth"), 2)
}
