package cmdutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGinMode(t *testing.T) {
	cases := map[string]string{
		"production":  "release",
		"prod":        "release",
		"test":        "test",
		"development": "debug",
		"":            "debug",
	}
	for env, want := range cases {
		assert.Equal(t, want, GinMode(env), env)
	}
}

func TestResolveEnv_PrefersVariable(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.Equal(t, "production", ResolveEnv("development"))
}

func TestResolveEnv_FallsBackToFlag(t *testing.T) {
	t.Setenv("ENV", "")
	assert.Equal(t, "test", ResolveEnv("test"))
}
