package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError_Error(t *testing.T) {
	empty := &ConfigError{Path: "/etc/marquee/config.toml"}
	assert.Equal(t, "", empty.Error())
	assert.False(t, empty.HasErrors())
	assert.Zero(t, empty.Count())

	both := &ConfigError{
		Path:    "/etc/marquee/config.toml",
		Missing: []string{"TMDB_API_KEY", "SECRET"},
		Errors:  []string{"log.level: invalid"},
	}
	got := both.Error()
	assert.True(t, both.HasErrors())
	assert.Equal(t, 3, both.Count())
	assert.Equal(t, "/etc/marquee/config.toml: missing environment variables: TMDB_API_KEY, SECRET\n"+
		"validation failed:\n  - log.level: invalid", got)
}

func TestConfigError_ValidationOnly(t *testing.T) {
	e := &ConfigError{Errors: []string{"tmdb.api_key: required"}}
	assert.Equal(t, "validation failed:\n  - tmdb.api_key: required", e.Error())
}
