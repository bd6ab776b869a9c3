package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	errs = append(errs, checkURL("api.base_url", c.API.BaseURL)...)
	if c.API.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("api.timeout: must not be negative, got %s", c.API.Timeout))
	}

	if c.TMDB.APIKey == "" {
		errs = append(errs, "tmdb.api_key: required")
	}
	errs = append(errs, checkURL("tmdb.base_url", c.TMDB.BaseURL)...)
	errs = append(errs, checkURL("tmdb.image_base_url", c.TMDB.ImageBaseURL)...)

	if c.Cache.DedupTTL < 0 {
		errs = append(errs, fmt.Sprintf("cache.dedup_ttl: must not be negative, got %s", c.Cache.DedupTTL))
	}
	if c.Cache.PersistTTL < 0 {
		errs = append(errs, fmt.Sprintf("cache.persist_ttl: must not be negative, got %s", c.Cache.PersistTTL))
	}
	if c.Notifications.Window < 0 {
		errs = append(errs, fmt.Sprintf("notifications.window: must not be negative, got %s", c.Notifications.Window))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if c.Search.Debounce < 0 {
		errs = append(errs, fmt.Sprintf("search.debounce: must not be negative, got %s", c.Search.Debounce))
	}
	if c.Search.HistorySize < 1 || c.Search.HistorySize > 100 {
		errs = append(errs, fmt.Sprintf("search.history_size: must be between 1 and 100, got %d", c.Search.HistorySize))
	}

	return errs
}

func checkURL(field, raw string) []string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return []string{fmt.Sprintf("%s: must be an absolute URL, got %q", field, raw)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return []string{fmt.Sprintf("%s: scheme must be http or https, got %q", field, u.Scheme)}
	}
	return nil
}
