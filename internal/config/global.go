// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string

	// configFilePathOverride forces loading from a specific file, set from
	// the --config flag before any Load call.
	configFilePathOverride string

	loadMu     sync.Mutex
	cachedCfg  *Config
	cachedPath string
)

// Load returns the process-wide configuration, loading it on first use and
// caching the result. The --config flag override is honored when set before
// the first call.
func Load() (*Config, error) {
	loadMu.Lock()
	defer loadMu.Unlock()

	if cachedCfg != nil {
		return cachedCfg, nil
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	if err != nil {
		return nil, err
	}

	cachedCfg, cachedPath = cfg, path
	return cfg, nil
}

// LoadedPath returns the path of the config file the cached Load used, or
// "" when defaults are in effect. Only meaningful after a successful Load.
func LoadedPath() string {
	loadMu.Lock()
	defer loadMu.Unlock()
	return cachedPath
}

// Reset clears test overrides and the load cache. Call from test cleanup to
// restore defaults.
func Reset() {
	loadMu.Lock()
	defer loadMu.Unlock()
	configDirOverride = ""
	configFilePathOverride = ""
	cachedCfg, cachedPath = nil, ""
}

// SetConfigFilePathOverride forces subsequent Load calls to read the given
// file. Invalidates the cache.
func SetConfigFilePathOverride(path string) {
	loadMu.Lock()
	defer loadMu.Unlock()
	configFilePathOverride = path
	cachedCfg, cachedPath = nil, ""
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	loadMu.Lock()
	defer loadMu.Unlock()
	configDirOverride = dir
	cachedCfg, cachedPath = nil, ""
}
