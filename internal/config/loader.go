// Package config provides centralized configuration management for limitlens.
// Configuration is read through viper and decoded into Config with
// mapstructure, so the same struct tags serve files and environment.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/limitlens/limitlens/internal/logcheck"
)

const (
	// AppName names the config directory and environment prefix.
	AppName = "limitlens"

	// EnvPrefix is prepended to environment overrides, e.g. LIMITLENS_LOGGING_LEVEL.
	EnvPrefix = "LIMITLENS"
)

var (
	// appConfig holds the current application configuration
	appConfig *Config
	configMu  sync.RWMutex
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.profile", "SIMPLE")
	v.SetDefault("scan.allow_endpoint_error", false)
	v.SetDefault("scan.suppress", []map[string]any{})
	v.SetDefault("mock.addr", "127.0.0.1:4566")
	v.SetDefault("mock.script", []string{"rate-limit", "throttling", "ok"})
}

// ConfigureEnv binds LIMITLENS_-prefixed environment variables on v.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes the settings held by v into a Config and validates it.
//
// This function is safe to call multiple times (e.g., for config reload)
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}

	settings := map[string]any{}
	for _, key := range v.AllKeys() {
		setPath(settings, strings.Split(key, "."), v.Get(key))
	}

	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := cfg.Scan.Rules(); err != nil {
		return nil, err
	}

	setConfig(cfg)

	return cfg, nil
}

// Rules compiles the configured suppression rules.
func (s ScanConfig) Rules() ([]logcheck.SuppressionRule, error) {
	rules := make([]logcheck.SuppressionRule, 0, len(s.Suppress))
	for i, spec := range s.Suppress {
		rule, err := logcheck.RuleFromSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("scan.suppress[%d]: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// setConfig updates the current configuration (thread-safe)
func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// DefaultConfigPath returns the XDG-compliant path to the user config file.
func DefaultConfigPath() string {
	configDir := gfconfig.GetAppConfigDir(AppName)
	if strings.TrimSpace(configDir) == "" {
		return ""
	}
	return filepath.Join(configDir, "config.yaml")
}

// setPath rebuilds the nested map viper flattens into dotted keys; env
// overrides only surface through v.Get.
func setPath(root map[string]any, path []string, value any) {
	node := root
	for _, key := range path[:len(path)-1] {
		next, ok := node[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[key] = next
		}
		node = next
	}
	node[path[len(path)-1]] = value
}
