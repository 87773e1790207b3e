package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix prefixes every environment override.
const envPrefix = "LIEN"

// newViper returns a viper instance reading YAML, with LIEN_ environment
// overrides where "engine.timezone" maps to LIEN_ENGINE_TIMEZONE.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setViperDefaults(v)
	return v
}

// Load reads the YAML file at configPath, merges LIEN_* overrides, applies
// defaults and validates.  An empty configPath loads from the environment
// only.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %q: %w", configPath, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds the Config from defaults and LIEN_* variables.
//
//	LIEN_<SECTION>_<FIELD>   e.g.  LIEN_ENGINE_HOLIDAY_CALENDAR=none
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is Load that panics; for main only.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad: %v", err))
	}
	return cfg
}
