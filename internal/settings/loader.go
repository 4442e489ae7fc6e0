package settings

import (
	"fmt"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. VCHECK_PORT.
const EnvPrefix = "VCHECK"

// NewViper reads the settings file at path. The format follows the file
// extension (yaml, toml, json, ...). With a non-empty envPrefix, environment
// variables override file values.
func NewViper(path, envPrefix string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("name", "")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("read_timeout", "5s")
	v.SetDefault("max_connections", 100)
	v.SetDefault("admin_email", "")

	if envPrefix != "" {
		v.SetEnvPrefix(envPrefix)
		v.AutomaticEnv()
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	return v, nil
}

func Decode(v *viper.Viper) (Raw, error) {
	var raw Raw
	if err := v.Unmarshal(&raw); err != nil {
		return Raw{}, fmt.Errorf("decode settings: %w", err)
	}
	return raw, nil
}

func Load(path, envPrefix string) (Raw, error) {
	v, err := NewViper(path, envPrefix)
	if err != nil {
		return Raw{}, err
	}
	return Decode(v)
}
