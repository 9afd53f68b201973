// Package config loads accountkeeper settings: built-in defaults, then an
// optional YAML file, then ACCOUNTKEEPER_* environment variables.
// The config file lives under the XDG config home, the database under the
// XDG data home.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix - префикс переменных окружения
	EnvPrefix = "ACCOUNTKEEPER_"

	// AppDirName - каталог приложения внутри XDG config/data home
	AppDirName = "accountkeeper"

	// DefaultConfigFile ищется в ConfigDir, если --config не задан
	DefaultConfigFile = "accountkeeper.yaml"

	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

type Config struct {
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
}

// StorageConfig selects the database medium. An empty Path resolves to a file
// in DataDir.
type StorageConfig struct {
	Driver string `koanf:"driver" validate:"oneof=sqlite bolt"`
	Path   string `koanf:"path"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Storage: StorageConfig{Driver: DriverSQLite},
		Log:     LogConfig{Level: "warn", Format: "text"},
	}
}

// DataDir returns the per-user data directory ($XDG_DATA_HOME/accountkeeper,
// ~/.local/share/accountkeeper by default on Linux)
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppDirName)
}

// ConfigDir returns the per-user config directory ($XDG_CONFIG_HOME/accountkeeper)
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// Load reads configuration. configPath may be empty: then the default file in
// ConfigDir is used if present. An explicitly given file must exist.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if configPath == "" {
		candidate := filepath.Join(ConfigDir(), DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			configPath = candidate
		}
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config %s failed: %w", configPath, err)
		}
	}

	// ACCOUNTKEEPER_STORAGE_PATH -> storage.path
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, EnvPrefix)
			return strings.ReplaceAll(strings.ToLower(key), "_", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("load env variables failed: %w", err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DatabasePath returns the configured path or the default file in DataDir
func (c *Config) DatabasePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}

	name := "database.sqlite3"
	if c.Storage.Driver == DriverBolt {
		name = "database.bolt"
	}

	return filepath.Join(DataDir(), name)
}
