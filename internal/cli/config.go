package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "IFCMODEL"

	cfgKeyEngine        = "engine"
	cfgKeyFlatten       = "flatten"
	cfgKeyMaxDerefDepth = "max_deref_depth"
	cfgKeyLogLevel      = "log_level"
	cfgKeyDataDir       = "data_dir"

	defaultLogLevel = "info"
)

// configFile is the structure written to config.yaml.
type configFile struct {
	Engine        string            `yaml:"engine"`
	Flatten       bool              `yaml:"flatten"`
	MaxDerefDepth int               `yaml:"max_deref_depth"`
	LogLevel      string            `yaml:"log_level"`
	DataDir       string            `yaml:"data_dir,omitempty"`
	Types         map[string]uint32 `yaml:"types,omitempty"`
}

// settings are the resolved configuration values for one invocation.
type settings struct {
	Engine        string
	Flatten       bool
	MaxDerefDepth int
	LogLevel      string
	DataDir       string
	Types         map[string]uint32
}

// loadSettings reads config.yaml from configDir with viper, writing a
// default file first if none exists. Environment variables prefixed with
// IFCMODEL_ override file values.
func loadSettings(configDir string) (settings, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return settings{}, fmt.Errorf("ensure config dir: %w", err)
	}
	path := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(path, ""); err != nil {
		return settings{}, fmt.Errorf("ensure default config: %w", err)
	}

	def := types.DefaultConfig()
	v := viper.New()
	v.SetDefault(cfgKeyEngine, def.Engine)
	v.SetDefault(cfgKeyFlatten, def.Flatten)
	v.SetDefault(cfgKeyMaxDerefDepth, def.MaxDerefDepth)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, usageError(fmt.Errorf("read config: %w", err))
		}
	}

	st := settings{
		Engine:        v.GetString(cfgKeyEngine),
		Flatten:       v.GetBool(cfgKeyFlatten),
		MaxDerefDepth: v.GetInt(cfgKeyMaxDerefDepth),
		LogLevel:      v.GetString(cfgKeyLogLevel),
		DataDir:       v.GetString(cfgKeyDataDir),
	}

	// Viper lower-cases map keys, so type names are read from the file as written.
	if used := v.ConfigFileUsed(); used != "" {
		extra, err := readTypeMappings(used)
		if err != nil {
			return settings{}, usageError(err)
		}
		st.Types = extra
	}
	return st, nil
}

// readTypeMappings decodes the types section of a config file.
func readTypeMappings(path string) (map[string]uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cf configFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse config types: %w", err)
	}
	return cf.Types, nil
}

// modelConfig converts settings into a validated model configuration.
func (s settings) modelConfig() (types.Config, error) {
	table := types.DefaultTypeTable()
	if len(s.Types) > 0 {
		var err error
		if table, err = table.With(s.Types); err != nil {
			return types.Config{}, fmt.Errorf("config types: %w", err)
		}
	}
	cfg := types.Config{
		Engine:        s.Engine,
		Flatten:       s.Flatten,
		MaxDerefDepth: s.MaxDerefDepth,
		Types:         table,
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. An existing file is left untouched.
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	def := types.DefaultConfig()
	cf := configFile{
		Engine:        def.Engine,
		Flatten:       def.Flatten,
		MaxDerefDepth: def.MaxDerefDepth,
		LogLevel:      defaultLogLevel,
		DataDir:       dataDir,
	}
	data, err := yaml.Marshal(&cf)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := "# ifcmodel configuration\n# Add custom entity codes under types, e.g.\n# types:\n#   IfcCustomThing: 123456\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}
