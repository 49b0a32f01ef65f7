// Config loading for the catalog CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/gamecatalog/internal/logging"
	"github.com/mesh-intelligence/gamecatalog/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyDBFile       = "db_file"
	cfgKeyStrictStatus = "strict_status"

	cfgKeyLogLevel      = "log.level"
	cfgKeyLogFormat     = "log.format"
	cfgKeyLogFile       = "log.file"
	cfgKeyLogMaxSize    = "log.max_size"
	cfgKeyLogMaxBackups = "log.max_backups"
	cfgKeyLogMaxAge     = "log.max_age"
	cfgKeyLogCompress   = "log.compress"
)

// configFile is the shape of config.yaml written on first run.
type configFile struct {
	Backend      string        `yaml:"backend"`
	DataDir      string        `yaml:"data_dir,omitempty"`
	DBFile       string        `yaml:"db_file"`
	StrictStatus bool          `yaml:"strict_status"`
	Log          logFileConfig `yaml:"log"`
}

type logFileConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file,omitempty"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

func defaultConfigFile() configFile {
	return configFile{
		Backend: types.BackendSQLite,
		DBFile:  types.DefaultDBFile,
		Log: logFileConfig{
			Level:      "warn",
			Format:     logging.FormatConsole,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. A missing config.yaml is
// not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	def := defaultConfigFile()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyDBFile, def.DBFile)
	v.SetDefault(cfgKeyStrictStatus, def.StrictStatus)
	v.SetDefault(cfgKeyLogLevel, def.Log.Level)
	v.SetDefault(cfgKeyLogFormat, def.Log.Format)
	v.SetDefault(cfgKeyLogMaxSize, def.Log.MaxSize)
	v.SetDefault(cfgKeyLogMaxBackups, def.Log.MaxBackups)
	v.SetDefault(cfgKeyLogMaxAge, def.Log.MaxAge)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes config.yaml with default values if it does
// not exist. An existing file is left untouched.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfigFile()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# Game catalog configuration\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}

// storeConfig builds the store configuration from v. dataDir is resolved
// separately because flags and environment take part in it.
func storeConfig(v *viper.Viper, dataDir string) types.Config {
	return types.Config{
		Backend:      v.GetString(cfgKeyBackend),
		DataDir:      dataDir,
		DBFile:       v.GetString(cfgKeyDBFile),
		StrictStatus: v.GetBool(cfgKeyStrictStatus),
	}
}

func logOptions(v *viper.Viper) logging.Options {
	return logging.Options{
		Level:      v.GetString(cfgKeyLogLevel),
		Format:     v.GetString(cfgKeyLogFormat),
		File:       v.GetString(cfgKeyLogFile),
		MaxSizeMB:  v.GetInt(cfgKeyLogMaxSize),
		MaxBackups: v.GetInt(cfgKeyLogMaxBackups),
		MaxAgeDays: v.GetInt(cfgKeyLogMaxAge),
		Compress:   v.GetBool(cfgKeyLogCompress),
	}
}
