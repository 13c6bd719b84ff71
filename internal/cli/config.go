package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/nine/internal/factory"
	"github.com/mesh-intelligence/nine/internal/generator"
	"github.com/mesh-intelligence/nine/internal/paths"
	"github.com/mesh-intelligence/nine/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
)

// Config keys.
const (
	cfgKeyBackend          = "backend"
	cfgKeyDataDir          = "data_dir"
	cfgKeySync             = "sync"
	cfgKeyMinSteps         = "generator.min_steps"
	cfgKeyMaxSteps         = "generator.max_steps"
	cfgKeyVerifySolvable   = "generator.verify_solvable"
	cfgKeySolverDepth      = "generator.solver_depth"
	cfgKeyMaxRegenerations = "generator.max_regenerations"
	cfgKeySeed             = "generator.seed"
	cfgKeyConcurrency      = "seed.concurrency"
)

// configFile is the structure written to a new config.yaml.
type configFile struct {
	Backend   string          `yaml:"backend"`
	DataDir   string          `yaml:"data_dir,omitempty"`
	Sync      string          `yaml:"sync"`
	Generator generatorConfig `yaml:"generator"`
	Seed      seedConfig      `yaml:"seed"`
}

type generatorConfig struct {
	MinSteps         int    `yaml:"min_steps"`
	MaxSteps         int    `yaml:"max_steps"`
	VerifySolvable   bool   `yaml:"verify_solvable"`
	SolverDepth      int    `yaml:"solver_depth"`
	MaxRegenerations int    `yaml:"max_regenerations"`
	Seed             uint64 `yaml:"seed"`
}

type seedConfig struct {
	Concurrency int `yaml:"concurrency"`
}

func defaultConfigFile() configFile {
	opts := generator.DefaultOptions()
	return configFile{
		Backend: types.BackendSQLite,
		Sync:    types.SyncImmediate,
		Generator: generatorConfig{
			MinSteps:         opts.MinSteps,
			MaxSteps:         opts.MaxSteps,
			VerifySolvable:   opts.VerifySolvable,
			SolverDepth:      opts.SolverDepth,
			MaxRegenerations: opts.MaxRegenerations,
		},
		Seed: seedConfig{Concurrency: factory.DefaultConcurrency},
	}
}

// loadConfig reads config.yaml from configDir with Viper. Defaults apply to
// keys the file leaves out; a missing file is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	def := defaultConfigFile()

	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeySync, def.Sync)
	v.SetDefault(cfgKeyMinSteps, def.Generator.MinSteps)
	v.SetDefault(cfgKeyMaxSteps, def.Generator.MaxSteps)
	v.SetDefault(cfgKeyVerifySolvable, def.Generator.VerifySolvable)
	v.SetDefault(cfgKeySolverDepth, def.Generator.SolverDepth)
	v.SetDefault(cfgKeyMaxRegenerations, def.Generator.MaxRegenerations)
	v.SetDefault(cfgKeySeed, def.Generator.Seed)
	v.SetDefault(cfgKeyConcurrency, def.Seed.Concurrency)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates configDir and a config.yaml holding the
// defaults. An existing file is left untouched. It reports whether the file
// was written.
func writeConfigIfMissing(configDir, dataDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfigFile()
	cfg.DataDir = dataDir
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# nine configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// storeConfig returns the Store configuration for this invocation.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := a.dataDir()
	if err != nil {
		return types.Config{}, err
	}
	cfg := types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
		Sync:    a.config.GetString(cfgKeySync),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// dataDir resolves the data directory: --data-dir > data_dir key >
// NINE_DATA_DIR > $(CWD)/.nine-db.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
}

// generatorOptions reads the generator.* keys.
func (a *app) generatorOptions() generator.Options {
	opts := generator.DefaultOptions()
	opts.MinSteps = a.config.GetInt(cfgKeyMinSteps)
	opts.MaxSteps = a.config.GetInt(cfgKeyMaxSteps)
	opts.VerifySolvable = a.config.GetBool(cfgKeyVerifySolvable)
	opts.SolverDepth = a.config.GetInt(cfgKeySolverDepth)
	opts.MaxRegenerations = a.config.GetInt(cfgKeyMaxRegenerations)
	return opts
}
