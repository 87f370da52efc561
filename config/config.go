// Package config loads settings from a YAML file and INTERVISION_*
// environment variables, in that order of precedence, over the defaults.
package config

import (
	"io"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Reu7en/Intervision-sub000/constants"
	"github.com/Reu7en/Intervision-sub000/interval"
	"github.com/Reu7en/Intervision-sub000/model"
	"github.com/Reu7en/Intervision-sub000/util"
)

type Config struct {
	LowOctave      int                  `yaml:"lowOctave"`
	Addr           string               `yaml:"addr"`
	AllowedOrigins []string             `yaml:"allowedOrigins"`
	Workers        int                  `yaml:"workers"`
	Debounce       time.Duration        `yaml:"debounce"`
	LogLevel       string               `yaml:"logLevel"`
	LogFormat      string               `yaml:"logFormat"`
	Palette        []string             `yaml:"palette"`
	Analysis       interval.Options     `yaml:"analysis"`
	Keys           []model.KeySignature `yaml:"keys"`
}

func Default() *Config {
	return &Config{
		LowOctave:      constants.LowOctave,
		Addr:           constants.Addr,
		AllowedOrigins: []string{"*"},
		Workers:        constants.Workers,
		Debounce:       constants.DebounceMillis * time.Millisecond,
		LogLevel:       "info",
		LogFormat:      "text",
		Palette:        append([]string(nil), constants.Palette...),
		Analysis:       interval.Options{Harmonic: interval.ScopeAll, Melodic: interval.ScopeStaves},
		Keys:           constants.MajorKeys(),
	}
}

// Load reads name from fsys over the defaults, then applies the
// environment. A missing file is not an error.
func Load(fsys fs.FS, name string) (*Config, error) {
	cfg := Default()
	f, err := fsys.Open(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, errors.Wrapf(err, "could not open %v", name)
	default:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrapf(err, "could not decode %v", name)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func getEnv(key string) (string, bool) {
	v := os.Getenv(constants.EnvPrefix + key)
	return v, v != ""
}

func (c *Config) applyEnv() error {
	var err error
	if v, ok := getEnv("LOW_OCTAVE"); ok {
		if c.LowOctave, err = strconv.Atoi(v); err != nil {
			return errors.Wrap(err, constants.EnvPrefix+"LOW_OCTAVE")
		}
	}
	if v, ok := getEnv("ADDR"); ok {
		c.Addr = v
	}
	if v, ok := getEnv("WORKERS"); ok {
		if c.Workers, err = strconv.Atoi(v); err != nil {
			return errors.Wrap(err, constants.EnvPrefix+"WORKERS")
		}
	}
	if v, ok := getEnv("DEBOUNCE"); ok {
		if c.Debounce, err = time.ParseDuration(v); err != nil {
			return errors.Wrap(err, constants.EnvPrefix+"DEBOUNCE")
		}
	}
	if v, ok := getEnv("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := getEnv("LOG_FORMAT"); ok {
		c.LogFormat = v
	}
	if v, ok := getEnv("HARMONIC"); ok {
		if c.Analysis.Harmonic, err = interval.ParseScope(v); err != nil {
			return err
		}
	}
	if v, ok := getEnv("MELODIC"); ok {
		if c.Analysis.Melodic, err = interval.ParseScope(v); err != nil {
			return err
		}
	}
	if v, ok := getEnv("FOLD"); ok {
		if c.Analysis.Fold, err = strconv.ParseBool(v); err != nil {
			return errors.Wrap(err, constants.EnvPrefix+"FOLD")
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if len(c.Palette) < interval.PaletteSize {
		return errors.Errorf("palette needs %d colors, got %d", interval.PaletteSize, len(c.Palette))
	}
	if c.Debounce < 0 {
		return errors.New("debounce must not be negative")
	}
	names := make([]string, 0, len(c.Keys))
	for _, k := range c.Keys {
		names = append(names, k.Name)
	}
	if len(util.Unique(names)) != len(names) {
		return errors.New("key signature names must be unique")
	}
	return nil
}

// WorkerCount resolves Workers, zero meaning one per CPU.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Key looks up a key signature by name.
func (c *Config) Key(name string) (model.KeySignature, bool) {
	for _, k := range c.Keys {
		if k.Name == name {
			return k, true
		}
	}
	return model.KeySignature{}, false
}

// ResolveKey fills in key from the table when it carries only a name. It
// reports false for a name the table does not know.
func (c *Config) ResolveKey(key *model.KeySignature) bool {
	if key.Name == "" || key.Sharps || len(key.Altered) > 0 {
		return true
	}
	k, ok := c.Key(key.Name)
	if ok {
		*key = k
	}
	return ok
}
