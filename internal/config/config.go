package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/nickromney/certcheck/internal/check"
)

// Config is the optional user configuration.
//
// File location: ~/.config/certcheck/config.yml (or $XDG_CONFIG_HOME/certcheck/config.yml)
type Config struct {
	Theme    string             `yaml:"theme,omitempty"` // "default", "github-dark", "terminal"
	Jobs     int                `yaml:"jobs,omitempty"`
	Timeout  time.Duration      `yaml:"timeout,omitempty"`
	Validity Validity           `yaml:"validity,omitempty"`
	Profiles map[string]Profile `yaml:"profiles,omitempty"`
}

// Validity holds default expiry thresholds in days.
type Validity struct {
	WarningDays  int `yaml:"warning_days,omitempty"`
	CriticalDays int `yaml:"critical_days,omitempty"`
}

// Profile is a named set of expected certificate values. Omitted keys are
// not checked.
type Profile struct {
	Serial             *string `yaml:"serial,omitempty"`
	Subject            *string `yaml:"subject,omitempty"`
	Issuer             *string `yaml:"issuer,omitempty"`
	SignatureAlgorithm *string `yaml:"signature_algorithm,omitempty"`
	PublicKeyAlgorithm *string `yaml:"pubkey_algorithm,omitempty"`
	PublicKeySize      *int    `yaml:"pubkey_size,omitempty"`
}

// Builder seeds an expectations builder with the profile's values.
func (p Profile) Builder() *check.Builder {
	return check.NewExpectations().
		Serial(p.Serial).
		Subject(p.Subject).
		Issuer(p.Issuer).
		SignatureAlgorithm(p.SignatureAlgorithm).
		PublicKeyAlgorithm(p.PublicKeyAlgorithm).
		PublicKeySize(p.PublicKeySize)
}

// Thresholds converts the validity section for the checker.
func (v Validity) Thresholds() check.Thresholds {
	return check.Thresholds{WarningDays: v.WarningDays, CriticalDays: v.CriticalDays}
}

func Default() Config {
	return Config{
		Theme:   "default",
		Jobs:    4,
		Timeout: 10 * time.Second,
	}
}

func Path() (string, error) {
	base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "certcheck", "config.yml"), nil
}

// Load reads config.yml if present. If missing, returns Default() with nil error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads the given config file over Default(). A missing file is not
// an error.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := decode(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var serialRE = regexp.MustCompile(`^[0-9A-F]{2}(:[0-9A-F]{2})*$`)

// Validate reports every problem in the config at once.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.Jobs < 0 {
		result = multierror.Append(result, fmt.Errorf("jobs must be >= 0, got %d", c.Jobs))
	}
	if c.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must be >= 0, got %s", c.Timeout))
	}
	if err := c.Validity.validate(); err != nil {
		result = multierror.Append(result, err)
	}

	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.Profiles[name].validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("profile %q: %w", name, err))
		}
	}
	return result.ErrorOrNil()
}

func (v Validity) validate() error {
	switch {
	case v.WarningDays < 0 || v.CriticalDays < 0:
		return fmt.Errorf("validity days must be >= 0")
	case v.WarningDays > 0 && v.CriticalDays > v.WarningDays:
		return fmt.Errorf("validity critical_days (%d) must not exceed warning_days (%d)", v.CriticalDays, v.WarningDays)
	}
	return nil
}

func (p Profile) validate() error {
	switch {
	case p.Serial != nil && !serialRE.MatchString(*p.Serial):
		return fmt.Errorf("serial %q must be uppercase hex pairs separated by ':'", *p.Serial)
	case p.PublicKeySize != nil && *p.PublicKeySize <= 0:
		return fmt.Errorf("pubkey_size must be positive, got %d", *p.PublicKeySize)
	}
	return nil
}

// Profile looks up a named profile.
func (c Config) Profile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q", name)
	}
	return p, nil
}
