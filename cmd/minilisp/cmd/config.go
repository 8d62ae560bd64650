package cmd

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ava12/minilisp"
)

// Error codes used by configuration loader:
const (
	ConfigFormatError = minilisp.ConfigErrors + iota
	ConfigParseError
	InvalidConfigError
)

// Output formats of parse command:
const (
	FormatSExpr  = "sexpr"
	FormatJSON   = "json"
	FormatSource = "source"
	FormatDump   = "dump"
)

var formats = []string{FormatSExpr, FormatJSON, FormatSource, FormatDump}

// Config holds default values for command flags.
type Config struct {
	// Format is the output format of parse command.
	Format string `yaml:"format" toml:"format"`

	// Report is JSON report file name for check command, empty means no report file.
	Report string `yaml:"report" toml:"report"`

	// Color enables coloured summary, nil means auto-detect.
	Color *bool `yaml:"color" toml:"color"`

	// Cases is case file name for check command, empty means built-in cases.
	Cases string `yaml:"cases" toml:"cases"`
}

func defaultConfig() *Config {
	return &Config{Format: FormatSExpr}
}

// LoadConfig reads configuration file, format is chosen by file extension.
// Missing fields keep their default values.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	cfg := defaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, cfg)
	case ".toml":
		_, err = toml.Decode(string(content), cfg)
	default:
		return nil, minilisp.FormatError(ConfigFormatError, "unsupported config file format %q", ext)
	}
	if err != nil {
		return nil, minilisp.FormatError(ConfigParseError, "cannot parse config file %s: %s", path, err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks all fields and reports all problems found at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if !slices.Contains(formats, c.Format) {
		result = multierror.Append(result, errors.Errorf("unknown format %q, expecting one of %s", c.Format, strings.Join(formats, ", ")))
	}
	if c.Report != "" && filepath.Ext(c.Report) != ".json" {
		result = multierror.Append(result, errors.Errorf("report file %q must have .json extension", c.Report))
	}
	if c.Cases != "" {
		switch strings.ToLower(filepath.Ext(c.Cases)) {
		case ".yaml", ".yml", ".toml":
		default:
			result = multierror.Append(result, errors.Errorf("case file %q must be YAML or TOML", c.Cases))
		}
	}

	if e := result.ErrorOrNil(); e != nil {
		return minilisp.FormatError(InvalidConfigError, "invalid configuration: %s", strings.TrimSpace(e.Error()))
	}
	return nil
}
