package config

import (
	"bytes"
	_ "embed"
	"maps"

	"github.com/andybalholm/cascadia"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the editor core and the CLI.
type Config struct {
	Version  string            `yaml:"version" validate:"required,eq=v1alpha1"`
	Editor   Editor            `yaml:"editor"`
	Table    Table             `yaml:"table"`
	Export   Export            `yaml:"export"`
	Sections map[string]string `yaml:"sections" validate:"dive,keys,oneof=question author_notes feedback algorithm,endkeys,required,selector"`
	Log      Log               `yaml:"log"`
}

type Editor struct {
	Placeholder      string `yaml:"placeholder" validate:"required"`
	PlaceholderClass string `yaml:"placeholder_class" validate:"required,excludesall=.#"`
	IDNamespace      string `yaml:"id_namespace" validate:"omitempty,alphanum"`
	PreserveIDs      bool   `yaml:"preserve_ids"`
}

type Table struct {
	BorderWidth     string `yaml:"border_width" validate:"required"`
	EdgeBorderWidth string `yaml:"edge_border_width" validate:"required"`
	BorderColor     string `yaml:"border_color" validate:"required"`
	CornerRadius    string `yaml:"corner_radius" validate:"required"`
}

type Export struct {
	Sanitize bool `yaml:"sanitize"`
	Minify   bool `yaml:"minify"`
}

type Log struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
	Verbose bool   `yaml:"verbose"`
}

//go:embed defaults.yaml
var defaultsYAML []byte

var (
	defaults Config
	validate = newValidator()
)

func init() {
	cfg, err := parse(defaultsYAML, &Config{})
	if err != nil {
		panic(err)
	}
	defaults = *cfg
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	cfg := defaults
	cfg.Sections = maps.Clone(defaults.Sections)
	return &cfg
}

// ParseYAML parses data on top of the defaults, so a file only needs to
// carry the fields it changes.
func ParseYAML(data []byte) (*Config, error) {
	return parse(data, Default())
}

type versionOnly struct {
	Version string `yaml:"version"`
}

func parseVersionFromYAML(data []byte) (string, error) {
	var result versionOnly

	if err := yaml.Unmarshal(data, &result); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal version")
	}

	return result.Version, nil
}

func parse(data []byte, base *Config) (*Config, error) {
	version, err := parseVersionFromYAML(data)
	if err != nil {
		return nil, err
	}

	switch version {
	case "v1alpha1":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(base); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal v1alpha1 config")
		}
		if err := validateConfig(base); err != nil {
			return nil, errors.Wrap(err, "failed to validate config")
		}
		return base, nil
	default:
		return nil, errors.Errorf("unknown version: %q", version)
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("selector", func(fl validator.FieldLevel) bool {
		_, err := cascadia.Compile(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(err)
	}
	return v
}

func validateConfig(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.WithStack(err)
	}

	var result error
	for _, fe := range fieldErrs {
		result = multierr.Append(result, errors.Errorf("%s: failed on %q", fe.Namespace(), fe.Tag()))
	}
	return result
}
