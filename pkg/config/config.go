// Package config loads the optional modelcheck configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no config file
// is given explicitly.
const DefaultFileName = ".modelcheck.yaml"

// Config controls which declarations are recognised as models and which
// files are scanned.
type Config struct {
	// BaseClasses are the base markers a model class inherits from.
	BaseClasses []string `yaml:"base_classes" validate:"required,min=1,dive,required"`
	// FieldConstructors name the column descriptor calls (Field(...)).
	FieldConstructors []string `yaml:"field_constructors" validate:"required,min=1,dive,required"`
	// RelationshipConstructors name the relationship descriptor calls.
	RelationshipConstructors []string `yaml:"relationship_constructors" validate:"required,min=1,dive,required"`
	// Extensions of the files collected when scanning a directory.
	Extensions []string `yaml:"extensions" validate:"required,min=1,dive,required,startswith=."`
	// Exclude lists directory base names skipped when scanning.
	Exclude []string `yaml:"exclude" validate:"dive,required"`
}

// Default returns the configuration matching plain SQLModel projects.
func Default() *Config {
	return &Config{
		BaseClasses:              []string{"SQLModel"},
		FieldConstructors:        []string{"Field"},
		RelationshipConstructors: []string{"Relationship"},
		Extensions:               []string{".py"},
		Exclude:                  []string{},
	}
}

// ValidationError lists the configuration keys that failed validation.
type ValidationError struct {
	Path   string
	Fields []string
	Err    error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Path, strings.Join(e.Fields, ", "))
}

// Unwrap returns the underlying validator error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

var validate = newValidator()

// newValidator reports fields under their YAML keys.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Load reads the config file at path. With an empty path the default file is
// used if it exists in the working directory, otherwise Default is returned.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(path, data)
}

// Parse decodes YAML config data on top of the defaults and validates it.
func Parse(path string, data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			validationErr.Path = path
		}
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return &ValidationError{Fields: fields, Err: err}
}

// HasExtension reports whether name ends with one of the configured extensions.
func (c *Config) HasExtension(name string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// IsExcluded reports whether a directory with base name dir is skipped.
func (c *Config) IsExcluded(dir string) bool {
	for _, excluded := range c.Exclude {
		if excluded == dir {
			return true
		}
	}
	return false
}
