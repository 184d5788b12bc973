package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/awantoch/eepromgen/constants"
)

//go:embed config.schema.json
var schemaJSON []byte

type Config struct {
	Prefix       string    `yaml:"prefix"`
	Qualifier    string    `yaml:"qualifier"`
	BytesPerLine int       `yaml:"bytes_per_line"`
	Template     string    `yaml:"template"`
	TemplateFile string    `yaml:"template_file"`
	S3           S3Config  `yaml:"s3"`
	Log          LogConfig `yaml:"log"`

	// dir is the directory of the loaded file; template_file is relative to it.
	dir string
}

type S3Config struct {
	Region string `yaml:"region"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Qualifier:    constants.DefaultQualifier,
		BytesPerLine: constants.DefaultBytesPerLine,
		Log:          LogConfig{Level: constants.DefaultLogLevel},
	}
}

// LoadConfig reads and validates the YAML file at path. When required is
// false a missing file yields Default().
func LoadConfig(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse validates a YAML document against the embedded schema and decodes
// it over the defaults.
func Parse(data []byte) (*Config, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate runs JSON-Schema validation of a YAML document.
func Validate(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	// Round trip through JSON so the validator only sees JSON types.
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("config is not JSON compatible: %w", err)
	}
	var doc any
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return err
	}
	schema, err := jsonschema.CompileString("gen-eeprom.schema.json", string(schemaJSON))
	if err != nil {
		return err
	}
	return schema.Validate(doc)
}

// ApplyEnv lets the PREFIX environment variable override the file's prefix.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(constants.EnvPrefix); ok {
		c.Prefix = v
	}
}

// TemplateSource returns the configured declaration template, or "" for the
// built-in one.
func (c *Config) TemplateSource() (string, error) {
	if c.Template != "" {
		return c.Template, nil
	}
	if c.TemplateFile == "" {
		return "", nil
	}
	path := c.TemplateFile
	if !filepath.IsAbs(path) && c.dir != "" {
		path = filepath.Join(c.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(data), nil
}
