package config

import (
	"bytes"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
)

const (
	KeyStorePath   = "store.path"
	KeyPreviewRows = "preview.rows"
	KeyRules       = "rules"
)

type Config struct {
	Store   StoreConfig   `mapstructure:"store" validate:"required"`
	Preview PreviewConfig `mapstructure:"preview"`
	Rules   []Rule        `mapstructure:"rules"`
}

type StoreConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type PreviewConfig struct {
	Rows int `mapstructure:"rows" validate:"min=1"`
}

// Rule carries default loader settings for files whose base name matches
// a glob template. An empty format means the extension decides.
type Rule struct {
	Name         string         `mapstructure:"name"`
	FileTemplate string         `mapstructure:"file_template"`
	Format       string         `mapstructure:"format"`
	Options      map[string]any `mapstructure:"options"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	viper.SetDefault(KeyStorePath, "./chemtab.db")
	viper.SetDefault(KeyPreviewRows, 10)
	viper.SetDefault(KeyRules, []map[string]any{})
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# chemtab configuration
store:
  path: "./chemtab.db"

preview:
  rows: 10

# Rules preset loader settings for files whose name matches a glob template,
# for example:
#
# rules:
#   - name: "assay exports"
#     file_template: "assay_*.csv"
#     options:
#       delimiter: ";"
#   - name: "vendor decks"
#     file_template: "deck_*.txt"
#     format: "smiles"
rules: []
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateRules(cfg.Rules); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyStorePath, "./chemtab.db")
	v.SetDefault(KeyPreviewRows, 10)
	v.SetDefault(KeyRules, []map[string]any{})
}

func validateRules(rules []Rule) error {
	validFormats := map[string]bool{
		"csv":    true,
		"excel":  true,
		"smiles": true,
		"sdf":    true,
	}
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return fmt.Errorf("validation failed: rules[%d].name is required", i)
		}
		key := strings.ToLower(name)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("validation failed: duplicate rule name %q", name)
		}
		seen[key] = struct{}{}
		template := strings.TrimSpace(rule.FileTemplate)
		if template == "" {
			return fmt.Errorf("validation failed: rules[%d].file_template is required", i)
		}
		if _, err := filepath.Match(template, "probe"); err != nil {
			return fmt.Errorf("validation failed: rules[%d].file_template %q is not a valid pattern", i, rule.FileTemplate)
		}
		format := strings.ToLower(strings.TrimSpace(rule.Format))
		if format != "" && !validFormats[format] {
			return fmt.Errorf(
				"validation failed: rules[%d].format %q is not supported (valid: csv, excel, smiles, sdf)",
				i,
				rule.Format,
			)
		}
	}
	return nil
}
