package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/univalue/pkg/univalue"
)

// Config represents the complete configuration for the univalue CLI
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Parser   ParserConfig   `yaml:"parser"`
	Check    CheckConfig    `yaml:"check"`
	Fixtures FixturesConfig `yaml:"fixtures"`
	Dev      DevConfig      `yaml:"dev"`
}

// OutputConfig controls how documents are written back out
type OutputConfig struct {
	Indent      int               `yaml:"indent"`
	KeyCase     string            `yaml:"key_case"`
	KeyMappings map[string]string `yaml:"key_mappings"`
}

// ParserConfig controls the reader options
type ParserConfig struct {
	MaxDepth      int    `yaml:"max_depth"`
	Surrogates    string `yaml:"surrogates"`
	DuplicateKeys string `yaml:"duplicate_keys"`
}

// CheckConfig lists member kinds every checked document must have
type CheckConfig struct {
	Require map[string]string `yaml:"require"`
}

// FixturesConfig controls the fixture harness
type FixturesConfig struct {
	Dir string `yaml:"dir"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// Key case names accepted by output.key_case
const (
	KeyCaseNone           = "none"
	KeyCaseSnake          = "snake"
	KeyCaseCamel          = "camel"
	KeyCaseLowerCamel     = "lower_camel"
	KeyCaseKebab          = "kebab"
	KeyCaseScreamingSnake = "screaming_snake"
)

var keyCases = map[string]func(string) string{
	KeyCaseNone:           nil,
	KeyCaseSnake:          strcase.ToSnake,
	KeyCaseCamel:          strcase.ToCamel,
	KeyCaseLowerCamel:     strcase.ToLowerCamel,
	KeyCaseKebab:          strcase.ToKebab,
	KeyCaseScreamingSnake: strcase.ToScreamingSnake,
}

var surrogateModes = map[string]univalue.SurrogateMode{
	"combine": univalue.SurrogatesCombine,
	"split":   univalue.SurrogatesSplit,
}

var duplicateModes = map[string]univalue.DuplicateKeyMode{
	"keep":   univalue.DuplicatesKeep,
	"reject": univalue.DuplicatesReject,
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Indent:      2,
			KeyCase:     KeyCaseNone,
			KeyMappings: make(map[string]string),
		},
		Parser: ParserConfig{
			MaxDepth:      univalue.DefaultMaxDepth,
			Surrogates:    "combine",
			DuplicateKeys: "keep",
		},
		Check: CheckConfig{
			Require: make(map[string]string),
		},
		Fixtures: FixturesConfig{
			Dir: filepath.Join("testdata", "fixtures"),
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".univalue.yml", ".univalue.yaml", "univalue.yml", "univalue.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that every enumerated setting names a known value
func (c *Config) Validate() error {
	if c.Output.Indent < 0 {
		return fmt.Errorf("output.indent must not be negative, got %d", c.Output.Indent)
	}
	if _, ok := keyCases[c.Output.KeyCase]; !ok && c.Output.KeyCase != "" {
		return fmt.Errorf("unknown output.key_case '%s' (want one of %v)", c.Output.KeyCase, names(keyCases))
	}
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	if _, ok := surrogateModes[c.Parser.Surrogates]; !ok {
		return fmt.Errorf("unknown parser.surrogates '%s' (want one of %v)", c.Parser.Surrogates, names(surrogateModes))
	}
	if _, ok := duplicateModes[c.Parser.DuplicateKeys]; !ok {
		return fmt.Errorf("unknown parser.duplicate_keys '%s' (want one of %v)", c.Parser.DuplicateKeys, names(duplicateModes))
	}
	for key, kind := range c.Check.Require {
		if _, ok := univalue.ParseKind(kind); !ok {
			return fmt.Errorf("unknown kind '%s' for required key '%s'", kind, key)
		}
	}
	return nil
}

func names[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ParserOptions converts the parser section into reader options
func (c *Config) ParserOptions() []univalue.Option {
	return []univalue.Option{
		univalue.WithMaxDepth(c.Parser.MaxDepth),
		univalue.WithSurrogates(surrogateModes[c.Parser.Surrogates]),
		univalue.WithDuplicateKeys(duplicateModes[c.Parser.DuplicateKeys]),
	}
}

// KeyName returns the output name for an object key, applying naming rules
func (c *Config) KeyName(key string) string {
	// Check explicit mappings first
	if mapped, exists := c.Output.KeyMappings[key]; exists {
		return mapped
	}

	if convert := keyCases[c.Output.KeyCase]; convert != nil {
		return convert(key)
	}

	return key
}

// RenamesKeys reports whether KeyName can ever return something other than
// its argument.
func (c *Config) RenamesKeys() bool {
	return len(c.Output.KeyMappings) > 0 || keyCases[c.Output.KeyCase] != nil
}

// Requirements returns the check.require section as sorted "key=kind" pairs
func (c *Config) Requirements() []string {
	out := make([]string, 0, len(c.Check.Require))
	for key, kind := range c.Check.Require {
		out = append(out, key+"="+kind)
	}
	sort.Strings(out)
	return out
}

// Overrides holds values given on the command line. Nil fields were not set
// and leave the file or default value in place.
type Overrides struct {
	Indent        *int
	KeyCase       *string
	MaxDepth      *int
	Surrogates    *string
	DuplicateKeys *string
	FixturesDir   *string
	Debug         *bool
}

func (o Overrides) apply(cfg *Config) {
	if o.Indent != nil {
		cfg.Output.Indent = *o.Indent
	}
	if o.KeyCase != nil {
		cfg.Output.KeyCase = *o.KeyCase
	}
	if o.MaxDepth != nil {
		cfg.Parser.MaxDepth = *o.MaxDepth
	}
	if o.Surrogates != nil {
		cfg.Parser.Surrogates = *o.Surrogates
	}
	if o.DuplicateKeys != nil {
		cfg.Parser.DuplicateKeys = *o.DuplicateKeys
	}
	if o.FixturesDir != nil {
		cfg.Fixtures.Dir = *o.FixturesDir
	}
	if o.Debug != nil {
		cfg.Dev.Debug = *o.Debug
	}
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// CLI > config file > defaults
func LoadConfigWithCLI(configPath string, overrides Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	overrides.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
