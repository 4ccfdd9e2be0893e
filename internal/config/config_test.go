package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/univalue/pkg/univalue"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "config_test_*.yml")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	_ = tmpFile.Close()
	return tmpFile.Name()
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 2, cfg.Output.Indent)
	assert.Equal(t, KeyCaseNone, cfg.Output.KeyCase)
	assert.Equal(t, univalue.DefaultMaxDepth, cfg.Parser.MaxDepth)
	assert.Equal(t, "combine", cfg.Parser.Surrogates)
	assert.Equal(t, "keep", cfg.Parser.DuplicateKeys)
	assert.Equal(t, filepath.Join("testdata", "fixtures"), cfg.Fixtures.Dir)
	assert.False(t, cfg.Dev.Debug)
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.RenamesKeys())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
output:
  indent: 4
  key_case: snake
  key_mappings:
    "userID": "user_identifier"
parser:
  max_depth: 64
  surrogates: split
  duplicate_keys: reject
check:
  require:
    name: string
    tags: array
fixtures:
  dir: "corpus"
dev:
  debug: true
`
	cfg, err := LoadConfig(writeTempConfig(t, yamlContent))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Output.Indent)
	assert.Equal(t, KeyCaseSnake, cfg.Output.KeyCase)
	assert.Equal(t, "user_identifier", cfg.Output.KeyMappings["userID"])
	assert.Equal(t, 64, cfg.Parser.MaxDepth)
	assert.Equal(t, "split", cfg.Parser.Surrogates)
	assert.Equal(t, "reject", cfg.Parser.DuplicateKeys)
	assert.Equal(t, "corpus", cfg.Fixtures.Dir)
	assert.True(t, cfg.Dev.Debug)
	assert.Equal(t, []string{"name=string", "tags=array"}, cfg.Requirements())
}

func TestConfig_PartialYAMLKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeTempConfig(t, "output:\n  indent: 0\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Output.Indent)
	assert.Equal(t, "combine", cfg.Parser.Surrogates)
	assert.Equal(t, univalue.DefaultMaxDepth, cfg.Parser.MaxDepth)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	invalidYAML := `
output:
  indent: [unclosed array
`
	_, err := LoadConfig(writeTempConfig(t, invalidYAML))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "negative indent", mutate: func(c *Config) { c.Output.Indent = -1 }, wantErr: "output.indent"},
		{name: "unknown key case", mutate: func(c *Config) { c.Output.KeyCase = "title" }, wantErr: "output.key_case"},
		{name: "negative depth", mutate: func(c *Config) { c.Parser.MaxDepth = -3 }, wantErr: "parser.max_depth"},
		{name: "unknown surrogate mode", mutate: func(c *Config) { c.Parser.Surrogates = "merge" }, wantErr: "parser.surrogates"},
		{name: "unknown duplicate mode", mutate: func(c *Config) { c.Parser.DuplicateKeys = "last" }, wantErr: "parser.duplicate_keys"},
		{name: "unknown required kind", mutate: func(c *Config) { c.Check.Require["id"] = "integer" }, wantErr: "unknown kind 'integer'"},
		{name: "empty key case is allowed", mutate: func(c *Config) { c.Output.KeyCase = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_LoadRejectsInvalidValues(t *testing.T) {
	_, err := LoadConfig(writeTempConfig(t, "parser:\n  surrogates: sometimes\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config file")
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_search_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	err = os.MkdirAll(nestedDir, 0o755)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, "project", ".univalue.yml")
	configContent := "output:\n  indent: 8\n"
	err = os.WriteFile(configPath, []byte(configContent), 0o644)
	require.NoError(t, err)

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(nestedDir)
	require.NoError(t, err)

	// Should find it in the parent directory
	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	cfg, err := LoadConfig(foundPath)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Output.Indent)
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "no_config_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(tmpDir)
	require.NoError(t, err)

	foundPath := FindConfigFile()
	assert.Empty(t, foundPath)
}

func TestConfig_KeyName(t *testing.T) {
	cfg := NewConfig()
	cfg.Output.KeyCase = KeyCaseCamel
	cfg.Output.KeyMappings = map[string]string{
		"user_id": "UserID",
		"api_key": "APIKey",
	}
	require.True(t, cfg.RenamesKeys())

	// Explicit mappings take precedence
	assert.Equal(t, "UserID", cfg.KeyName("user_id"))
	assert.Equal(t, "APIKey", cfg.KeyName("api_key"))

	assert.Equal(t, "UserName", cfg.KeyName("user_name"))
	assert.Equal(t, "FirstName", cfg.KeyName("first_name"))
}

func TestConfig_KeyNameCases(t *testing.T) {
	tests := []struct {
		keyCase  string
		key      string
		expected string
	}{
		{KeyCaseNone, "someKey_name", "someKey_name"},
		{"", "someKey_name", "someKey_name"},
		{KeyCaseSnake, "firstName", "first_name"},
		{KeyCaseCamel, "first_name", "FirstName"},
		{KeyCaseLowerCamel, "first_name", "firstName"},
		{KeyCaseKebab, "firstName", "first-name"},
		{KeyCaseScreamingSnake, "firstName", "FIRST_NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.keyCase+"/"+tt.key, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Output.KeyCase = tt.keyCase
			assert.Equal(t, tt.expected, cfg.KeyName(tt.key))
		})
	}
}

func TestConfig_ParserOptions(t *testing.T) {
	cfg := NewConfig()
	cfg.Parser.DuplicateKeys = "reject"
	cfg.Parser.MaxDepth = 2

	_, err := univalue.Parse([]byte(`{"a":1,"a":2}`), cfg.ParserOptions()...)
	assert.ErrorIs(t, err, univalue.ErrDuplicateKey)

	_, err = univalue.Parse([]byte(`[[[]]]`), cfg.ParserOptions()...)
	assert.ErrorIs(t, err, univalue.ErrTooDeep)

	_, err = univalue.Parse([]byte(`[[]]`), cfg.ParserOptions()...)
	assert.NoError(t, err)
}

func TestLoadConfigWithPrecedence(t *testing.T) {
	configYAML := `
output:
  indent: 4
  key_case: kebab
parser:
  max_depth: 10
`
	indent := 0
	debug := true
	cfg, err := LoadConfigWithCLI(writeTempConfig(t, configYAML), Overrides{Indent: &indent, Debug: &debug})
	require.NoError(t, err)

	// CLI > config file > defaults
	assert.Equal(t, 0, cfg.Output.Indent)
	assert.True(t, cfg.Dev.Debug)
	assert.Equal(t, KeyCaseKebab, cfg.Output.KeyCase)
	assert.Equal(t, 10, cfg.Parser.MaxDepth)
	assert.Equal(t, "keep", cfg.Parser.DuplicateKeys)
}

func TestLoadConfigWithPrecedence_NoOverrides(t *testing.T) {
	cfg, err := LoadConfigWithCLI(writeTempConfig(t, "output:\n  indent: 3\n"), Overrides{})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Output.Indent)
	assert.Equal(t, "combine", cfg.Parser.Surrogates)
}

func TestLoadConfigWithCLI_NoFile(t *testing.T) {
	keyCase := KeyCaseSnake
	cfg, err := LoadConfigWithCLI("", Overrides{KeyCase: &keyCase})
	require.NoError(t, err)
	assert.Equal(t, KeyCaseSnake, cfg.Output.KeyCase)
	assert.Equal(t, 2, cfg.Output.Indent)
}

func TestLoadConfigWithCLI_InvalidOverride(t *testing.T) {
	mode := "both"
	_, err := LoadConfigWithCLI("", Overrides{Surrogates: &mode})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parser.surrogates")
}
