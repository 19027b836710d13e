// Package config loads sheetplug settings from defaults, a config file,
// environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config file names searched in the working directory.
const (
	ConfigFileName    = "sheetplug.yaml"
	ConfigFileNameAlt = "sheetplug.yml"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: SHEETPLUG_VERIFY__MODE sets verify.mode.
const EnvPrefix = "SHEETPLUG_"

// Config holds all settings.
type Config struct {
	Data     string         `koanf:"data"`
	Out      string         `koanf:"out"`
	LogLevel string         `koanf:"log_level"`
	Verbose  bool           `koanf:"verbose"`
	OnError  string         `koanf:"on_error"`
	Load     LoadConfig     `koanf:"load"`
	Verify   VerifyConfig   `koanf:"verify"`
	Products ProductsConfig `koanf:"products"`
	Branches BranchesConfig `koanf:"branches"`
}

// LoadConfig controls dataset loading.
type LoadConfig struct {
	HeaderRows int      `koanf:"header_rows"`
	Sheets     []string `koanf:"sheets"`
}

// VerifyConfig controls the structural verifier.
type VerifyConfig struct {
	Mode string `koanf:"mode"`
}

// ProductsConfig controls the extract-products merge.
type ProductsConfig struct {
	LeftKey     string `koanf:"left_key"`
	RightKey    string `koanf:"right_key"`
	OutputSheet string `koanf:"output_sheet"`
}

// BranchesConfig controls the branch/manager join.
type BranchesConfig struct {
	BranchSheets  []string `koanf:"branch_sheets"`
	ManagerSheets []string `koanf:"manager_sheets"`
}

// defaults mirrors the zero-config behavior of every step.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"log_level":               "info",
		"verbose":                 false,
		"on_error":                "abort",
		"load.header_rows":        1,
		"verify.mode":             "warn",
		"products.left_key":       "id",
		"products.right_key":      "product_id",
		"products.output_sheet":   "products_extracted",
		"branches.branch_sheets":  []string{"branch", "branches"},
		"branches.manager_sheets": []string{"managers", "manager", "branch_managers"},
	}
}

// flagKeys maps flag names whose config key differs from the snake_case form.
var flagKeys = map[string]string{
	"mode":        "verify.mode",
	"header-rows": "load.header_rows",
	"only":        "load.sheets",
}

// Load builds the configuration. Precedence (highest to lowest):
// changed flags > environment > config file > defaults.
// cfgFile may be empty, in which case sheetplug.yaml or sheetplug.yml in the
// working directory is used when present.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config: %w", err)
	}

	if used != "" {
		base := filepath.Dir(used)
		cfg.Data = resolvePathRelativeTo(cfg.Data, base, flags, "data")
		cfg.Out = resolvePathRelativeTo(cfg.Out, base, flags, "out")
	}

	return &cfg, used, nil
}

// envKey transforms SHEETPLUG_VERIFY__MODE into verify.mode.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// findConfigFile returns the explicit path, or the first default config
// file present in the working directory, or "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// resolvePathRelativeTo anchors a path from the config file at the file's
// directory. Paths given as flags stay relative to the working directory.
func resolvePathRelativeTo(path, baseDir string, flags *pflag.FlagSet, flag string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if flags != nil && flags.Changed(flag) {
		return path
	}
	if _, ok := os.LookupEnv(EnvPrefix + strings.ToUpper(flag)); ok {
		return path
	}
	return filepath.Join(baseDir, path)
}
