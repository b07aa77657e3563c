// Package configloader builds a runtimeconfig.Config from three layers, highest
// precedence last: an optional .env file, a YAML file and MXTHEME_ prefixed
// environment variables where "__" maps to "." (MXTHEME_THEME__BASE_PATH
// sets theme.base_path).
package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"

	"github.com/goliatone/go-mxtheme/internal/runtimeconfig"
)

// DefaultEnvPrefix is applied when Options.EnvPrefix is empty.
const DefaultEnvPrefix = "MXTHEME_"

// Options selects the configuration sources.
type Options struct {
	// Path is the YAML file. Empty skips the file layer.
	Path string
	// DotEnv is an optional .env file; a missing file is ignored.
	DotEnv    string
	EnvPrefix string
}

// Load merges the configured layers over runtimeconfig.DefaultConfig and
// validates the result.
func Load(opts Options) (runtimeconfig.Config, error) {
	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	if path := strings.TrimSpace(opts.DotEnv); path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return runtimeconfig.Config{}, fmt.Errorf("configloader: load %s: %w", path, err)
		}
	}

	k := koanf.New(".")

	if path := strings.TrimSpace(opts.Path); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return runtimeconfig.Config{}, fmt.Errorf("configloader: read %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, prefix), "__", "."))
	}), nil); err != nil {
		return runtimeconfig.Config{}, fmt.Errorf("configloader: env overlay: %w", err)
	}

	doc := fromRuntime(runtimeconfig.DefaultConfig())
	if err := k.Unmarshal("", &doc); err != nil {
		return runtimeconfig.Config{}, fmt.Errorf("configloader: unmarshal: %w", err)
	}

	cfg := doc.toRuntime()
	if err := cfg.Validate(); err != nil {
		return runtimeconfig.Config{}, err
	}
	return cfg, nil
}
