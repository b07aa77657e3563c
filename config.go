package mxtheme

import (
	"github.com/goliatone/go-mxtheme/internal/configloader"
	"github.com/goliatone/go-mxtheme/internal/runtimeconfig"
)

var (
	ErrSiteURLInvalid          = runtimeconfig.ErrSiteURLInvalid
	ErrRootPathInvalid         = runtimeconfig.ErrRootPathInvalid
	ErrDefaultLocaleRequired   = runtimeconfig.ErrDefaultLocaleRequired
	ErrLocaleInvalid           = runtimeconfig.ErrLocaleInvalid
	ErrDateFormatRequired      = runtimeconfig.ErrDateFormatRequired
	ErrThemeBasePathRequired   = runtimeconfig.ErrThemeBasePathRequired
	ErrMetricsNamespaceInvalid = runtimeconfig.ErrMetricsNamespaceInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	RouterConfig  = runtimeconfig.RouterConfig
	ThemeConfig   = runtimeconfig.ThemeConfig
	HelpersConfig = runtimeconfig.HelpersConfig
	MetricsConfig = runtimeconfig.MetricsConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	Features      = runtimeconfig.Features
	LoadOptions   = configloader.Options
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file, an optional .env file and MXTHEME_ variables
// over the defaults.
func LoadConfig(opts LoadOptions) (Config, error) {
	return configloader.Load(opts)
}
