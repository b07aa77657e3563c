package themes

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-mxtheme/internal/logging"
	"github.com/goliatone/go-mxtheme/internal/runtimeconfig"
	"github.com/goliatone/go-mxtheme/pkg/interfaces"
)

// HelperProvider supplies the template helper table.
type HelperProvider interface {
	Map() map[string]any
}

// PluginOptions configures a Plugin.
type PluginOptions struct {
	Config  runtimeconfig.ThemeConfig
	Helpers HelperProvider
	Logger  interfaces.Logger
}

// Plugin registers the theme's templates, public files and resources with
// the host and exposes its template helpers.
type Plugin struct {
	name      string
	basePath  string
	templates string
	public    string
	resources []Resource
	helpers   HelperProvider
	logger    interfaces.Logger
}

// NewPlugin builds a plugin from configuration. When the configured manifest
// exists under the base path its directories take precedence; a missing
// manifest is not an error.
func NewPlugin(opts PluginOptions) (*Plugin, error) {
	cfg := opts.Config
	p := &Plugin{
		name:      strings.TrimSpace(cfg.ResourceName),
		basePath:  strings.TrimSpace(cfg.BasePath),
		templates: cfg.TemplateDir,
		public:    cfg.PublicDir,
		helpers:   opts.Helpers,
		logger:    opts.Logger,
	}
	if p.logger == nil {
		p.logger = logging.NoOp()
	}
	if p.basePath == "" {
		p.basePath = "."
	}
	if dir, name := strings.TrimSpace(cfg.ResourceDir), strings.TrimSpace(cfg.ResourceName); dir != "" && name != "" {
		p.resources = []Resource{{Path: dir, Name: name}}
	}

	if manifestName := strings.TrimSpace(cfg.Manifest); manifestName != "" {
		manifest, err := LoadManifest(filepath.Join(p.basePath, manifestName))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			p.logger.Debug("themes.manifest.missing", "path", manifestName)
		case err != nil:
			return nil, err
		default:
			p.applyManifest(manifest)
		}
	}
	return p, nil
}

func (p *Plugin) applyManifest(m *Manifest) {
	p.name = m.Name
	if m.Templates != "" {
		p.templates = m.Templates
	}
	if m.Public != "" {
		p.public = m.Public
	}
	if len(m.Resources) > 0 {
		p.resources = append([]Resource(nil), m.Resources...)
	}
}

// Name returns the theme name.
func (p *Plugin) Name() string {
	return p.name
}

// UpdateConfig registers template and public directories and every resource
// with the host. Empty directories are skipped.
func (p *Plugin) UpdateConfig(host interfaces.HostConfigurer) error {
	if host == nil {
		return fmt.Errorf("themes: host configurer required")
	}
	logger := logging.WithFields(p.logger, map[string]any{"theme": p.name})

	if strings.TrimSpace(p.templates) != "" {
		dir, err := resolveDir(p.basePath, p.templates)
		if err != nil {
			return err
		}
		if err := host.AddTemplateDirectory(dir); err != nil {
			return fmt.Errorf("themes: add template directory %s: %w", dir, err)
		}
		logger.Debug("themes.templates.registered", "dir", dir)
	}

	if strings.TrimSpace(p.public) != "" {
		dir, err := resolveDir(p.basePath, p.public)
		if err != nil {
			return err
		}
		if err := host.AddPublicDirectory(dir); err != nil {
			return fmt.Errorf("themes: add public directory %s: %w", dir, err)
		}
		logger.Debug("themes.public.registered", "dir", dir)
	}

	for _, res := range p.resources {
		dir, err := resolveDir(p.basePath, res.Path)
		if err != nil {
			return err
		}
		if err := host.AddResource(dir, res.Name); err != nil {
			return fmt.Errorf("themes: add resource %s: %w", res.Name, err)
		}
		logger.Debug("themes.resource.registered", "dir", dir, "name", res.Name)
	}

	logger.Info("themes.registered", "resources", len(p.resources))
	return nil
}

// Helpers returns the template helpers keyed by name.
func (p *Plugin) Helpers() map[string]any {
	if p.helpers == nil {
		return map[string]any{}
	}
	return p.helpers.Map()
}
