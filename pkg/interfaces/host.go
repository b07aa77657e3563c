package interfaces

// HostConfigurer is the slice of the host CMS configuration surface a theme
// plugin writes to during registration. Directories are absolute paths.
type HostConfigurer interface {
	AddTemplateDirectory(dir string) error
	AddPublicDirectory(dir string) error
	// AddResource registers a static resource library (scripts, styles)
	// served under the given name.
	AddResource(dir, name string) error
}
