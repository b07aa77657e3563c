package urls

import (
	"errors"
	"fmt"
)

// ErrMissingAPIVersion is matched by MissingAPIVersionError.
var ErrMissingAPIVersion = errors.New("urls: api calls must specify the version, e.g. ver=3")

// ErrBrokenURL is matched by BrokenURLError.
var ErrBrokenURL = errors.New("urls: a broken url is being created")

// brokenPath is a routing artifact that must never reach a page.
const brokenPath = "/packages"

// MissingAPIVersionError is returned by BuildURL when an api url is
// requested without a version.
type MissingAPIVersionError struct {
	Args   []string
	Params Params
}

func (e *MissingAPIVersionError) Error() string {
	return fmt.Sprintf("%s (args=%v params=%v)", ErrMissingAPIVersion.Error(), e.Args, e.Params)
}

func (e *MissingAPIVersionError) Unwrap() error { return ErrMissingAPIVersion }

// BrokenURLError is returned by Localize when the rewritten url equals the
// broken sentinel path.
type BrokenURLError struct {
	URL     string
	RawURL  string
	Options Options
}

func (e *BrokenURLError) Error() string {
	return fmt.Sprintf("%s %s (raw=%q options=%+v)", ErrBrokenURL.Error(), e.URL, e.RawURL, e.Options)
}

func (e *BrokenURLError) Unwrap() error { return ErrBrokenURL }
