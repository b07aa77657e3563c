package mxtheme

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mxtheme/internal/urls"
)

const (
	codeMissingAPIVersion = "URL_MISSING_API_VERSION"
	codeBrokenURL         = "URL_BROKEN"
)

var (
	ErrMissingAPIVersion = urls.ErrMissingAPIVersion
	ErrBrokenURL         = urls.ErrBrokenURL
)

type (
	MissingAPIVersionError = urls.MissingAPIVersionError
	BrokenURLError         = urls.BrokenURLError
)

// wrapURLError categorises url failures. The underlying error stays reachable
// through errors.As and errors.Is.
func wrapURLError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	var missing *urls.MissingAPIVersionError
	if errors.As(err, &missing) {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "api url requires a version").
			WithTextCode(codeMissingAPIVersion)
	}
	var broken *urls.BrokenURLError
	if errors.As(err, &broken) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "url resolves to a broken path").
			WithTextCode(codeBrokenURL)
	}
	return err
}
