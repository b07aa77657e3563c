// Package helpers implements the functions the theme exposes to templates.
package helpers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/ncruces/go-strftime"

	"github.com/goliatone/go-mxtheme/internal/urls"
)

// DefaultDateFormat is the strftime layout used by FormatDisplayDate.
const DefaultDateFormat = "%Y/%m/%d"

// timestampLayout accepts an optional fractional second when parsing.
const timestampLayout = "2006-01-02T15:04:05"

// DefaultRegularFormats lists resource formats previewed inline.
var DefaultRegularFormats = []string{"csv", "xml", "shp", "kml", "kmz", "json", "xls", "txt", "tls"}

// URLBuilder is the slice of urls.Localizer the helpers need.
type URLBuilder interface {
	BuildURL(ctx context.Context, args []string, params urls.Params) (string, error)
	Localize(ctx context.Context, rawURL string, opts urls.Options) (string, error)
}

// Options configures a Table.
type Options struct {
	URLs           URLBuilder
	DateFormat     string
	RegularFormats []string
}

// Table holds the helper functions registered with the host template engine.
type Table struct {
	urls       URLBuilder
	dateFormat string
	regular    map[string]struct{}
}

// New constructs a helper table.
func New(opts Options) *Table {
	t := &Table{
		urls:       opts.URLs,
		dateFormat: strings.TrimSpace(opts.DateFormat),
		regular:    map[string]struct{}{},
	}
	if t.dateFormat == "" {
		t.dateFormat = DefaultDateFormat
	}
	formats := opts.RegularFormats
	if len(formats) == 0 {
		formats = DefaultRegularFormats
	}
	for _, f := range formats {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			t.regular[f] = struct{}{}
		}
	}
	return t
}

// Map returns the helpers keyed by the names templates use.
func (t *Table) Map() map[string]any {
	return map[string]any{
		"format_display_date": t.FormatDisplayDate,
		"is_regular_format":   t.IsRegularFormat,
		"url_for":             t.URLFor,
		"localize_url":        t.LocalizeURL,
		"slugify":             Slugify,
	}
}

// FormatDisplayDate renders an ISO timestamp such as
// 2024-03-01T10:20:30.123456 with a strftime layout. The table default is
// used when no layout is given.
func (t *Table) FormatDisplayDate(timestamp string, layout ...string) (string, error) {
	format := t.dateFormat
	if len(layout) > 0 && strings.TrimSpace(layout[0]) != "" {
		format = layout[0]
	}
	return FormatDisplayDate(timestamp, format)
}

// FormatDisplayDate parses timestamp and formats it with the strftime layout.
func FormatDisplayDate(timestamp, layout string) (string, error) {
	parsed, err := time.Parse(timestampLayout, strings.TrimSpace(timestamp))
	if err != nil {
		return "", fmt.Errorf("helpers: parse timestamp %q: %w", timestamp, err)
	}
	return strftime.Format(layout, parsed), nil
}

// IsRegularFormat reports whether format is one of the configured formats.
func (t *Table) IsRegularFormat(format string) bool {
	_, ok := t.regular[strings.ToLower(strings.TrimSpace(format))]
	return ok
}

// Slugify normalises value into a url slug.
func Slugify(value string) (string, error) {
	return slug.Normalize(value)
}

// URLFor builds a localized url. target is a named route or literal path and
// may be empty when pairs carry controller and action.
func (t *Table) URLFor(ctx context.Context, target string, pairs ...any) (string, error) {
	if t.urls == nil {
		return "", fmt.Errorf("helpers: url builder not configured")
	}
	params, err := urls.ParamsFromPairs(pairs...)
	if err != nil {
		return "", err
	}
	var args []string
	if target = strings.TrimSpace(target); target != "" {
		args = []string{target}
	}
	return t.urls.BuildURL(ctx, args, params)
}

// LocalizeURL rewrites an already built path for the request locale, or for
// locale when given.
func (t *Table) LocalizeURL(ctx context.Context, path string, locale ...string) (string, error) {
	if t.urls == nil {
		return "", fmt.Errorf("helpers: url builder not configured")
	}
	opts := urls.Options{}
	if len(locale) > 0 {
		opts.Locale = locale[0]
	}
	return t.urls.Localize(ctx, path, opts)
}
