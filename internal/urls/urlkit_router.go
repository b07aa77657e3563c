package urls

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-mxtheme/internal/requestctx"
)

// URLKitRouterOptions configures the go-urlkit backed router.
type URLKitRouterOptions struct {
	Manager *urlkit.RouteManager
	// DefaultGroup is used for named routes without a group prefix.
	DefaultGroup string
	// DefaultAction is used when params name a controller but no action.
	DefaultAction string
}

// URLKitRouter builds raw urls from a go-urlkit RouteManager. Controllers map
// to route groups and actions to route names; named routes use the dotted
// "group.child.route" form.
type URLKitRouter struct {
	manager       *urlkit.RouteManager
	defaultGroup  string
	defaultAction string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

var _ Router = (*URLKitRouter)(nil)

const versionSlot = "mxthemeversionslot"

var reservedParams = map[string]struct{}{
	ParamController: {},
	ParamAction:     {},
	ParamQualified:  {},
	ParamProtocol:   {},
	ParamHost:       {},
	ParamLocale:     {},
	ParamNoRoot:     {},
	ParamQuery:      {},
}

// NewURLKitRouter constructs a router backed by go-urlkit.
func NewURLKitRouter(opts URLKitRouterOptions) *URLKitRouter {
	if strings.TrimSpace(opts.DefaultAction) == "" {
		opts.DefaultAction = "index"
	}
	return &URLKitRouter{
		manager:       opts.Manager,
		defaultGroup:  strings.TrimSpace(opts.DefaultGroup),
		defaultAction: strings.TrimSpace(opts.DefaultAction),
		groupCache:    make(map[string]*urlkit.Group),
	}
}

// BuildRawURL satisfies Router. Group base urls are dropped, the request
// script root is prefixed and, for qualified calls with protocol and host,
// the url is made absolute.
func (r *URLKitRouter) BuildRawURL(ctx context.Context, args []string, params Params) (string, error) {
	path, err := r.path(args, params)
	if err != nil {
		return "", err
	}

	out := requestctx.ScriptRoot(ctx) + path
	if params.Bool(ParamQualified) {
		protocol, host := params.Text(ParamProtocol), params.Text(ParamHost)
		if protocol != "" && host != "" {
			out = protocol + "://" + host + out
		}
	}
	return out, nil
}

func (r *URLKitRouter) path(args []string, params Params) (string, error) {
	target := ""
	if len(args) > 0 {
		target = strings.TrimSpace(args[0])
	}
	if strings.HasPrefix(target, "/") {
		return target, nil
	}

	var groupPath, route string
	switch {
	case target != "":
		groupPath, route = r.defaultGroup, target
		if idx := strings.LastIndex(target, "."); idx > 0 {
			groupPath, route = target[:idx], target[idx+1:]
		}
	case params.Text(ParamController) != "":
		groupPath = params.Text(ParamController)
		route = params.Text(ParamAction)
		if route == "" {
			route = r.defaultAction
		}
	default:
		return "", fmt.Errorf("urls: route name or controller required")
	}
	if groupPath == "" {
		return "", fmt.Errorf("urls: no route group for %q", route)
	}

	group, err := r.groupForPath(groupPath)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}

	// ver arrives as "/3" and must reach the path unescaped, so the builder
	// sees a slot token that is swapped after the build.
	version := params.Text(ParamVersion)
	for key, val := range params {
		if _, reserved := reservedParams[key]; reserved {
			continue
		}
		if key == ParamVersion && version != "" {
			val = versionSlot
		}
		builder.WithParam(key, val)
	}
	for key, values := range collectQueries(params[ParamQuery]) {
		for _, v := range values {
			builder.WithQuery(key, v)
		}
	}

	built, err := builder.Build()
	if err != nil {
		return "", err
	}
	out, err := stripOrigin(built)
	if err != nil {
		return "", err
	}
	if version != "" {
		out = strings.Replace(out, versionSlot, version, 1)
	}
	return out, nil
}

// stripOrigin reduces a url built under a group base url to its path, query
// and fragment.
func stripOrigin(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("urls: parse built url %q: %w", raw, err)
	}
	if parsed.Scheme == "" && parsed.Host == "" {
		return raw, nil
	}
	parsed.Scheme, parsed.Host, parsed.User = "", "", nil
	out := parsed.String()
	if !strings.HasPrefix(out, "/") {
		out = "/" + out
	}
	return out, nil
}

func (r *URLKitRouter) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	current, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	if current == nil {
		return nil, fmt.Errorf("urls: route group %q not found", path)
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

func collectQueries(raw any) map[string][]string {
	queries := make(map[string][]string)
	switch value := raw.(type) {
	case map[string]string:
		for k, v := range value {
			queries[k] = append(queries[k], v)
		}
	case map[string][]string:
		for k, v := range value {
			queries[k] = append(queries[k], v...)
		}
	case map[string]any:
		for k, v := range value {
			if list, ok := v.([]string); ok {
				queries[k] = append(queries[k], list...)
				continue
			}
			queries[k] = append(queries[k], fmt.Sprint(v))
		}
	}
	return queries
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: route %q not found: %v", route, rec)
		}
	}()
	return group.Builder(route), nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("urls: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: route group %q not found", name)
		}
	}()
	return manager.Group(name), nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("urls: parent group of %q is nil", name)
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: child group %q not found", name)
		}
	}()
	return parent.Group(name), nil
}
