// Package metrics exposes url localization counters to prometheus.
package metrics

import (
	"strings"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-mxtheme/internal/urls"
)

// DefaultNamespace prefixes metric names when none is configured.
const DefaultNamespace = "mxtheme"

// Collector counts localize outcomes and build failures. It implements
// urls.Observer.
type Collector struct {
	localized   *prom.CounterVec
	buildErrors *prom.CounterVec
}

var _ urls.Observer = (*Collector)(nil)

// NewCollector constructs the counters and registers them with reg. A nil reg
// uses a private registry.
func NewCollector(reg prom.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = DefaultNamespace
	}

	c := &Collector{
		localized: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "urls_localized_total",
			Help:      "Localized urls by outcome",
		}, []string{"outcome"}),
		buildErrors: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "urls_build_errors_total",
			Help:      "Failed url builds by kind",
		}, []string{"kind"}),
	}
	for _, collector := range []prom.Collector{c.localized, c.buildErrors} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveLocalize implements urls.Observer.
func (c *Collector) ObserveLocalize(outcome string) {
	if c == nil {
		return
	}
	c.localized.WithLabelValues(outcome).Inc()
}

// ObserveBuildError implements urls.Observer.
func (c *Collector) ObserveBuildError(kind string) {
	if c == nil {
		return
	}
	c.buildErrors.WithLabelValues(kind).Inc()
}
