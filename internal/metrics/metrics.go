package metrics

import (
	"net/http"
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prom.NewRegistry()

	quotesComputed = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "divequote",
		Name:      "quotes_computed_total",
		Help:      "Quotes computed, by service and surcharge composition",
	}, []string{"service", "composition"})
	quoteFailures = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "divequote",
		Name:      "quote_failures_total",
		Help:      "Quote computations that returned an error, by service",
	}, []string{"service"})
	wizardTransitions = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "divequote",
		Name:      "wizard_transitions_total",
		Help:      "Wizard state transitions",
	}, []string{"from", "to"})
	checkouts = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "divequote",
		Name:      "checkouts_total",
		Help:      "Rounded totals handed to the charge service, by result",
	}, []string{"result"})
	quotedTotal = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "divequote",
		Name:      "quote_rounded_total_dollars",
		Help:      "Distribution of rounded quote totals",
		Buckets:   []float64{100, 150, 200, 300, 400, 500, 750, 1000, 1500, 2500},
	})
)

var registerOnce sync.Once

func register() {
	registerOnce.Do(func() {
		registry.MustRegister(quotesComputed, quoteFailures, wizardTransitions, checkouts, quotedTotal)
		registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	})
}

func ObserveQuote(service, composition string, roundedTotal float64) {
	register()
	quotesComputed.WithLabelValues(service, composition).Inc()
	quotedTotal.Observe(roundedTotal)
}

func ObserveQuoteFailure(service string) {
	register()
	quoteFailures.WithLabelValues(service).Inc()
}

func ObserveTransition(from, to string) {
	register()
	wizardTransitions.WithLabelValues(from, to).Inc()
}

func ObserveCheckout(result string) {
	register()
	checkouts.WithLabelValues(result).Inc()
}

// Handler serves the package registry in the Prometheus text format.
func Handler() http.Handler {
	register()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
