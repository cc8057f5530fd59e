package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chainkit/internal/domain/entity"
)

const namespace = "chainkit"

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds the Prometheus collectors of the service, registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	refreshTotal      *prometheus.CounterVec
	refreshDuration   *prometheus.HistogramVec
	refreshCoalesced  *prometheus.CounterVec
	rateTableEntries  *prometheus.GaugeVec
	rateTableUpdated  *prometheus.GaugeVec
	classifications   *prometheus.CounterVec
	credentialResults *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		refreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rates",
			Name:      "refresh_total",
			Help:      "Rate refreshes by chain and result",
		}, []string{"chain", "result"}),
		refreshDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rates",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of rate refreshes",
			Buckets:   prometheus.DefBuckets,
		}, []string{"chain"}),
		refreshCoalesced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rates",
			Name:      "refresh_coalesced_total",
			Help:      "Refresh calls that joined an in-flight refresh",
		}, []string{"chain"}),
		rateTableEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rates",
			Name:      "table_entries",
			Help:      "Entries of the installed rate table",
		}, []string{"chain"}),
		rateTableUpdated: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rates",
			Name:      "table_updated_timestamp_seconds",
			Help:      "Install time of the current rate table",
		}, []string{"chain"}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "address",
			Name:      "classifications_total",
			Help:      "Address classifications by resulting chain",
		}, []string{"chain"}),
		credentialResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "coldstaking",
			Name:      "validations_total",
			Help:      "Cold-staking credential validations by reason",
		}, []string{"reason"}),
	}

	registry.MustRegister(
		m.refreshTotal,
		m.refreshDuration,
		m.refreshCoalesced,
		m.rateTableEntries,
		m.rateTableUpdated,
		m.classifications,
		m.credentialResults,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the exposition handler of the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// ObserveRefresh records the outcome of one executed refresh.
func (m *Metrics) ObserveRefresh(chain entity.ChainID, elapsed time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	m.refreshTotal.WithLabelValues(chain.String(), result).Inc()
	m.refreshDuration.WithLabelValues(chain.String()).Observe(elapsed.Seconds())
}

// ObserveCoalesced records a refresh call served by an in-flight refresh.
func (m *Metrics) ObserveCoalesced(chain entity.ChainID) {
	m.refreshCoalesced.WithLabelValues(chain.String()).Inc()
}

// ObserveInstall records a newly installed table.
func (m *Metrics) ObserveInstall(table *entity.RateTable) {
	m.rateTableEntries.WithLabelValues(table.Chain.String()).Set(float64(table.Len()))
	m.rateTableUpdated.WithLabelValues(table.Chain.String()).Set(float64(table.UpdatedAt.Unix()))
}

// ObserveClassification records a classification; unrecognized input is counted as "none".
func (m *Metrics) ObserveClassification(chain entity.ChainID, ok bool) {
	label := "none"
	if ok {
		label = chain.String()
	}
	m.classifications.WithLabelValues(label).Inc()
}

// ObserveCredential records a credential validation; an empty reason is counted as "ok".
func (m *Metrics) ObserveCredential(reason string) {
	if reason == "" {
		reason = "ok"
	}
	m.credentialResults.WithLabelValues(reason).Inc()
}
