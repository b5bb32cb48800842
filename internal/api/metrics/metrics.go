// Package metrics defines the custom Prometheus metrics of the records API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered on the registry passed to New, so every router (and
// every test) can own an isolated registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "healthrecords"

// Recorder groups the business metrics. A nil *Recorder records nothing.
type Recorder struct {
	loginsTotal       *prometheus.CounterVec
	programsCreated   prometheus.Counter
	clientsRegistered prometheus.Counter
	enrollmentsTotal  prometheus.Counter
	searchResults     prometheus.Histogram
}

// New registers all metrics with reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		// Label:
		//   - result: "ok", "missing_fields", "unknown_user", "wrong_password", "error"
		loginsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Total number of login attempts, by result.",
			},
			[]string{"result"},
		),
		programsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "programs_created_total",
			Help:      "Total number of health programs created.",
		}),
		clientsRegistered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clients_registered_total",
			Help:      "Total number of clients registered.",
		}),
		enrollmentsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrollment_requests_total",
			Help:      "Total number of successful enrollment requests.",
		}),
		searchResults: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "client_search_results",
			Help:      "Number of clients returned per search.",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500},
		}),
	}
}

func (r *Recorder) Login(result string) {
	if r == nil {
		return
	}
	r.loginsTotal.WithLabelValues(result).Inc()
}

func (r *Recorder) ProgramCreated() {
	if r == nil {
		return
	}
	r.programsCreated.Inc()
}

func (r *Recorder) ClientRegistered() {
	if r == nil {
		return
	}
	r.clientsRegistered.Inc()
}

func (r *Recorder) Enrolled() {
	if r == nil {
		return
	}
	r.enrollmentsTotal.Inc()
}

func (r *Recorder) SearchResults(n int) {
	if r == nil {
		return
	}
	r.searchResults.Observe(float64(n))
}
