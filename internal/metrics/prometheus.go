package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SignupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_signups_total",
			Help: "Total number of tenant signups",
		},
	)

	ProvisionJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenant_provision_jobs_total",
			Help: "Provisioning jobs by outcome",
		},
		[]string{"outcome"},
	)

	TenantLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenant_host_lookups_total",
			Help: "Hostname-to-tenant resolutions by result",
		},
		[]string{"result"}, // hit|miss|unknown
	)

	SalesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_sales_recorded_total",
			Help: "Total number of completed sales",
		},
	)

	WorkerActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "provision_worker_goroutines",
			Help: "Number of active provisioning workers",
		},
	)
)

// Init registers metrics with Prometheus
func Init() {
	prometheus.MustRegister(SignupsTotal)
	prometheus.MustRegister(ProvisionJobs)
	prometheus.MustRegister(TenantLookups)
	prometheus.MustRegister(SalesRecorded)
	prometheus.MustRegister(WorkerActive)
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
