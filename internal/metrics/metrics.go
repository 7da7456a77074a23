package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parisweather_api_calls_total",
			Help: "Total Open-Meteo forecast API calls",
		},
		[]string{"status"},
	)

	APILatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "parisweather_api_latency_seconds",
			Help:    "Open-Meteo API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	DaysFetched = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parisweather_days_fetched",
			Help: "Number of daily records in the last fetched table",
		},
	)

	FilesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parisweather_files_written_total",
			Help: "Artifacts written to the output directory",
		},
		[]string{"kind"},
	)

	LastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "parisweather_last_success_timestamp_seconds",
			Help: "Unix time of the last run that completed every step",
		},
	)
)

// Push sends the default registry to a Prometheus Pushgateway under job.
func Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(prometheus.DefaultGatherer).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
