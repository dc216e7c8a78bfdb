package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	ScheduleCalculationsTotal *prometheus.CounterVec
	CalculationDuration       *prometheus.HistogramVec
	PaymentValidationsTotal   *prometheus.CounterVec
	CacheLookupsTotal         *prometheus.CounterVec
	SchedulesSweptTotal       prometheus.Counter
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lending_engine_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		ScheduleCalculationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_engine_schedule_calculations_total",
				Help: "Total number of repayment schedule calculations.",
			},
			[]string{"repayment_type", "status"},
		),
		CalculationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lending_engine_schedule_calculation_duration_seconds",
				Help:    "Histogram of schedule calculation latencies.",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"repayment_type"},
		),
		PaymentValidationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_engine_payment_validations_total",
				Help: "Total number of payment amount validations.",
			},
			[]string{"result"},
		),
		CacheLookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lending_engine_schedule_cache_lookups_total",
				Help: "Total number of schedule cache lookups.",
			},
			[]string{"outcome"},
		),
		SchedulesSweptTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "lending_engine_schedules_swept_total",
				Help: "Total number of schedules removed by the retention sweep.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordScheduleCalculation(repaymentType, status string, duration time.Duration) {
	Business.ScheduleCalculationsTotal.WithLabelValues(repaymentType, status).Inc()
	Business.CalculationDuration.WithLabelValues(repaymentType).Observe(duration.Seconds())
}

func RecordPaymentValidation(result string) {
	Business.PaymentValidationsTotal.WithLabelValues(result).Inc()
}

func RecordCacheLookup(outcome string) {
	Business.CacheLookupsTotal.WithLabelValues(outcome).Inc()
}

func RecordRetentionSweep(deleted int64) {
	Business.SchedulesSweptTotal.Add(float64(deleted))
}
