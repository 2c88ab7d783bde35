package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seqcalc_operations_total",
			Help: "Total number of service operations, by operation and status.",
		},
		[]string{"op", "status"},
	)
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seqcalc_operation_duration_seconds",
			Help:    "Duration of service operations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"op"},
	)
	termsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seqcalc_terms_total",
			Help: "Total number of sequence terms produced, by family.",
		},
		[]string{"family"},
	)
	hanoiMovesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seqcalc_hanoi_moves_total",
			Help: "Total number of Hanoi moves written, by variant.",
		},
		[]string{"variant"},
	)
)
