package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "moviereview"

// queueDepth tracks the refreshes waiting in each worker channel.
var queueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ratings_queue_depth",
		Help:      "Current number of rating refreshes pending in each worker channel.",
	},
	[]string{"worker_id"},
)

var refreshDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_refresh_dropped_total",
		Help:      "Total number of rating refreshes dropped on a full queue.",
	},
)

// refreshDuration is labelled by result: "ok" or "error".
var refreshDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ratings_refresh_duration_seconds",
		Help:      "Duration of a rating stats refresh from dequeue to cache write.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
