package redis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cacheLookups counts ratings cache reads by result: "hit", "miss" or "error".
var cacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "moviereview",
		Name:      "ratings_cache_total",
		Help:      "Total number of ratings cache lookups, labelled by result.",
	},
	[]string{"result"},
)
