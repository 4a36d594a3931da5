// Package metrics exposes the engine's prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "indoornav",
		Name:      "searches_total",
		Help:      "Route searches by accessibility mode and outcome.",
	}, []string{"mode", "outcome"})

	FallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "indoornav",
		Name:      "fallbacks_total",
		Help:      "Fallback activations by tier (dijkstra, synthetic).",
	}, []string{"tier"})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "indoornav",
		Name:      "route_cache_hits_total",
		Help:      "Route cache hits.",
	})

	ReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "indoornav",
		Name:      "graph_reloads_total",
		Help:      "Graph reloads by result.",
	}, []string{"result"})
)
