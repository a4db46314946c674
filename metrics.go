package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//**********************************************************
// metrics
//**********************************************************

type Collector struct {
	reg *prometheus.Registry

	Searches       *prometheus.CounterVec // outcome label: found|no_path
	SearchDuration prometheus.Histogram

	PrecacheStops prometheus.Counter
	RenderRows    prometheus.Counter
	RenderPixels  prometheus.Counter

	Stops       prometheus.Gauge
	Connections prometheus.Gauge
	CachedStops prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	collector := &Collector{
		reg: reg,
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heat_transit_searches_total",
			Help: "Total searches by outcome.",
		}, []string{"outcome"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "heat_transit_search_duration_seconds",
			Help:    "Duration of a single search.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}),
		PrecacheStops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heat_transit_precache_stops_total",
			Help: "Total stops searched while building the precache.",
		}),
		RenderRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heat_transit_render_rows_total",
			Help: "Total image rows rendered.",
		}),
		RenderPixels: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heat_transit_render_pixels_total",
			Help: "Total image pixels rendered.",
		}),
		Stops: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "heat_transit_stops",
			Help: "Number of stops in the loaded graph.",
		}),
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "heat_transit_connections",
			Help: "Number of stop to stop connections in the loaded graph.",
		}),
		CachedStops: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "heat_transit_cached_stops",
			Help: "Number of stops with a precached cost.",
		}),
	}

	reg.MustRegister(
		collector.Searches, collector.SearchDuration,
		collector.PrecacheStops, collector.RenderRows, collector.RenderPixels,
		collector.Stops, collector.Connections, collector.CachedStops,
	)
	return collector
}

func (self *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(self.reg, promhttp.HandlerOpts{})
}

func (self *Collector) ObserveSearch(found bool, seconds float64) {
	outcome := "found"
	if !found {
		outcome = "no_path"
	}
	self.Searches.WithLabelValues(outcome).Inc()
	self.SearchDuration.Observe(seconds)
}
