// Package metrics exposes Prometheus counters for calculator activity.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hammamikhairi/levain/internal/logger"
)

const namespace = "levain"

// Recorder counts calculator activity. The engine depends only on this
// interface.
type Recorder interface {
	RecipeComputed(mode string)
	ValidationFailed(field, kind string)
	LevainBuilt()
	WaterTemperatureComputed()
}

// Nop is a Recorder that discards everything.
type Nop struct{}

func (Nop) RecipeComputed(string)           {}
func (Nop) ValidationFailed(string, string) {}
func (Nop) LevainBuilt()                    {}
func (Nop) WaterTemperatureComputed()       {}

// Compile-time interface checks.
var (
	_ Recorder = Nop{}
	_ Recorder = (*Prometheus)(nil)
)

// Prometheus records into counters registered on a Registerer.
type Prometheus struct {
	recipes      *prometheus.CounterVec
	failures     *prometheus.CounterVec
	levainBuilds prometheus.Counter
	waterTemps   prometheus.Counter
}

// New registers the calculator counters on reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated from the default registry.
func New(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		recipes: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "recipes_computed_total",
				Help:      "Total number of recipes computed, by anchor mode",
			},
			[]string{"mode"},
		),
		failures: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Total number of rejected inputs, by field and kind",
			},
			[]string{"field", "kind"},
		),
		levainBuilds: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levain_builds_total",
			Help:      "Total number of levain builds computed",
		}),
		waterTemps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "water_temperatures_total",
			Help:      "Total number of mixing-water temperatures computed",
		}),
	}
}

func (p *Prometheus) RecipeComputed(mode string) {
	p.recipes.WithLabelValues(mode).Inc()
}

func (p *Prometheus) ValidationFailed(field, kind string) {
	p.failures.WithLabelValues(field, kind).Inc()
}

func (p *Prometheus) LevainBuilt() {
	p.levainBuilds.Inc()
}

func (p *Prometheus) WaterTemperatureComputed() {
	p.waterTemps.Inc()
}

// Serve exposes /metrics for gatherer on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, log *logger.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
