package cleanup

import (
	"errors"
	"time"

	"accountcleanup/database"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	durationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

	// CascadeRuns counts cascade runs by outcome.
	CascadeRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_cleanup_cascade_runs_total",
			Help: "Total number of cascade deletions attempted, by outcome.",
		},
		[]string{"outcome"},
	)

	// NotificationsDeleted counts notification documents removed by cascades.
	NotificationsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "account_cleanup_notifications_deleted_total",
			Help: "Total number of notification documents deleted during cascades.",
		},
	)

	// DuplicateEvents counts user-deleted events skipped as already handled.
	DuplicateEvents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "account_cleanup_duplicate_events_total",
			Help: "Total number of user-deleted events skipped because they were already handled.",
		},
	)

	// CascadeDuration measures cascade run time.
	CascadeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "account_cleanup_cascade_duration_seconds",
			Help:    "Histogram of cascade deletion duration in seconds, by outcome.",
			Buckets: durationBuckets,
		},
		[]string{"outcome"},
	)
)

// Outcome labels.
const (
	OutcomeSuccess          = "success"
	OutcomeInvalid          = "invalid"
	OutcomeUnavailable      = "unavailable"
	OutcomePermissionDenied = "permission_denied"
	OutcomeError            = "error"
)

// Outcome maps a cascade error to its metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrEmptyUID):
		return OutcomeInvalid
	case errors.Is(err, database.ErrUnavailable):
		return OutcomeUnavailable
	case errors.Is(err, database.ErrPermissionDenied):
		return OutcomePermissionDenied
	default:
		return OutcomeError
	}
}

func observeRun(start time.Time, err error) {
	outcome := Outcome(err)
	CascadeRuns.WithLabelValues(outcome).Inc()
	CascadeDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
