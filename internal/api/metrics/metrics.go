// Package metrics defines the custom Prometheus metrics of the catalog API.
// HTTP request metrics come from echoprometheus; the counters here track
// domain outcomes and are exposed once Register is called.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const Namespace = "biblioteca"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts successful registrations.
var SignupsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "signups_total",
		Help:      "Total number of users registered.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

var BooksAddedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "books_added_total",
		Help:      "Total number of books added to the catalog.",
	},
)

var BooksRemovedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "books_removed_total",
		Help:      "Total number of books removed from the catalog.",
	},
)

// ── Loan and asset metrics ────────────────────────────────────────────────────

var LoansRecordedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "loans_recorded_total",
		Help:      "Total number of loans recorded.",
	},
)

// AssetDownloadsTotal counts assets streamed to clients.
// Label:
//   - route: "download" (authenticated attachment) or "uploads" (public)
var AssetDownloadsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "asset_downloads_total",
		Help:      "Total number of assets served, by route.",
	},
	[]string{"route"},
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		LoginsTotal,
		SignupsTotal,
		BooksAddedTotal,
		BooksRemovedTotal,
		LoansRecordedTotal,
		AssetDownloadsTotal,
	}
}

// Register adds the domain counters to reg. Registering on a registry that
// already holds them is a no-op.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
