// Package metrics defines all custom Prometheus metrics for the feed service.
// It is the single source of truth for metric names, labels, and help strings.
//
// All metrics self-register with the default registry via promauto; the
// echoprometheus middleware contributes the generic HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "feed"

// PostMutationsTotal counts successful post mutations.
// Label:
//   - action: "create", "update" or "delete"
var PostMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_mutations_total",
		Help:      "Total number of successful post mutations, by action.",
	},
	[]string{"action"},
)

// AuthFailuresTotal counts rejected requests at the access gate.
// Label:
//   - reason: "missing_credential" or "invalid_token"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the access gate, by reason.",
	},
	[]string{"reason"},
)

// AssetsDeletedTotal counts superseded asset files successfully removed from
// the content store.
var AssetsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assets_deleted_total",
		Help:      "Total number of superseded asset files deleted.",
	},
)

// AssetDeleteFailuresTotal counts asset deletions that failed. These are
// non-fatal to the owning request; the counter is the place they surface.
var AssetDeleteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asset_delete_failures_total",
		Help:      "Total number of asset deletions that failed and left a dangling file.",
	},
)

// WebsocketClients tracks the number of currently connected fanout clients.
var WebsocketClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_clients",
		Help:      "Number of websocket clients currently subscribed to post events.",
	},
)
