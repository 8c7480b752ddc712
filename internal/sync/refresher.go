// Package sync refreshes the synced-tab projection from remote devices.
//
// The refresher polls a sync endpoint for the signed-in account's device
// tab lists and dispatches ReplaceSyncedTabs with whatever it fetched.
// The store treats each refresh as an ordinary action, so synced data is
// ordered only by dispatch time, never against local edits. Refreshes are
// lazy: a ticker drives background polling, and the service can request
// one on demand when the synced page is opened.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/perrymcmanis144/tabstray/internal/logging"
	"github.com/perrymcmanis144/tabstray/internal/monitoring"
	"github.com/perrymcmanis144/tabstray/internal/shared/types"
	"github.com/perrymcmanis144/tabstray/internal/tabs"
)

// Dispatcher is the slice of the store the refresher needs.
type Dispatcher interface {
	Dispatch(action tabs.Action) *types.State
}

// deviceTabsResponse is the payload the sync endpoint returns.
type deviceTabsResponse struct {
	Devices []types.SyncedDevice `json:"devices"`
}

// Refresher polls remote device tabs and feeds them into the store.
type Refresher struct {
	store    Dispatcher
	client   *resty.Client
	endpoint string
	interval time.Duration

	demand chan struct{}

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewRefresher creates a refresher polling endpoint every interval.
func NewRefresher(store Dispatcher, endpoint string, interval time.Duration) *Refresher {
	// Retry transport for a flaky mobile-ish network path.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.Logger = nil

	client := resty.New().
		SetTimeout(30*time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(15*time.Second).
		SetHeader("User-Agent", "tabstray-sync/1.0").
		SetTransport(retryClient.HTTPClient.Transport)

	return &Refresher{
		store:    store,
		client:   client,
		endpoint: endpoint,
		interval: interval,
		demand:   make(chan struct{}, 1),
		logger:   logging.Nop(),
	}
}

// WithLogger attaches a logger to the refresher.
func (r *Refresher) WithLogger(logger *logging.Logger) *Refresher {
	r.logger = logger
	return r
}

// WithMetrics adds metrics tracking to the refresher.
func (r *Refresher) WithMetrics(metrics *monitoring.Metrics) *Refresher {
	r.metrics = metrics
	return r
}

// Run polls until ctx is canceled. Failed refreshes keep the previous
// projection; the next tick tries again.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-r.demand:
		}

		if err := r.RefreshNow(ctx); err != nil {
			r.logger.Warn("synced tabs refresh failed", zap.Error(err))
		}
	}
}

// Request asks the run loop for an immediate refresh without waiting for
// the next tick. Coalesces when one is already pending.
func (r *Refresher) Request() {
	select {
	case r.demand <- struct{}{}:
	default:
	}
}

// RefreshNow fetches remote device tabs once and dispatches the result.
func (r *Refresher) RefreshNow(ctx context.Context) error {
	var payload deviceTabsResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(r.endpoint)

	if err != nil {
		r.recordRefresh(false)
		return fmt.Errorf("failed to fetch synced tabs: %w", err)
	}
	if resp.IsError() {
		r.recordRefresh(false)
		return fmt.Errorf("sync endpoint returned %s", resp.Status())
	}

	r.store.Dispatch(tabs.ReplaceSyncedTabs{Devices: payload.Devices})
	r.recordRefresh(true)
	r.logger.Debug("synced tabs refreshed", zap.Int("devices", len(payload.Devices)))
	return nil
}

func (r *Refresher) recordRefresh(ok bool) {
	if r.metrics != nil {
		r.metrics.RecordSyncRefresh(ok)
	}
}
