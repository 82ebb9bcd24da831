// internal/overlay/store.go
package overlay

import (
	"context"

	"workbridge-workers/internal/common/logger"
	"workbridge-workers/internal/common/metrics"

	commonerrors "workbridge-workers/internal/common/errors"
)

// Op is the kind of change carried by an Event.
type Op string

const (
	OpSet    Op = "set"
	OpDelete Op = "delete"
)

// Event announces a single overlay change to watchers.
type Event struct {
	Key   string `json:"key"`
	Op    Op     `json:"op"`
	Value string `json:"value,omitempty"`
}

// Store is the overlay key/value layer that carries workflow state the
// server of record does not persist yet. Every write is announced to
// watchers, so consumers react to changes instead of polling.
type Store interface {
	// Get returns the value for key. The bool reports whether the key exists;
	// a missing key is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	// Watch delivers events for all overlay changes until ctx is done. The
	// returned channel is closed when the subscription ends.
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

// FallbackPolicy decides what a worker does when an overlay write fails after
// the primary write already succeeded.
type FallbackPolicy int

const (
	// FailClosed surfaces the overlay error to the caller.
	FailClosed FallbackPolicy = iota
	// FailOpen logs the overlay error and reports success, trusting
	// reconciliation to repair the overlay later.
	FailOpen
)

// Resolve applies the policy to an overlay write error for the given key. A
// nil err passes through either way.
func (p FallbackPolicy) Resolve(err error, log logger.Logger, taskType, key string) error {
	if err == nil {
		return nil
	}
	if p == FailOpen {
		metrics.OverlayFallbacks.WithLabelValues(taskType).Inc()
		log.WithError(err).Warn("overlay write failed, continuing without it", map[string]interface{}{
			"task_type": taskType,
			"key":       key,
		})
		return nil
	}
	return commonerrors.NewOverlayWriteFailedError(key, err)
}
