package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/academy-labs/academy-api/pkg/logger"
)

// dispatchTimeout bounds the total time spent on notification delivery so
// retry backoff can never hold a request open indefinitely.
const dispatchTimeout = 15 * time.Second

// Dispatcher fans a submission event out to the configured channels and
// collects per-channel results keyed by channel name.
type Dispatcher struct {
	channels []Channel
}

// NewDispatcher builds a dispatcher over the given channels. Order matters
// only for logging; channels are independent.
func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels}
}

// Dispatch delivers the event to every channel sequentially and never
// returns an error: each channel's outcome, including failures, lands in
// the result map under the channel's name.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) map[string]Result {
	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	results := make(map[string]Result, len(d.channels))
	for _, ch := range d.channels {
		result := ch.Send(ctx, event)
		results[ch.Name()] = result

		if !result.Success {
			logger.Warn("notification channel failed",
				zap.String("channel", ch.Name()),
				zap.String("error", result.Error))
		}
	}

	return results
}
