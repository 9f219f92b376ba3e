package workflow

import (
	"context"
	"time"

	"github.com/darklakefi/gateway-wallet/internal/gateway"
)

// StatusChecker is the one gateway operation the poller needs.
type StatusChecker interface {
	CheckTradeStatus(ctx context.Context, req gateway.CheckTradeStatusRequest) (*gateway.CheckTradeStatusResponse, error)
}

// PollStatus calls the status check up to maxRetries times with a fixed delay
// between attempts, until a terminal status is observed. A terminal status is
// returned immediately with no further calls. A call-level error consumes the
// attempt; on the final attempt it is swallowed, so exhaustion always yields
// ("", false) rather than an error. Callers that need "no definitive status"
// to be non-fatal rely on that.
//
// notify, if non-nil, observes every attempt. Cancelling ctx ends the wait
// early and reports absence.
func PollStatus(ctx context.Context, checker StatusChecker, req gateway.CheckTradeStatusRequest, maxRetries int, delay time.Duration, notify func(attempt int, status gateway.TradeStatus, err error)) (gateway.TradeStatus, bool) {
	for attempt := 1; attempt <= maxRetries; attempt++ {
		resp, err := checker.CheckTradeStatus(ctx, req)
		var status gateway.TradeStatus
		if err == nil {
			status = resp.Status
		}
		if notify != nil {
			notify(attempt, status, err)
		}
		if err == nil && status.Terminal() {
			return status, true
		}
		if attempt == maxRetries {
			break
		}
		if !sleep(ctx, delay) {
			break
		}
	}
	return "", false
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
