package controller

import (
	"context"
	"time"
)

// Run drives the controller's periodic work until the context is
// cancelled.
//
// The short poll republishes every node's status so the host sees the
// service as alive; the long poll runs a discovery cycle, which is the
// automatic retry path after a failed cycle. Failed cycles are logged and
// the loop keeps going.
//
// Parameters:
//   - ctx: Cancels the loop on shutdown
//   - shortPoll: Status refresh interval
//   - longPoll: Discovery interval
func (c *Controller) Run(ctx context.Context, shortPoll, longPoll time.Duration) {
	shortTicker := time.NewTicker(shortPoll)
	defer shortTicker.Stop()
	longTicker := time.NewTicker(longPoll)
	defer longTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("controller stopping")
			return
		case <-shortTicker.C:
			c.ShortPoll()
		case <-longTicker.C:
			if err := c.Discover(ctx, false); err != nil {
				c.logger.Error("scheduled discovery failed", "error", err)
			}
		}
	}
}

// ShortPoll republishes the controller node's online status and the last
// published ST of every other node. Retained topics already cover a host
// that reconnects; the refresh covers a host that drops retained state.
func (c *Controller) ShortPoll() {
	c.publishNodeStatus(ControllerAddress, 1)

	c.statusMu.Lock()
	statuses := make(map[string]int, len(c.lastStatus))
	for address, value := range c.lastStatus {
		if address != ControllerAddress {
			statuses[address] = value
		}
	}
	c.statusMu.Unlock()

	for address, value := range statuses {
		c.publishNodeStatus(address, value)
	}
}
