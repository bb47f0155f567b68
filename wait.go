package tempmail

import (
	"context"
	"fmt"
	"time"
)

// WaitForMessage polls the inbox until a summary matches the given criteria
// and returns it. The poll runs on the caller's goroutine; each round is a
// CheckInbox, so the stored summaries are refreshed along the way.
//
// Any CheckInbox error ends the wait. When the timeout or ctx expires the
// context error is returned.
//
// Example:
//
//	summary, err := client.WaitForMessage(ctx,
//	    tempmail.WithSubjectRegex(regexp.MustCompile(`(?i)verify`)),
//	    tempmail.WithWaitTimeout(2*time.Minute),
//	)
func (c *Client) WaitForMessage(ctx context.Context, opts ...WaitOption) (*InboxSummary, error) {
	found, err := c.WaitForMessageCount(ctx, 1, opts...)
	if err != nil {
		return nil, err
	}
	return &found[0], nil
}

// WaitForMessageCount polls the inbox until at least count summaries match
// and returns the first count of them in listing order.
func (c *Client) WaitForMessageCount(ctx context.Context, count int, opts ...WaitOption) ([]InboxSummary, error) {
	if count < 0 {
		return nil, fmt.Errorf("count must be non-negative, got %d", count)
	}
	if count == 0 {
		return []InboxSummary{}, nil
	}

	cfg := &waitConfig{
		timeout:      defaultWaitTimeout,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.timeout <= 0 {
		return nil, fmt.Errorf("wait timeout must be positive, got %v", cfg.timeout)
	}
	if cfg.pollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %v", cfg.pollInterval)
	}

	if _, err := c.boundAddress(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	ticker := time.NewTicker(cfg.pollInterval)
	defer ticker.Stop()

	for {
		if err := c.CheckInbox(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}

		var results []InboxSummary
		for _, m := range c.Messages() {
			if cfg.Matches(&m) {
				results = append(results, m)
			}
		}
		if len(results) >= count {
			return results[:count], nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
