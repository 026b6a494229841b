package snsconfirm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bouncelist/internal/domain/blacklist"
)

var _ blacklist.SubscriptionConfirmer = (*HTTPConfirmer)(nil)

// HTTPConfirmer completes the subscription handshake by fetching the
// SubscribeURL from the envelope. The notification source activates the
// subscription as a side effect of the GET.
type HTTPConfirmer struct {
	client *http.Client
}

// New creates an HTTPConfirmer whose requests are bounded by timeout.
func New(timeout time.Duration) *HTTPConfirmer {
	return &HTTPConfirmer{
		client: &http.Client{Timeout: timeout},
	}
}

// Confirm fetches the subscribe URL and checks for a 2xx answer.
func (c *HTTPConfirmer) Confirm(ctx context.Context, subscribeURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, subscribeURL, nil)
	if err != nil {
		return fmt.Errorf("building confirmation request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching subscribe URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("subscribe URL answered %d", resp.StatusCode)
	}
	return nil
}
