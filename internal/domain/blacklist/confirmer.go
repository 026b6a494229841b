package blacklist

import "context"

// SubscriptionConfirmer completes the one-time pub/sub subscription
// handshake by fetching the SubscribeURL delivered in the envelope.
// The implementation lives in infra/snsconfirm/.
type SubscriptionConfirmer interface {
	Confirm(ctx context.Context, subscribeURL string) error
}
