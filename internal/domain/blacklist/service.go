package blacklist

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bouncelist/internal/common"
)

// IngestOutcome classifies what one notification delivery resulted in.
type IngestOutcome int

const (
	// OutcomeIgnored means the delivery was acknowledged without persisting
	// anything: handshakes, non-bounce notifications, bounces with no
	// recipients, and malformed input all land here. Malformed input is
	// acknowledged on purpose — the source treats any non-2xx as "retry",
	// and bytes that failed to decode once will fail forever.
	OutcomeIgnored IngestOutcome = iota

	// OutcomePersisted means every recipient in the bounce was inserted.
	OutcomePersisted

	// OutcomeDuplicate means an insert hit the backend uniqueness
	// constraint. Remaining recipients were not attempted.
	OutcomeDuplicate

	// OutcomeStoreFailed means an insert failed for any other reason.
	// Remaining recipients were not attempted.
	OutcomeStoreFailed
)

// IngestResult reports the outcome of ingesting one notification delivery.
type IngestResult struct {
	Outcome  IngestOutcome
	Inserted []string
	Err      error
}

// Service orchestrates notification ingestion: decode the envelope, branch
// on its type, decode the payload, and persist bounced recipients. It holds
// no state of its own beyond the injected collaborators.
type Service struct {
	store     Store
	confirmer SubscriptionConfirmer
	opTimeout time.Duration
}

// NewService creates a new blacklist service. opTimeout bounds each
// individual storage operation.
func NewService(store Store, confirmer SubscriptionConfirmer, opTimeout time.Duration) *Service {
	return &Service{
		store:     store,
		confirmer: confirmer,
		opTimeout: opTimeout,
	}
}

// Ingest processes one raw notification delivery for a tenant.
//
// Recipients are persisted strictly in payload order and the loop stops at
// the first failure, so a conflict on the second recipient leaves the rest
// un-attempted until the source redelivers. Partial persistence is the
// documented behavior here, not all-or-nothing.
func (s *Service) Ingest(ctx context.Context, tenantID int64, body []byte) IngestResult {
	env, err := DecodeEnvelope(body)
	if err != nil {
		slog.Info("ignoring undecodable notification delivery",
			"tenant_id", tenantID,
			"error", err,
		)
		return IngestResult{Outcome: OutcomeIgnored}
	}

	switch env.Type {
	case EnvelopeSubscriptionConfirmation:
		s.confirmSubscription(ctx, env.SubscribeURL)
		return IngestResult{Outcome: OutcomeIgnored}
	case EnvelopeNotification:
		return s.ingestNotification(ctx, tenantID, env.Message)
	default:
		return IngestResult{Outcome: OutcomeIgnored}
	}
}

// confirmSubscription completes the handshake best-effort. The result is
// never surfaced: from the source's point of view the handshake already
// succeeded, and a non-2xx answer would only trigger pointless retries.
func (s *Service) confirmSubscription(ctx context.Context, subscribeURL string) {
	if subscribeURL == "" {
		slog.Warn("subscription confirmation without a subscribe URL")
		return
	}
	if err := s.confirmer.Confirm(ctx, subscribeURL); err != nil {
		slog.Error("subscription confirmation failed",
			"subscribe_url", subscribeURL,
			"error", err,
		)
		return
	}
	slog.Info("subscription confirmed", "subscribe_url", subscribeURL)
}

func (s *Service) ingestNotification(ctx context.Context, tenantID int64, message string) IngestResult {
	payload, err := DecodePayload(message)
	if err != nil {
		slog.Info("ignoring undecodable notification payload",
			"tenant_id", tenantID,
			"error", err,
		)
		return IngestResult{Outcome: OutcomeIgnored}
	}

	if payload.NotificationType != TypeBounce {
		slog.Info("ignoring non-bounce notification",
			"tenant_id", tenantID,
			"notification_type", payload.NotificationType,
		)
		return IngestResult{Outcome: OutcomeIgnored}
	}

	recipients := payload.Recipients()
	if len(recipients) == 0 {
		slog.Info("bounce notification carried no recipients", "tenant_id", tenantID)
		return IngestResult{Outcome: OutcomeIgnored}
	}

	reason := payload.Reason()
	inserted := make([]string, 0, len(recipients))

	for _, r := range recipients {
		email := NormalizeAddress(r.EmailAddress)

		if err := s.insert(ctx, tenantID, email, reason); err != nil {
			var conflict *common.ConflictError
			if errors.As(err, &conflict) {
				slog.Info("recipient already blacklisted",
					"tenant_id", tenantID,
					"email", email,
				)
				return IngestResult{Outcome: OutcomeDuplicate, Inserted: inserted, Err: err}
			}
			slog.Error("blacklist insert failed",
				"tenant_id", tenantID,
				"email", email,
				"error", err,
			)
			return IngestResult{Outcome: OutcomeStoreFailed, Inserted: inserted, Err: err}
		}
		inserted = append(inserted, email)
	}

	slog.Info("bounce recipients blacklisted",
		"tenant_id", tenantID,
		"count", len(inserted),
		"bounce_type", payload.Bounce.BounceType,
	)
	return IngestResult{Outcome: OutcomePersisted, Inserted: inserted}
}

func (s *Service) insert(ctx context.Context, tenantID int64, email, reason string) error {
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	return s.store.Insert(opCtx, tenantID, email, reason)
}

// IsBlacklisted answers the synchronous lookup used by the sending system.
// The address is normalized the same way ingestion normalizes it.
func (s *Service) IsBlacklisted(ctx context.Context, tenantID int64, email string) (bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	return s.store.Exists(opCtx, tenantID, NormalizeAddress(email))
}
