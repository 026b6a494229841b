package blacklist

import (
	"encoding/json"
	"fmt"
)

// Envelope types delivered by the notification source.
const (
	EnvelopeSubscriptionConfirmation = "SubscriptionConfirmation"
	EnvelopeNotification             = "Notification"
)

// Notification subtypes carried inside the envelope's Message field.
// Unrecognized subtypes decode fine and are ignored by the service, so new
// subtypes never break ingestion.
const (
	TypeBounce                = "Bounce"
	TypeComplaint             = "Complaint"
	TypeDelivery              = "Delivery"
	TypeSubscriptionSucceeded = "AmazonSnsSubscriptionSucceeded"
)

// Envelope is the outer SNS wrapper. Message is populated for delivered
// notifications, SubscribeURL for subscription handshakes.
type Envelope struct {
	Type         string `json:"Type"`
	Message      string `json:"Message,omitempty"`
	SubscribeURL string `json:"SubscribeURL,omitempty"`
}

// Payload is the inner notification record. Every field is optional with a
// zero-value default: two historical wire shapes exist (a strict one where
// the bounce detail is mandatory and a permissive one where it is not, with
// an extra free-text message and a subscription-succeeded subtype), and both
// decode into this single record.
type Payload struct {
	NotificationType string        `json:"notificationType"`
	Bounce           *BounceDetail `json:"bounce,omitempty"`
	Mail             *MailMeta     `json:"mail,omitempty"`
	Message          string        `json:"message,omitempty"`
}

// BounceDetail describes one bounce event and the recipients it affected.
type BounceDetail struct {
	FeedbackID        string             `json:"feedbackId"`
	BounceType        string             `json:"bounceType"`
	BounceSubType     string             `json:"bounceSubType"`
	BouncedRecipients []BouncedRecipient `json:"bouncedRecipients"`
	Timestamp         string             `json:"timestamp"`
	ReportingMTA      string             `json:"reportingMTA,omitempty"`
	RemoteMtaIP       string             `json:"remoteMtaIp,omitempty"`
}

// BouncedRecipient is a single recipient outcome within a bounce.
// EmailAddress may be a bare address or a display-name-wrapped form.
type BouncedRecipient struct {
	EmailAddress   string `json:"emailAddress"`
	Action         string `json:"action,omitempty"`
	Status         string `json:"status,omitempty"`
	DiagnosticCode string `json:"diagnosticCode,omitempty"`
}

// MailMeta is the original-message metadata attached to a notification.
type MailMeta struct {
	Timestamp        string   `json:"timestamp"`
	Source           string   `json:"source"`
	SourceArn        string   `json:"sourceArn,omitempty"`
	SourceIP         string   `json:"sourceIp,omitempty"`
	CallerIdentity   string   `json:"callerIdentity,omitempty"`
	SendingAccountID string   `json:"sendingAccountId,omitempty"`
	MessageID        string   `json:"messageId"`
	Destination      []string `json:"destination,omitempty"`
}

// DecodeEnvelope parses the raw request body into an Envelope. It fails when
// the bytes are not a JSON object or the Type field is missing or unknown.
func DecodeEnvelope(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	switch env.Type {
	case EnvelopeSubscriptionConfirmation, EnvelopeNotification:
		return &env, nil
	default:
		return nil, fmt.Errorf("unrecognized envelope type: %q", env.Type)
	}
}

// DecodePayload parses the envelope's inner Message string into a Payload.
// Missing fields take zero-value defaults; only structurally invalid JSON
// fails.
func DecodePayload(inner string) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(inner), &p); err != nil {
		return nil, fmt.Errorf("decoding notification payload: %w", err)
	}
	return &p, nil
}

// Recipients returns the bounced recipients, or nil when the payload carries
// no bounce detail. A bounce without detail is a valid permissive-shape
// payload and means there is nothing to blacklist.
func (p *Payload) Recipients() []BouncedRecipient {
	if p.Bounce == nil {
		return nil
	}
	return p.Bounce.BouncedRecipients
}

// Reason serializes the whole payload back to canonical JSON. The full
// notification is stored as the blacklist reason so the original diagnostic
// context stays available for manual inspection.
func (p *Payload) Reason() string {
	b, err := json.Marshal(p)
	if err != nil {
		// A Payload round-trips through encoding/json by construction.
		return p.NotificationType
	}
	return string(b)
}
