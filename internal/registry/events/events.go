// Package events defines the registry's observable notification contract and
// the sinks it can be delivered to. Events describe completed state changes;
// publishing is at-least-once per successful call, in call order, and never
// rolls a completed operation back.
package events

import (
	"time"

	"github.com/google/uuid"

	"cnft/pkg/domain"
)

// Kind labels a registry notification.
type Kind string

const (
	KindConfidentialMint      Kind = "confidential_mint"
	KindConfidentialTransfer  Kind = "confidential_transfer"
	KindViewPermissionGranted Kind = "view_permission_granted"
	KindViewPermissionRevoked Kind = "view_permission_revoked"
)

// Event is one registry notification. Optional parties are nil when the
// kind does not carry them.
type Event struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	TokenID   domain.TokenID  `json:"token_id"`
	Recipient *domain.Address `json:"recipient,omitempty"`
	From      *domain.Address `json:"from,omitempty"`
	To        *domain.Address `json:"to,omitempty"`
	Viewer    *domain.Address `json:"viewer,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"request_id,omitempty"`
}

func newEvent(kind Kind, tokenID domain.TokenID, at time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		TokenID:   tokenID,
		Timestamp: at,
	}
}

// NewMint builds a ConfidentialMint notification.
func NewMint(recipient domain.Address, tokenID domain.TokenID, at time.Time) Event {
	e := newEvent(KindConfidentialMint, tokenID, at)
	e.Recipient = &recipient
	return e
}

// NewTransfer builds a ConfidentialTransfer notification.
func NewTransfer(from, to domain.Address, tokenID domain.TokenID, at time.Time) Event {
	e := newEvent(KindConfidentialTransfer, tokenID, at)
	e.From = &from
	e.To = &to
	return e
}

// NewGranted builds a ViewPermissionGranted notification.
func NewGranted(tokenID domain.TokenID, viewer domain.Address, at time.Time) Event {
	e := newEvent(KindViewPermissionGranted, tokenID, at)
	e.Viewer = &viewer
	return e
}

// NewRevoked builds a ViewPermissionRevoked notification.
func NewRevoked(tokenID domain.TokenID, viewer domain.Address, at time.Time) Event {
	e := newEvent(KindViewPermissionRevoked, tokenID, at)
	e.Viewer = &viewer
	return e
}
