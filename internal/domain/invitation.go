package domain

import "time"

// InvitationStatus represents the delivery state of an outbox entry
type InvitationStatus string

const (
	InvitationPending InvitationStatus = "pending"
	InvitationSent    InvitationStatus = "sent"
	InvitationFailed  InvitationStatus = "failed"
)

// Invitation is a queued meeting-invitation email carrying the
// rendered ICS payload. Written in the same transaction as the
// consultation and delivered asynchronously by the outbox worker.
type Invitation struct {
	ID             int64
	ConsultationID int64

	RecipientEmail string
	RecipientName  string
	Subject        string
	BodyText       string
	ICSPayload     string

	Status    InvitationStatus
	Attempts  int
	LastError *string
	SentAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanRetry returns true if delivery may be attempted again
func (i *Invitation) CanRetry(maxAttempts int) bool {
	return i.Status != InvitationSent && i.Attempts < maxAttempts
}
