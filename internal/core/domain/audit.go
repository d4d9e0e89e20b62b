package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AuditKind string

const (
	AuditKindCast     AuditKind = "CAST"
	AuditKindUndo     AuditKind = "UNDO"
	AuditKindRegister AuditKind = "REGISTER"
	AuditKindIssue    AuditKind = "ISSUE"
)

// AuditEvent is a tagged variant; undo logic type-switches on the concrete
// event instead of probing loosely typed payloads.
type AuditEvent interface {
	Kind() AuditKind
	EventID() uuid.UUID
	OccurredAt() time.Time
	// Redacted returns a copy safe for external reporting, with voter
	// identity digests masked.
	Redacted() AuditEvent
}

type eventHeader struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func newEventHeader(at time.Time) eventHeader {
	return eventHeader{ID: uuid.New(), Timestamp: at}
}

func (h eventHeader) EventID() uuid.UUID    { return h.ID }
func (h eventHeader) OccurredAt() time.Time { return h.Timestamp }

const redactedDigest = "***REDACTED***"

// CastEvent carries everything needed to reverse the cast exactly once.
type CastEvent struct {
	eventHeader
	IdentityDigest string `json:"identity_digest"`
	CodeDigest     string `json:"code_digest"`
	BallotDigest   string `json:"ballot_digest"`
	CandidateID    string `json:"candidate_id"`
	Sequence       uint64 `json:"seq"`
}

func NewCastEvent(at time.Time, identityDigest, codeDigest, ballotDigest, candidateID string, seq uint64) CastEvent {
	return CastEvent{
		eventHeader:    newEventHeader(at),
		IdentityDigest: identityDigest,
		CodeDigest:     codeDigest,
		BallotDigest:   ballotDigest,
		CandidateID:    candidateID,
		Sequence:       seq,
	}
}

func (e CastEvent) Kind() AuditKind { return AuditKindCast }

func (e CastEvent) Redacted() AuditEvent {
	e.IdentityDigest = redactedDigest
	e.CodeDigest = redactedDigest
	return e
}

// UndoEvent references the reversed cast.
type UndoEvent struct {
	eventHeader
	UndoneEventID uuid.UUID `json:"undone_event_id"`
	BallotDigest  string    `json:"ballot_digest"`
	CandidateID   string    `json:"candidate_id"`
	Sequence      uint64    `json:"seq"`
}

func NewUndoEvent(at time.Time, undone CastEvent) UndoEvent {
	return UndoEvent{
		eventHeader:   newEventHeader(at),
		UndoneEventID: undone.ID,
		BallotDigest:  undone.BallotDigest,
		CandidateID:   undone.CandidateID,
		Sequence:      undone.Sequence,
	}
}

func (e UndoEvent) Kind() AuditKind      { return AuditKindUndo }
func (e UndoEvent) Redacted() AuditEvent { return e }

// RegisterEvent records a voter-registration batch.
type RegisterEvent struct {
	eventHeader
	RegisteredCount int `json:"registered_count"`
	DuplicateCount  int `json:"duplicate_count"`
	TotalAttempted  int `json:"total_attempted"`
}

func NewRegisterEvent(at time.Time, registered, duplicates, attempted int) RegisterEvent {
	return RegisterEvent{
		eventHeader:     newEventHeader(at),
		RegisteredCount: registered,
		DuplicateCount:  duplicates,
		TotalAttempted:  attempted,
	}
}

func (e RegisterEvent) Kind() AuditKind      { return AuditKindRegister }
func (e RegisterEvent) Redacted() AuditEvent { return e }

// IssueEvent records an access-code issuance batch.
type IssueEvent struct {
	eventHeader
	IssuedCount    int `json:"issued_count"`
	RequestedCount int `json:"requested_count"`
}

func NewIssueEvent(at time.Time, issued, requested int) IssueEvent {
	return IssueEvent{
		eventHeader:    newEventHeader(at),
		IssuedCount:    issued,
		RequestedCount: requested,
	}
}

func (e IssueEvent) Kind() AuditKind      { return AuditKindIssue }
func (e IssueEvent) Redacted() AuditEvent { return e }

// DecodeAuditEvent restores a persisted event from its kind tag and JSON
// payload.
func DecodeAuditEvent(kind AuditKind, payload []byte) (AuditEvent, error) {
	switch kind {
	case AuditKindCast:
		var e CastEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("failed to decode %s event: %w", kind, err)
		}
		return e, nil
	case AuditKindUndo:
		var e UndoEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("failed to decode %s event: %w", kind, err)
		}
		return e, nil
	case AuditKindRegister:
		var e RegisterEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("failed to decode %s event: %w", kind, err)
		}
		return e, nil
	case AuditKindIssue:
		var e IssueEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("failed to decode %s event: %w", kind, err)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown audit event kind %q", kind)
	}
}

// AuditLog is a strict LIFO record of mutating operations. Pop hands the most
// recent event to the undo path; Recent is read-only and never reorders.
type AuditLog struct {
	events []AuditEvent
}

func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

func (l *AuditLog) Push(e AuditEvent) {
	l.events = append(l.events, e)
}

func (l *AuditLog) Pop() (AuditEvent, error) {
	if len(l.events) == 0 {
		return nil, ErrEmpty
	}
	e := l.events[len(l.events)-1]
	l.events = l.events[:len(l.events)-1]
	return e, nil
}

func (l *AuditLog) Peek() (AuditEvent, error) {
	if len(l.events) == 0 {
		return nil, ErrEmpty
	}
	return l.events[len(l.events)-1], nil
}

func (l *AuditLog) Len() int {
	return len(l.events)
}

// Recent returns up to limit redacted events, most recent first.
func (l *AuditLog) Recent(limit int) []AuditEvent {
	if limit <= 0 || limit > len(l.events) {
		limit = len(l.events)
	}
	out := make([]AuditEvent, 0, limit)
	for i := len(l.events) - 1; i >= len(l.events)-limit; i-- {
		out = append(out, l.events[i].Redacted())
	}
	return out
}
