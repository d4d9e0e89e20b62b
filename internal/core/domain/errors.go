package domain

import "errors"

var (
	ErrInvalidOrUsedCode     = errors.New("invalid or already used access code")
	ErrAlreadyVoted          = errors.New("voter has already voted")
	ErrUnknownCandidate      = errors.New("unknown candidate")
	ErrSequenceConflict      = errors.New("ledger sequence conflict")
	ErrUnsupportedUndoTarget = errors.New("last event cannot be undone")
	ErrUndoDisabled          = errors.New("undo is disabled")
	ErrEmpty                 = errors.New("no entries")
	ErrCapacity              = errors.New("capacity exceeded")
	ErrBusy                  = errors.New("system busy, retry later")
	ErrBallotNotFound        = errors.New("ballot not found")
	ErrVoterNotFound         = errors.New("voter not found")
	ErrDuplicateCandidate    = errors.New("candidate id already registered")
	ErrInternal              = errors.New("internal server error")
)
