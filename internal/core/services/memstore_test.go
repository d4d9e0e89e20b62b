package services

import (
	"context"
	"errors"
	"sync"

	"github.com/adi3433/DS-project/internal/core/domain"
	"github.com/adi3433/DS-project/internal/core/ports"
)

// memStore is an in-memory ports.Store with real transaction semantics: fn
// runs against a copy of the data and the copy replaces the original only on
// success, so rollbacks leave no trace.
type memStore struct {
	mu   sync.Mutex
	data *memData

	failAuditInsert bool
	failVoterCount  bool
}

type memData struct {
	voters  map[string]domain.VoterRecord
	codes   map[string]domain.AccessCode
	ballots []domain.Ballot
	events  []domain.AuditEvent
}

func newMemStore() *memStore {
	return &memStore{data: &memData{
		voters: make(map[string]domain.VoterRecord),
		codes:  make(map[string]domain.AccessCode),
	}}
}

func (d *memData) clone() *memData {
	out := &memData{
		voters:  make(map[string]domain.VoterRecord, len(d.voters)),
		codes:   make(map[string]domain.AccessCode, len(d.codes)),
		ballots: append([]domain.Ballot(nil), d.ballots...),
		events:  append([]domain.AuditEvent(nil), d.events...),
	}
	for k, v := range d.voters {
		out.voters[k] = v
	}
	for k, v := range d.codes {
		out.codes[k] = v
	}
	return out
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx ports.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	repos := &memRepos{data: work, failAuditInsert: s.failAuditInsert}
	if err := fn(repos); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *memStore) Voters() ports.VoterRepository   { return &memVoterRepo{s: s} }
func (s *memStore) Codes() ports.CodeRepository     { return &memCodeRepo{s: s} }
func (s *memStore) Ballots() ports.BallotRepository { return &memBallotRepo{s: s} }
func (s *memStore) Audit() ports.AuditRepository    { return &memAuditRepo{s: s} }

type memRepos struct {
	data            *memData
	failAuditInsert bool
}

func (r *memRepos) Voters() ports.VoterRepository   { return &memVoterRepo{data: r.data} }
func (r *memRepos) Codes() ports.CodeRepository     { return &memCodeRepo{data: r.data} }
func (r *memRepos) Ballots() ports.BallotRepository { return &memBallotRepo{data: r.data} }
func (r *memRepos) Audit() ports.AuditRepository {
	return &memAuditRepo{data: r.data, fail: r.failAuditInsert}
}

// Each repo reaches its data either directly (transaction scope) or through
// the store lock (autocommit reads).

type memVoterRepo struct {
	s    *memStore
	data *memData
}

func (r *memVoterRepo) get() *memData {
	if r.data != nil {
		return r.data
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data
}

func (r *memVoterRepo) GetByDigest(ctx context.Context, digest string) (*domain.VoterRecord, error) {
	v, ok := r.get().voters[digest]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *memVoterRepo) Create(ctx context.Context, voter *domain.VoterRecord) error {
	r.get().voters[voter.IdentityDigest] = *voter
	return nil
}

func (r *memVoterRepo) SetHasVoted(ctx context.Context, digest string, hasVoted bool) error {
	d := r.get()
	v, ok := d.voters[digest]
	if !ok {
		return domain.ErrVoterNotFound
	}
	v.HasVoted = hasVoted
	d.voters[digest] = v
	return nil
}

func (r *memVoterRepo) List(ctx context.Context) ([]domain.VoterRecord, error) {
	d := r.get()
	out := make([]domain.VoterRecord, 0, len(d.voters))
	for _, v := range d.voters {
		out = append(out, v)
	}
	return out, nil
}

func (r *memVoterRepo) Count(ctx context.Context) (int64, error) {
	if r.s != nil && r.s.failVoterCount {
		return 0, errors.New("voter count unavailable")
	}
	return int64(len(r.get().voters)), nil
}

func (r *memVoterRepo) CountVoted(ctx context.Context) (int64, error) {
	var n int64
	for _, v := range r.get().voters {
		if v.HasVoted {
			n++
		}
	}
	return n, nil
}

type memCodeRepo struct {
	s    *memStore
	data *memData
}

func (r *memCodeRepo) get() *memData {
	if r.data != nil {
		return r.data
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data
}

func (r *memCodeRepo) Insert(ctx context.Context, code domain.AccessCode) error {
	r.get().codes[code.CodeDigest] = code
	return nil
}

func (r *memCodeRepo) Redeem(ctx context.Context, codeDigest string) (string, error) {
	d := r.get()
	c, ok := d.codes[codeDigest]
	if !ok || c.Used {
		return "", domain.ErrInvalidOrUsedCode
	}
	c.Used = true
	d.codes[codeDigest] = c
	return c.IdentityDigest, nil
}

func (r *memCodeRepo) Restore(ctx context.Context, codeDigest string) error {
	d := r.get()
	c, ok := d.codes[codeDigest]
	if !ok {
		return domain.ErrInvalidOrUsedCode
	}
	c.Used = false
	d.codes[codeDigest] = c
	return nil
}

type memBallotRepo struct {
	s    *memStore
	data *memData
}

func (r *memBallotRepo) get() *memData {
	if r.data != nil {
		return r.data
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data
}

func (r *memBallotRepo) Head(ctx context.Context) (uint64, string, error) {
	d := r.get()
	if len(d.ballots) == 0 {
		return 0, domain.GenesisDigest, nil
	}
	top := d.ballots[len(d.ballots)-1]
	return top.Sequence, top.Digest, nil
}

func (r *memBallotRepo) Insert(ctx context.Context, ballot domain.Ballot) error {
	d := r.get()
	d.ballots = append(d.ballots, ballot)
	return nil
}

func (r *memBallotRepo) FindByDigest(ctx context.Context, digest string) (*domain.Ballot, error) {
	for _, b := range r.get().ballots {
		if b.Digest == digest {
			out := b
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memBallotRepo) RemoveHighest(ctx context.Context, expectedSeq uint64) (*domain.Ballot, error) {
	d := r.get()
	if len(d.ballots) == 0 {
		return nil, domain.ErrSequenceConflict
	}
	top := d.ballots[len(d.ballots)-1]
	if top.Sequence != expectedSeq {
		return nil, domain.ErrSequenceConflict
	}
	d.ballots = d.ballots[:len(d.ballots)-1]
	return &top, nil
}

func (r *memBallotRepo) List(ctx context.Context) ([]domain.Ballot, error) {
	return append([]domain.Ballot(nil), r.get().ballots...), nil
}

func (r *memBallotRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.get().ballots)), nil
}

type memAuditRepo struct {
	s    *memStore
	data *memData
	fail bool
}

func (r *memAuditRepo) get() *memData {
	if r.data != nil {
		return r.data
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.data
}

func (r *memAuditRepo) Insert(ctx context.Context, event domain.AuditEvent) error {
	if r.fail {
		return errors.New("audit store unavailable")
	}
	d := r.get()
	d.events = append(d.events, event)
	return nil
}

func (r *memAuditRepo) List(ctx context.Context) ([]domain.AuditEvent, error) {
	return append([]domain.AuditEvent(nil), r.get().events...), nil
}
