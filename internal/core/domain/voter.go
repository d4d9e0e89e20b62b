package domain

import "time"

type VoterRecord struct {
	IdentityDigest string    `json:"identity_digest"`
	HasVoted       bool      `json:"has_voted"`
	RegisteredAt   time.Time `json:"registered_at,omitempty"`
}

type AccessCode struct {
	CodeDigest     string    `json:"code_digest"`
	IdentityDigest string    `json:"identity_digest"`
	Used           bool      `json:"used"`
	IssuedAt       time.Time `json:"issued_at,omitempty"`
}

// VoterStatusIndex is the fast-path duplicate-check projection: a bucketed
// hash index from identity digest to voting status. The persistent store is
// authoritative; the index exists to reject obviously duplicate casts before
// touching the ledger, and can always be recomputed from it.
type VoterStatusIndex struct {
	buckets [][]VoterRecord
	size    int
}

const defaultIndexBuckets = 1024

func NewVoterStatusIndex(buckets int) *VoterStatusIndex {
	if buckets <= 0 {
		buckets = defaultIndexBuckets
	}
	return &VoterStatusIndex{buckets: make([][]VoterRecord, buckets)}
}

func (x *VoterStatusIndex) bucketFor(digest string) int {
	// FNV-1a over the digest string keeps placement content-derived without
	// pulling in another hash dependency.
	var h uint32 = 2166136261
	for i := 0; i < len(digest); i++ {
		h ^= uint32(digest[i])
		h *= 16777619
	}
	return int(h % uint32(len(x.buckets)))
}

func (x *VoterStatusIndex) Lookup(identityDigest string) (VoterRecord, bool) {
	b := x.buckets[x.bucketFor(identityDigest)]
	for i := range b {
		if b[i].IdentityDigest == identityDigest {
			return b[i], true
		}
	}
	return VoterRecord{}, false
}

// Upsert inserts or updates the record for the digest.
func (x *VoterStatusIndex) Upsert(record VoterRecord) {
	i := x.bucketFor(record.IdentityDigest)
	b := x.buckets[i]
	for j := range b {
		if b[j].IdentityDigest == record.IdentityDigest {
			b[j] = record
			return
		}
	}
	x.buckets[i] = append(b, record)
	x.size++
}

func (x *VoterStatusIndex) SetHasVoted(identityDigest string, hasVoted bool) bool {
	i := x.bucketFor(identityDigest)
	b := x.buckets[i]
	for j := range b {
		if b[j].IdentityDigest == identityDigest {
			b[j].HasVoted = hasVoted
			return true
		}
	}
	return false
}

func (x *VoterStatusIndex) Len() int {
	return x.size
}

// Clear drops every record, keeping the bucket count.
func (x *VoterStatusIndex) Clear() {
	x.buckets = make([][]VoterRecord, len(x.buckets))
	x.size = 0
}
