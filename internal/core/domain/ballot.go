package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Ballot is one entry of the append-only ledger. The digest binds a fresh
// random nonce to the chosen candidate so a voter can later prove the cast
// happened without the ballot revealing who cast it. PrevDigest chains each
// entry to its predecessor for tamper evidence; this is not an inclusion
// proof.
type Ballot struct {
	Sequence    uint64    `json:"seq"`
	Digest      string    `json:"ballot_digest"`
	CandidateID string    `json:"candidate_id"`
	PrevDigest  string    `json:"prev_digest"`
	CreatedAt   time.Time `json:"created_at"`
}

// GenesisDigest anchors the chain before the first ballot.
const GenesisDigest = "genesis"

// BallotDigest derives the ledger digest for a ballot from its nonce,
// candidate and predecessor.
func BallotDigest(nonce []byte, candidateID, prevDigest string) string {
	h := sha256.New()
	h.Write(nonce)
	h.Write([]byte(candidateID))
	h.Write([]byte(prevDigest))
	return "sha256:" + hex.EncodeToString(h.Sum(nil))
}

// CastReceipt is what a successful cast returns to the voter.
type CastReceipt struct {
	BallotDigest string    `json:"ballot_digest"`
	Sequence     uint64    `json:"seq"`
	CreatedAt    time.Time `json:"timestamp"`
}
